package syntax

import "github.com/jmylchreest/syngraph/pkg/scope"

// RefKind tags the variant of a ContextReference.
type RefKind int

const (
	RefNamed RefKind = iota
	RefInline
	RefByScope
	RefFile
	RefDirect
)

func (k RefKind) String() string {
	switch k {
	case RefNamed:
		return "named"
	case RefInline:
		return "inline"
	case RefByScope:
		return "by-scope"
	case RefFile:
		return "file"
	case RefDirect:
		return "direct"
	default:
		return "unknown"
	}
}

// ContextReference is a context lookup that has not (or could not) be
// rewritten to a direct ContextID. Named/Inline resolve within the
// owning syntax; ByScope/File cross syntax boundaries; Direct is the
// post-link terminal state.
type ContextReference struct {
	Kind RefKind

	// Name holds the context name for RefNamed and RefInline.
	Name string

	// ScopeStr holds the target syntax's default scope for RefByScope.
	ScopeStr string

	// FileName holds the target syntax's display name for RefFile.
	FileName string

	// SubContext names the context within the resolved syntax for
	// RefByScope and RefFile. Empty means "main".
	SubContext string

	// Direct holds the resolved handle once Kind == RefDirect.
	Direct ContextID
}

// subContextOrMain returns SubContext, defaulting to "main".
func (r ContextReference) subContextOrMain() string {
	if r.SubContext == "" {
		return "main"
	}
	return r.SubContext
}

// NamedRef builds a same-syntax reference by context name.
func NamedRef(name string) ContextReference {
	return ContextReference{Kind: RefNamed, Name: name}
}

// InlineRef builds a reference to a synthetic inline context.
func InlineRef(name string) ContextReference {
	return ContextReference{Kind: RefInline, Name: name}
}

// ByScopeRef builds a cross-syntax reference by default scope.
// subContext defaults to "main" when empty.
func ByScopeRef(sc scope.Scope, subContext string) ContextReference {
	return ContextReference{Kind: RefByScope, ScopeStr: sc.String(), SubContext: subContext}
}

// FileRef builds a cross-syntax reference by display name.
// subContext defaults to "main" when empty.
func FileRef(name, subContext string) ContextReference {
	return ContextReference{Kind: RefFile, FileName: name, SubContext: subContext}
}

// DirectRef wraps an already-resolved handle.
func DirectRef(id ContextID) ContextReference {
	return ContextReference{Kind: RefDirect, Direct: id}
}

// Resolved reports whether the reference has been rewritten to Direct.
func (r ContextReference) Resolved() bool {
	return r.Kind == RefDirect
}

// OpKind tags a match pattern's context-stack effect.
type OpKind int

const (
	OpNone OpKind = iota
	OpPop
	OpPush
	OpSet
)

// MatchOperation is the context-stack effect of a match pattern.
// Refs is populated only for OpPush and OpSet.
type MatchOperation struct {
	Kind OpKind
	Refs []ContextReference
}

// Capture pairs a regex capture group index with the scope applied to
// the text it matches.
type Capture struct {
	Group int
	Scope scope.Scope
}

// PatternKind tags the variant of a Pattern.
type PatternKind int

const (
	PatternMatch PatternKind = iota
	PatternInclude
)

// Pattern is one entry in a Context's ordered pattern list: either a
// match rule (regex + captures + stack operation) or an include of
// another context's patterns inline.
type Pattern struct {
	Kind PatternKind

	// Match fields (Kind == PatternMatch).
	Regex     *Regex
	Captures  []Capture
	Operation MatchOperation

	// WithPrototype overrides the implicit prototype for the pushed
	// context(s) of a Push/Set match pattern. Nil means "use the
	// syntax's normal prototype attachment".
	WithPrototype *ContextReference

	// Include field (Kind == PatternInclude).
	Include ContextReference
}

// walkRefs invokes fn on every ContextReference reachable from p,
// allowing in-place rewriting via the supplied setter. Used by the
// linker (phase 2).
func (p *Pattern) walkRefs(fn func(get func() ContextReference, set func(ContextReference))) {
	switch p.Kind {
	case PatternInclude:
		fn(func() ContextReference { return p.Include }, func(r ContextReference) { p.Include = r })
	case PatternMatch:
		switch p.Operation.Kind {
		case OpPush, OpSet:
			for i := range p.Operation.Refs {
				i := i
				fn(
					func() ContextReference { return p.Operation.Refs[i] },
					func(r ContextReference) { p.Operation.Refs[i] = r },
				)
			}
		}
		if p.WithPrototype != nil {
			wp := p.WithPrototype
			fn(func() ContextReference { return *wp }, func(r ContextReference) { *wp = r })
		}
	}
}
