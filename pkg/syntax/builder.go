package syntax

import (
	"log"
	"sort"

	"github.com/jmylchreest/syngraph/pkg/scope"
)

// pathEntry records a loaded grammar file's normalized path alongside
// the index it will occupy in the built GrammarSet's syntaxes vector.
type pathEntry struct {
	path        string
	syntaxIndex int
}

// GrammarSetBuilder accumulates SyntaxDefinitions and produces a
// linked GrammarSet. It is single-owner and not required to be safe
// for concurrent use, unlike the GrammarSet it produces.
type GrammarSetBuilder struct {
	syntaxes []*SyntaxDefinition
	paths    []pathEntry

	logger        *log.Logger
	autoPlainText bool
}

// BuilderOption configures a GrammarSetBuilder.
type BuilderOption func(*GrammarSetBuilder)

// WithLogger sets an optional logger. When set, Build logs a line for
// each syntax that still has unresolved references after linking,
// reporting how many, and LoadFromFolder logs each grammar file it
// loads. nil (the
// default) produces no output, matching the core's "no logging by
// default" policy.
func WithLogger(l *log.Logger) BuilderOption {
	return func(b *GrammarSetBuilder) {
		b.logger = l
	}
}

// WithPlainText, when enabled, makes Build call AddPlainText itself if
// no "Plain Text" syntax has been added yet. Off by default: callers
// must opt in explicitly, mirroring AddPlainText itself being an
// explicit call rather than something Build does unconditionally.
func WithPlainText(enabled bool) BuilderOption {
	return func(b *GrammarSetBuilder) {
		b.autoPlainText = enabled
	}
}

// NewGrammarSetBuilder returns an empty builder.
func NewGrammarSetBuilder(opts ...BuilderOption) *GrammarSetBuilder {
	b := &GrammarSetBuilder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// logf logs a message if a logger is configured; no-op otherwise.
func (b *GrammarSetBuilder) logf(format string, args ...any) {
	if b.logger != nil {
		b.logger.Printf(format, args...)
	}
}

// Add appends a SyntaxDefinition to the builder. No validation beyond
// what the external loader already performed.
func (b *GrammarSetBuilder) Add(def *SyntaxDefinition) {
	b.syntaxes = append(b.syntaxes, def)
}

// hasPlainText reports whether a syntax named "Plain Text" has
// already been added.
func (b *GrammarSetBuilder) hasPlainText() bool {
	for _, s := range b.syntaxes {
		if s.Name == PlainTextName {
			return true
		}
	}
	return false
}

// PlainTextName is the display name AddPlainText registers and
// GrammarSet.FindPlainText looks up.
const PlainTextName = "Plain Text"

// AddPlainText appends a minimal fallback grammar: name "Plain Text",
// scope "text.plain", extension "txt", a single empty "main" context.
func (b *GrammarSetBuilder) AddPlainText() {
	def := NewSyntaxDefinition(PlainTextName, scope.New("text.plain"))
	def.FileExtensions = []string{"txt"}
	def.AddContext("main", NewContext("main"))
	b.Add(def)
}

// linkedSyntax is Build's working state for one syntax: its
// definition plus the name->ContextID map assigned in phase 1.
type linkedSyntax struct {
	def      *SyntaxDefinition
	nameToID map[string]ContextID
}

// Build flattens and links the accumulated SyntaxDefinitions into an
// immutable GrammarSet. It never fails: unresolved references survive
// in their original (non-Direct) form, to be treated as inert by the
// downstream parser.
//
// Internally this runs phase 3 (the prototype no-propagation closure)
// before phase 2 (reference rewriting), even though spec numbering
// lists linking first. Phase 3 only ever resolves Named/Inline targets
// against the CURRENT syntax's own name table — it never needs phase
// 2's cross-syntax Direct rewrites — so computing it first against the
// untouched patterns is equivalent and simpler than trying to
// distinguish "was already Named/Inline" from "was ByScope/File that
// happened to resolve locally" after phase 2 has erased that
// distinction by rewriting both to Direct.
func (b *GrammarSetBuilder) Build() *GrammarSet {
	if b.autoPlainText && !b.hasPlainText() {
		b.AddPlainText()
	}

	var allContexts []Context
	states := make([]*linkedSyntax, len(b.syntaxes))

	// Phase 1 — context assignment, sorted by name within each syntax.
	for si, def := range b.syntaxes {
		names := sortedContextNames(def)
		nameToID := make(map[string]ContextID, len(names))
		for _, name := range names {
			ctx := def.Contexts[name]
			id := ContextID(len(allContexts))
			allContexts = append(allContexts, ctx)
			nameToID[name] = id
		}
		states[si] = &linkedSyntax{def: def, nameToID: nameToID}
	}

	// Phase 3 — prototype no-propagation closure (see doc comment above
	// for why this runs before phase 2).
	noPropBySyntax := make([]map[ContextID]bool, len(states))
	for si, st := range states {
		protoID, ok := st.nameToID["prototype"]
		if !ok {
			continue
		}
		noPropBySyntax[si] = computeNoPropagationSet(protoID, st, allContexts)
	}

	// Phase 2 — reference rewriting (linking).
	for _, st := range states {
		unresolved := 0
		for _, id := range st.nameToID {
			ctx := &allContexts[id]
			for i := range ctx.Patterns {
				p := &ctx.Patterns[i]
				p.walkRefs(func(get func() ContextReference, set func(ContextReference)) {
					ref := get()
					if ref.Kind == RefDirect {
						return
					}
					if target, ok := resolveRef(ref, st, states); ok {
						set(DirectRef(target))
					} else {
						unresolved++
					}
				})
			}
		}
		if unresolved > 0 {
			b.logf("syntax %q: %d unresolved context reference(s) after linking", st.def.Name, unresolved)
		}
	}

	// Phase 4 — prototype attachment.
	for si, st := range states {
		protoID, ok := st.nameToID["prototype"]
		if !ok {
			continue
		}
		noProp := noPropBySyntax[si]
		for _, id := range st.nameToID {
			ctx := &allContexts[id]
			if ctx.MetaIncludePrototype && !noProp[id] {
				ctx.Prototype = protoID
			}
		}
	}

	syntaxes := make([]*SyntaxReference, len(states))
	for i, st := range states {
		variables := make(map[string]string, len(st.def.Variables))
		for k, v := range st.def.Variables {
			variables[k] = v
		}
		syntaxes[i] = &SyntaxReference{
			Name:           st.def.Name,
			FileExtensions: append([]string(nil), st.def.FileExtensions...),
			Scope:          st.def.Scope,
			FirstLineMatch: st.def.FirstLineMatch,
			Hidden:         st.def.Hidden,
			Variables:      variables,
			Contexts:       st.nameToID,
		}
	}

	paths := append([]pathEntry(nil), b.paths...)

	return &GrammarSet{
		syntaxes:     syntaxes,
		contexts:     allContexts,
		pathSyntaxes: paths,
	}
}

// sortedContextNames returns def's context names in byte-lexicographic
// order. Assigning context ids in this order is what makes two builds
// of the same definitions produce identical ids, which in turn is what
// makes Dump output reproducible byte-for-byte.
func sortedContextNames(def *SyntaxDefinition) []string {
	names := make([]string, 0, len(def.Contexts))
	for name := range def.Contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
