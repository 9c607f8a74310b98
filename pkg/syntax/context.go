package syntax

// Context is a single node of the grammar graph: an ordered pattern
// list plus the meta flags a parser consults while matching inside it.
// Contexts are owned by a GrammarSet's flat contexts vector and
// referenced everywhere else only via ContextID.
type Context struct {
	// Name is the context's name as declared in its syntax (or the
	// synthetic name assigned to an inline context). Kept after linking
	// for diagnostics and for IntoBuilder round-trips.
	Name string

	Patterns []Pattern

	// MetaIncludePrototype defaults to true: most contexts implicitly
	// inherit their syntax's prototype context.
	MetaIncludePrototype bool

	// MetaScope and MetaContentScope mirror the meta scope-stack
	// effects a sublime-syntax context can declare; carried verbatim
	// from the definition, uninterpreted by the core.
	MetaScope        string
	MetaContentScope string
	ClearScopes      int

	// Prototype is filled in during Build's phase 4. Unset (invalid)
	// until then, and for contexts the prototype must not reach.
	Prototype ContextID
}

// NewContext returns a Context with defaults matching an unmarked
// sublime-syntax context: no patterns, prototype inheritance on, no
// prototype assigned yet.
func NewContext(name string) Context {
	return Context{
		Name:                 name,
		MetaIncludePrototype: true,
		Prototype:            invalidContextID,
	}
}

// HasPrototype reports whether Prototype was assigned by Build.
func (c *Context) HasPrototype() bool {
	return c.Prototype.Valid()
}
