package syntax

import "github.com/jmylchreest/syngraph/pkg/scope"

// SyntaxDefinition is a parsed-but-unlinked grammar: a set of named
// contexts plus metadata. It is mutable and only meant to live inside
// a GrammarSetBuilder; Build consumes it to produce a SyntaxReference
// and a batch of Contexts moved into the GrammarSet's flat vector.
type SyntaxDefinition struct {
	Name             string
	FileExtensions   []string
	Scope            scope.Scope
	FirstLineMatch   string
	Hidden           bool
	Variables        map[string]string
	Contexts         map[string]Context
}

// NewSyntaxDefinition returns an empty, unlinked grammar with the
// given display name and default scope.
func NewSyntaxDefinition(name string, sc scope.Scope) *SyntaxDefinition {
	return &SyntaxDefinition{
		Name:      name,
		Scope:     sc,
		Variables: make(map[string]string),
		Contexts:  make(map[string]Context),
	}
}

// AddContext registers a named context on the definition, overwriting
// any context previously registered under the same name.
func (d *SyntaxDefinition) AddContext(name string, c Context) {
	c.Name = name
	d.Contexts[name] = c
}

// hasPrototypeContext reports whether the definition declares a
// "prototype" context.
func (d *SyntaxDefinition) hasPrototypeContext() bool {
	_, ok := d.Contexts["prototype"]
	return ok
}
