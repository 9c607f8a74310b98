package syntax

import "github.com/jmylchreest/syngraph/pkg/scope"

// SyntaxReference is a grammar whose per-name context map has been
// rewritten to ContextIDs. It is immutable and safe to share for
// read-only lookups once it is part of a built GrammarSet.
type SyntaxReference struct {
	Name           string
	FileExtensions []string
	Scope          scope.Scope
	FirstLineMatch string
	Hidden         bool
	Variables      map[string]string

	// Contexts maps a context name to its handle in the owning
	// GrammarSet's flat contexts vector.
	Contexts map[string]ContextID
}

// Clone returns a deep copy, matching the "SyntaxReferences are
// cloneable (deep copy)" contract of a built GrammarSet.
func (s *SyntaxReference) Clone() *SyntaxReference {
	clone := &SyntaxReference{
		Name:           s.Name,
		FileExtensions: append([]string(nil), s.FileExtensions...),
		Scope:          s.Scope,
		FirstLineMatch: s.FirstLineMatch,
		Hidden:         s.Hidden,
		Variables:      make(map[string]string, len(s.Variables)),
		Contexts:       make(map[string]ContextID, len(s.Contexts)),
	}
	for k, v := range s.Variables {
		clone.Variables[k] = v
	}
	for k, v := range s.Contexts {
		clone.Contexts[k] = v
	}
	return clone
}

// MainContext returns the "main" context's handle, if present.
func (s *SyntaxReference) MainContext() (ContextID, bool) {
	id, ok := s.Contexts["main"]
	return id, ok
}

// HasExtension reports whether ext is one of the syntax's registered
// file extensions, using exact case-sensitive equality. Callers that
// want case-insensitive matching are responsible for folding case
// themselves.
func (s *SyntaxReference) HasExtension(ext string) bool {
	for _, e := range s.FileExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
