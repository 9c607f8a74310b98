package syntax

// topLevelMainSentinel is a legacy placeholder recognized during
// linking as an alias for the current syntax's "main" context.
const topLevelMainSentinel = "$top_level_main"

// resolveRef attempts to rewrite ref to a direct ContextID, searching
// st (the owning syntax) for Named/Inline and all of states for
// ByScope/File. Direct references are never passed in (callers skip
// them); returning ok == false leaves the reference untouched.
func resolveRef(ref ContextReference, st *linkedSyntax, states []*linkedSyntax) (ContextID, bool) {
	switch ref.Kind {
	case RefNamed, RefInline:
		name := ref.Name
		if name == topLevelMainSentinel {
			name = "main"
		}
		id, ok := st.nameToID[name]
		return id, ok

	case RefByScope:
		for _, other := range states {
			if other.def.Scope.String() != ref.ScopeStr {
				continue
			}
			id, ok := other.nameToID[ref.subContextOrMain()]
			return id, ok
		}
		return invalidContextID, false

	case RefFile:
		for _, other := range states {
			if other.def.Name != ref.FileName {
				continue
			}
			id, ok := other.nameToID[ref.subContextOrMain()]
			return id, ok
		}
		return invalidContextID, false

	default:
		return invalidContextID, false
	}
}
