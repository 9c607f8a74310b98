package syntax

// computeNoPropagationSet computes the set of context ids within st
// that must NOT implicitly inherit st's prototype context: the
// transitive closure starting at protoID, following Push/Set targets
// (named or inline) and Include(Named) targets resolvable within st.
// Include(Inline) is deliberately not traversed: inline includes
// through the prototype are unusual and the default grammar bundle
// never relies on propagating through one.
// ByScope and File targets are never traversed: they cross syntax
// boundaries and the no-propagation set is local to st.
func computeNoPropagationSet(protoID ContextID, st *linkedSyntax, contexts []Context) map[ContextID]bool {
	noProp := map[ContextID]bool{protoID: true}
	queue := []ContextID{protoID}

	add := func(id ContextID) {
		if !noProp[id] {
			noProp[id] = true
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		ctx := &contexts[id]

		for i := range ctx.Patterns {
			p := &ctx.Patterns[i]
			switch p.Kind {
			case PatternInclude:
				if p.Include.Kind == RefNamed {
					if target, ok := st.nameToID[p.Include.Name]; ok {
						add(target)
					}
				}
				// RefInline is intentionally not traversed here.

			case PatternMatch:
				if p.Operation.Kind != OpPush && p.Operation.Kind != OpSet {
					continue
				}
				for _, ref := range p.Operation.Refs {
					if ref.Kind != RefNamed && ref.Kind != RefInline {
						continue
					}
					if target, ok := st.nameToID[ref.Name]; ok {
						add(target)
					}
				}
			}
		}
	}

	return noProp
}
