package syntax

import "sync"

// firstLineEntry pairs a compiled first-line regex with the index of
// the syntax it identifies.
type firstLineEntry struct {
	regex       *Regex
	syntaxIndex int
}

// FirstLineCache is a process-local, lazy, monotonic cache of compiled
// first_line_match regexes. It is not serialized: after
// deserialization, or after Clone, it starts empty.
type FirstLineCache struct {
	mu          sync.Mutex
	entries     []firstLineEntry
	cachedUntil int
}

// Find ensures the cache covers all of syntaxes, then returns the
// index of the first syntax whose first-line regex matches line. Both
// steps run under a single lock acquisition: filling the cache and
// scanning it must be atomic with respect to other callers, or two
// goroutines racing the initial fill could each see a partial entry
// list.
func (c *FirstLineCache) Find(syntaxes []*SyntaxReference, line string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fillLocked(syntaxes)

	for _, e := range c.entries {
		if e.regex.FindsIn(line) {
			return e.syntaxIndex, true
		}
	}
	return 0, false
}

// fillLocked appends entries for any syntax not yet processed. Cheap
// no-op once cachedUntil has caught up with len(syntaxes). A
// first_line_match that fails to compile is silently skipped rather
// than surfaced as an error — a bad pattern here shouldn't block
// lookup for every other syntax in the set.
func (c *FirstLineCache) fillLocked(syntaxes []*SyntaxReference) {
	if c.cachedUntil >= len(syntaxes) {
		return
	}
	for i := c.cachedUntil; i < len(syntaxes); i++ {
		s := syntaxes[i]
		if s.FirstLineMatch == "" {
			continue
		}
		re, err := CompileRegex(s.FirstLineMatch)
		if err != nil {
			continue
		}
		c.entries = append(c.entries, firstLineEntry{regex: re, syntaxIndex: i})
	}
	c.cachedUntil = len(syntaxes)
}
