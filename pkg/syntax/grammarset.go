package syntax

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/syngraph/pkg/scope"
)

// GrammarSet is the immutable, serializable result of a
// GrammarSetBuilder.Build: a flat context table, the linked syntaxes
// indexing into it, a path-to-syntax table, and a lazily built
// first-line regex cache. Every field but the cache is logically
// immutable after construction, so a *GrammarSet is safe to share
// across goroutines for read-only lookups.
type GrammarSet struct {
	syntaxes     []*SyntaxReference
	contexts     []Context
	pathSyntaxes []pathEntry

	flCache FirstLineCache
}

// Syntaxes returns the ordered sequence of linked syntaxes.
func (g *GrammarSet) Syntaxes() []*SyntaxReference {
	return g.syntaxes
}

// GetContext returns the context at id. ok is false if id is out of
// range for this GrammarSet.
func (g *GrammarSet) GetContext(id ContextID) (*Context, bool) {
	if !id.Valid() || int(id) >= len(g.contexts) {
		return nil, false
	}
	return &g.contexts[id], true
}

// FindIndexByScope returns the index of the first syntax (in insertion
// order) whose default scope equals sc.
func (g *GrammarSet) FindIndexByScope(sc scope.Scope) (int, bool) {
	for i, s := range g.syntaxes {
		if s.Scope.Equal(sc) {
			return i, true
		}
	}
	return 0, false
}

// FindByScope returns the first syntax (in insertion order) whose
// default scope equals sc.
func (g *GrammarSet) FindByScope(sc scope.Scope) (*SyntaxReference, bool) {
	i, ok := g.FindIndexByScope(sc)
	if !ok {
		return nil, false
	}
	return g.syntaxes[i], true
}

// FindIndexByName returns the index of the syntax whose display name
// equals name exactly (case-sensitive).
func (g *GrammarSet) FindIndexByName(name string) (int, bool) {
	for i, s := range g.syntaxes {
		if s.Name == name {
			return i, true
		}
	}
	return 0, false
}

// FindByName returns the syntax whose display name equals name
// exactly (case-sensitive).
func (g *GrammarSet) FindByName(name string) (*SyntaxReference, bool) {
	i, ok := g.FindIndexByName(name)
	if !ok {
		return nil, false
	}
	return g.syntaxes[i], true
}

// FindByExtension returns the first syntax whose FileExtensions
// contains ext (exact, case-sensitive equality).
func (g *GrammarSet) FindByExtension(ext string) (*SyntaxReference, bool) {
	for _, s := range g.syntaxes {
		if s.HasExtension(ext) {
			return s, true
		}
	}
	return nil, false
}

// FindByToken first tries FindByExtension(tok); failing that, it
// searches syntax names with ASCII case-insensitive equality.
func (g *GrammarSet) FindByToken(tok string) (*SyntaxReference, bool) {
	if s, ok := g.FindByExtension(tok); ok {
		return s, true
	}
	for _, s := range g.syntaxes {
		if strings.EqualFold(s.Name, tok) {
			return s, true
		}
	}
	return nil, false
}

// FindByFirstLine returns the first syntax whose first_line_match
// regex finds a match anywhere in line.
func (g *GrammarSet) FindByFirstLine(line string) (*SyntaxReference, bool) {
	i, ok := g.flCache.Find(g.syntaxes, line)
	if !ok {
		return nil, false
	}
	return g.syntaxes[i], true
}

// FindByPath searches the recorded path table for a stored path that
// either equals path exactly or ends with "/" + path. The "/" prefix
// prevents a suffix match inside a longer directory or filename
// component (e.g. looking up "ust/foo.rs" must not match
// "src/rust/foo.rs").
func (g *GrammarSet) FindByPath(path string) (*SyntaxReference, bool) {
	suffix := "/" + path
	for _, pe := range g.pathSyntaxes {
		if pe.path == path || strings.HasSuffix(pe.path, suffix) {
			return g.syntaxes[pe.syntaxIndex], true
		}
	}
	return nil, false
}

// FindForFile identifies the syntax for path: first by extension
// match on the file name, then on the file's extension, then — only
// if neither matched — by reading and testing the file's first line.
// I/O errors from that last step propagate as err.
func (g *GrammarSet) FindForFile(path string) (*SyntaxReference, error) {
	fileName := filepath.Base(path)
	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")

	if s, ok := g.FindByExtension(fileName); ok {
		return s, nil
	}
	if ext != "" {
		if s, ok := g.FindByExtension(ext); ok {
			return s, nil
		}
	}

	line, err := readFirstLine(path)
	if err != nil {
		return nil, &LoadFirstLineError{Path: path, Err: err}
	}

	s, _ := g.FindByFirstLine(line)
	return s, nil
}

// readFirstLine returns the file's first line, up to and including
// the next newline, or to EOF.
func readFirstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return line, nil
}

// FindPlainText returns the "Plain Text" fallback syntax. A missing
// "Plain Text" syntax is a programmer error: the caller should have
// called GrammarSetBuilder.AddPlainText before Build, and this panics
// rather than returning a zero value that would silently propagate.
func (g *GrammarSet) FindPlainText() *SyntaxReference {
	s, err := g.TryFindPlainText()
	if err != nil {
		panic(err)
	}
	return s
}

// TryFindPlainText is the non-panicking twin of FindPlainText, for
// callers that cannot tolerate a panic.
func (g *GrammarSet) TryFindPlainText() (*SyntaxReference, error) {
	s, ok := g.FindByName(PlainTextName)
	if !ok {
		return nil, &ErrPlainTextMissing{}
	}
	return s, nil
}

// Clone returns a copy of g. Each SyntaxReference is deep-copied and
// the contexts and path table are copied into new slices; the pattern
// slices inside each Context are shared with g. The first-line cache
// is left fresh and empty under a new mutex.
func (g *GrammarSet) Clone() *GrammarSet {
	clone := &GrammarSet{
		syntaxes:     make([]*SyntaxReference, len(g.syntaxes)),
		contexts:     append([]Context(nil), g.contexts...),
		pathSyntaxes: append([]pathEntry(nil), g.pathSyntaxes...),
	}
	for i, s := range g.syntaxes {
		clone.syntaxes[i] = s.Clone()
	}
	return clone
}
