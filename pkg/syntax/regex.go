package syntax

import (
	"github.com/dlclark/regexp2"
)

// Regex wraps a compiled pattern regex. Sublime-syntax patterns lean
// on Oniguruma features (lookaround, backreferences) that Go's
// RE2-based stdlib regexp cannot express, so compiled patterns here
// use regexp2 rather than regexp.
type Regex struct {
	source   string
	compiled *regexp2.Regexp
}

// CompileRegex compiles source. The caller decides what to do with a
// compile error; the pkg/syntaxyaml loader (which leaves Pattern.Regex
// nil) and the first-line cache both treat a failure as "skip this
// pattern", never as a hard error.
func CompileRegex(source string) (*Regex, error) {
	re, err := regexp2.Compile(source, regexp2.None)
	if err != nil {
		return nil, err
	}
	return &Regex{source: source, compiled: re}, nil
}

// Source returns the original pattern text.
func (r *Regex) Source() string {
	return r.source
}

// FindsIn reports whether the regex matches anywhere in line. A nil
// receiver or a regex whose source failed to compile both report no
// match rather than panicking.
func (r *Regex) FindsIn(line string) bool {
	if r == nil || r.compiled == nil {
		return false
	}
	m, err := r.compiled.FindStringMatch(line)
	return err == nil && m != nil
}

// GobEncode implements gob.GobEncoder, persisting only the source
// text; Load recompiles it.
func (r Regex) GobEncode() ([]byte, error) {
	return []byte(r.source), nil
}

// GobDecode implements gob.GobDecoder. A source that fails to
// recompile is kept (for Source()) but leaves compiled nil, so
// FindsIn silently reports no match — consistent with how a
// first-line pattern that fails to compile is treated everywhere
// else in this package.
func (r *Regex) GobDecode(data []byte) error {
	r.source = string(data)
	compiled, err := regexp2.Compile(r.source, regexp2.None)
	if err == nil {
		r.compiled = compiled
	}
	return nil
}
