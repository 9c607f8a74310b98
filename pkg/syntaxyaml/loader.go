// Package syntaxyaml turns .sublime-syntax YAML source into
// syntax.SyntaxDefinition values. It sits beside pkg/syntax, not
// inside it, so that GrammarSetBuilder.LoadFromFolder has a concrete
// DefinitionLoader to exercise end to end without the linking core
// depending on a YAML library itself.
//
// It covers the constructs the default grammar bundle actually uses —
// match/include patterns, push/set/pop, captures, with_prototype,
// inline anonymous contexts, and the meta_* context flags — but does
// not implement variable substitution ({{name}} interpolation) or
// branch-point/conditional contexts; those belong to a full YAML
// loader, not to this engine's linking core.
package syntaxyaml

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/syngraph/pkg/scope"
	"github.com/jmylchreest/syngraph/pkg/syntax"
)

// rawDefinition mirrors the top-level shape of a .sublime-syntax file.
type rawDefinition struct {
	Name           string                   `yaml:"name"`
	FileExtensions []string                 `yaml:"file_extensions"`
	Scope          string                   `yaml:"scope"`
	FirstLineMatch string                   `yaml:"first_line_match"`
	Hidden         bool                     `yaml:"hidden"`
	Variables      map[string]string        `yaml:"variables"`
	Contexts       map[string][]map[string]any `yaml:"contexts"`
}

// Parse turns raw .sublime-syntax YAML source into a SyntaxDefinition.
// linesIncludeNewline is accepted for parity with
// syntax.DefinitionLoader but does not otherwise affect parsing: it
// only matters to a downstream tokenizer, not to linking.
func Parse(data []byte, linesIncludeNewline bool) (*syntax.SyntaxDefinition, error) {
	var raw rawDefinition
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing syntax definition: %w", err)
	}

	def := syntax.NewSyntaxDefinition(raw.Name, scope.New(raw.Scope))
	def.FileExtensions = raw.FileExtensions
	def.FirstLineMatch = raw.FirstLineMatch
	def.Hidden = raw.Hidden
	for k, v := range raw.Variables {
		def.Variables[k] = v
	}

	inlineCounters := make(map[string]int)
	for name, rawPatterns := range raw.Contexts {
		ctx := buildContext(def, name, rawPatterns, inlineCounters)
		def.AddContext(name, ctx)
	}

	return def, nil
}

// LoadFile reads and parses a single .sublime-syntax file. It has the
// syntax.DefinitionLoader signature and is meant to be passed directly
// to GrammarSetBuilder.LoadFromFolder.
func LoadFile(path string, linesIncludeNewline bool) (*syntax.SyntaxDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, linesIncludeNewline)
}

// buildContext turns one context's raw pattern list into a
// syntax.Context, recursing into buildContext for any inline
// anonymous contexts a push/set/with_prototype target defines, and
// registering those on def under a synthetic name.
func buildContext(def *syntax.SyntaxDefinition, name string, rawPatterns []map[string]any, counters map[string]int) syntax.Context {
	ctx := syntax.NewContext(name)

	for _, rp := range rawPatterns {
		if v, ok := rp["meta_include_prototype"]; ok {
			if b, ok2 := v.(bool); ok2 {
				ctx.MetaIncludePrototype = b
			}
			continue
		}
		if v, ok := rp["meta_scope"].(string); ok {
			ctx.MetaScope = v
			continue
		}
		if v, ok := rp["meta_content_scope"].(string); ok {
			ctx.MetaContentScope = v
			continue
		}

		if inc, ok := rp["include"]; ok {
			ctx.Patterns = append(ctx.Patterns, syntax.Pattern{
				Kind:    syntax.PatternInclude,
				Include: parseRef(fmt.Sprint(inc)),
			})
			continue
		}

		matchStr, _ := rp["match"].(string)
		p := syntax.Pattern{Kind: syntax.PatternMatch}
		if re, err := syntax.CompileRegex(matchStr); err == nil {
			p.Regex = re
		}
		if caps, ok := rp["captures"].(map[string]any); ok {
			p.Captures = parseCaptures(caps)
		}
		// "scope:" on a match is shorthand for capturing the whole match
		// (group 0); it only applies when captures didn't already claim
		// group 0 explicitly.
		if wholeScope, ok := rp["scope"].(string); ok && !hasCaptureGroup(p.Captures, 0) {
			p.Captures = append(p.Captures, syntax.Capture{Group: 0, Scope: scope.New(wholeScope)})
		}

		switch {
		case rp["pop"] != nil:
			p.Operation = syntax.MatchOperation{Kind: syntax.OpPop}
		case rp["push"] != nil:
			refs := parseContextTarget(def, name, rp["push"], counters)
			p.Operation = syntax.MatchOperation{Kind: syntax.OpPush, Refs: refs}
		case rp["set"] != nil:
			refs := parseContextTarget(def, name, rp["set"], counters)
			p.Operation = syntax.MatchOperation{Kind: syntax.OpSet, Refs: refs}
		default:
			p.Operation = syntax.MatchOperation{Kind: syntax.OpNone}
		}

		if wp, ok := rp["with_prototype"]; ok {
			if refs := parseContextTarget(def, name, wp, counters); len(refs) > 0 {
				ref := refs[0]
				p.WithPrototype = &ref
			}
		}

		ctx.Patterns = append(ctx.Patterns, p)
	}

	return ctx
}

// parseContextTarget interprets a push/set/with_prototype value: a
// single context-name string, a list of context-name strings (a
// multi-context push), or a list of pattern maps (an anonymous inline
// context, registered on def under a synthetic "<parent>#<n>" name).
func parseContextTarget(def *syntax.SyntaxDefinition, parentName string, raw any, counters map[string]int) []syntax.ContextReference {
	switch v := raw.(type) {
	case string:
		return []syntax.ContextReference{parseRef(v)}

	case []any:
		if len(v) == 0 {
			return nil
		}
		if _, isMap := v[0].(map[string]any); isMap {
			counters[parentName]++
			inlineName := fmt.Sprintf("%s#%d", parentName, counters[parentName])

			var rawPatterns []map[string]any
			for _, e := range v {
				if m, ok := e.(map[string]any); ok {
					rawPatterns = append(rawPatterns, m)
				}
			}
			inlineCtx := buildContext(def, inlineName, rawPatterns, counters)
			def.AddContext(inlineName, inlineCtx)
			return []syntax.ContextReference{syntax.InlineRef(inlineName)}
		}

		var refs []syntax.ContextReference
		for _, e := range v {
			if s, ok := e.(string); ok {
				refs = append(refs, parseRef(s))
			}
		}
		return refs

	default:
		return nil
	}
}

// parseRef interprets a context-reference string in the handful of
// forms the default grammar bundle uses:
//
//	"name"                         -> same-syntax context (or $top_level_main)
//	"#name"                        -> same-syntax context, explicit form
//	"scope:source.foo"             -> cross-syntax by scope, "main"
//	"scope:source.foo#ctx"         -> cross-syntax by scope, named context
//	"Other Syntax.sublime-syntax#ctx" -> cross-syntax by file, named context
func parseRef(s string) syntax.ContextReference {
	left, right, hasHash := strings.Cut(s, "#")

	if !hasHash {
		if scopeName, ok := strings.CutPrefix(s, "scope:"); ok {
			return syntax.ByScopeRef(scope.New(scopeName), "")
		}
		return syntax.NamedRef(s)
	}
	if left == "" {
		return syntax.NamedRef(right)
	}
	if scopeName, ok := strings.CutPrefix(left, "scope:"); ok {
		return syntax.ByScopeRef(scope.New(scopeName), right)
	}
	fileName := strings.TrimSuffix(left, ".sublime-syntax")
	return syntax.FileRef(fileName, right)
}

// parseCaptures turns a YAML captures map (string group index ->
// scope name) into a deterministically ordered Capture slice.
func parseCaptures(raw map[string]any) []syntax.Capture {
	caps := make([]syntax.Capture, 0, len(raw))
	for k, v := range raw {
		idx, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		scopeStr, _ := v.(string)
		caps = append(caps, syntax.Capture{Group: idx, Scope: scope.New(scopeStr)})
	}
	sort.Slice(caps, func(i, j int) bool { return caps[i].Group < caps[j].Group })
	return caps
}

func hasCaptureGroup(caps []syntax.Capture, group int) bool {
	for _, c := range caps {
		if c.Group == group {
			return true
		}
	}
	return false
}
