package syntaxyaml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmylchreest/syngraph/pkg/scope"
	"github.com/jmylchreest/syngraph/pkg/syntax"
)

const sampleSyntax = `
name: Sample
file_extensions: [smp]
scope: source.sample
first_line_match: '^#!.*sample'
variables:
  ident: '[A-Za-z_][A-Za-z0-9_]*'
contexts:
  main:
    - match: '//.*$'
      scope: comment.line.sample
    - match: '"'
      push: string
    - match: '\bfn\b'
      push:
        - function-body
    - include: scope:source.other#helpers
  string:
    - match: '\\.'
      captures:
        '0': constant.character.escape.sample
    - match: '"'
      pop: true
  function-body:
    - match: '\{'
      push:
        - match: '[a-z]+'
          scope: variable.other.sample
    - match: '\}'
      pop: true
  prototype:
    - meta_include_prototype: false
`

func parseSample(t *testing.T) *syntax.SyntaxDefinition {
	t.Helper()
	def, err := Parse([]byte(sampleSyntax), true)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return def
}

func TestParseTopLevelFields(t *testing.T) {
	def := parseSample(t)
	if def.Name != "Sample" {
		t.Errorf("Name = %q; want Sample", def.Name)
	}
	if !def.Scope.Equal(scope.New("source.sample")) {
		t.Errorf("Scope = %q; want source.sample", def.Scope.String())
	}
	if len(def.FileExtensions) != 1 || def.FileExtensions[0] != "smp" {
		t.Errorf("FileExtensions = %v", def.FileExtensions)
	}
	if def.Variables["ident"] == "" {
		t.Error("expected a variable named ident")
	}
}

func TestParsePushAndPop(t *testing.T) {
	def := parseSample(t)
	main, ok := def.Contexts["main"]
	if !ok {
		t.Fatal("missing main context")
	}

	var pushToString bool
	for _, p := range main.Patterns {
		if p.Kind == syntax.PatternMatch && p.Operation.Kind == syntax.OpPush {
			for _, ref := range p.Operation.Refs {
				if ref.Kind == syntax.RefNamed && ref.Name == "string" {
					pushToString = true
				}
			}
		}
	}
	if !pushToString {
		t.Error("expected a push to the \"string\" context")
	}

	str, ok := def.Contexts["string"]
	if !ok {
		t.Fatal("missing string context")
	}
	var hasPop bool
	for _, p := range str.Patterns {
		if p.Operation.Kind == syntax.OpPop {
			hasPop = true
		}
	}
	if !hasPop {
		t.Error("expected a pop pattern in the string context")
	}
}

func TestParseInlineAnonymousContext(t *testing.T) {
	def := parseSample(t)
	body, ok := def.Contexts["function-body"]
	if !ok {
		t.Fatal("missing function-body context")
	}

	var inlineRef *syntax.ContextReference
	for i, p := range body.Patterns {
		if p.Operation.Kind == syntax.OpPush {
			ref := p.Operation.Refs[0]
			if ref.Kind == syntax.RefInline {
				inlineRef = &body.Patterns[i].Operation.Refs[0]
			}
		}
	}
	if inlineRef == nil {
		t.Fatal("expected an inline-context push in function-body")
	}
	if _, ok := def.Contexts[inlineRef.Name]; !ok {
		t.Errorf("inline context %q was not registered on the definition", inlineRef.Name)
	}
}

func TestParseIncludeByScope(t *testing.T) {
	def := parseSample(t)
	main := def.Contexts["main"]

	var found bool
	for _, p := range main.Patterns {
		if p.Kind == syntax.PatternInclude && p.Include.Kind == syntax.RefByScope {
			if p.Include.ScopeStr != "source.other" || p.Include.SubContext != "helpers" {
				t.Errorf("include = %+v", p.Include)
			}
			found = true
		}
	}
	if !found {
		t.Error("expected an Include(ByScope) pattern in main")
	}
}

func TestParseCaptures(t *testing.T) {
	def := parseSample(t)
	str := def.Contexts["string"]
	if len(str.Patterns) == 0 || len(str.Patterns[0].Captures) != 1 {
		t.Fatalf("expected one capture on the first string pattern, got %+v", str.Patterns)
	}
	if str.Patterns[0].Captures[0].Group != 0 {
		t.Errorf("capture group = %d; want 0", str.Patterns[0].Captures[0].Group)
	}
}

func TestParseWholeMatchScopeShorthand(t *testing.T) {
	def := parseSample(t)
	main := def.Contexts["main"]
	if len(main.Patterns) == 0 {
		t.Fatal("expected at least one pattern in main")
	}
	comment := main.Patterns[0]
	if len(comment.Captures) != 1 || comment.Captures[0].Group != 0 {
		t.Fatalf("expected a synthesized group-0 capture from \"scope:\", got %+v", comment.Captures)
	}
	if comment.Captures[0].Scope.String() != "comment.line.sample" {
		t.Errorf("capture scope = %q; want comment.line.sample", comment.Captures[0].Scope.String())
	}
}

func TestParseMetaIncludePrototypeFalse(t *testing.T) {
	def := parseSample(t)
	proto, ok := def.Contexts["prototype"]
	if !ok {
		t.Fatal("missing prototype context")
	}
	if proto.MetaIncludePrototype {
		t.Error("meta_include_prototype: false should clear MetaIncludePrototype")
	}
	if len(proto.Patterns) != 0 {
		t.Error("a meta_include_prototype entry should not become a Pattern")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Sample.sublime-syntax")
	if err := os.WriteFile(path, []byte(sampleSyntax), 0o644); err != nil {
		t.Fatal(err)
	}

	def, err := LoadFile(path, true)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if def.Name != "Sample" {
		t.Errorf("Name = %q; want Sample", def.Name)
	}
}

func TestParseRefVariants(t *testing.T) {
	tests := []struct {
		in       string
		wantKind syntax.RefKind
	}{
		{"plain_name", syntax.RefNamed},
		{"#local_name", syntax.RefNamed},
		{"scope:source.foo", syntax.RefByScope},
		{"scope:source.foo#helpers", syntax.RefByScope},
		{"Other.sublime-syntax#ctx", syntax.RefFile},
	}
	for _, tt := range tests {
		got := parseRef(tt.in)
		if got.Kind != tt.wantKind {
			t.Errorf("parseRef(%q).Kind = %v; want %v", tt.in, got.Kind, tt.wantKind)
		}
	}
}
