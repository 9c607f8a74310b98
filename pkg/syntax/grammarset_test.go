package syntax

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmylchreest/syngraph/pkg/scope"
)

func buildTestSet(t *testing.T) *GrammarSet {
	t.Helper()
	b := NewGrammarSetBuilder()

	rust := NewSyntaxDefinition("Rust", scope.New("source.rust"))
	rust.FileExtensions = []string{"rs"}
	rust.AddContext("main", NewContext("main"))
	b.Add(rust)

	python := NewSyntaxDefinition("Python", scope.New("source.python"))
	python.FileExtensions = []string{"py", "pyw"}
	python.FirstLineMatch = `^#!.*\bpython[0-9.]*\b`
	python.AddContext("main", NewContext("main"))
	b.Add(python)

	b.AddPlainText()
	return b.Build()
}

func TestFindByScopeAndName(t *testing.T) {
	g := buildTestSet(t)

	if s, ok := g.FindByScope(scope.New("source.rust")); !ok || s.Name != "Rust" {
		t.Errorf("FindByScope(source.rust) = %v, %v", s, ok)
	}
	if _, ok := g.FindByScope(scope.New("source.nonexistent")); ok {
		t.Error("FindByScope should fail for an unregistered scope")
	}
	if s, ok := g.FindByName("Python"); !ok || !s.Scope.Equal(scope.New("source.python")) {
		t.Errorf("FindByName(Python) = %v, %v", s, ok)
	}
}

func TestFindByExtensionAndToken(t *testing.T) {
	g := buildTestSet(t)

	if s, ok := g.FindByExtension("py"); !ok || s.Name != "Python" {
		t.Errorf("FindByExtension(py) = %v, %v", s, ok)
	}
	if _, ok := g.FindByExtension("PY"); ok {
		t.Error("FindByExtension should be case-sensitive")
	}
	if s, ok := g.FindByToken("rs"); !ok || s.Name != "Rust" {
		t.Errorf("FindByToken(rs) should match by extension: %v, %v", s, ok)
	}
	if s, ok := g.FindByToken("RUST"); !ok || s.Name != "Rust" {
		t.Errorf("FindByToken(RUST) should fall back to case-insensitive name match: %v, %v", s, ok)
	}
}

func TestFindByFirstLine(t *testing.T) {
	g := buildTestSet(t)

	s, ok := g.FindByFirstLine("#!/usr/bin/env python3\n")
	if !ok || s.Name != "Python" {
		t.Errorf("FindByFirstLine(shebang) = %v, %v", s, ok)
	}
	if _, ok := g.FindByFirstLine("just some text"); ok {
		t.Error("FindByFirstLine should not match an unrelated line")
	}
}

func TestFindByPath(t *testing.T) {
	b := NewGrammarSetBuilder()
	def := NewSyntaxDefinition("Rust", scope.New("source.rust"))
	def.AddContext("main", NewContext("main"))
	b.Add(def)
	b.paths = append(b.paths, pathEntry{path: "src/rust/foo.rs", syntaxIndex: 0})
	g := b.Build()

	if _, ok := g.FindByPath("src/rust/foo.rs"); !ok {
		t.Error("exact path should match")
	}
	if _, ok := g.FindByPath("rust/foo.rs"); !ok {
		t.Error("suffix path with a \"/\" boundary should match")
	}
	if _, ok := g.FindByPath("ust/foo.rs"); ok {
		t.Error("a partial path component must not match as a suffix")
	}
}

func TestFindForFile(t *testing.T) {
	g := buildTestSet(t)

	dir := t.TempDir()
	rsPath := filepath.Join(dir, "main.rs")
	if err := os.WriteFile(rsPath, []byte("fn main() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := g.FindForFile(rsPath)
	if err != nil || s == nil || s.Name != "Rust" {
		t.Errorf("FindForFile(main.rs) = %v, %v", s, err)
	}

	shPath := filepath.Join(dir, "noext")
	if err := os.WriteFile(shPath, []byte("#!/usr/bin/env python3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err = g.FindForFile(shPath)
	if err != nil || s == nil || s.Name != "Python" {
		t.Errorf("FindForFile(shebang) = %v, %v", s, err)
	}
}

func TestFindForFileMissingPropagatesError(t *testing.T) {
	g := buildTestSet(t)
	_, err := g.FindForFile(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Error("expected an error for a missing file")
	}
	if _, ok := err.(*LoadFirstLineError); !ok {
		t.Errorf("err = %T; want *LoadFirstLineError", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := buildTestSet(t)
	clone := g.Clone()

	rust, _ := clone.FindByName("Rust")
	rust.FileExtensions[0] = "mutated"

	origRust, _ := g.FindByName("Rust")
	if origRust.FileExtensions[0] == "mutated" {
		t.Error("Clone should deep-copy SyntaxReferences, not alias them")
	}
}
