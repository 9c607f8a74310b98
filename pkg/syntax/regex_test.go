package syntax

import "testing"

func TestCompileRegexAndFindsIn(t *testing.T) {
	re, err := CompileRegex(`^#!.*\bpython\b`)
	if err != nil {
		t.Fatalf("CompileRegex: %v", err)
	}
	if re.Source() != `^#!.*\bpython\b` {
		t.Errorf("Source() = %q", re.Source())
	}
	if !re.FindsIn("#!/usr/bin/env python\n") {
		t.Error("expected a match")
	}
	if re.FindsIn("not a shebang") {
		t.Error("expected no match")
	}
}

func TestCompileRegexRejectsInvalidSyntax(t *testing.T) {
	if _, err := CompileRegex("(unterminated"); err == nil {
		t.Error("expected an error compiling an invalid pattern")
	}
}

func TestRegexGobRoundTrip(t *testing.T) {
	re, err := CompileRegex(`^foo\d+$`)
	if err != nil {
		t.Fatal(err)
	}
	data, err := re.GobEncode()
	if err != nil {
		t.Fatalf("GobEncode: %v", err)
	}

	var out Regex
	if err := out.GobDecode(data); err != nil {
		t.Fatalf("GobDecode: %v", err)
	}
	if out.Source() != re.Source() {
		t.Errorf("Source() after round trip = %q; want %q", out.Source(), re.Source())
	}
	if !out.FindsIn("foo123") {
		t.Error("recompiled regex should still match")
	}
}

func TestRegexGobDecodeToleratesBadSource(t *testing.T) {
	var out Regex
	if err := out.GobDecode([]byte("(unterminated")); err != nil {
		t.Fatalf("GobDecode should not error on a source that fails to recompile: %v", err)
	}
	if out.FindsIn("anything") {
		t.Error("a regex that failed to recompile should never report a match")
	}
}

func TestFindsInNilRegexIsSafe(t *testing.T) {
	var r *Regex
	if r.FindsIn("anything") {
		t.Error("a nil *Regex should never report a match")
	}
}
