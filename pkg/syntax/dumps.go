// Serialization hooks. GrammarSet is persisted as a structured binary
// blob: only the durable fields (syntaxes, contexts, path table) are
// emitted, map fields are flattened to key-sorted slices first so two
// builds of the same input produce byte-identical output, and the
// first-line cache is always omitted (it is rebuilt lazily on first
// use after decoding, exactly as after a fresh Build).
//
// An optional compression layer is deliberately left to the caller:
// Dump and Load work directly against the gob stream, and a caller
// that wants compression wraps the io.Writer/io.Reader itself, e.g.
// with compress/flate.
package syntax

import (
	"bytes"
	"encoding/gob"
	"io"
	"sort"

	"github.com/jmylchreest/syngraph/pkg/scope"
)

// Dump encodes g as a gob stream.
func Dump(w io.Writer, g *GrammarSet) error {
	return gob.NewEncoder(w).Encode(g)
}

// Load decodes a GrammarSet previously written by Dump. The returned
// set's first-line cache starts empty.
func Load(r io.Reader) (*GrammarSet, error) {
	var g GrammarSet
	if err := gob.NewDecoder(r).Decode(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

// pathRecord is the exported shadow of pathEntry used for encoding.
type pathRecord struct {
	Path        string
	SyntaxIndex int
}

// grammarSetShape is GrammarSet's durable, gob-friendly shadow.
type grammarSetShape struct {
	Syntaxes []*SyntaxReference
	Contexts []Context
	Paths    []pathRecord
}

// GobEncode implements gob.GobEncoder, emitting only the durable
// fields of g.
func (g GrammarSet) GobEncode() ([]byte, error) {
	shape := grammarSetShape{
		Syntaxes: g.syntaxes,
		Contexts: g.contexts,
		Paths:    make([]pathRecord, len(g.pathSyntaxes)),
	}
	for i, p := range g.pathSyntaxes {
		shape.Paths[i] = pathRecord{Path: p.path, SyntaxIndex: p.syntaxIndex}
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(shape); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder. The decoded set's first-line
// cache starts empty, matching a fresh Build.
func (g *GrammarSet) GobDecode(data []byte) error {
	var shape grammarSetShape
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&shape); err != nil {
		return err
	}
	g.syntaxes = shape.Syntaxes
	g.contexts = shape.Contexts
	g.pathSyntaxes = make([]pathEntry, len(shape.Paths))
	for i, p := range shape.Paths {
		g.pathSyntaxes[i] = pathEntry{path: p.Path, syntaxIndex: p.SyntaxIndex}
	}
	g.flCache = FirstLineCache{}
	return nil
}

// stringKV and contextKV are sorted-key flattenings of the
// semantically-unordered map fields on SyntaxReference, so two builds
// of the same input serialize to the same bytes: gob's native map
// encoding iterates in Go's randomized map order, which would make
// Dump output non-reproducible run to run.
type stringKV struct {
	Key, Value string
}

type contextKV struct {
	Key   string
	Value ContextID
}

type syntaxReferenceShape struct {
	Name           string
	FileExtensions []string
	Scope          scope.Scope
	FirstLineMatch string
	Hidden         bool
	Variables      []stringKV
	Contexts       []contextKV
}

// GobEncode implements gob.GobEncoder.
func (s SyntaxReference) GobEncode() ([]byte, error) {
	vars := make([]stringKV, 0, len(s.Variables))
	for k, v := range s.Variables {
		vars = append(vars, stringKV{k, v})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Key < vars[j].Key })

	ctxs := make([]contextKV, 0, len(s.Contexts))
	for k, v := range s.Contexts {
		ctxs = append(ctxs, contextKV{k, v})
	}
	sort.Slice(ctxs, func(i, j int) bool { return ctxs[i].Key < ctxs[j].Key })

	shape := syntaxReferenceShape{
		Name:           s.Name,
		FileExtensions: s.FileExtensions,
		Scope:          s.Scope,
		FirstLineMatch: s.FirstLineMatch,
		Hidden:         s.Hidden,
		Variables:      vars,
		Contexts:       ctxs,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(shape); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (s *SyntaxReference) GobDecode(data []byte) error {
	var shape syntaxReferenceShape
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&shape); err != nil {
		return err
	}
	s.Name = shape.Name
	s.FileExtensions = shape.FileExtensions
	s.Scope = shape.Scope
	s.FirstLineMatch = shape.FirstLineMatch
	s.Hidden = shape.Hidden

	s.Variables = make(map[string]string, len(shape.Variables))
	for _, kv := range shape.Variables {
		s.Variables[kv.Key] = kv.Value
	}
	s.Contexts = make(map[string]ContextID, len(shape.Contexts))
	for _, kv := range shape.Contexts {
		s.Contexts[kv.Key] = kv.Value
	}
	return nil
}
