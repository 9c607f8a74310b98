package syntax

import (
	"io/fs"
	"path/filepath"
)

// grammarFileSuffix is the extension LoadFromFolder looks for.
const grammarFileSuffix = ".sublime-syntax"

// DefinitionLoader turns the raw bytes of a grammar source file into
// a SyntaxDefinition. LoadFromFolder takes one as a parameter instead
// of depending on a concrete YAML loader directly, which would create
// an import cycle between this package and whatever parses grammar
// source text; pkg/syntaxyaml is one concrete implementation.
type DefinitionLoader func(path string, linesIncludeNewline bool) (*SyntaxDefinition, error)

// LoadFromFolder walks root recursively and depth-first, loading every
// file named with the ".sublime-syntax" suffix via load. Directory
// entries are visited in byte-lexicographic order of file name, which
// fixes insertion order and therefore the deterministic linking order
// Build depends on (filepath.WalkDir already sorts each directory's
// entries this way). For each loaded file, the file's forward-slash
// normalized path is recorded alongside the index it will occupy in
// the eventual GrammarSet, for later FindByPath lookups.
func (b *GrammarSetBuilder) LoadFromFolder(root string, linesIncludeNewline bool, load DefinitionLoader) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &WalkError{Path: path, Err: err}
		}
		if d.IsDir() || filepath.Ext(path) != grammarFileSuffix {
			return nil
		}

		def, loadErr := load(path, linesIncludeNewline)
		if loadErr != nil {
			return &WalkError{Path: path, Err: loadErr}
		}

		b.Add(def)
		b.paths = append(b.paths, pathEntry{
			path:        filepath.ToSlash(path),
			syntaxIndex: len(b.syntaxes) - 1,
		})
		b.logf("loaded grammar %q from %s", def.Name, path)
		return nil
	})
}
