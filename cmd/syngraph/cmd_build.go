package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jmylchreest/syngraph/pkg/syntax"
	"github.com/jmylchreest/syngraph/pkg/syntaxyaml"
)

// cmdBuild loads every .sublime-syntax file under a folder, links them
// into a GrammarSet, and writes the result as a gob dump.
//
//	syngraph build [--no-plaintext] [--verbose] <src-dir> <out-file>
func cmdBuild(args []string) error {
	noPlainText := hasFlag(args, "--no-plaintext")
	verbose := hasFlag(args, "--verbose")

	var positional []string
	for _, a := range args {
		if strings.HasPrefix(a, "--") {
			continue
		}
		positional = append(positional, a)
	}
	if len(positional) != 2 {
		return fmt.Errorf("usage: syngraph build [--no-plaintext] [--verbose] <src-dir> <out-file>")
	}
	srcDir, outFile := positional[0], positional[1]

	var opts []syntax.BuilderOption
	opts = append(opts, syntax.WithPlainText(!noPlainText))
	if verbose {
		opts = append(opts, syntax.WithLogger(log.New(os.Stderr, "[syngraph] ", 0)))
	}

	b := syntax.NewGrammarSetBuilder(opts...)
	if err := b.LoadFromFolder(srcDir, true, syntaxyaml.LoadFile); err != nil {
		return fmt.Errorf("loading grammars from %s: %w", srcDir, err)
	}

	set := b.Build()

	f, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outFile, err)
	}
	defer f.Close()

	if err := syntax.Dump(f, set); err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}

	fmt.Printf("built %d syntaxes (%d contexts) into %s\n", len(set.Syntaxes()), countContexts(set), outFile)
	return nil
}

// countContexts walks the set's flat context table via GetContext since
// GrammarSet deliberately doesn't expose the table's length directly.
func countContexts(set *syntax.GrammarSet) int {
	n := 0
	for id := syntax.ContextID(0); ; id++ {
		if _, ok := set.GetContext(id); !ok {
			break
		}
		n++
	}
	return n
}
