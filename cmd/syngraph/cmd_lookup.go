package main

import (
	"fmt"
	"os"

	"github.com/jmylchreest/syngraph/pkg/scope"
	"github.com/jmylchreest/syngraph/pkg/syntax"
)

// cmdLookupDispatcher routes "syngraph lookup <dump> <subcommand> <arg>".
func cmdLookupDispatcher(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: syngraph lookup <dump-file> <find-scope|find-ext|find-token|find-path|find-file> <value>")
	}
	dumpPath, subcmd, value := args[0], args[1], args[2]

	f, err := os.Open(dumpPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dumpPath, err)
	}
	defer f.Close()

	set, err := syntax.Load(f)
	if err != nil {
		return fmt.Errorf("loading %s: %w", dumpPath, err)
	}

	var (
		ref   *syntax.SyntaxReference
		found bool
	)

	switch subcmd {
	case "find-scope":
		ref, found = set.FindByScope(scope.New(value))
	case "find-ext":
		ref, found = set.FindByExtension(value)
	case "find-token":
		ref, found = set.FindByToken(value)
	case "find-path":
		ref, found = set.FindByPath(value)
	case "find-file":
		ref, err = set.FindForFile(value)
		if err != nil {
			return err
		}
		found = ref != nil
	default:
		return fmt.Errorf("unknown lookup subcommand: %s", subcmd)
	}

	if !found {
		fmt.Println("no match")
		return nil
	}

	fmt.Printf("%s\t%s\n", ref.Name, ref.Scope.String())
	return nil
}
