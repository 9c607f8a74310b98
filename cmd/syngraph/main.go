// Package main provides the syngraph CLI: build a grammar set from a
// folder of .sublime-syntax files and dump it, or look syntaxes up in
// an existing dump.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	if err := runCommand(cmd, args); err != nil {
		fatal("%v", err)
	}
}

func runCommand(cmd string, args []string) error {
	switch cmd {
	case "build":
		return cmdBuild(args)
	case "lookup":
		return cmdLookupDispatcher(args)
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func printUsage() {
	fmt.Print(`syngraph - grammar set builder and lookup tool

Usage:
  syngraph <command> [arguments]

Commands:
  build    Load .sublime-syntax files from a folder and write a grammar dump
  lookup   Query syntaxes in an existing grammar dump
  help     Show this message

Examples:
  syngraph build ./grammars grammars.gob
  syngraph lookup grammars.gob find-scope source.rust
  syngraph lookup grammars.gob find-ext rs
  syngraph lookup grammars.gob find-token rust
  syngraph lookup grammars.gob find-path src/main.rs
  syngraph lookup grammars.gob find-file ./src/main.rs
`)
}

// fatal prints an error message and exits with code 1.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// hasFlag checks if a flag is present in args.
func hasFlag(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}
	return false
}
