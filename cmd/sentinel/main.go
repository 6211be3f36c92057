// Command sentinel detects energy collisions in a personal schedule graph.
//
// Exit codes: 0 no collisions, 1 collisions found, 2 usage error,
// 3 runtime failure.
package main

import (
	"fmt"
	"os"
)

const (
	exitOK        = 0
	exitCollision = 1
	exitUsage     = 2
	exitFailure   = 3
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitUsage)
	}

	var code int
	switch os.Args[1] {
	case "check":
		code = runCheck(os.Args[2:])
	case "graph":
		code = runGraph(os.Args[2:])
	case "correct":
		code = runCorrect(os.Args[2:])
	case "ack":
		code = runAck(os.Args[2:])
	case "config":
		code = runConfig(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
		code = exitOK
	default:
		fmt.Fprintf(os.Stderr, "❌ Unknown command: %s\n\n", os.Args[1])
		printUsage()
		code = exitUsage
	}
	os.Exit(code)
}

func printUsage() {
	fmt.Print(`sentinel - energy collision detection for personal schedules

Usage:
  sentinel check [flags]     Detect energy collisions
  sentinel graph [flags]     Show the knowledge graph
  sentinel correct [flags]   Correct an AI-inferred node or edge
  sentinel ack <subcommand>  Manage collision acknowledgments
  sentinel config [flags]    Show or change configuration

Run 'sentinel <command> -h' for command flags.
`)
}

func fail(err error) int {
	fmt.Fprintf(os.Stderr, "❌ %v\n", err)
	return exitFailure
}
