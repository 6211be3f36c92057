package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dd0wney/sentinel/pkg/config"
	"github.com/dd0wney/sentinel/pkg/consolidate"
	"github.com/dd0wney/sentinel/pkg/graph"
	"github.com/dd0wney/sentinel/pkg/logging"
	"github.com/dd0wney/sentinel/pkg/matching"
	"github.com/dd0wney/sentinel/pkg/rules"
	"github.com/dd0wney/sentinel/pkg/store"
)

func runAck(args []string) int {
	if len(args) < 1 {
		printAckUsage()
		return exitUsage
	}

	log := logging.DefaultLogger().With(logging.Component("ack"))
	ackStore, err := store.NewAckStore(log)
	if err != nil {
		return fail(err)
	}

	switch args[0] {
	case "add":
		return runAckAdd(args[1:], ackStore, log)
	case "remove":
		return runAckRemove(args[1:], ackStore)
	case "list":
		return runAckList(ackStore)
	default:
		fmt.Fprintf(os.Stderr, "❌ Unknown ack subcommand: %s\n", args[0])
		printAckUsage()
		return exitUsage
	}
}

func printAckUsage() {
	fmt.Fprint(os.Stderr, `Usage:
  sentinel ack add <collision label>   Silence a collision
  sentinel ack remove <collision key>  Re-enable a collision
  sentinel ack list                    Show acknowledged collisions
`)
}

func runAckAdd(args []string, ackStore *store.AckStore, log logging.Logger) int {
	fs := flag.NewFlagSet("ack add", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "❌ ack add requires a collision label")
		return exitUsage
	}
	query := strings.Join(fs.Args(), " ")

	collisions, code := currentCollisions(log)
	if collisions == nil {
		return code
	}
	if len(collisions) == 0 {
		fmt.Println("No collisions to acknowledge.")
		return exitOK
	}

	match := matching.FindCollisionByLabel(query, collisions, matching.DefaultOptions().Threshold)
	if match == nil {
		fmt.Fprintf(os.Stderr, "❌ No collision matches %q.\n", query)
		for _, c := range collisions {
			fmt.Fprintf(os.Stderr, "  - %s\n", matching.GenerateCollisionKey(c))
		}
		return exitUsage
	}

	key := matching.GenerateCollisionKey(*match)
	err := ackStore.Add(graph.Acknowledgment{
		CollisionKey: key,
		NodeLabel:    graph.StripDomainPrefix(match.Path[0]),
		Path:         match.Path,
		Timestamp:    time.Now().UTC(),
	})
	if err != nil {
		return fail(err)
	}

	fmt.Printf("✅ Acknowledged %q; it will stay silent until removed.\n", key)
	return exitOK
}

func runAckRemove(args []string, ackStore *store.AckStore) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "❌ ack remove requires a collision key")
		return exitUsage
	}
	key := args[0]

	removed, err := ackStore.Remove(key)
	if err != nil {
		return fail(err)
	}
	if !removed {
		fmt.Fprintf(os.Stderr, "❌ No acknowledgment with key %q.\n", key)
		return exitUsage
	}
	fmt.Printf("✅ Removed acknowledgment %q.\n", key)
	return exitOK
}

func runAckList(ackStore *store.AckStore) int {
	acks, err := ackStore.All()
	if err != nil {
		return fail(err)
	}
	if len(acks) == 0 {
		fmt.Println("No acknowledged collisions.")
		return exitOK
	}

	fmt.Printf("%d acknowledged collision(s):\n", len(acks))
	for _, a := range acks {
		fmt.Printf("  %s  (%s)\n", a.CollisionKey, a.Timestamp.Format(time.RFC3339))
		if len(a.Path) > 0 {
			fmt.Printf("    %s\n", strings.Join(a.Path, " -> "))
		}
	}
	return exitOK
}

// currentCollisions re-runs detection on the stored graph so ack targets
// are always resolved against what the user last saw.
func currentCollisions(log logging.Logger) ([]graph.ScoredCollision, int) {
	cfg, err := config.Load()
	if err != nil {
		fail(err)
		return nil, exitFailure
	}

	graphStore, err := store.NewGraphStore(store.WithGraphLogger(log))
	if err != nil {
		fail(err)
		return nil, exitFailure
	}
	g, err := graphStore.Load()
	if err != nil {
		fail(err)
		return nil, exitFailure
	}

	g = consolidate.Consolidate(g, consolidate.DefaultOptions())

	detectOpts := rules.DefaultDetectOptions()
	detectOpts.Find.MaxDepth = cfg.MaxDepth
	collisions, err := rules.DetectCollisions(g, detectOpts)
	if err != nil {
		fail(err)
		return nil, exitFailure
	}
	return rules.FilterByConfidence(collisions, cfg.ConfidenceThreshold()), exitOK
}
