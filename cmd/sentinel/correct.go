package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dd0wney/sentinel/pkg/graph"
	"github.com/dd0wney/sentinel/pkg/logging"
	"github.com/dd0wney/sentinel/pkg/matching"
	"github.com/dd0wney/sentinel/pkg/metrics"
	"github.com/dd0wney/sentinel/pkg/store"
	"github.com/dd0wney/sentinel/pkg/viz"
)

func runCorrect(args []string) int {
	fs := flag.NewFlagSet("correct", flag.ExitOnError)
	nodeQuery := fs.String("node", "", "Node to correct (fuzzy label match, AI-inferred only)")
	action := fs.String("action", "", "Correction: delete, modify, modify_relationship or remove_edge")
	newValue := fs.String("value", "", "New label for modify")
	targetQuery := fs.String("target", "", "Edge target node for relationship corrections")
	relationship := fs.String("rel", "", "Edge relationship for relationship corrections")
	fs.Parse(args)

	if *nodeQuery == "" || *action == "" {
		fmt.Fprintln(os.Stderr, "❌ correct requires -node and -action")
		fs.Usage()
		return exitUsage
	}

	log := logging.DefaultLogger().With(logging.Component("correct"))
	reg := metrics.DefaultRegistry()

	graphStore, err := store.NewGraphStore(store.WithGraphLogger(log))
	if err != nil {
		return fail(err)
	}
	loadStart := time.Now()
	g, err := graphStore.Load()
	reg.RecordStoreOperation("graph", "load", err, time.Since(loadStart))
	if err != nil {
		return fail(err)
	}

	node, code := resolveNode(g, *nodeQuery, "node")
	if node == nil {
		return code
	}

	correction := graph.Correction{
		NodeID:           node.ID,
		Action:           graph.Action(*action),
		NewValue:         *newValue,
		EdgeRelationship: *relationship,
	}
	if *targetQuery != "" {
		target, code := resolveNode(g, *targetQuery, "target")
		if target == nil {
			return code
		}
		correction.TargetNodeID = target.ID
	}

	corrected, err := graph.ApplyCorrection(g, correction)
	if err != nil {
		if graph.IsPolicyViolation(err) || graph.IsNotFound(err) {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			return exitUsage
		}
		return fail(err)
	}

	saveStart := time.Now()
	err = graphStore.Save(corrected)
	reg.RecordStoreOperation("graph", "save", err, time.Since(saveStart))
	if err != nil {
		return fail(err)
	}
	correctionStore, err := store.NewCorrectionStore(log)
	if err != nil {
		return fail(err)
	}
	if err := correctionStore.Append(correction); err != nil {
		return fail(err)
	}

	fmt.Printf("✅ Applied %s to %s\n", correction.Action, viz.FormatNode(*node))
	return exitOK
}

// resolveNode finds one AI-inferred node by fuzzy label, printing
// suggestions or candidates when resolution fails.
func resolveNode(g *graph.Graph, query, role string) (*graph.Node, int) {
	result := matching.FuzzyFindNode(g, query, matching.DefaultOptions())
	if result.Match != nil {
		if !result.IsExact {
			fmt.Printf("🔎 Matched %s to %q (score %d)\n", role, result.Match.Label, result.Score)
		}
		return result.Match, exitOK
	}

	if len(result.Candidates) > 1 {
		fmt.Fprintf(os.Stderr, "❌ %q is ambiguous for %s.\n%s\n",
			query, role, matching.FormatSuggestions(result.Suggestions, 5))
		return nil, exitUsage
	}
	fmt.Fprintf(os.Stderr, "❌ No AI-inferred node matches %q.\n%s\n",
		query, matching.FormatSuggestions(result.Suggestions, 5))
	return nil, exitUsage
}
