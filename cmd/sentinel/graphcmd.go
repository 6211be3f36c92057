package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dd0wney/sentinel/pkg/graph"
	"github.com/dd0wney/sentinel/pkg/logging"
	"github.com/dd0wney/sentinel/pkg/matching"
	"github.com/dd0wney/sentinel/pkg/store"
	"github.com/dd0wney/sentinel/pkg/viz"
)

func runGraph(args []string) int {
	fs := flag.NewFlagSet("graph", flag.ExitOnError)
	focus := fs.String("focus", "", "Show only the neighborhood of this node (fuzzy label match)")
	depth := fs.Int("depth", 1, "Neighborhood depth around the focus node")
	fs.Parse(args)

	log := logging.DefaultLogger().With(logging.Component("graph"))

	graphStore, err := store.NewGraphStore(store.WithGraphLogger(log))
	if err != nil {
		return fail(err)
	}
	g, err := graphStore.Load()
	if err != nil {
		return fail(err)
	}

	if *focus != "" {
		focused, code := focusGraph(g, *focus, *depth)
		if focused == nil {
			return code
		}
		g = focused
	}

	fmt.Print(viz.RenderGraph(g))
	return exitOK
}

func focusGraph(g *graph.Graph, query string, depth int) (*graph.Graph, int) {
	matchOpts := matching.DefaultOptions()
	matchOpts.AIInferredOnly = false
	result := matching.FuzzyFindNode(g, query, matchOpts)

	if result.Match == nil {
		if len(result.Candidates) > 1 {
			fmt.Fprintf(os.Stderr, "❌ %q is ambiguous.\n%s\n",
				query, matching.FormatSuggestions(result.Suggestions, 5))
			return nil, exitUsage
		}
		fmt.Fprintf(os.Stderr, "❌ No node matches %q.\n%s\n",
			query, matching.FormatSuggestions(result.Suggestions, 5))
		return nil, exitUsage
	}

	focused, err := graph.ExtractNeighborhood(g, result.Match.ID, depth)
	if err != nil {
		fail(err)
		return nil, exitFailure
	}
	return focused, exitOK
}
