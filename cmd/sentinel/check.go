package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dd0wney/sentinel/pkg/config"
	"github.com/dd0wney/sentinel/pkg/consolidate"
	"github.com/dd0wney/sentinel/pkg/graph"
	"github.com/dd0wney/sentinel/pkg/ingest"
	"github.com/dd0wney/sentinel/pkg/logging"
	"github.com/dd0wney/sentinel/pkg/matching"
	"github.com/dd0wney/sentinel/pkg/metrics"
	"github.com/dd0wney/sentinel/pkg/rules"
	"github.com/dd0wney/sentinel/pkg/store"
	"github.com/dd0wney/sentinel/pkg/viz"
)

func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	inputPath := fs.String("input", "", "Extraction payload (JSON) to ingest before checking")
	textPath := fs.String("text", "", "Original note text used to tag user-stated entities")
	save := fs.Bool("save", false, "Persist the ingested graph")
	async := fs.Bool("async", false, "Use the cancellable traversal with hop deadlines")
	noProgress := fs.Bool("no-progress", false, "Disable the progress display")
	jsonOut := fs.Bool("json", false, "Emit collisions as JSON")
	threshold := fs.String("threshold", "", "Override energy threshold: low, medium or high")
	showAll := fs.Bool("all", false, "Include acknowledged collisions")
	fs.Parse(args)

	log := logging.DefaultLogger().With(logging.Component("check"))
	reg := metrics.DefaultRegistry()

	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}
	if *threshold != "" {
		cfg.EnergyThreshold = config.EnergyThreshold(*threshold)
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			return exitUsage
		}
	}

	g, err := loadOrIngest(*inputPath, *textPath, *save, log, reg)
	if err != nil {
		return fail(err)
	}
	reg.SetGraphSize(len(g.Nodes), len(g.Edges))

	consolidateOpts := consolidate.DefaultOptions()
	consolidateOpts.Threshold = cfg.Similarity.Threshold
	consolidateOpts.KeywordBoost = cfg.Similarity.KeywordBoost
	consolidateOpts.BoostGate = cfg.Similarity.BoostGate
	if len(cfg.Keywords.Energy) > 0 {
		consolidateOpts.EnergyKeywords = cfg.Keywords.Energy
	}

	before := len(g.Nodes)
	start := time.Now()
	timer := logging.StartTimer(log, "consolidation finished", logging.NodeCount(before))
	g = consolidate.Consolidate(g, consolidateOpts)
	timer.End(logging.MergedCount(before - len(g.Nodes)))
	reg.RecordConsolidation(before-len(g.Nodes), time.Since(start))

	timer = logging.StartTimer(log, "detection finished")
	collisions, timedOut, err := detect(g, cfg, *async, *noProgress || *jsonOut, log, reg)
	if err != nil {
		return fail(err)
	}
	timer.End(logging.CollisionCount(len(collisions)))

	collisions = rules.FilterByConfidence(collisions, cfg.ConfidenceThreshold())

	if !*showAll {
		ackStore, err := store.NewAckStore(log)
		if err != nil {
			return fail(err)
		}
		ackStart := time.Now()
		acked, err := ackStore.AcknowledgedKeys()
		reg.RecordStoreOperation("acks", "load", err, time.Since(ackStart))
		if err != nil {
			return fail(err)
		}
		collisions = matching.FilterAcknowledged(collisions, acked)
	}

	confidences := make([]float64, 0, len(collisions))
	for _, c := range collisions {
		confidences = append(confidences, c.Confidence)
	}
	reg.RecordDetection(len(collisions), confidences)

	if *jsonOut {
		out := struct {
			Collisions []graph.ScoredCollision `json:"collisions"`
			TimedOut   bool                    `json:"timed_out"`
		}{Collisions: collisions, TimedOut: timedOut}
		if err := json.NewEncoder(os.Stdout).Encode(out); err != nil {
			return fail(err)
		}
	} else {
		if timedOut {
			fmt.Println("⚠️  Traversal hit its hop deadline; results may be partial.")
		}
		fmt.Print(viz.RenderCollisions(collisions))
	}

	if len(collisions) > 0 {
		return exitCollision
	}
	return exitOK
}

// loadOrIngest reads the stored graph, or ingests a fresh payload when
// -input is given.
func loadOrIngest(inputPath, textPath string, save bool, log logging.Logger, reg *metrics.Registry) (*graph.Graph, error) {
	graphStore, err := store.NewGraphStore(store.WithGraphLogger(log))
	if err != nil {
		return nil, err
	}

	if inputPath == "" {
		loadStart := time.Now()
		g, err := graphStore.Load()
		reg.RecordStoreOperation("graph", "load", err, time.Since(loadStart))
		if err != nil {
			return nil, err
		}
		if len(g.Nodes) == 0 {
			return nil, fmt.Errorf("no stored graph; ingest one with -input")
		}
		return g, nil
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	var raw ingest.RawGraph
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing payload: %w", err)
	}

	sourceText := ""
	if textPath != "" {
		text, err := os.ReadFile(textPath)
		if err != nil {
			return nil, fmt.Errorf("reading source text: %w", err)
		}
		sourceText = string(text)
	}

	ingestOpts := ingest.DefaultOptions()
	ingestOpts.Logger = log
	g, err := ingest.Normalize(raw, sourceText, ingestOpts)
	if err != nil {
		return nil, err
	}

	if save {
		saveStart := time.Now()
		err := graphStore.Save(g)
		reg.RecordStoreOperation("graph", "save", err, time.Since(saveStart))
		if err != nil {
			return nil, err
		}
		fmt.Printf("💾 Graph saved to %s\n", graphStore.Path())
	}
	return g, nil
}

func detect(g *graph.Graph, cfg config.Config, async, quiet bool, log logging.Logger, reg *metrics.Registry) ([]graph.ScoredCollision, bool, error) {
	detectOpts := rules.DefaultDetectOptions()
	detectOpts.Find.MaxDepth = cfg.MaxDepth
	applyKeywordOverrides(&detectOpts.Score.Keywords, cfg.Keywords)

	if !async {
		start := time.Now()
		collisions, err := rules.DetectCollisions(g, detectOpts)
		if err == nil {
			reg.RecordTraversal("sync", false, time.Since(start), 0)
		}
		return collisions, false, err
	}

	traversalOpts := rules.DefaultTraversalOptions()
	traversalOpts.MaxDepth = cfg.MaxDepth
	traversalOpts.HopTimeout = cfg.HopTimeout
	traversalOpts.Logger = log

	start := time.Now()
	result, err := runTraversal(context.Background(), g, traversalOpts, quiet)
	if err != nil {
		return nil, false, err
	}
	reg.RecordTraversal("async", result.TimedOut, time.Since(start), result.RelationshipsAnalyzed)

	var collisions []graph.ScoredCollision
	for _, p := range result.Paths {
		if !rules.IsValidCollision(p, g) {
			continue
		}
		collisions = append(collisions, rules.ScoreCollisionWithDomains(p, g, detectOpts.Score))
	}
	collisions = rules.DeduplicateCollisions(collisions)
	sortByConfidence(collisions)
	return collisions, result.TimedOut, nil
}

func applyKeywordOverrides(kw *rules.Keywords, overrides config.KeywordConfig) {
	if len(overrides.Social) > 0 {
		kw.Social = overrides.Social
	}
	if len(overrides.Professional) > 0 {
		kw.Professional = overrides.Professional
	}
	if len(overrides.Health) > 0 {
		kw.Health = overrides.Health
	}
}

func sortByConfidence(collisions []graph.ScoredCollision) {
	sort.SliceStable(collisions, func(i, j int) bool {
		return collisions[i].Confidence > collisions[j].Confidence
	})
}
