package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dd0wney/sentinel/pkg/config"
)

func runConfig(args []string) int {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	show := fs.Bool("show", false, "Print the active configuration")
	path := fs.Bool("path", false, "Print the config file location")
	set := fs.String("set", "", "Set a key, e.g. -set energy_threshold=high")
	fs.Parse(args)

	if *path {
		p, err := config.Path()
		if err != nil {
			return fail(err)
		}
		fmt.Println(p)
		return exitOK
	}

	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}

	if *set != "" {
		key, value, ok := splitKeyValue(*set)
		if !ok {
			fmt.Fprintln(os.Stderr, "❌ -set expects key=value")
			return exitUsage
		}
		if err := applySetting(&cfg, key, value); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			return exitUsage
		}
		if err := config.Save(cfg); err != nil {
			return fail(err)
		}
		fmt.Printf("✅ Set %s = %s\n", key, value)
		return exitOK
	}

	if *show || *set == "" {
		printConfig(cfg)
	}
	return exitOK
}

func splitKeyValue(s string) (key, value string, ok bool) {
	key, value, found := strings.Cut(s, "=")
	return key, value, found && key != "" && value != ""
}

func applySetting(cfg *config.Config, key, value string) error {
	switch key {
	case "energy_threshold":
		cfg.EnergyThreshold = config.EnergyThreshold(value)
	case "max_depth":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max_depth must be an integer: %w", err)
		}
		cfg.MaxDepth = n
	case "hop_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("hop_timeout must be a duration like 5s: %w", err)
		}
		cfg.HopTimeout = d
	case "similarity.threshold":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("similarity.threshold must be an integer: %w", err)
		}
		cfg.Similarity.Threshold = n
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return cfg.Validate()
}

func printConfig(cfg config.Config) {
	fmt.Printf("energy_threshold:     %s (confidence >= %.1f)\n",
		cfg.EnergyThreshold, cfg.ConfidenceThreshold())
	fmt.Printf("max_depth:            %d\n", cfg.MaxDepth)
	fmt.Printf("hop_timeout:          %s\n", cfg.HopTimeout)
	fmt.Printf("similarity.threshold: %d\n", cfg.Similarity.Threshold)
	fmt.Printf("similarity.boost:     +%d above %d\n",
		cfg.Similarity.KeywordBoost, cfg.Similarity.BoostGate)
}
