/*
Package main implements the crustyfuzz similarity server and CLI.

crustyfuzz computes approximate-string-similarity scores between text
pairs and performs bulk best-match search over candidate lists. It can
operate as a msgpack IPC server for integration with editors and other
tools, or as a one-shot CLI for scripting and debugging.

# Usage

Score a single pair:

	crustyfuzz -s1 "kitten" -s2 "sitting" -scorer ratio

Extract the best matches for a query from a candidate file (one
candidate per line):

	crustyfuzz -q "apple" -f choices.txt -limit 5 -cutoff 60

Run the msgpack IPC server on stdin/stdout:

	crustyfuzz -serve

# Configuration

Runtime defaults live in a TOML file:

	[match]
	default_scorer = "wratio"
	score_cutoff = 0.0
	workers = 0

	[server]
	max_choices = 100000
	max_limit = 1000

	[cli]
	default_limit = 10
	processor = "default"

The config file is created with defaults if it doesn't exist.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/ljnsn/crustyfuzz/pkg/config"
	"github.com/ljnsn/crustyfuzz/pkg/dictionary"
	"github.com/ljnsn/crustyfuzz/pkg/extract"
	"github.com/ljnsn/crustyfuzz/pkg/sequence"
	"github.com/ljnsn/crustyfuzz/pkg/server"
)

const (
	Version = "0.2.0"
	AppName = "crustyfuzz"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires flags, config and mode selection; the logic lives in the
// packages.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	serveMode := flag.Bool("serve", false, "Run the msgpack IPC server on stdin/stdout")
	configPath := flag.String("config", "", "Path to config.toml")
	s1 := flag.String("s1", "", "First string for pairwise scoring")
	s2 := flag.String("s2", "", "Second string for pairwise scoring")
	query := flag.String("q", "", "Query for batch extraction")
	choicesFile := flag.String("f", "", "File with one candidate per line")
	scorerName := flag.String("scorer", defaults.Match.DefaultScorer, "Scorer: ratio, partial_ratio, token_sort_ratio, token_set_ratio, token_ratio, wratio")
	limit := flag.Int("limit", defaults.CLI.DefaultLimit, "Number of matches to return (0 for all)")
	cutoff := flag.Float64("cutoff", 0, "Minimum acceptable score (0-100)")
	workers := flag.Int("workers", 0, "Worker count for extraction (0 picks CPU count)")

	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", AppName, Version)
		return
	}
	if *debugMode {
		log.SetLevel(log.DebugLevel)
	}

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Warnf("Config load failed: %v. Using defaults.", err)
		cfg = config.DefaultConfig()
	}
	if activePath != "" {
		log.Debugf("Active config: %s", activePath)
	}

	switch {
	case *serveMode:
		srv := server.NewServer(cfg)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case *query != "" && *choicesFile != "":
		runExtract(cfg, *query, *choicesFile, *scorerName, *limit, *cutoff, *workers)
	case *s1 != "" || *s2 != "":
		runMatch(*s1, *s2, *scorerName, *cutoff)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runMatch(s1, s2, scorerName string, cutoff float64) {
	scorer, ok := extract.Scorers[scorerName]
	if !ok {
		log.Fatalf("Unknown scorer: %s", scorerName)
	}
	score, err := scorer(sequence.Default(s1), sequence.Default(s2), cutoff)
	if err != nil {
		log.Fatalf("Scoring failed: %v", err)
	}
	fmt.Printf("%.2f\n", score)
}

func runExtract(cfg *config.Config, query, choicesFile, scorerName string, limit int, cutoff float64, workers int) {
	scorer, ok := extract.Scorers[scorerName]
	if !ok {
		log.Fatalf("Unknown scorer: %s", scorerName)
	}
	choices, err := dictionary.LoadChoices(choicesFile)
	if err != nil {
		log.Fatalf("Loading choices: %v", err)
	}

	opts := []extract.Option{
		extract.WithScorer(scorer),
		extract.WithProcessor(sequence.Default),
		extract.WithLimit(limit),
	}
	if cutoff > 0 {
		opts = append(opts, extract.WithScoreCutoff(cutoff))
	}
	if workers == 0 {
		workers = cfg.Match.Workers
	}
	if workers > 0 {
		opts = append(opts, extract.WithWorkers(workers))
	}

	results, stats, err := extract.ExtractWithStats(context.Background(), query, choices, opts...)
	if err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}
	for _, r := range results {
		fmt.Printf("%6.2f  %s\n", r.Score, r.Choice)
	}
	if stats.Skipped > 0 {
		log.Warnf("Skipped %d of %d candidates", stats.Skipped, stats.Evaluated)
	}
}
