/*
Package main implements the spellserve checker and CLI application.

SpellServe is a filter-style spell checker built on a BK-tree index with a
pluggable distance metric. It reads whitespace-delimited tokens from standard
input and reports unknown words with nearby dictionary suggestions, or runs
as a MessagePack IPC server for integration with text editors.

The index is built once per run from a word list and is immutable afterwards,
so the query phase serves concurrent callers without locking. Suggestion
thresholds and caps are policy settings, configurable per run.

# Usage

Check a document against a word list:

	spellserve -dict words.txt < draft.txt

Check several files concurrently:

	spellserve -dict words.txt draft.txt notes.txt

Run as a msgpack IPC server:

	spellserve -dict words.txt -s

Interactive mode for trying tokens by hand:

	spellserve -dict words.txt -i

Convert a text word list to the binary format for faster startup:

	spellserve -dict words.txt -save-bin words.bin

# Configuration

Runtime configuration is managed through a TOML file that supports checker
policy, dictionary settings, and server limits:

	[checker]
	max_distance = 2
	max_suggestions = 3
	visit_budget = 0

	[dict]
	path = "words.txt"

	[server]
	max_limit = 64
	max_token_len = 60
	max_distance_limit = 4
	enable_filter = true

The config file is automatically created with defaults if it doesn't exist.
Flags override the file for the current run.

# IPC Protocol

Server mode communicates via MessagePack over stdin/stdout. Check requests
are processed synchronously with microsecond timing in responses.

Send a check request:

	{"id": "req1", "t": "recieve", "l": 3}

Receive the verdict with distance-ranked suggestions:

	{"id": "req1", "k": false, "s": [{"w": "receive", "d": 2}], "c": 1, "t": 145}

# Dictionary

The dictionary is one word per line, ordered most-frequent-first when
possible; earlier words sit shallower in the tree and surface sooner during
suggestion searches. A binary form of the same list loads without parsing;
generate it with -save-bin.

# Command Line Flags

The following flags control application behavior:

	-dict string
	    Path to the dictionary word list (.txt or .bin)
	-s  Run as msgpack IPC server instead of filtering stdin
	-i  Run in interactive mode for testing and debugging
	-dist int
	    Maximum edit distance for suggestions
	-n int
	    Maximum suggestions per miss
	-budget int
	    Node-visit budget per suggestion search (0 for unlimited)
	-words int
	    Maximum words to load from the dictionary (0 for all)
	-save-bin string
	    Write the loaded dictionary to this path in binary form and exit
	-config string
	    Custom config file path
	-no-filter
	    Check every token, including numbers and repeated-character runs
	-d  Enable debug mode with detailed logging
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spellserve/spellserve/internal/cli"
	"github.com/spellserve/spellserve/internal/logger"
	"github.com/spellserve/spellserve/pkg/checker"
	"github.com/spellserve/spellserve/pkg/config"
	"github.com/spellserve/spellserve/pkg/dictionary"
	"github.com/spellserve/spellserve/pkg/metric"
	"github.com/spellserve/spellserve/pkg/server"
)

const (
	Version = "0.3.0"
	AppName = "spellserve"
	gh      = "https://github.com/spellserve/spellserve"
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

// main wires config, dictionary and checker together and dispatches on the
// selected mode. The logic for each mode lives in the other packages.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dictPath := flag.String("dict", "", "Path to the dictionary word list (.txt or .bin)")
	configPath := flag.String("config", "", "Custom config file path")
	serverMode := flag.Bool("s", false, "Run as msgpack IPC server")
	interactive := flag.Bool("i", false, "Run in interactive mode -- useful for testing and debugging")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	maxDistance := flag.Int("dist", defaults.Checker.MaxDistance, "Maximum edit distance for suggestions")
	maxSuggestions := flag.Int("n", defaults.Checker.MaxSuggestions, "Maximum suggestions per miss")
	visitBudget := flag.Int("budget", defaults.Checker.VisitBudget, "Node-visit budget per suggestion search (0 for unlimited)")
	wordLimit := flag.Int("words", defaults.Dict.MaxWords, "Maximum number of words to load (use 0 for all words)")
	saveBin := flag.String("save-bin", "", "Write the loaded dictionary to this path in binary form and exit")
	noFilter := flag.Bool("no-filter", false, "Check every token, including numbers and repeated-character runs")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(activePath))

	applyFlags(cfg, maxDistance, maxSuggestions, visitBudget, wordLimit)

	source := *dictPath
	if source == "" {
		source = cfg.Dict.Path
	}

	dict, err := dictionary.Load(source)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	dict = dict.Truncated(cfg.Dict.MaxWords)
	log.Debugf("Dictionary ready: %d words from %s", dict.Len(), source)

	if *saveBin != "" {
		if err := dictionary.SaveBinaryFile(dict, *saveBin); err != nil {
			log.Fatalf("Failed to write binary dictionary: %v", err)
		}
		log.Infof("Wrote %d words to %s", dict.Len(), *saveBin)
		return
	}

	chk := checker.New(dict, metric.Levenshtein{}, checker.Options{
		MaxDistance:    cfg.Checker.MaxDistance,
		MaxSuggestions: cfg.Checker.MaxSuggestions,
		VisitBudget:    cfg.Checker.VisitBudget,
	})

	switch {
	case *interactive:
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(chk, cfg.Server.MaxTokenLen, *noFilter)
		if err := handler.Start(); err != nil {
			log.Fatalf("Interactive mode error: %v", err)
		}
	case *serverMode:
		log.Debug("spawning IPC")
		srv := server.NewServer(chk, cfg)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	default:
		var missCount int
		var err error
		if flag.NArg() > 0 {
			missCount, err = cli.RunFilterFiles(context.Background(), chk, flag.Args(), cfg.Checker.Workers, os.Stdout)
		} else {
			missCount, err = cli.RunFilter(chk, os.Stdin, os.Stdout)
		}
		if err != nil {
			log.Fatalf("Check failed: %v", err)
		}
		if missCount > 0 {
			os.Exit(1)
		}
	}
}

// applyFlags overlays explicitly set flags onto the loaded config.
func applyFlags(cfg *config.Config, maxDistance, maxSuggestions, visitBudget, wordLimit *int) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dist":
			cfg.Checker.MaxDistance = *maxDistance
		case "n":
			cfg.Checker.MaxSuggestions = *maxSuggestions
		case "budget":
			cfg.Checker.VisitBudget = *visitBudget
		case "words":
			cfg.Dict.MaxWords = *wordLimit
		}
	})
}

// printVersion displays the styled version banner.
func printVersion() {
	banner := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()

	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ SpellServe ] BK-tree spell checking, served fast!")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}
