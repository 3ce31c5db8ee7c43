// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/priorart"
	"github.com/poiesic/priorart/core"
	"github.com/poiesic/priorart/docstore"
	"github.com/poiesic/priorart/search"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "priorart",
		Usage: "Similarity search and conflict detection over patent filings",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file",
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Usage:   "Directory holding patent JSON batch files",
				Value:   "data/patent_data_small",
				EnvVars: []string{"PRIORART_DATA_DIR"},
			},
			&cli.StringFlag{
				Name:  "field",
				Usage: "Text field to index (title, abstract, claims)",
				Value: search.DefaultField,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.BoolFlag{
				Name:  "filter-incomplete",
				Usage: "Drop records missing title, abstract, or claims",
			},
			&cli.IntFlag{
				Name:  "pool-size",
				Usage: "Worker pool size for index builds",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Watch the data directory and warn when the index goes stale",
			},
		},
		Before: setupLogger,
		Action: promptCommand,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Rank patents against a free-text query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags:     []cli.Flag{topKFlag()},
			},
			{
				Name:      "similar",
				Usage:     "Find patents similar to a document number",
				ArgsUsage: "<doc-number>",
				Action:    similarCommand,
				Flags:     []cli.Flag{topKFlag()},
			},
			{
				Name:      "hybrid",
				Usage:     "Rank against a query, then narrow by metadata filters",
				ArgsUsage: "<query>",
				Action:    hybridCommand,
				Flags: []cli.Flag{
					topKFlag(),
					&cli.StringFlag{
						Name:  "classification",
						Usage: "Keep classifications starting with this code (case-sensitive)",
					},
					&cli.StringFlag{
						Name:  "title-keywords",
						Usage: "Keep titles containing every keyword",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Keep titles containing this phrase",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Report corpus field coverage and index shape",
				Action: statsCommand,
			},
			{
				Name:   "demo",
				Usage:  "Run the guided three-part demo",
				Action: demoCommand,
			},
		},
	}
}

func topKFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "top-k",
		Aliases: []string{"k"},
		Usage:   "Number of results to return",
		Value:   search.DefaultTopK,
	}
}

// openEngine loads the corpus and creates an engine per the effective
// configuration. The caller owns Close on the engine.
func openEngine(c *cli.Context) (*priorart.Archive, *search.Engine, *Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, nil, err
	}

	archive, err := priorart.Open(cfg.DataDir,
		priorart.WithPattern(cfg.Pattern),
		priorart.WithCriticalFilter(cfg.FilterIncomplete))
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []search.Option{
		search.WithDefaultField(cfg.Field),
		search.WithVocabularySize(cfg.VocabularySize),
		search.WithMinDocFreq(cfg.MinDocFreq),
	}
	if cfg.PoolSize > 0 {
		opts = append(opts, search.WithPoolSize(cfg.PoolSize))
	}

	engine, err := archive.NewEngine(opts...)
	if err != nil {
		return nil, nil, nil, err
	}
	return archive, engine, cfg, nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	_, engine, cfg, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	results, err := engine.SearchText(query, resolveTopK(c, cfg))
	if err != nil {
		return err
	}

	printResults(os.Stdout, results)
	return nil
}

func similarCommand(c *cli.Context) error {
	id := strings.TrimSpace(c.Args().First())
	if id == "" {
		return fmt.Errorf("document number is required")
	}

	_, engine, cfg, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	results, err := engine.FindSimilar(id, resolveTopK(c, cfg))
	if err != nil {
		return err
	}

	printResults(os.Stdout, results)
	return nil
}

func hybridCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	_, engine, cfg, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	filters := search.Filters{
		Classification: c.String("classification"),
		TitleKeywords:  strings.Fields(c.String("title-keywords")),
		SpecificTitle:  c.String("title"),
	}

	results, err := engine.HybridSearch(query, filters, resolveTopK(c, cfg))
	if err != nil {
		return err
	}

	printResults(os.Stdout, results)
	return nil
}

func statsCommand(c *cli.Context) error {
	archive, engine, cfg, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	printCoverage(os.Stdout, archive.Coverage())

	if engine.DocumentCount() == 0 {
		return nil
	}
	if err := engine.Build(cfg.Field); err != nil {
		return err
	}
	fmt.Printf("Index: field=%s vocabulary=%d fingerprint=%s\n",
		engine.Field(), engine.VocabularySize(), engine.Fingerprint())
	return nil
}

func demoCommand(c *cli.Context) error {
	archive, engine, _, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	runDemo(os.Stdout, archive, engine)
	return nil
}

var (
	highRisk   = color.New(color.FgRed, color.Bold).SprintFunc()
	mediumRisk = color.New(color.FgYellow, color.Bold).SprintFunc()
	lowRisk    = color.New(color.FgGreen).SprintFunc()
)

func riskLabel(r core.RiskLevel) string {
	switch r {
	case core.RiskHigh:
		return highRisk(string(r))
	case core.RiskMedium:
		return mediumRisk(string(r))
	default:
		return lowRisk(string(r))
	}
}

func printResults(w io.Writer, results []core.SearchResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}
	for i, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%d. %s\n", i+1, r.Err)
			continue
		}
		fmt.Fprintf(w, "%d. %s - %s\n", i+1, r.PatentID, truncate(r.Title, 60))
		fmt.Fprintf(w, "   score %.3f | risk %s\n", r.Score, riskLabel(r.Risk))
	}
	if results[0].SearchTimeMS > 0 {
		fmt.Fprintf(w, "Search completed in %.2f ms\n", results[0].SearchTimeMS)
	}
}

func printCoverage(w io.Writer, cov docstore.Coverage) {
	fmt.Fprintf(w, "Documents: %d\n", cov.Total)
	if cov.Total == 0 {
		return
	}
	fmt.Fprintln(w, "Field coverage:")
	for _, field := range cov.Fields() {
		fmt.Fprintf(w, "  %-24s %5.1f%%  (%d)\n", field, cov.Percent(field), cov.Counts[field])
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag; a file-supplied level is applied later by
	// loadConfig when the flag was left at its default.
	return applyLogLevel(c.String("log-level"))
}

func applyLogLevel(levelStr string) error {
	// Normalize to lowercase
	levelStr = strings.ToLower(levelStr)

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
