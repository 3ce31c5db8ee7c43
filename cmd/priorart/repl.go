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
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/priorart"
	"github.com/poiesic/priorart/core"
	"github.com/poiesic/priorart/docstore"
	"github.com/poiesic/priorart/search"
)

const promptUsage = "Commands: search <text>, similar <doc-number>, build [field], stats, demo, help, quit"

// promptCommand is the default action: an interactive session over the
// loaded corpus.
func promptCommand(c *cli.Context) error {
	if c.Args().Len() > 0 {
		return fmt.Errorf("unknown command %q, run with --help for usage", c.Args().First())
	}

	archive, engine, cfg, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	// Handle interrupts
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		fmt.Println("\nShutting down...")
		os.Exit(0)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Watch {
		debounce := time.Duration(cfg.WatchDebounceMs) * time.Millisecond
		go func() {
			err := docstore.Watch(ctx, cfg.DataDir, debounce, slog.Default(), engine.MarkStale)
			if err != nil && ctx.Err() == nil {
				slog.Error("data watcher stopped", "err", err)
			}
		}()
	}

	runPrompt(os.Stdin, os.Stdout, archive, engine, cfg)
	return nil
}

// runPrompt reads commands until quit or EOF. Unrecognized input prints a
// usage hint and the session continues.
func runPrompt(in io.Reader, out io.Writer, archive *priorart.Archive, engine *search.Engine, cfg *Config) {
	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()

	fmt.Fprintln(out, boldGreen("Prior-art similarity search"))
	fmt.Fprintf(out, "Corpus: %s (%d documents)\n", boldCyan(archive.DataDir()), engine.DocumentCount())
	fmt.Fprintln(out, promptUsage)
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, boldGreen("> "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if engine.Stale() {
			fmt.Fprintf(out, "%s patent data changed on disk, results may be stale until you run build\n", mediumRisk("warning:"))
		}

		cmd, arg := splitCommand(line)
		switch cmd {
		case "quit", "exit":
			return

		case "help":
			fmt.Fprintln(out, promptUsage)

		case "search":
			if arg == "" {
				fmt.Fprintln(out, "usage: search <text>")
				continue
			}
			results, err := engine.SearchText(arg, cfg.TopK)
			if err != nil {
				fmt.Fprintln(out, "search failed:", err)
				continue
			}
			printResults(out, results)

		case "similar":
			if arg == "" {
				fmt.Fprintln(out, "usage: similar <doc-number>")
				continue
			}
			results, err := engine.FindSimilar(arg, cfg.TopK)
			if err != nil {
				fmt.Fprintln(out, "lookup failed:", err)
				continue
			}
			printResults(out, results)

		case "build":
			field := arg
			if field == "" {
				field = cfg.Field
			}
			if err := engine.Build(field); err != nil {
				fmt.Fprintln(out, "build failed:", err)
				continue
			}
			fmt.Fprintf(out, "Indexed %d patents from %q (%d terms)\n",
				engine.DocumentCount(), engine.Field(), engine.VocabularySize())

		case "stats":
			printCoverage(out, archive.Coverage())
			if engine.Built() {
				fmt.Fprintf(out, "Index: field=%s vocabulary=%d fingerprint=%s\n",
					engine.Field(), engine.VocabularySize(), engine.Fingerprint())
			}

		case "demo":
			runDemo(out, archive, engine)

		default:
			fmt.Fprintf(out, "Unrecognized command %q. %s\n", cmd, promptUsage)
		}
	}
}

// splitCommand separates the leading keyword from its argument text.
func splitCommand(line string) (cmd, arg string) {
	parts := strings.SplitN(line, " ", 2)
	cmd = strings.ToLower(parts[0])
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}

// runDemo walks the classic three-part tour: free-text search, conflict
// detection for the first document, and a classification-filtered hybrid
// query.
func runDemo(out io.Writer, archive *priorart.Archive, engine *search.Engine) {
	if engine.DocumentCount() == 0 {
		fmt.Fprintln(out, "No documents loaded, nothing to demonstrate.")
		return
	}

	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintln(out, bold(`1) Text search: "wireless vehicle sensor"`))
	results, err := engine.SearchTextWithMonitor("wireless vehicle sensor", 3, &narratingMonitor{out: out})
	if err != nil {
		fmt.Fprintln(out, "search failed:", err)
		return
	}
	printResults(out, results)

	first := archive.Documents()[0]
	fmt.Fprintf(out, "\n%s\n", bold(fmt.Sprintf("2) Conflict detection: patents similar to %s", first.ID())))
	similar, err := engine.FindSimilar(first.ID(), 3)
	if err != nil {
		fmt.Fprintln(out, "lookup failed:", err)
		return
	}
	printResults(out, similar)

	fmt.Fprintf(out, "\n%s\n", bold(`3) Hybrid search: "sensor" within classification B60`))
	hybrid, err := engine.HybridSearch("sensor", search.Filters{Classification: "B60"}, 3)
	if err != nil {
		fmt.Fprintln(out, "search failed:", err)
		return
	}
	printResults(out, hybrid)
}

// narratingMonitor prints each search stage as it happens.
type narratingMonitor struct {
	out io.Writer
}

var _ search.Monitor = (*narratingMonitor)(nil)

func (m *narratingMonitor) Start(query string) {
	fmt.Fprintf(m.out, "  query: %q\n", query)
}

func (m *narratingMonitor) QueryProjected(matched, total int) {
	fmt.Fprintf(m.out, "  vocabulary coverage: %d of %d query terms\n", matched, total)
}

func (m *narratingMonitor) Scored(documents int) {
	fmt.Fprintf(m.out, "  scored %d documents\n", documents)
}

func (m *narratingMonitor) Finish(results []core.SearchResult) {
	fmt.Fprintf(m.out, "  returning %d results\n", len(results))
}
