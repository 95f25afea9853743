// Copyright 2025 Poiesic Systems
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
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/poiesic/skosexpand"
	"github.com/poiesic/skosexpand/analysis"
	"github.com/poiesic/skosexpand/config"
	"github.com/poiesic/skosexpand/core"
	"github.com/poiesic/skosexpand/expansion"
	"github.com/poiesic/skosexpand/storage/badger"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	expansionFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "kind",
			Aliases: []string{"k"},
			Usage:   "Token kind (label, uri)",
		},
		&cli.StringSliceFlag{
			Name:    "policy",
			Aliases: []string{"p"},
			Usage:   "Expansion policy (labels, broader, narrower, related, all)",
		},
		&cli.IntFlag{
			Name:    "depth",
			Aliases: []string{"d"},
			Usage:   "Relation hops to traverse",
		},
		&cli.StringFlag{
			Name:  "lang",
			Usage: "Only use labels in this language",
		},
	}

	return &cli.App{
		Name:  "skosexpand",
		Usage: "Expand search terms with a SKOS thesaurus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "Thesaurus file (Turtle or N-Triples)",
			},
			&cli.StringFlag{
				Name:  "snapshot-dir",
				Usage: "BadgerDB directory for parsed thesaurus snapshots",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Set logging format (text, json)",
			},
			&cli.BoolFlag{
				Name:  "color",
				Usage: "Highlight expansion terms",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "expand",
				Usage:     "Print the expansion terms of each token",
				ArgsUsage: "TOKEN...",
				Action:    expandCommand,
				Flags:     expansionFlags,
			},
			{
				Name:      "analyze",
				Usage:     "Tokenize text and inject expansion tokens",
				ArgsUsage: "TEXT",
				Action:    analyzeCommand,
				Flags:     expansionFlags,
			},
			{
				Name:      "inspect",
				Usage:     "Print thesaurus statistics and the concepts tokens resolve to",
				ArgsUsage: "[TOKEN...]",
				Action:    inspectCommand,
				Flags:     expansionFlags,
			},
			{
				Name:   "snapshot",
				Usage:  "Store a parsed snapshot of the thesaurus",
				Action: snapshotCommand,
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List stored snapshots",
						Action: snapshotListCommand,
					},
					{
						Name:   "prune",
						Usage:  "Delete all but the newest snapshots",
						Action: snapshotPruneCommand,
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "keep",
								Usage: "Number of snapshots to keep",
								Value: 1,
							},
						},
					},
				},
			},
		},
	}
}

// setupLogger loads the configuration, applies global flag overrides and
// installs the default logger.
func setupLogger(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("source") {
		cfg.Thesaurus.Source = c.String("source")
	}
	if c.IsSet("snapshot-dir") {
		cfg.Thesaurus.SnapshotDir = c.String("snapshot-dir")
	}
	if c.IsSet("log-level") {
		cfg.Logging.Level = strings.ToLower(c.String("log-level"))
	}
	if c.IsSet("log-format") {
		cfg.Logging.Format = strings.ToLower(c.String("log-format"))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.Logging.SlogLevel()
	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.Logging.Format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(handler))

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

func appConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// expansionConfig applies command flags on top of the configured expansion section.
func expansionConfig(c *cli.Context, cfg *config.Config) (*expansion.Config, error) {
	section := cfg.Expansion
	if c.IsSet("kind") {
		section.Mode = c.String("kind")
	}
	if c.IsSet("policy") {
		section.Policy = c.StringSlice("policy")
	}
	if c.IsSet("depth") {
		section.Depth = c.Int("depth")
	}
	if c.IsSet("lang") {
		section.Language = c.String("lang")
	}
	return section.Build()
}

func openThesaurus(c *cli.Context, cfg *config.Config) (*skosexpand.Thesaurus, error) {
	if cfg.Thesaurus.Source == "" {
		return nil, fmt.Errorf("thesaurus source is required (--source or thesaurus.source)")
	}
	exp, err := expansionConfig(c, cfg)
	if err != nil {
		return nil, err
	}
	mode, err := cfg.Cache.CacheMode()
	if err != nil {
		return nil, err
	}

	opts := []skosexpand.Option{
		skosexpand.WithConfig(exp),
		skosexpand.WithCacheMode(mode),
		skosexpand.WithCacheCapacity(cfg.Cache.Capacity),
		skosexpand.WithPoolSize(cfg.Workers.Size()),
		skosexpand.WithLogger(slog.Default()),
	}
	if cfg.Thesaurus.SnapshotDir != "" {
		opts = append(opts, skosexpand.WithSnapshotDir(cfg.Thesaurus.SnapshotDir))
	}
	return skosexpand.NewThesaurus(cfg.Thesaurus.Source, opts...)
}

func expandCommand(c *cli.Context) error {
	tokens := c.Args().Slice()
	if len(tokens) == 0 {
		return fmt.Errorf("at least one token is required")
	}

	th, err := openThesaurus(c, appConfig(c))
	if err != nil {
		return err
	}
	defer th.Close()

	cfg := th.Config()
	reqs := make([]expansion.Request, len(tokens))
	for i, token := range tokens {
		reqs[i] = cfg.Request(token)
	}
	results, err := th.ExpandAll(c.Context, reqs)
	if err != nil {
		return err
	}

	out := c.App.Writer
	highlight := highlighter(c)
	for i, token := range tokens {
		if results[i].Empty() {
			fmt.Fprintf(out, "%s: (no expansion)\n", token)
			continue
		}
		terms := make([]string, len(results[i].Terms))
		for j, term := range results[i].Terms {
			terms[j] = highlight.Sprint(term)
		}
		fmt.Fprintf(out, "%s: %s\n", token, strings.Join(terms, ", "))
	}
	return nil
}

// highlighter colors expansion terms when --color is set.
func highlighter(c *cli.Context) *color.Color {
	h := color.New(color.FgGreen)
	if c.Bool("color") {
		h.EnableColor()
	} else {
		h.DisableColor()
	}
	return h
}

func analyzeCommand(c *cli.Context) error {
	text := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text to analyze is required")
	}

	th, err := openThesaurus(c, appConfig(c))
	if err != nil {
		return err
	}
	defer th.Close()

	filter, err := analysis.NewFilter(th, analysis.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	tokens, err := filter.Analyze(c.Context, text)
	if err != nil {
		return err
	}

	out := c.App.Writer
	highlight := highlighter(c)
	for _, tok := range tokens {
		marker, term := " ", tok.Term
		if tok.Expansion {
			marker, term = "+", highlight.Sprint(tok.Term)
		}
		fmt.Fprintf(out, "%3d %s %4d-%-4d %s\n", tok.Position, marker, tok.Start, tok.End, term)
	}
	return nil
}

func inspectCommand(c *cli.Context) error {
	th, err := openThesaurus(c, appConfig(c))
	if err != nil {
		return err
	}
	defer th.Close()

	out := c.App.Writer
	stats := th.Stats()
	fmt.Fprintf(out, "source:       %s\n", stats.Source)
	fmt.Fprintf(out, "origin:       %s\n", stats.Origin)
	if stats.Fingerprint != "" {
		fmt.Fprintf(out, "fingerprint:  %s\n", stats.Fingerprint)
	}
	fmt.Fprintf(out, "concepts:     %d\n", stats.Graph.Concepts)
	fmt.Fprintf(out, "pref labels:  %d\n", stats.Graph.PrefLabels)
	fmt.Fprintf(out, "alt labels:   %d\n", stats.Graph.AltLabels)
	fmt.Fprintf(out, "label keys:   %d\n", stats.LabelKeys)
	fmt.Fprintf(out, "edges:        %d\n", stats.Graph.Edges)
	fmt.Fprintf(out, "repaired:     %d\n", stats.Graph.Repaired)
	fmt.Fprintf(out, "self loops:   %d\n", stats.Graph.SelfLoops)
	fmt.Fprintf(out, "demoted:      %d\n", stats.Graph.Demoted)
	fmt.Fprintf(out, "skipped:      %d\n", stats.Diagnostics)

	g := th.Graph()
	for _, token := range c.Args().Slice() {
		seeds := th.Seeds(token)
		fmt.Fprintf(out, "\n%s: %d concept(s)\n", token, len(seeds))
		for _, uri := range seeds {
			concept, ok := g.Get(uri)
			if !ok {
				continue
			}
			printConcept(c, concept)
		}
	}
	return nil
}

func printConcept(c *cli.Context, concept *core.Concept) {
	out := c.App.Writer
	fmt.Fprintf(out, "  %s\n", concept.URI)
	for _, l := range concept.PrefLabels {
		fmt.Fprintf(out, "    prefLabel  %s\n", formatLabel(l))
	}
	for _, l := range concept.AltLabels {
		fmt.Fprintf(out, "    altLabel   %s\n", formatLabel(l))
	}
	for _, kind := range core.RelationKinds {
		for _, uri := range concept.Relations(kind) {
			fmt.Fprintf(out, "    %-10s %s\n", kind, uri)
		}
	}
}

func formatLabel(l core.Label) string {
	if l.Lang == "" {
		return fmt.Sprintf("%q", l.Text)
	}
	return fmt.Sprintf("%q@%s", l.Text, l.Lang)
}

func snapshotCommand(c *cli.Context) error {
	cfg := appConfig(c)
	if cfg.Thesaurus.SnapshotDir == "" {
		return fmt.Errorf("snapshot directory is required (--snapshot-dir or thesaurus.snapshotDir)")
	}

	th, err := openThesaurus(c, cfg)
	if err != nil {
		return err
	}
	defer th.Close()

	stats := th.Stats()
	fmt.Fprintf(c.App.Writer, "%s %s %d concepts (%s)\n", stats.Fingerprint, stats.Source, stats.Graph.Concepts, stats.Origin)
	return nil
}

func openSnapshots(c *cli.Context) (*badger.Backend, *badger.SnapshotRepository, error) {
	dir := appConfig(c).Thesaurus.SnapshotDir
	if dir == "" {
		return nil, nil, fmt.Errorf("snapshot directory is required (--snapshot-dir or thesaurus.snapshotDir)")
	}
	backend, err := badger.OpenBackend(dir, false)
	if err != nil {
		return nil, nil, err
	}
	return backend, badger.NewSnapshotRepository(backend), nil
}

func snapshotListCommand(c *cli.Context) error {
	backend, repo, err := openSnapshots(c)
	if err != nil {
		return err
	}
	defer backend.Close()

	metas, err := repo.ListSnapshots(c.Context)
	if err != nil {
		return err
	}
	for _, meta := range metas {
		fmt.Fprintf(c.App.Writer, "%s %s %6d %s\n",
			meta.Fingerprint, meta.CreatedAt.Format(time.RFC3339), meta.Concepts, meta.Source)
	}
	return nil
}

func snapshotPruneCommand(c *cli.Context) error {
	keep := c.Int("keep")
	if keep < 0 {
		return fmt.Errorf("keep must not be negative")
	}

	backend, repo, err := openSnapshots(c)
	if err != nil {
		return err
	}
	defer backend.Close()

	ctx := c.Context
	metas, err := repo.ListSnapshots(ctx)
	if err != nil {
		return err
	}
	if len(metas) <= keep {
		return nil
	}

	for _, meta := range metas[keep:] {
		if err := repo.DeleteSnapshot(ctx, meta.Fingerprint); err != nil {
			return err
		}
		slog.Info("deleted snapshot", "fingerprint", meta.Fingerprint, "source", meta.Source)
		fmt.Fprintf(c.App.Writer, "deleted %s\n", meta.Fingerprint)
	}
	return nil
}
