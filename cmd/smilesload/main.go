// Package main is the entry point for the smilesload command line utility.
//
// coding=utf-8
// @Project : smilesloader
// @File    : main.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cx-luo/go-smiles/molgraph"
	"github.com/cx-luo/go-smiles/smiles"
)

// main is separated from run and application for ease of testing.
func main() {
	run(os.Args)
}

func run(args []string) {
	app := application()
	if err := app.Run(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// application defines the smilesload *cli.App: a single positional SMILES
// string, or -f for a file of newline-separated SMILES, and flags mapped
// onto smiles.LoaderOptions.
func application() *cli.App {
	return &cli.App{
		Name:  "smilesload",
		Usage: "Parse a SMILES/SMARTS/CurlySMILES string and report the resulting molecular graph.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "f", Usage: "Read newline-separated SMILES from this file instead of the positional argument."},
			&cli.BoolFlag{Name: "smarts", Usage: "Parse as SMARTS (query mode, SMARTS syntax enabled)."},
			&cli.BoolFlag{Name: "query", Usage: "Parse as a query molecule (query primitives permitted, non-SMARTS syntax)."},
			&cli.BoolFlag{Name: "rsmiles", Usage: "Treat input as RSMILES (suppress name reading and R-site materialization from atom maps)."},
			&cli.BoolFlag{Name: "ignore-bond-dir", Usage: "Ignore ring-closure bond-direction mismatches instead of failing."},
			&cli.BoolFlag{Name: "ignore-stereo", Usage: "Ignore stereocenter construction failures instead of failing."},
			&cli.BoolFlag{Name: "hash", Usage: "Print the graph's content hash alongside the summary."},
			&cli.BoolFlag{Name: "json-logs", Usage: "Use zap's production (JSON) logger instead of the development console logger."},
			&cli.IntFlag{Name: "workers", Value: 4, Usage: "Worker count for -f batch mode."},
		},
		Action: loadCommand,
	}
}

func loadCommand(c *cli.Context) error {
	logger, err := newLogger(c.Bool("json-logs"))
	if err != nil {
		return fmt.Errorf("smilesload: building logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	opts := smiles.LoaderOptions{
		InsideRSMILES:                      c.Bool("rsmiles"),
		IgnoreClosingBondDirectionMismatch: c.Bool("ignore-bond-dir"),
		IgnoreStereochemistryErrors:        c.Bool("ignore-stereo"),
		Logger:                             zapLoaderLogger{logger.Sugar()},
	}

	if f := c.String("f"); f != "" {
		return runBatch(f, c.Int("workers"), opts, c.Bool("smarts"), c.Bool("query"), c.Bool("hash"), logger)
	}

	raw := c.Args().First()
	if raw == "" {
		return fmt.Errorf("smilesload: provide a SMILES string or -f <file>")
	}
	return loadOne(raw, opts, c.Bool("smarts"), c.Bool("query"), c.Bool("hash"), logger)
}

func loadOne(raw string, opts smiles.LoaderOptions, smartsMode, queryMode, printHash bool, logger *zap.Logger) error {
	g := molgraph.New(smartsMode || queryMode)
	g.LoadID = uuid.New().String()

	sc := smiles.NewStringScanner(raw)
	var loadErr error
	switch {
	case smartsMode:
		loadErr = smiles.LoadSmarts(sc, g, opts)
	case queryMode:
		loadErr = smiles.LoadQueryMolecule(sc, g, opts)
	default:
		loadErr = smiles.LoadMolecule(sc, g, opts)
	}
	if loadErr != nil {
		logger.Error("load failed", zap.String("load_id", g.LoadID), zap.String("input", raw), zap.Error(loadErr))
		return loadErr
	}

	fmt.Printf("%s: %d atoms, %d bonds", g.LoadID, len(g.Atoms), len(g.Bonds))
	if g.Name != "" {
		fmt.Printf(", name=%q", g.Name)
	}
	if printHash {
		fmt.Printf(", hash=%s", g.Hash())
	}
	fmt.Println()
	return nil
}

// runBatch parses each line of f independently on a bounded worker pool,
// grounded on bebop-poly/bio/bio.go's ManyToChannel: an errgroup.Group of
// worker goroutines draining a shared line channel, returning the first
// failure (SPEC_FULL §6).
func runBatch(path string, workers int, opts smiles.LoaderOptions, smartsMode, queryMode, printHash bool, logger *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("smilesload: %w", err)
	}
	defer f.Close()

	if workers < 1 {
		workers = 1
	}
	lines := make(chan string)
	g, ctx := errgroup.WithContext(context.Background())

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for line := range lines {
				if err := loadOne(line, opts, smartsMode, queryMode, printHash, logger); err != nil {
					return err
				}
			}
			return nil
		})
	}

	scanner := bufio.NewScanner(f)
send:
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		select {
		case lines <- line:
		case <-ctx.Done():
			break send
		}
	}
	close(lines)

	if err := scanner.Err(); err != nil {
		_ = g.Wait()
		return fmt.Errorf("smilesload: reading %s: %w", path, err)
	}
	return g.Wait()
}

func newLogger(jsonLogs bool) (*zap.Logger, error) {
	if jsonLogs {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// zapLoaderLogger adapts *zap.SugaredLogger to smiles.Logger.
type zapLoaderLogger struct {
	s *zap.SugaredLogger
}

func (z zapLoaderLogger) ParseStart(raw string) {
	z.s.Debugw("parse start", "input", raw)
}

func (z zapLoaderLogger) ParseDone(name string, atoms, bonds int) {
	z.s.Infow("parse done", "name", name, "atoms", atoms, "bonds", bonds)
}

func (z zapLoaderLogger) Warning(msg string) {
	z.s.Warn(msg)
}
