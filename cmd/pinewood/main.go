// Pinewood - Neighbor-based Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pinewood

// Command pinewood asks for favorite and unfavorite movies on the terminal
// and prints one recommendation.
//
// Configuration comes from config.yaml and the environment (see
// internal/config); logs go to stderr so stdout carries only the dialogue.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/pinewood/internal/config"
	"github.com/tomtom215/pinewood/internal/database"
	"github.com/tomtom215/pinewood/internal/dataset"
	"github.com/tomtom215/pinewood/internal/logging"
	"github.com/tomtom215/pinewood/internal/prompt"
	"github.com/tomtom215/pinewood/internal/recommend"
)

const welcome = "Welcome to Pinewood Movie Recommender! To get a personalized movie recommendation, " +
	"we would like to know some of your favourite and unfavourite ones. Welcome onboard and let's get started!\n"

// loadFunc produces the dataset once the questions are answered.
type loadFunc func(ctx context.Context) (*database.Dataset, error)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	load := func(ctx context.Context) (*database.Dataset, error) {
		return dataset.Load(ctx, cfg)
	}

	if err := run(ctx, cfg.Recommend.EngineConfig(), load, os.Stdin, os.Stdout); err != nil {
		stop()
		if errors.Is(err, prompt.ErrInputClosed) {
			fmt.Fprintln(os.Stderr, "\nInput closed, exiting.")
			os.Exit(1)
		}
		logging.Fatal().Err(err).Msg("Recommendation failed")
	}
}

// run drives one interactive session: questions, dataset load, one answer.
func run(ctx context.Context, engineCfg *recommend.Config, load loadFunc, in io.Reader, out io.Writer) error {
	fmt.Fprint(out, welcome)

	collector := prompt.NewCollector(in, out)
	favorites, err := collector.Favorites()
	if err != nil {
		return err
	}
	unfavorites, err := collector.Unfavorites()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\nLooking for the perfect movie...")

	ds, err := load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	engine, err := recommend.NewEngine(ds.Matrix, ds.Catalog, engineCfg, logging.WithComponent("cli"))
	if err != nil {
		return err
	}

	favIDs, _ := ds.Catalog.ResolveAll(favorites)
	unfavIDs, _ := ds.Catalog.ResolveAll(unfavorites)
	prompt.ReportFavorites(out, ratedCount(ds.Matrix, favIDs))
	prompt.ReportUnfavorites(out, ratedCount(ds.Matrix, unfavIDs))

	result, err := engine.Recommend(ctx, recommend.Request{
		Favorites:   favorites,
		Unfavorites: unfavorites,
		RequestID:   logging.GenerateCorrelationID(),
	})
	if err != nil {
		if errors.Is(err, recommend.ErrNoRatableMovies) {
			fmt.Fprintln(out, "\nSorry, no recommendation is possible with this data.")
		}
		return err
	}

	title := result.Title
	if title == "" {
		title = fmt.Sprintf("movie #%d", result.MovieID)
	}
	fmt.Fprintf(out, "\nI recommend %s\n", title)
	return nil
}

// ratedCount counts the ids that are rows of m. Titles without ratings
// resolve in the catalog but never reach the synthetic user.
func ratedCount(m *recommend.Matrix, ids []int) int {
	n := 0
	for _, id := range ids {
		if m.HasMovie(id) {
			n++
		}
	}
	return n
}
