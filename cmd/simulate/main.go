package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"presidents/internal/bot"
	"presidents/internal/config"
	"presidents/internal/sim"
)

func main() {
	games := flag.Int("games", 100, "number of rounds to simulate")
	players := flag.Int("players", 4, "players per round")
	seed := flag.Int64("seed", time.Now().UnixNano(), "master seed for the batch")
	workers := flag.Int("workers", 0, "worker goroutines (0 = one per CPU)")
	maxSteps := flag.Int("max-steps", sim.DefaultMaxSteps, "action limit per round")
	level := flag.String("bot", "greedy", "bot level: greedy or cautious")
	configPath := flag.String("config", "", "optional game config JSON for the leading suit and player bounds")
	verbose := flag.Bool("verbose", false, "log every failed round")
	flag.Parse()

	if *verbose {
		pterm.DefaultLogger.Level = pterm.LogLevelDebug
	}
	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)
	logger := slog.New(handler)

	cfg := config.Defaults()
	if *configPath != "" {
		c, err := config.ReadGameConfig(*configPath)
		if err != nil {
			logger.Error("could not load config", "path", *configPath, "error", err)
			os.Exit(2)
		}
		cfg = c
	}
	if *players < cfg.MinPlayers || *players > cfg.MaxPlayers {
		logger.Error("player count out of range", "players", *players, "min", cfg.MinPlayers, "max", cfg.MaxPlayers)
		os.Exit(2)
	}

	botLevel, err := bot.ParseLevel(*level)
	if err != nil {
		logger.Error("bad bot level", "error", err)
		os.Exit(2)
	}

	logger.Info("starting simulation", "games", *games, "players", *players, "seed", *seed, "bot", botLevel.String())
	start := time.Now()
	stats := sim.RunBatch(sim.Config{
		Players:     *players,
		MaxSteps:    *maxSteps,
		Level:       botLevel,
		LeadingSuit: cfg.Suit(),
	}, *games, *workers, *seed)
	elapsed := time.Since(start)

	for i, r := range stats.Results {
		if !r.Failed() {
			continue
		}
		attrs := []any{"game", i, "id", r.GameID.String(), "seed", r.Seed, "steps", r.Steps}
		if r.Err != nil {
			attrs = append(attrs, "error", r.Err)
		}
		logger.Warn("round failed", attrs...)
		for _, d := range r.Divergences {
			logger.Debug("divergence", "game", i, "detail", d.String())
		}
	}

	if err := render(stats, elapsed); err != nil {
		logger.Error("could not render summary", "error", err)
	}

	if stats.Failures > 0 {
		logger.Error("simulation found failures", "failures", stats.Failures, "divergences", stats.Divergences)
		os.Exit(1)
	}
	logger.Info("simulation clean", "elapsed", elapsed.String())
}

func render(stats sim.BatchStats, elapsed time.Duration) error {
	data := pterm.TableData{
		{"Metric", "Value"},
		{"Games", strconv.Itoa(stats.Games)},
		{"Completed", strconv.Itoa(stats.Completed)},
		{"Failures", strconv.Itoa(stats.Failures)},
		{"Divergences", strconv.Itoa(stats.Divergences)},
		{"Forced passes", strconv.Itoa(stats.ForcedPasses)},
		{"Avg steps", fmt.Sprintf("%.1f", stats.AvgSteps())},
		{"Max steps", strconv.Itoa(stats.MaxSteps)},
		{"Tricks", strconv.Itoa(stats.TotalTricks)},
		{"Elapsed", elapsed.Round(time.Millisecond).String()},
	}
	if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render(); err != nil {
		return err
	}

	seats := make([]int, 0, len(stats.FirstOut))
	for seat := range stats.FirstOut {
		seats = append(seats, seat)
	}
	sort.Ints(seats)
	firsts := pterm.TableData{{"Seat", "Went out first"}}
	for _, seat := range seats {
		firsts = append(firsts, []string{strconv.Itoa(seat + 1), strconv.Itoa(stats.FirstOut[seat])})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(firsts).Render()
}
