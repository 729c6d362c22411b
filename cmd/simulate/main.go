package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"rummy-service/internal/config"
	"rummy-service/internal/service/agent"
	"rummy-service/internal/service/match"
	"rummy-service/pkg/logger"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	flags := pflag.NewFlagSet("simulate", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "", "optional path to config file")
	flags.IntP("matches", "n", 100, "number of matches to play")
	flags.IntP("workers", "w", 4, "matches played in parallel")
	flags.Int("target", 200, "score that ends a match")
	flags.Int64("seed", 0, "seed for match 0, random when 0")
	flags.StringP("strategy", "s", string(agent.StrategyPlain), "agent discard strategy (plain, risk_aware)")
	flags.String("opponent", string(agent.StrategyPlain), "opponent discard strategy (plain, risk_aware)")
	flags.Bool("json", false, "print the summary as JSON")
	flags.Parse(os.Args[1:])

	v := viper.New()
	config.SetDefaults(v)
	v.Set("server.mode", "release")
	if *configPath != "" {
		v.SetConfigFile(*configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file, %s\n", err)
			os.Exit(1)
		}
	}
	bindings := map[string]string{
		"simulation.matches":     "matches",
		"simulation.workers":     "workers",
		"simulation.targetScore": "target",
		"simulation.seed":        "seed",
		"simulation.strategy":    "strategy",
		"simulation.opponent":    "opponent",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			fmt.Fprintf(os.Stderr, "bind flag %s: %s\n", name, err)
			os.Exit(1)
		}
	}

	cfg, err := config.Decode(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(2)
	}

	logger.InitLogger(cfg.Server.Mode)
	defer logger.Log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sim := cfg.Simulation
	svc := match.NewService(match.Config{
		Workers:     sim.Workers,
		MaxWorkers:  sim.MaxWorkers,
		MaxMatches:  sim.MaxMatches,
		TargetScore: sim.TargetScore,
		Strategy:    agent.Strategy(sim.Strategy),
		Opponent:    agent.Strategy(sim.Opponent),
	})
	summary, err := svc.RunBatch(ctx, match.BatchRequest{
		Matches: sim.Matches,
		Seed:    sim.Seed,
		Workers: sim.Workers,
	})
	if err != nil {
		logger.Log.Fatal("simulation failed", zap.Error(err))
	}

	asJSON, _ := flags.GetBool("json")
	if err := writeSummary(os.Stdout, summary, asJSON); err != nil {
		fmt.Fprintf(os.Stderr, "write summary: %s\n", err)
		logger.Log.Sync()
		os.Exit(1)
	}
}

func writeSummary(w io.Writer, s *match.BatchSummary, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	_, err := fmt.Fprintf(w,
		"strategy   %s\n"+
			"matches    agent %4d  opponent %4d\n"+
			"rounds     agent %4d  opponent %4d  exhausted %d  voided %d\n"+
			"points     agent %4d  opponent %4d\n"+
			"elapsed    %s\n",
		s.Strategy,
		s.AgentMatches, s.OpponentMatches,
		s.AgentRounds, s.OpponentRounds, s.Exhausted, s.Voided,
		s.AgentPoints, s.OpponentPoints,
		s.Elapsed,
	)
	return err
}
