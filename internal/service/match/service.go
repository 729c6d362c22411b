package match

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"rummy-service/internal/service/agent"
	appErr "rummy-service/pkg/errors"
	"rummy-service/pkg/logger"
	"rummy-service/pkg/utils/random"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

type Config struct {
	Workers     int
	MaxWorkers  int
	MaxMatches  int
	TargetScore int
	Strategy    agent.Strategy
	Opponent    agent.Strategy
}

func defaultConfig() Config {
	return Config{
		Workers:     runtime.NumCPU(),
		MaxWorkers:  64,
		MaxMatches:  10000,
		TargetScore: DefaultTargetScore,
		Strategy:    agent.StrategyPlain,
		Opponent:    agent.StrategyPlain,
	}
}

type Service struct {
	cfg Config
}

// NewService fills unset fields of cfg with defaults.
func NewService(cfg Config) *Service {
	def := defaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = def.MaxWorkers
	}
	if cfg.MaxMatches <= 0 {
		cfg.MaxMatches = def.MaxMatches
	}
	if cfg.TargetScore <= 0 {
		cfg.TargetScore = def.TargetScore
	}
	if cfg.Strategy == "" {
		cfg.Strategy = def.Strategy
	}
	if cfg.Opponent == "" {
		cfg.Opponent = def.Opponent
	}
	return &Service{cfg: cfg}
}

func (s *Service) Config() Config {
	return s.cfg
}

// RunBatch plays req.Matches independent matches in parallel. Match i is
// seeded with req.Seed+i, so a batch with a fixed seed is reproducible.
func (s *Service) RunBatch(ctx context.Context, req BatchRequest) (*BatchSummary, error) {
	if req.Matches <= 0 || req.Matches > s.cfg.MaxMatches {
		return nil, fmt.Errorf("%w: matches must be between 1 and %d", appErr.ErrInvalidBatch, s.cfg.MaxMatches)
	}
	workers := req.Workers
	if workers == 0 {
		workers = s.cfg.Workers
	}
	if workers < 0 || workers > s.cfg.MaxWorkers {
		return nil, fmt.Errorf("%w: workers must be between 1 and %d", appErr.ErrInvalidBatch, s.cfg.MaxWorkers)
	}
	strategy, err := s.strategy(req.Strategy)
	if err != nil {
		return nil, err
	}
	if req.Seed == 0 {
		req.Seed = random.Seed()
	}

	started := time.Now()
	logger.Log.Info("batch started",
		zap.Int("matches", req.Matches),
		zap.Int("workers", workers),
		zap.Int64("seed", req.Seed),
		zap.String("strategy", string(strategy)),
	)

	cfg := MatchConfig{
		TargetScore: s.cfg.TargetScore,
		Round:       RoundConfig{Agent: strategy, Opponent: s.cfg.Opponent},
	}
	p := pool.NewWithResults[MatchResult]().
		WithMaxGoroutines(workers).
		WithContext(ctx).
		WithCancelOnError()
	for i := 0; i < req.Matches; i++ {
		seed := req.Seed + int64(i)
		p.Go(func(ctx context.Context) (MatchResult, error) {
			rng, _ := random.New(seed)
			return PlayMatch(ctx, rng, cfg)
		})
	}
	results, err := p.Wait()
	if err != nil {
		logger.Log.Warn("batch failed", zap.Int64("seed", req.Seed), zap.Error(err))
		return nil, err
	}

	summary := summarize(results)
	summary.Strategy = string(strategy)
	summary.Elapsed = time.Since(started)
	logger.Log.Info("batch finished",
		zap.Int("matches", summary.Matches),
		zap.Int("agentMatches", summary.AgentMatches),
		zap.Int("rounds", summary.Rounds),
		zap.Duration("elapsed", summary.Elapsed),
	)
	return summary, nil
}

// StreamRound plays a single round for spectators. observer sees every event
// in order on the calling goroutine.
func (s *Service) StreamRound(ctx context.Context, seed int64, strategy string, observer Observer) (Result, error) {
	st, err := s.strategy(strategy)
	if err != nil {
		return Result{}, err
	}
	rng, seed := random.New(seed)
	round, err := NewRound(rng, RoundConfig{Agent: st, Opponent: s.cfg.Opponent, Observer: observer})
	if err != nil {
		return Result{}, err
	}
	logger.Log.Info("streaming round",
		zap.String("roundID", round.ID()),
		zap.Int64("seed", seed),
		zap.Int("knock", round.Knock()),
	)
	return round.Play(ctx)
}

func (s *Service) strategy(name string) (agent.Strategy, error) {
	if name == "" {
		return s.cfg.Strategy, nil
	}
	st, err := agent.ParseStrategy(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", appErr.ErrInvalidBatch, err)
	}
	return st, nil
}

func summarize(results []MatchResult) *BatchSummary {
	summary := &BatchSummary{Matches: len(results)}
	for _, r := range results {
		if r.Winner == agent.AgentName {
			summary.AgentMatches++
		} else {
			summary.OpponentMatches++
		}
		summary.Rounds += r.Rounds
		summary.AgentRounds += r.Wins[SeatAgent]
		summary.OpponentRounds += r.Wins[SeatOpponent]
		summary.Exhausted += r.Exhausted
		summary.Voided += r.Voided
		summary.AgentPoints += r.Scores[SeatAgent]
		summary.OpponentPoints += r.Scores[SeatOpponent]
	}
	return summary
}
