package service

import (
	"context"
	"time"

	"rummy-service/internal/config"
	"rummy-service/internal/service/agent"
	"rummy-service/internal/service/analysis"
	"rummy-service/internal/service/match"
	"rummy-service/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Container struct {
	Analysis *analysis.Service
	Match    *match.Service
	rdb      *redis.Client
}

// NewContainer wires the services. rdb may be nil.
func NewContainer(cfg *config.Config, rdb *redis.Client) *Container {
	sim := cfg.Simulation
	return &Container{
		Analysis: analysis.NewService(rdb, time.Duration(cfg.Redis.CacheTTLSeconds)*time.Second),
		Match: match.NewService(match.Config{
			Workers:     sim.Workers,
			MaxWorkers:  sim.MaxWorkers,
			MaxMatches:  sim.MaxMatches,
			TargetScore: sim.TargetScore,
			Strategy:    agent.Strategy(sim.Strategy),
			Opponent:    agent.Strategy(sim.Opponent),
		}),
		rdb: rdb,
	}
}

// Start logs the wired services. The redis client has already been
// checked by repo.InitRedis.
func (c *Container) Start(ctx context.Context) error {
	cfg := c.Match.Config()
	logger.Log.Info("services ready",
		zap.Bool("cache", c.rdb != nil),
		zap.Int("workers", cfg.Workers),
		zap.Int("targetScore", cfg.TargetScore),
		zap.String("strategy", string(cfg.Strategy)),
	)
	return nil
}
