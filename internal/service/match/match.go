package match

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"rummy-service/internal/service/agent"
	appErr "rummy-service/pkg/errors"
	"rummy-service/pkg/logger"

	"go.uber.org/zap"
)

const (
	DefaultTargetScore = 200
	DefaultMaxRounds   = 1000
)

type MatchConfig struct {
	TargetScore int
	// MaxRounds caps the match; zero means DefaultMaxRounds.
	MaxRounds int
	Round     RoundConfig
}

// PlayMatch deals rounds from rng until a seat reaches the target score.
// Exhausted rounds score nothing; rounds that hit the turn cap are voided.
func PlayMatch(ctx context.Context, rng *rand.Rand, cfg MatchConfig) (MatchResult, error) {
	target := cfg.TargetScore
	if target <= 0 {
		target = DefaultTargetScore
	}
	maxRounds := cfg.MaxRounds
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}

	var res MatchResult
	for max(res.Scores[SeatAgent], res.Scores[SeatOpponent]) < target {
		if res.Rounds >= maxRounds {
			return res, fmt.Errorf("%w: %d rounds, scores %v", appErr.ErrMatchNotTerminated, res.Rounds, res.Scores)
		}

		round, err := NewRound(rng, cfg.Round)
		if err != nil {
			return res, err
		}
		out, err := round.Play(ctx)
		res.Rounds++
		if err != nil {
			if errors.Is(err, appErr.ErrRoundNotTerminated) {
				res.Voided++
				logger.Log.Warn("round voided",
					zap.String("roundID", round.ID()),
					zap.Error(err),
				)
				continue
			}
			return res, err
		}

		switch out.Outcome {
		case OutcomeGoneOut:
			res.Wins[out.WinnerSeat]++
			res.Scores[out.WinnerSeat] += out.Score
		case OutcomeExhausted:
			res.Exhausted++
		}
	}

	if res.Scores[SeatAgent] >= res.Scores[SeatOpponent] {
		res.Winner = agent.AgentName
	} else {
		res.Winner = agent.OpponentName
	}
	return res, nil
}
