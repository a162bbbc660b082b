package pushvm

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Outcome is the result of running one program of a population
type Outcome struct {
	Status RunStatus
	Steps  int
	State  *State
	Err    error // limit error, if the run did not halt
}

// SetupFunc prepares a fresh state before its program is loaded, for
// example by pushing the inputs of a fitness case
type SetupFunc func(index int, state *State)

// EvaluatePopulation runs each program in its own interpreter. Programs run
// concurrently, at most limit at a time (limit <= 0 means no bound), and
// share only the read-only instruction set. Hitting a run ceiling is
// reported per program in its Outcome; only cancellation of ctx fails the
// whole evaluation.
func EvaluatePopulation(ctx context.Context, programs []List, config *Config, limit int, setup SetupFunc) ([]Outcome, error) {
	if config == nil {
		config = DefaultConfig()
	}
	logger := NewLoggerFromConfig(config)
	set := NewInstructionSet(config, logger)
	outcomes := make([]Outcome, len(programs))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, program := range programs {
		i, program := i, program
		g.Go(func() error {
			cfg := *config
			if cfg.Seed != 0 {
				cfg.Seed += int64(i)
			}
			state := NewState(&cfg)
			if setup != nil {
				setup(i, state)
			}
			in := NewWithInstructions(state, set, logger)
			in.Load(program)
			status, err := in.RunContext(gctx)
			if status == StatusCanceled {
				return err
			}
			var limitErr *LimitError
			if err != nil && !errors.As(err, &limitErr) {
				return err
			}
			outcomes[i] = Outcome{Status: status, Steps: in.Steps(), State: state, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	logger.DebugCat(CatExec, "evaluated %d programs", len(programs))
	return outcomes, nil
}
