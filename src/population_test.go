package pushvm

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePopulation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.EvalPushLimit = 100

	programs := []List{
		MustParse("INTEGER.DUP INTEGER.*", nil),
		MustParse("EXEC.Y ( 1 )", nil),
		MustParse("2 INTEGER.+", nil),
	}
	setup := func(i int, state *State) {
		state.Integer.Push(big.NewInt(int64(i + 3)))
	}

	outcomes, err := EvaluatePopulation(context.Background(), programs, cfg, 2, setup)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	assert.Equal(t, StatusHalted, outcomes[0].Status)
	assert.Equal(t, "9", outcomes[0].State.Integer.String())

	assert.Equal(t, StatusStepLimit, outcomes[1].Status)
	assert.True(t, errors.Is(outcomes[1].Err, ErrStepLimit))
	assert.Equal(t, 100, outcomes[1].Steps)

	assert.Equal(t, StatusHalted, outcomes[2].Status)
	assert.Equal(t, "7", outcomes[2].State.Integer.String())
	assert.Equal(t, 2, outcomes[2].Steps)
}

func TestEvaluatePopulationMatchesSequentialRuns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 99
	programs := make([]List, 8)
	for i := range programs {
		programs[i] = MustParse("INTEGER.RAND INTEGER.RAND 3 CODE.RAND", nil)
	}

	outcomes, err := EvaluatePopulation(context.Background(), programs, cfg, 0, nil)
	require.NoError(t, err)

	for i, program := range programs {
		seq := *cfg
		seq.Seed += int64(i)
		in := New(&seq)
		in.Logger().SetEnabled(false)
		in.Load(program)
		_, err := in.Run()
		require.NoError(t, err)
		assert.Equal(t, in.State().String(), outcomes[i].State.String(), "program %d", i)
	}
}

func TestEvaluatePopulationCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := EvaluatePopulation(ctx, []List{MustParse("1", nil)}, nil, 1, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
