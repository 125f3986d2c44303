package commands

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBenchCommand(t *testing.T) {
	cmd := NewBenchCommand()
	assert.Equal(t, "bench PREDICTION_DIR DATASET_PATH_OR_NAME", cmd.Use)
	assert.Equal(t, "Run the external benchmark evaluation", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
}

func TestBenchCommand_RejectsWrongArgumentCount(t *testing.T) {
	cmd := NewBenchCommand()

	err := cmd.Args(cmd, []string{})
	require.ErrorIs(t, err, ErrBenchArgs)

	err = cmd.Args(cmd, []string{"predictions"})
	require.ErrorIs(t, err, ErrBenchArgs)

	err = cmd.Args(cmd, []string{"predictions", "dataset", "extra"})
	require.ErrorIs(t, err, ErrBenchArgs)

	err = cmd.Args(cmd, []string{"predictions", "dataset"})
	require.NoError(t, err)
}

func TestBenchCommand_RequiresConfiguredRunner(t *testing.T) {
	viper.Set("bench.runner", "")

	cmd := NewBenchCommand()

	err := runBenchCommand(cmd, t.TempDir(), "swe-lite")
	require.ErrorIs(t, err, ErrBenchRunnerNotConfigured)
}
