package commands

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tooldeck-io/tooldeck-go/internal/constants"
)

// benchArtifacts are the derived paths the external runner is expected to
// produce under the prediction directory.
var benchArtifacts = []string{"dataset", "patches.json", "logs"}

// NewBenchCommand creates the bench command.
func NewBenchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bench PREDICTION_DIR DATASET_PATH_OR_NAME",
		Short: "Run the external benchmark evaluation",
		Long: `Invoke the configured benchmark runner against a prediction directory.

The runner command comes from the bench.runner configuration key and receives
the prediction directory and the dataset path or name as its final two
arguments, with stdio attached. The runner is expected to produce dataset/,
patches.json, and logs/ under the prediction directory; this command reports
which of those artifacts exist afterwards.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != constants.MinimumArgumentCount {
				return ErrBenchArgs
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchCommand(cmd, args[0], args[1])
		},
	}
}

func runBenchCommand(cmd *cobra.Command, predictionDir, dataset string) error {
	runner := viper.GetString("bench.runner")
	if runner == "" {
		return ErrBenchRunnerNotConfigured
	}

	parts := strings.Fields(runner)
	parts = append(parts, predictionDir, dataset)

	runnerCmd := exec.CommandContext(cmd.Context(), parts[0], parts[1:]...)
	runnerCmd.Stdin = os.Stdin
	runnerCmd.Stdout = os.Stdout
	runnerCmd.Stderr = os.Stderr

	if err := runnerCmd.Run(); err != nil {
		return fmt.Errorf("running bench runner: %w", err)
	}

	reportBenchArtifacts(predictionDir)

	return nil
}

// reportBenchArtifacts prints which derived artifacts exist under the
// prediction directory after a runner invocation.
func reportBenchArtifacts(predictionDir string) {
	for _, artifact := range benchArtifacts {
		status := "missing"
		if _, err := os.Stat(filepath.Join(predictionDir, artifact)); err == nil {
			status = "found"
		}

		_, _ = fmt.Fprintf(os.Stdout, "%-13s %s\n", artifact, status)
	}
}
