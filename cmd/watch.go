package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/nxadm/tail"
	"github.com/spf13/cobra"

	"github.com/unclesp1d3r/threadhash/lib/sink"
	"github.com/unclesp1d3r/threadhash/runstate"
)

// watchTotals counts the result lines seen by watch.
type watchTotals struct {
	Cracked   int
	Failed    int
	Malformed int
}

var watchCmd = &cobra.Command{
	Use:   "watch <results-file>",
	Short: "Follow a results file and print cracked passwords as they appear",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		follow, err := cmd.Flags().GetBool("follow")
		if err != nil {
			return err
		}

		totals, err := followResults(cmd.Context(), args[0], follow, cmd.OutOrStdout())
		runstate.Logger.Info("Watch finished",
			"cracked", totals.Cracked,
			"failed", totals.Failed,
			"malformed", totals.Malformed,
		)

		return err
	},
}

func init() {
	watchCmd.Flags().BoolP("follow", "f", true, "keep waiting for new lines until interrupted")
	rootCmd.AddCommand(watchCmd)
}

// followResults reads result lines from path, printing "digest:password" for every cracked
// hash. Without follow it stops at end of file; otherwise it runs until ctx is done.
func followResults(ctx context.Context, path string, follow bool, w io.Writer) (watchTotals, error) {
	var totals watchTotals

	tailer, err := tail.TailFile(path, tail.Config{
		Follow:    follow,
		ReOpen:    follow,
		MustExist: true,
		Logger:    runstate.Logger.StandardLog(),
	})
	if err != nil {
		return totals, fmt.Errorf("couldn't tail results file %q: %w", path, err)
	}

	defer func() {
		if err := tailer.Stop(); err != nil {
			runstate.Logger.Debug("Error stopping tailer", "error", err)
		}

		tailer.Cleanup()
	}()

	for {
		select {
		case <-ctx.Done():
			return totals, nil
		case line, ok := <-tailer.Lines:
			if !ok {
				return totals, tailer.Wait()
			}

			if line.Err != nil {
				runstate.Logger.Warn("Error reading results file", "error", line.Err)

				continue
			}

			if err := handleResultLine(line.Text, w, &totals); err != nil {
				return totals, err
			}
		}
	}
}

func handleResultLine(text string, w io.Writer, totals *watchTotals) error {
	result, err := sink.ParseLine(text)
	if err != nil {
		totals.Malformed++
		runstate.Logger.Warn("Skipping malformed result line", "line", text)

		return nil
	}

	if result.Outcome != sink.OutcomeCracked {
		totals.Failed++

		return nil
	}

	totals.Cracked++

	if _, err := fmt.Fprintf(w, "%s:%s\n", result.Digest, result.Candidate); err != nil {
		return fmt.Errorf("write cracked password: %w", err)
	}

	return nil
}
