package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yildizm/ReviewRadar/internal/ui"
	"github.com/yildizm/ReviewRadar/internal/viewmodel"
)

var tuiLogFile string

func newTUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal UI",
		Long: `Start the interactive terminal UI. This is also what runs when reviewradar
is started without a subcommand.

Log output would corrupt the screen, so it is discarded unless --log-file
is given.`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}

	cmd.Flags().StringVar(&tuiLogFile, "log-file", "", "write log output to this file")

	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	sess, err := newSession(cfg, nil)
	if err != nil {
		return err
	}
	defer sess.Close()

	logOut, closeLog, err := tuiLogOutput(tuiLogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	sess.log.SetOutput(logOut)

	ctx := cmd.Context()
	return ui.Run(ctx, sess.store, sess.runner, ui.Options{
		Buckets: cfg.Analysis.HistogramBuckets,
		Policy:  cfg.Overflow(),
		Logger:  sess.log,
		OnComplete: func(eff viewmodel.Effect, ev viewmodel.Event) {
			sess.record(ctx, eff, ev)
		},
	})
}

// tuiLogOutput opens the log file, or returns a discarding writer
func tuiLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}

	// #nosec G304 - user-selected log destination
	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
