package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/unclesp1d3r/threadhash/lib/arch"
	"github.com/unclesp1d3r/threadhash/lib/config"
	"github.com/unclesp1d3r/threadhash/lib/cracker"
	"github.com/unclesp1d3r/threadhash/lib/crypter"
	"github.com/unclesp1d3r/threadhash/lib/display"
	"github.com/unclesp1d3r/threadhash/lib/downloader"
	"github.com/unclesp1d3r/threadhash/lib/progress"
	"github.com/unclesp1d3r/threadhash/lib/sink"
	"github.com/unclesp1d3r/threadhash/lib/status"
	"github.com/unclesp1d3r/threadhash/lib/wordlist"
	"github.com/unclesp1d3r/threadhash/runstate"
)

const (
	outputPerm      = 0o644
	shutdownTimeout = 5 * time.Second
)

func runCrack(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	_, err = execute(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())

	return err
}

// execute performs one complete run described by cfg. Result lines go to the configured
// output file or stdout; the statistics report goes to stderr.
func execute(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) (*cracker.Report, error) {
	runstate.SetVerbose(cfg.Verbose)

	if cfg.Verbose {
		display.VerboseEnabled()
	}

	display.Host(arch.Describe(), arch.DefaultThreads(config.MaxThreads))

	if cfg.Nice {
		lowerPriority(cfg.NiceValue)
	}

	fetcher := &downloader.Fetcher{CacheDir: cfg.CachePath}
	if cfg.Progress {
		fetcher.Progress = progress.NewDownloadTracker(stderr)
	}

	loader := &wordlist.Loader{Fetcher: fetcher}

	passwords, err := loadList(ctx, loader, "passwords", cfg.PasswordFile)
	if err != nil {
		return nil, err
	}

	if len(passwords) == 0 {
		return nil, fmt.Errorf("%s: %w", cfg.PasswordFile, cracker.ErrNoPasswords)
	}

	words, err := loadList(ctx, loader, "dictionary", cfg.DictionaryFile)
	if err != nil {
		return nil, err
	}

	out, closeOut, err := openOutput(cfg.OutputFile, stdout)
	if err != nil {
		return nil, err
	}
	defer closeOut()

	var tracker *progress.Tracker
	if cfg.Progress {
		tracker = progress.NewTracker(len(passwords), "cracking", stderr)
	}

	opts := cracker.Options{
		Threads: cfg.Threads,
		Crypter: crypter.Default(),
		Sink:    sink.New(out),
	}
	if tracker != nil {
		opts.Progress = tracker
	}

	engine, err := cracker.NewEngine(passwords, words, opts)
	if err != nil {
		return nil, err
	}

	if cfg.StatusAddr != "" {
		srv := status.NewServer(cfg.StatusAddr, engine)
		if err := srv.Start(ctx); err != nil {
			return nil, err
		}

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				runstate.ErrorLogger.Error("Error stopping status server", "error", err)
			}
		}()
	}

	display.Startup(engine.RunID(), cfg.Threads, len(passwords), len(words))

	report, err := engine.Run(ctx)
	tracker.Finish()

	if err != nil {
		return nil, err
	}

	if err := display.WriteReport(stderr, report); err != nil {
		runstate.ErrorLogger.Error("Error writing statistics", "error", err)
	}

	display.Summary(report)

	return report, nil
}

func loadList(ctx context.Context, loader *wordlist.Loader, kind, source string) ([]string, error) {
	lines, err := loader.Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind, err)
	}

	display.InputLoaded(kind, source, len(lines))

	return lines, nil
}

// openOutput opens path for results, truncating it, or returns stdout when path is empty.
func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, outputPerm)
	if err != nil {
		return nil, nil, fmt.Errorf("can't open output file %s: %w", path, err)
	}

	return f, func() {
		if err := f.Close(); err != nil {
			runstate.ErrorLogger.Error("Error closing output file", "path", path, "error", err)
		}
	}, nil
}

// lowerPriority renices the process. Failure is logged and the run continues.
func lowerPriority(delta int) {
	nice, err := arch.Renice(delta)
	if err != nil {
		if errors.Is(err, arch.ErrReniceUnsupported) {
			runstate.Logger.Warn("Cannot lower priority on this platform")

			return
		}

		runstate.ErrorLogger.Error("Error lowering priority", "error", err)

		return
	}

	display.Reniced(nice)
}
