package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"FileComparator/internal/compare"
	"FileComparator/internal/config"
	"FileComparator/internal/metrics"
	"FileComparator/internal/progress"
)

// settings is the merged view of config file, flags and arguments.
type settings struct {
	left, right string
	chunkSize   int
	jsonOutput  bool
	verbose     bool
	progress    bool
}

func runCompare(cmd *cobra.Command, flags *rootFlags, args []string) error {
	s, err := resolveSettings(cmd, flags, args)
	if err != nil {
		return err
	}

	logger := newLogger(cmd, s.verbose)
	logger.Debug("starting comparison", "left", s.left, "right", s.right, "chunk_size", s.chunkSize)

	stats := &metrics.Stats{}
	stats.Start()

	var bar *progress.Bar
	if s.progress && isTerminal(cmd.OutOrStdout()) {
		if info, err := os.Stat(s.left); err == nil && info.Mode().IsRegular() {
			stats.TotalBytes = info.Size()
			bar = progress.New(cmd.OutOrStdout(), info.Size(), stats.Counters)
		}
	}

	cmp := compare.New(
		compare.WithLogger(logger),
		compare.WithProgress(func(n int64) {
			stats.Observe(n)
			if bar != nil {
				bar.AddBytes(n)
			}
		}),
	)

	res, err := cmp.Compare(commandContext(cmd), compare.Request{
		Left:      s.left,
		Right:     s.right,
		ChunkSize: s.chunkSize,
	})
	if bar != nil {
		bar.Close()
	}
	stats.Stop()
	if err != nil {
		logger.Debug("comparison failed", "error", err)
		return mapCompareError(err)
	}

	if s.jsonOutput {
		if err := printJSON(cmd.OutOrStdout(), s.left, s.right, res); err != nil {
			return WrapCLIError(ExitUsageError, "failed to write output", err)
		}
	} else {
		printText(cmd.OutOrStdout(), res)
	}

	if s.verbose {
		printDetails(cmd.ErrOrStderr(), res)
		metrics.Print(cmd.ErrOrStderr(), stats)
	}
	return nil
}

func resolveSettings(cmd *cobra.Command, flags *rootFlags, args []string) (settings, error) {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return settings{}, err
	}

	s := settings{
		chunkSize:  cfg.ChunkSize,
		jsonOutput: cfg.JSON,
		verbose:    cfg.Verbose,
		progress:   cfg.Progress,
	}
	chunkFlagSet := cmd.Flags().Changed("chunk-size")
	if chunkFlagSet {
		if !validChunkSize(flags.chunkSize) {
			return settings{}, NewCLIError(ExitUsageError,
				fmt.Sprintf("invalid --chunk-size %d: must be between 1 and %d", flags.chunkSize, compare.MaxChunkSize))
		}
		s.chunkSize = flags.chunkSize
	}
	if cmd.Flags().Changed("json") {
		s.jsonOutput = flags.jsonOutput
	}
	if cmd.Flags().Changed("verbose") {
		s.verbose = flags.verbose
	}
	if cmd.Flags().Changed("progress") {
		s.progress = flags.progress
	}

	if len(args) >= 2 {
		s.left, s.right = args[0], args[1]
		if len(args) == 3 {
			if n, ok := parseChunkSize(args[2]); ok {
				s.chunkSize = n
			} else {
				warnInvalidChunk(cmd.ErrOrStderr(), s.chunkSize)
			}
		}
		return s, nil
	}

	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	if len(args) == 1 {
		s.left = args[0]
	} else if s.left, err = p.path("Enter path for first file: "); err != nil {
		return settings{}, err
	}
	if s.right, err = p.path("Enter path for second file: "); err != nil {
		return settings{}, err
	}
	if !chunkFlagSet {
		s.chunkSize = p.chunkSize(s.chunkSize)
	}
	return s, nil
}

func loadConfig(path string) (config.Config, error) {
	required := path != ""
	if !required {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
		path = p
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return config.Config{}, WrapCLIError(ExitUsageError, "invalid configuration", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func mapCompareError(err error) error {
	var (
		openErr *compare.OpenError
		statErr *compare.StatError
		readErr *compare.ReadError
	)
	switch {
	case errors.As(err, &openErr):
		return WrapCLIError(ExitFileError, "could not open files", err)
	case errors.As(err, &statErr):
		return WrapCLIError(ExitFileError, "could not read file size", err)
	case errors.As(err, &readErr):
		return WrapCLIError(ExitFileError, "error reading files", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return WrapCLIError(ExitFileError, "comparison interrupted", err)
	default:
		return WrapCLIError(ExitFileError, "comparison failed", err)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115
}
