package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"filestoprompt/pkg/combine"
	"filestoprompt/pkg/config"
	"filestoprompt/pkg/logging"
	"filestoprompt/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runCombine resolves the configuration and runs the aggregator over the
// given paths.
func runCombine(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags(), args)
	if err != nil {
		return &UsageError{Err: err}
	}

	logger := logging.Setup(cmd.ErrOrStderr(), cfg.Verbose, AppName, version.Get().Version)
	if cfg.ConfigFile != "" {
		logger.Debug("Loaded config file", zap.String("file", cfg.ConfigFile))
	}

	// Roots are checked before the output file is created so a failed run
	// leaves an existing file untouched.
	if err := combine.CheckRoots(cfg.Roots); err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			logger.Error("Failed to create output file", zap.String("file", cfg.Output), zap.Error(err))
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.Error("Failed to close output file", zap.String("file", cfg.Output), zap.Error(err))
			}
		}()
		out = f
	}

	writer := bufio.NewWriter(out)
	opts := cfg.CombineOptions()
	agg := combine.NewAggregator(opts, combine.NewSink(opts.Format, writer), combine.NewOSReader(logger), logger)

	summary, runErr := agg.Run(cfg.Roots)
	if err := writer.Flush(); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to flush output: %w", err)
	}
	if runErr != nil {
		return runErr
	}

	logger.Debug("Successfully combined files",
		zap.String("outputFile", cfg.Output),
		zap.Int("totalFiles", summary.Emitted),
		zap.Int("skippedFiles", summary.Skipped))
	return nil
}
