package main

import (
	"fmt"
	"io"
	"os"

	"imgmin/internal/batch"
	"imgmin/internal/codec"
	"imgmin/internal/compressor"
	"imgmin/internal/config"
	"imgmin/internal/logger"
	"imgmin/internal/purge"
	"imgmin/internal/report"
	"imgmin/internal/statistics"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// newRootCmd builds the CLI. styled controls ANSI colors in the report and
// is resolved once by the caller.
func newRootCmd(styled bool) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "imgmin [path]",
		Short: "Shrink PNG, JPEG and ICO images by palette quantization",
		Long: `imgmin reduces the size of PNG, JPEG and ICO images by quantizing them
to a smaller color palette and re-encoding them.

The path may be a single image or a directory; in a directory every image
directly inside it is processed. Results are written next to the source with
a "-min" suffix unless --replace is given, and are only kept when they are
smaller than the original.

Use --remove to delete previously generated "-min" files from a directory.`,
		Version:       fmt.Sprintf("%s (built %s)", version, buildTime),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, args, styled)
		},
	}

	flags := cmd.Flags()
	flags.IntP("quality", "q", 75, "quality to compress with (1-99)")
	flags.BoolP("replace", "r", false, "replace existing file")
	flags.IntP("method", "m", int(codec.DefaultMethod), "method to compress with (0-3)")
	flags.Bool("remove", false, "delete all images containing '-min' (also -rm)")
	flags.BoolP("dry", "d", false, "run without writing any output")
	flags.IntP("colors", "c", 256, "number of colors in the output image (1-256)")
	flags.StringP("output", "o", "", "name of the output file (single images only)")
	flags.BoolP("assume-yes", "y", false, "do not ask for confirmation before removing")
	flags.Bool("verbose", false, "enable verbose logging")
	flags.String("log-file", "", "also write diagnostics to a rotated log file")

	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}
	return cmd
}

// run resolves the configuration and executes one invocation.
func run(cmd *cobra.Command, v *viper.Viper, args []string, styled bool) error {
	if len(args) > 0 {
		v.Set("path", args[0])
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		v.SetDefault("path", cwd)
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}

	log := setupLogger(cfg, cmd.ErrOrStderr())
	log.WithFields(logrus.Fields{
		"path":    cfg.Path,
		"quality": cfg.Quality,
		"method":  cfg.QuantizeMethod().String(),
		"colors":  cfg.Colors,
		"dry_run": cfg.DryRun,
	}).Debug("Starting imgmin")

	tally := statistics.NewTally()
	reporter := report.New(cmd.OutOrStdout(), styled)
	comp := compressor.NewDefaultCompressor(codec.NewDefaultCodec(), tally, log)
	purger := purge.NewPurger(cmd.InOrStdin(), cmd.OutOrStdout(), reporter, tally, log)

	return batch.NewRunner(cfg, log, tally, comp, reporter, purger).Run()
}

// setupLogger configures and returns a logger.
func setupLogger(cfg *config.Config, console io.Writer) *logrus.Logger {
	loggerCfg := logger.DefaultConfig()
	loggerCfg.FilePath = cfg.Logging.FilePath
	loggerCfg.MaxSize = cfg.Logging.MaxSize
	loggerCfg.MaxBackups = cfg.Logging.MaxBackups
	loggerCfg.MaxAge = cfg.Logging.MaxAge
	loggerCfg.Console = console

	if cfg.Logging.Verbose {
		loggerCfg.Level = "debug"
	}

	log, err := logger.NewLogger(loggerCfg)
	if err != nil {
		log = logrus.New()
		log.SetOutput(console)
		log.SetLevel(logrus.WarnLevel)
		log.WithError(err).Warn("Falling back to console logging")
	}
	return log
}

// normalizeArgs rewrites the two-letter "-rm" flag to "--remove", since
// pflag shorthands are a single character. Arguments after "--" are kept.
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	terminated := false
	for i, arg := range args {
		switch {
		case terminated:
		case arg == "--":
			terminated = true
		case arg == "-rm":
			arg = "--remove"
		}
		out[i] = arg
	}
	return out
}

// runCLI executes one invocation and returns the process exit code. Fatal
// errors are reported on out alongside the per-file results.
func runCLI(args []string, styled bool, in io.Reader, out, errOut io.Writer) int {
	cmd := newRootCmd(styled)
	cmd.SetArgs(normalizeArgs(args))
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(runCLI(os.Args[1:], !color.NoColor, os.Stdin, os.Stdout, os.Stderr))
}
