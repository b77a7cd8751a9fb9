package batch

import (
	"fmt"
	"path/filepath"

	"imgmin/internal/classifier"
	"imgmin/internal/compressor"
	"imgmin/internal/config"
	"imgmin/internal/logger"
	"imgmin/internal/purge"
	"imgmin/internal/report"
	"imgmin/internal/statistics"

	"github.com/sirupsen/logrus"
)

// Runner dispatches one invocation to purge, single-file or directory mode.
type Runner struct {
	config     *config.Config
	logger     *logrus.Logger
	tally      *statistics.Tally
	compressor compressor.Compressor
	reporter   *report.Reporter
	purger     *purge.Purger
}

// NewRunner returns a new Runner.
func NewRunner(
	cfg *config.Config,
	logger *logrus.Logger,
	tally *statistics.Tally,
	comp compressor.Compressor,
	reporter *report.Reporter,
	purger *purge.Purger,
) *Runner {
	return &Runner{
		config:     cfg,
		logger:     logger,
		tally:      tally,
		compressor: comp,
		reporter:   reporter,
		purger:     purger,
	}
}

// Run executes the configured mode. Per-file compression failures are
// reported and counted but do not make Run fail.
func (r *Runner) Run() error {
	log := logger.WithOperation(r.logger, "run")
	defer func() {
		r.tally.Finalize()
		log.Debugf("Run finished: %s", r.tally.GetSummary())
	}()

	if r.config.Remove {
		return r.purger.Run(r.config.Path, r.config.AssumeYes, r.config.DryRun)
	}

	kind, err := classifier.Classify(r.config.Path)
	if err != nil {
		return err
	}
	log.Debugf("Classified %s as %s", r.config.Path, kind)

	switch kind {
	case classifier.SingleImage:
		r.compressFile(r.config.Path, r.options(r.config.Output))
		return nil
	case classifier.Directory:
		return r.compressDirectory()
	default:
		return fmt.Errorf("%w: '%s'", classifier.ErrInvalidPath, r.config.Path)
	}
}

// compressDirectory compresses every image directly inside the configured
// directory, one at a time in listing order.
func (r *Runner) compressDirectory() error {
	dir, err := filepath.Abs(r.config.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	if r.config.Output != "" {
		r.reporter.OutputIgnored()
	}

	files, err := classifier.ListImages(dir)
	if err != nil {
		return err
	}
	r.logger.Infof("Found %d images to process in %s", len(files), dir)

	opts := r.options("")
	for _, path := range files {
		r.compressFile(path, opts)
	}

	r.reporter.Summary(r.tally)
	return nil
}

func (r *Runner) compressFile(path string, opts compressor.Options) {
	res := r.compressor.Compress(path, opts)
	r.reporter.Outcome(res)
	logger.WithFile(r.logger, path).WithFields(logrus.Fields{
		"result":   res.Kind.String(),
		"duration": res.Duration(),
	}).Debug("File processed")
}

func (r *Runner) options(outputName string) compressor.Options {
	return compressor.Options{
		Quality:    r.config.Quality,
		Method:     r.config.QuantizeMethod(),
		Colors:     r.config.Colors,
		Replace:    r.config.Replace,
		OutputName: outputName,
		DryRun:     r.config.DryRun,
	}
}
