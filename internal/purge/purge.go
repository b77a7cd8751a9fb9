package purge

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"imgmin/internal/classifier"
	"imgmin/internal/logger"
	"imgmin/internal/report"
	"imgmin/internal/statistics"

	"github.com/sirupsen/logrus"
)

// ErrAborted is returned when the user declines the confirmation prompt.
var ErrAborted = errors.New("aborted by user")

var affirmative = []string{"y", "yes"}

// Purger deletes previously generated output files from a directory.
type Purger struct {
	in       *bufio.Reader
	prompt   io.Writer
	reporter *report.Reporter
	tally    *statistics.Tally
	logger   *logrus.Logger
}

// NewPurger returns a Purger that asks for confirmation on prompt and reads
// the answer from in.
func NewPurger(in io.Reader, prompt io.Writer, reporter *report.Reporter, tally *statistics.Tally, log *logrus.Logger) *Purger {
	return &Purger{
		in:       bufio.NewReader(in),
		prompt:   prompt,
		reporter: reporter,
		tally:    tally,
		logger:   log,
	}
}

// Confirm prints msg as a yes/no question and reports whether the answer
// was exactly "y" or "yes".
func (p *Purger) Confirm(msg string) (bool, error) {
	fmt.Fprintf(p.prompt, "%s (y/n): ", msg)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	return slices.Contains(affirmative, strings.TrimRight(line, "\r\n")), nil
}

// Run removes every image in dir whose name carries the generated-output
// marker. Nothing is touched unless the user confirms or assumeYes is set.
// With dryRun the matching files are only listed.
func (p *Purger) Run(dir string, assumeYes, dryRun bool) error {
	if err := classifier.RequireDirectory(dir); err != nil {
		return err
	}

	if !assumeYes {
		ok, err := p.Confirm(fmt.Sprintf(
			"The action 'remove' will delete any file that includes '%s' in directory '%s', continue?",
			classifier.MarkerSuffix, dir))
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !classifier.IsGenerated(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		log := logger.WithFileOperation(p.logger, path, "remove")

		if dryRun {
			p.reporter.WouldRemove(path)
			continue
		}
		if err := os.Remove(path); err != nil {
			log.WithError(err).Error("Could not remove file")
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
		p.tally.IncrementFilesRemoved()
		p.reporter.Removed(path)
		log.Debug("Removed generated file")
	}
	return nil
}
