package compressor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"imgmin/internal/classifier"
	"imgmin/internal/codec"
	"imgmin/internal/logger"
	"imgmin/internal/statistics"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// DefaultCompressor is the default implementation of the Compressor interface.
type DefaultCompressor struct {
	codec  codec.Codec
	tally  *statistics.Tally
	logger *logrus.Logger
}

// NewDefaultCompressor creates a new DefaultCompressor that records results in tally.
func NewDefaultCompressor(c codec.Codec, tally *statistics.Tally, log *logrus.Logger) *DefaultCompressor {
	return &DefaultCompressor{
		codec:  c,
		tally:  tally,
		logger: log,
	}
}

// OutputPath derives the destination of a compressed file. An explicit
// output name replaces the base name; otherwise the generated-file marker is
// appended unless the source is being replaced.
func OutputPath(path string, opts Options) (string, error) {
	dir := filepath.Dir(path)
	fileName := filepath.Base(path)
	ext, _ := classifier.Extension(fileName)
	name := strings.TrimSuffix(fileName, "."+ext)

	switch {
	case opts.OutputName != "":
		name = strings.TrimSuffix(opts.OutputName, "."+ext)
	case !opts.Replace:
		name += classifier.MarkerSuffix
	}

	out := filepath.Join(dir, name+"."+ext)
	if !opts.Replace && out == filepath.Clean(path) {
		return "", ErrOutputIsInput
	}
	return out, nil
}

// Compress quantizes the image at path into a temporary sibling file and
// moves it onto the destination only if it is smaller than the original.
// The temporary file never outlives the call.
func (c *DefaultCompressor) Compress(path string, opts Options) Outcome {
	res := Outcome{
		SourcePath: path,
		Renamed:    opts.OutputName != "",
		DryRun:     opts.DryRun,
		StartedAt:  time.Now(),
	}
	log := logger.WithFileOperation(c.logger, path, "compress")
	c.tally.IncrementFilesProcessed()

	fail := func(err error) Outcome {
		res.Kind = Errored
		res.Err = err
		res.FinishedAt = time.Now()
		c.tally.IncrementFilesErrored()
		log.WithError(err).Warn("Compression error")
		return res
	}

	outPath, err := OutputPath(path, opts)
	if err != nil {
		return fail(err)
	}
	res.OutputPath = outPath

	info, err := os.Stat(path)
	if err != nil {
		return fail(fmt.Errorf("stat error: %w", err))
	}
	res.OriginalSize = info.Size()

	ext, _ := classifier.Extension(filepath.Base(path))
	format, err := codec.FormatFor(ext)
	if err != nil {
		return fail(err)
	}

	img, err := c.codec.Decode(path)
	if err != nil {
		return fail(err)
	}
	quantized, err := c.codec.Quantize(img, opts.Method, opts.Colors)
	if err != nil {
		return fail(fmt.Errorf("quantize error: %w", err))
	}

	base := strings.TrimSuffix(filepath.Base(outPath), "."+ext)
	tmp, err := os.CreateTemp(filepath.Dir(outPath), base+"-tmp-*."+ext)
	if err != nil {
		return fail(fmt.Errorf("create tmp file error: %w", err))
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).Warn("Could not remove tmp file")
		}
	}()

	if err := c.codec.Encode(tmp, quantized, format, opts.Quality); err != nil {
		_ = tmp.Close()
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(fmt.Errorf("write tmp file error: %w", err))
	}

	tmpInfo, err := os.Stat(tmpPath)
	if err != nil {
		return fail(fmt.Errorf("stat compressed error: %w", err))
	}
	res.CandidateSize = tmpInfo.Size()

	log.WithFields(logrus.Fields{
		"before": humanize.IBytes(uint64(res.OriginalSize)),
		"after":  humanize.IBytes(uint64(res.CandidateSize)),
		"method": opts.Method.String(),
		"colors": opts.Colors,
	}).Debug("Quantized image")

	if res.CandidateSize >= res.OriginalSize {
		res.Kind = Rejected
		res.Err = ErrNotSmaller
		res.FinishedAt = time.Now()
		c.tally.IncrementFilesRejected()
		log.Debug("Compressed file not smaller than original, discarded")
		return res
	}

	res.Percent = int((res.OriginalSize - res.CandidateSize) * 100 / res.OriginalSize)

	if opts.DryRun {
		log.Debugf("DRY-RUN: Would write %s", outPath)
	} else {
		if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
			return fail(fmt.Errorf("chmod error: %w", err))
		}
		if err := os.Rename(tmpPath, outPath); err != nil {
			return fail(fmt.Errorf("rename error: %w", err))
		}
	}

	res.Kind = Kept
	res.FinishedAt = time.Now()
	c.tally.RecordKept(res.OriginalSize, res.CandidateSize)
	return res
}
