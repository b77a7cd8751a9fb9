package compressor

import (
	"errors"
	"time"

	"imgmin/internal/codec"
)

var (
	// ErrNotSmaller is recorded when the quantized image is not smaller than the original.
	ErrNotSmaller = errors.New("quantized image is not smaller than the original")
	// ErrOutputIsInput is returned when the derived output would overwrite the
	// source without replace being requested.
	ErrOutputIsInput = errors.New("output path equals input path; use replace to overwrite")
)

// Kind tags the result of compressing a single file.
type Kind int

const (
	// Kept means the quantized image was smaller and was (or would be) written.
	Kept Kind = iota
	// Rejected means the quantized image was not smaller and was discarded.
	Rejected
	// Errored means the file could not be decoded, encoded or written.
	Errored
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case Kept:
		return "kept"
	case Rejected:
		return "rejected"
	default:
		return "error"
	}
}

// Options defines parameters for compressing a single file.
type Options struct {
	Quality    int
	Method     codec.Method
	Colors     int
	Replace    bool
	OutputName string
	DryRun     bool
}

// Outcome describes the result of compressing a single file.
type Outcome struct {
	Kind          Kind
	SourcePath    string
	OutputPath    string
	OriginalSize  int64
	CandidateSize int64
	Percent       int
	Renamed       bool
	DryRun        bool
	Err           error
	StartedAt     time.Time
	FinishedAt    time.Time
}

// Duration returns how long the file took to process.
func (o Outcome) Duration() time.Duration {
	return o.FinishedAt.Sub(o.StartedAt)
}

// Failed reports whether the file was not compressed.
func (o Outcome) Failed() bool {
	return o.Kind != Kept
}

// Compressor defines the interface for image compression.
type Compressor interface {
	// Compress quantizes a single image and keeps the result only if it is smaller.
	Compress(path string, opts Options) Outcome
}
