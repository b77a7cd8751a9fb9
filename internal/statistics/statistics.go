package statistics

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
)

// Tally counts per-file results for a single invocation.
// A new Tally is created for each run and passed explicitly to the
// components that update it.
type Tally struct {
	FilesProcessed int64
	FilesKept      int64
	FilesRejected  int64
	FilesErrored   int64
	FilesRemoved   int64

	BytesBefore int64
	BytesAfter  int64

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// NewTally returns a zeroed Tally with its clock started.
func NewTally() *Tally {
	return &Tally{StartTime: time.Now()}
}

// IncrementFilesProcessed increases the count of processed files by 1.
func (t *Tally) IncrementFilesProcessed() {
	atomic.AddInt64(&t.FilesProcessed, 1)
}

// RecordKept records a file whose quantized version was smaller.
func (t *Tally) RecordKept(before, after int64) {
	atomic.AddInt64(&t.FilesKept, 1)
	atomic.AddInt64(&t.BytesBefore, before)
	atomic.AddInt64(&t.BytesAfter, after)
}

// IncrementFilesRejected increases the count of files that did not shrink by 1.
func (t *Tally) IncrementFilesRejected() {
	atomic.AddInt64(&t.FilesRejected, 1)
}

// IncrementFilesErrored increases the count of files the codec could not process by 1.
func (t *Tally) IncrementFilesErrored() {
	atomic.AddInt64(&t.FilesErrored, 1)
}

// IncrementFilesRemoved increases the count of purged files by 1.
func (t *Tally) IncrementFilesRemoved() {
	atomic.AddInt64(&t.FilesRemoved, 1)
}

// Failures returns the number of files that were not compressed,
// whether they did not shrink or could not be processed.
func (t *Tally) Failures() int64 {
	return atomic.LoadInt64(&t.FilesRejected) + atomic.LoadInt64(&t.FilesErrored)
}

// BytesSaved returns the total reduction over all kept files.
func (t *Tally) BytesSaved() int64 {
	return atomic.LoadInt64(&t.BytesBefore) - atomic.LoadInt64(&t.BytesAfter)
}

// Finalize stops the clock.
func (t *Tally) Finalize() {
	t.EndTime = time.Now()
	t.Duration = t.EndTime.Sub(t.StartTime)
}

// GetSummary returns a one-line digest suitable for debug logging.
func (t *Tally) GetSummary() string {
	return fmt.Sprintf("processed=%d kept=%d rejected=%d errored=%d removed=%d saved=%s duration=%v",
		atomic.LoadInt64(&t.FilesProcessed),
		atomic.LoadInt64(&t.FilesKept),
		atomic.LoadInt64(&t.FilesRejected),
		atomic.LoadInt64(&t.FilesErrored),
		atomic.LoadInt64(&t.FilesRemoved),
		humanize.IBytes(uint64(max(t.BytesSaved(), 0))),
		t.Duration)
}
