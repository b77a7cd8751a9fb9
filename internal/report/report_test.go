package report

import (
	"bytes"
	"errors"
	"testing"

	"imgmin/internal/compressor"
	"imgmin/internal/statistics"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0B"},
		{1, "1B"},
		{1023, "1023B"},
		{1024, "1KB"},
		{1536, "1.5KB"},
		{6000, "5.86KB"},
		{10000, "9.77KB"},
		{1048576, "1MB"},
		{5 * 1024 * 1024 * 1024, "5GB"},
		{1 << 40, "1TB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.bytes), "bytes=%d", tt.bytes)
	}
}

func TestFormatSizeUnitIsMonotonic(t *testing.T) {
	unitIndex := func(s string) int {
		for i := len(sizeUnits) - 1; i >= 0; i-- {
			if bytes.HasSuffix([]byte(s), []byte(sizeUnits[i])) {
				return i
			}
		}
		return -1
	}
	prev := 0
	for n := int64(1); n < 1<<50; n = n*3 + 7 {
		idx := unitIndex(FormatSize(n))
		assert.GreaterOrEqual(t, idx, prev, "n=%d", n)
		prev = idx
	}
}

func TestOutcomeKept(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false)
	r.Outcome(compressor.Outcome{
		Kind:          compressor.Kept,
		SourcePath:    "/tmp/photos/a.png",
		OutputPath:    "/tmp/photos/a-min.png",
		OriginalSize:  10000,
		CandidateSize: 6000,
		Percent:       40,
	})
	assert.Equal(t, "Compressed file 'a.png' from 9.77KB to 5.86KB (40%)\n", buf.String())
}

func TestOutcomeKeptRenamed(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false)
	r.Outcome(compressor.Outcome{
		Kind:          compressor.Kept,
		SourcePath:    "a.png",
		OutputPath:    "small.png",
		OriginalSize:  2048,
		CandidateSize: 1024,
		Percent:       50,
		Renamed:       true,
	})
	assert.Equal(t, "Compressed file 'a.png' -> 'small.png' from 2KB to 1KB (50%)\n", buf.String())
}

func TestOutcomeStyled(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, true)
	r.Outcome(compressor.Outcome{
		Kind:          compressor.Kept,
		SourcePath:    "a.png",
		OriginalSize:  2048,
		CandidateSize: 1024,
		Percent:       50,
	})
	assert.Contains(t, buf.String(), "\x1b[31m2KB\x1b[")
	assert.Contains(t, buf.String(), "\x1b[32m1KB\x1b[")
}

func TestOutcomeFailures(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false)
	r.Outcome(compressor.Outcome{Kind: compressor.Rejected, SourcePath: "dir/a.png"})
	r.Outcome(compressor.Outcome{Kind: compressor.Errored, SourcePath: "dir/b.png", Err: errors.New("bad header")})
	assert.Equal(t, "Failed to compress 'a.png'\nFailed to compress 'b.png': bad header\n", buf.String())
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false)

	tally := statistics.NewTally()
	r.Summary(tally)
	assert.Empty(t, buf.String())

	tally.IncrementFilesRejected()
	r.Summary(tally)
	assert.Equal(t, "1 file failed, try switching compression method.\n", buf.String())

	buf.Reset()
	tally.IncrementFilesErrored()
	r.Summary(tally)
	assert.Equal(t, "2 files failed, try switching compression method.\n", buf.String())
}

func TestRemovedAndOutputIgnored(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false)
	r.Removed("/x/a-min.png")
	r.OutputIgnored()
	assert.Equal(t, "Removed '/x/a-min.png'\nOutput name only works for single images.\n", buf.String())
}
