package report

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"

	"imgmin/internal/compressor"
	"imgmin/internal/statistics"

	"github.com/fatih/color"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// FormatSize renders a byte count with a binary unit suffix, rounded to two
// decimals with trailing zeros dropped: 1536 -> "1.5KB".
func FormatSize(bytes int64) string {
	value := float64(bytes)
	exp := 0
	for value >= 1024 && exp < len(sizeUnits)-1 {
		value /= 1024
		exp++
	}
	value = math.Round(value*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + sizeUnits[exp]
}

// Reporter writes one human-readable line per event to its writer.
type Reporter struct {
	out  io.Writer
	warn *color.Color
	ok   *color.Color
}

// New returns a Reporter writing to out. When styled is false no ANSI
// sequences are emitted; callers resolve it once at startup.
func New(out io.Writer, styled bool) *Reporter {
	warn := color.New(color.FgRed)
	ok := color.New(color.FgGreen)
	if styled {
		warn.EnableColor()
		ok.EnableColor()
	} else {
		warn.DisableColor()
		ok.DisableColor()
	}
	return &Reporter{out: out, warn: warn, ok: ok}
}

// Outcome prints the result of compressing a single file.
func (r *Reporter) Outcome(o compressor.Outcome) {
	name := filepath.Base(o.SourcePath)
	switch o.Kind {
	case compressor.Kept:
		renamed := ""
		if o.Renamed {
			renamed = fmt.Sprintf(" -> '%s'", filepath.Base(o.OutputPath))
		}
		fmt.Fprintf(r.out, "Compressed file '%s'%s from %s to %s (%d%%)\n",
			name, renamed,
			r.warn.Sprint(FormatSize(o.OriginalSize)),
			r.ok.Sprint(FormatSize(o.CandidateSize)),
			o.Percent)
	case compressor.Rejected:
		fmt.Fprintf(r.out, "Failed to compress '%s'\n", name)
	default:
		fmt.Fprintf(r.out, "Failed to compress '%s': %v\n", name, o.Err)
	}
}

// Removed prints a purged file path.
func (r *Reporter) Removed(path string) {
	fmt.Fprintf(r.out, "Removed '%s'\n", path)
}

// WouldRemove prints a file a dry-run purge would delete.
func (r *Reporter) WouldRemove(path string) {
	fmt.Fprintf(r.out, "Would remove '%s'\n", path)
}

// OutputIgnored warns that an explicit output name has no effect in
// directory mode.
func (r *Reporter) OutputIgnored() {
	fmt.Fprintln(r.out, "Output name only works for single images.")
}

// Summary prints the failure count of a batch, if any.
func (r *Reporter) Summary(tally *statistics.Tally) {
	fails := tally.Failures()
	if fails == 0 {
		return
	}
	plural := "s"
	if fails == 1 {
		plural = ""
	}
	fmt.Fprintf(r.out, "%d file%s failed, try switching compression method.\n", fails, plural)
}
