package codec

import (
	"errors"
	"fmt"
	"image"
	"io"
)

// Method selects the palette-building algorithm used by Quantize.
type Method int

const (
	MedianCut Method = iota
	MeanCut
	WeightedMedianCut
	DitheredMedianCut
)

// DefaultMethod is the method used when none is given.
const DefaultMethod = WeightedMedianCut

// String returns a human-readable name of the method.
func (m Method) String() string {
	switch m {
	case MedianCut:
		return "median-cut"
	case MeanCut:
		return "mean-cut"
	case WeightedMedianCut:
		return "weighted-median-cut"
	case DitheredMedianCut:
		return "dithered-median-cut"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// Valid reports whether m is one of the known methods.
func (m Method) Valid() bool {
	return m >= MedianCut && m <= DitheredMedianCut
}

// Format is an encoded image format.
type Format int

const (
	PNG Format = iota
	JPEG
	ICO
)

// String returns the string representation of the Format.
func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case ICO:
		return "ICO"
	default:
		return "Unknown"
	}
}

// ErrUnsupportedFormat is returned for extensions the codec cannot encode.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// FormatFor maps a file extension (without the dot) to its encoded format.
func FormatFor(ext string) (Format, error) {
	switch ext {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "ico":
		return ICO, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Codec decodes, palette-quantizes and re-encodes images.
type Codec interface {
	// Decode reads the image stored at path.
	Decode(path string) (image.Image, error)
	// Quantize reduces img to a palette of at most colors entries.
	Quantize(img image.Image, method Method, colors int) (image.Image, error)
	// Encode writes img to w in the given format. Quality applies to
	// formats that support it.
	Encode(w io.Writer, img image.Image, format Format, quality int) error
}
