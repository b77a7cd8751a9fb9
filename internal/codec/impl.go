package codec

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	ico "github.com/biessek/golang-ico"
	"github.com/disintegration/imaging"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/soniakeys/quant/mean"
	"github.com/soniakeys/quant/median"
	"golang.org/x/image/draw"
)

// DefaultCodec is the default implementation of the Codec interface.
type DefaultCodec struct{}

// NewDefaultCodec creates a new DefaultCodec instance.
func NewDefaultCodec() *DefaultCodec {
	return &DefaultCodec{}
}

// Decode reads an image from disk. JPEG images are rotated upright
// according to their EXIF orientation, since the re-encoded output
// carries no metadata.
func (c *DefaultCodec) Decode(path string) (image.Image, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".ico" {
		return decodeICO(path)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open error: %w", err)
	}

	if ext == ".jpg" || ext == ".jpeg" {
		img = applyOrientation(img, readOrientation(path))
	}
	return img, nil
}

// Quantize builds a palette of at most colors entries with the selected
// method and maps every pixel of img onto it.
func (c *DefaultCodec) Quantize(img image.Image, method Method, colors int) (image.Image, error) {
	if colors < 1 || colors > 256 {
		return nil, fmt.Errorf("palette size %d out of range 1-256", colors)
	}

	var (
		q      draw.Quantizer
		drawer draw.Drawer = draw.Src
	)
	switch method {
	case MedianCut:
		q = median.Quantizer(colors)
	case MeanCut:
		q = mean.Quantizer(colors)
	case WeightedMedianCut:
		q = quantize.MedianCutQuantizer{Aggregation: quantize.Mean}
	case DitheredMedianCut:
		q = quantize.MedianCutQuantizer{Aggregation: quantize.Mode}
		drawer = draw.FloydSteinberg
	default:
		return nil, fmt.Errorf("unknown quantization method %d", int(method))
	}

	palette := q.Quantize(make(color.Palette, 0, colors), img)
	if len(palette) > colors {
		palette = palette[:colors]
	}
	if len(palette) == 0 {
		return nil, fmt.Errorf("%s produced an empty palette", method)
	}

	bounds := img.Bounds()
	dst := image.NewPaletted(bounds, palette)
	drawer.Draw(dst, bounds, img, bounds.Min)
	return dst, nil
}

// Encode writes img in the requested format.
func (c *DefaultCodec) Encode(w io.Writer, img image.Image, format Format, quality int) error {
	var err error
	switch format {
	case PNG:
		err = imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
	case JPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case ICO:
		err = encodeICO(w, img)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("encode error: %w", err)
	}
	return nil
}

func decodeICO(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open error: %w", err)
	}
	defer f.Close()

	img, err := ico.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("open error: %w", err)
	}
	return img, nil
}

// readOrientation returns the EXIF orientation tag, or 1 when absent.
func readOrientation(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 1
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return v
}

func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
