package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// iconDir and iconDirEntry are the little-endian ICONDIR and ICONDIRENTRY
// records that precede the image payload of an icon file.
type iconDir struct {
	Reserved uint16
	Type     uint16
	Count    uint16
}

type iconDirEntry struct {
	Width      uint8
	Height     uint8
	ColorCount uint8
	Reserved   uint8
	Planes     uint16
	BitCount   uint16
	Size       uint32
	Offset     uint32
}

const iconHeaderSize = 6 + 16

// encodeICO writes img as a single-entry icon holding a PNG payload. A
// paletted image stays paletted in the payload.
func encodeICO(w io.Writer, img image.Image) error {
	var payload bytes.Buffer
	if err := imaging.Encode(&payload, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return err
	}

	bounds := img.Bounds()
	entry := iconDirEntry{
		Width:    iconDimension(bounds.Dx()),
		Height:   iconDimension(bounds.Dy()),
		Planes:   1,
		BitCount: 32,
		Size:     uint32(payload.Len()),
		Offset:   iconHeaderSize,
	}
	if p, ok := img.(*image.Paletted); ok {
		entry.BitCount = paletteDepth(len(p.Palette))
		if len(p.Palette) < 256 {
			entry.ColorCount = uint8(len(p.Palette))
		}
	}

	var header bytes.Buffer
	if err := binary.Write(&header, binary.LittleEndian, iconDir{Type: 1, Count: 1}); err != nil {
		return err
	}
	if err := binary.Write(&header, binary.LittleEndian, entry); err != nil {
		return err
	}
	if _, err := w.Write(header.Bytes()); err != nil {
		return fmt.Errorf("write icon header: %w", err)
	}
	if _, err := w.Write(payload.Bytes()); err != nil {
		return fmt.Errorf("write icon payload: %w", err)
	}
	return nil
}

// iconDimension stores sizes of 256 and above as 0.
func iconDimension(n int) uint8 {
	if n >= 256 {
		return 0
	}
	return uint8(n)
}

// paletteDepth returns the smallest PNG bit depth that indexes n colors.
func paletteDepth(n int) uint16 {
	switch {
	case n <= 2:
		return 1
	case n <= 4:
		return 2
	case n <= 16:
		return 4
	default:
		return 8
	}
}
