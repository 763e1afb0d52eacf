package meta

import (
	"bytes"
	"fmt"

	"github.com/kovidgoyal/imagemeta/types"
	"github.com/rwcarlsen/goexif/exif"
	exif_tiff "github.com/rwcarlsen/goexif/tiff"
)

var _ = fmt.Println

type ColorMode int

const (
	Grayscale ColorMode = iota
	Indexed
	RGB
)

func (m ColorMode) String() string {
	switch m {
	case Grayscale:
		return "Grayscale"
	case Indexed:
		return "Indexed"
	case RGB:
		return "RGB"
	}
	return fmt.Sprintf("ColorMode(%d)", int(m))
}

func (m ColorMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Dimensions of an image in pixels.
type Dimensions struct {
	Width, Height uint32
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Color describes how pixels are stored. Resolution is the number of bits per
// channel, or per palette index for Indexed images.
type Color struct {
	Mode         ColorMode
	AlphaChannel bool
	Resolution   uint8
}

func (c Color) String() string {
	a := ""
	if c.AlphaChannel {
		a = "A"
	}
	return fmt.Sprintf("%s%s(%d)", c.Mode, a, c.Resolution)
}

// Data represents the metadata for an image.
type Data struct {
	Format     types.Format
	Dimensions Dimensions
	Color      Color
	// The number of animation frames declared by the container, zero when the
	// image is not an animation.
	AnimationFrames uint
	exifData        []byte
}

func (md *Data) IsAnimation() bool {
	return md.AnimationFrames > 0
}

func (md *Data) String() string {
	return fmt.Sprintf("%s %s %s frames=%d", md.Format, md.Dimensions, md.Color, md.AnimationFrames)
}

func (md *Data) SetExifData(data []byte) {
	md.exifData = data
}

// ExifData returns the raw EXIF payload found in the image container, nil
// if there was none.
func (md *Data) ExifData() []byte {
	return md.exifData
}

// Returns an extracted EXIF metadata object from this metadata.
//
// An error is returned if the EXIF profile could not be correctly parsed.
//
// If no EXIF data was found, nil is returned without an error.
func (md *Data) Exif() (*exif.Exif, error) {
	if len(md.exifData) == 0 {
		return nil, nil
	}
	data := bytes.TrimPrefix(md.exifData, []byte("Exif\x00\x00"))
	return exif.Decode(bytes.NewReader(data))
}

// Orientation returns the EXIF orientation tag in the range 1-8, or zero if
// it is absent or unreadable.
func (md *Data) Orientation() int {
	x, err := md.Exif()
	if err != nil || x == nil {
		return 0
	}
	orient, err := x.Get(exif.Orientation)
	if err != nil || orient == nil || orient.Format() != exif_tiff.IntVal {
		return 0
	}
	if v, err := orient.Int(0); err == nil && v > 0 && v < 9 {
		return v
	}
	return 0
}
