package webpmeta

import (
	"fmt"
	"io"

	"github.com/kovidgoyal/imagemeta/meta"
	"github.com/kovidgoyal/imagemeta/meta/riff"
	"github.com/kovidgoyal/imagemeta/streams"
	"github.com/kovidgoyal/imagemeta/types"
)

var _ = fmt.Print

var (
	fccWEBP = riff.FourCC{'W', 'E', 'B', 'P'}
	fccVP8  = riff.FourCC{'V', 'P', '8', ' '}
	fccVP8L = riff.FourCC{'V', 'P', '8', 'L'}
	fccVP8X = riff.FourCC{'V', 'P', '8', 'X'}
	fccANMF = riff.FourCC{'A', 'N', 'M', 'F'}
	fccEXIF = riff.FourCC{'E', 'X', 'I', 'F'}
)

const (
	vp8lSignature = 0x2f
	max_exif_size = 64 * 1024 * 1024
)

var vp8StartCode = [3]byte{0x9d, 0x01, 0x2a}

// VP8Dimension splits a 16 bit little endian field of a VP8 key frame header
// into the 14 bit size and the 2 bit upscaling factor.
func VP8Dimension(b [2]byte) (size uint16, scale uint8) {
	size = uint16(b[1]&0x3f)<<8 | uint16(b[0])
	scale = b[1] >> 6
	return
}

// VP8LDimensions unpacks the 14 bit width and height that follow the VP8L
// signature byte. Both are stored minus one.
func VP8LDimensions(b [4]byte) (width, height uint32) {
	width = uint32(b[1]&0x3f)<<8 | uint32(b[0])
	height = uint32(b[3]&0x0f)<<10 | uint32(b[2])<<2 | uint32(b[1]&0xc0)>>6
	return width + 1, height + 1
}

// VP8XDimensions decodes the 24 bit little endian canvas width and height of
// a VP8X chunk. Both are stored minus one.
func VP8XDimensions(b [6]byte) (width, height uint32) {
	width = uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	height = uint32(b[3]) | uint32(b[4])<<8 | uint32(b[5])<<16
	return width + 1, height + 1
}

func ExtractMetadata(r streams.Source) (md *meta.Data, err error) {
	rr, err := riff.Open(r)
	if err != nil {
		return nil, err
	}
	if rr.FormType() != fccWEBP {
		return nil, meta.ErrInvalidSignature
	}
	var (
		dims      meta.Dimensions
		have_dims bool
		frames    uint
		exif_data []byte
	)
	for {
		c, err := rr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch c.ID {
		case fccVP8X:
			if dims, err = read_vp8x(c); err != nil {
				return nil, err
			}
			have_dims = true
		case fccVP8:
			if !have_dims {
				if dims, err = read_vp8(c); err != nil {
					return nil, err
				}
				have_dims = true
			}
		case fccVP8L:
			if !have_dims {
				if dims, err = read_vp8l(c); err != nil {
					return nil, err
				}
				have_dims = true
			}
		case fccANMF:
			frames++
		case fccEXIF:
			if exif_data == nil && c.Size <= max_exif_size {
				if exif_data, err = streams.ReadPayload(c, int64(c.Size)); err != nil {
					return nil, fmt.Errorf("webp: reading EXIF chunk: %w", err)
				}
			}
		}
	}
	if !have_dims {
		return nil, meta.Corrupt(types.WEBP, "no VP8, VP8L or VP8X chunk found")
	}
	md = &meta.Data{
		Format:     types.WEBP,
		Dimensions: dims,
		// the chunks actually present are not inspected for alpha
		Color: meta.Color{Mode: meta.RGB, AlphaChannel: true, Resolution: 8},
	}
	if frames > 1 {
		md.AnimationFrames = frames
	}
	md.SetExifData(exif_data)
	return md, nil
}

func read_vp8(c *riff.Chunk) (d meta.Dimensions, err error) {
	// See https://tools.ietf.org/html/rfc6386#section-9.1
	var b [10]byte
	if err = streams.ReadFull(c, b[:3]); err != nil {
		return d, fmt.Errorf("webp: reading VP8 frame tag: %w", err)
	}
	if b[0]&1 != 0 {
		return d, meta.Corrupt(types.WEBP, "VP8 frame is not a key frame")
	}
	if err = streams.ReadFull(c, b[3:]); err != nil {
		return d, fmt.Errorf("webp: reading VP8 key frame header: %w", err)
	}
	if [3]byte(b[3:6]) != vp8StartCode {
		return d, meta.Corrupt(types.WEBP, "invalid VP8 start code: %x", b[3:6])
	}
	w, _ := VP8Dimension([2]byte(b[6:8]))
	h, _ := VP8Dimension([2]byte(b[8:10]))
	return meta.Dimensions{Width: uint32(w), Height: uint32(h)}, nil
}

func read_vp8l(c *riff.Chunk) (d meta.Dimensions, err error) {
	// See https://developers.google.com/speed/webp/docs/webp_lossless_bitstream_specification
	var b [5]byte
	if err = streams.ReadFull(c, b[:]); err != nil {
		return d, fmt.Errorf("webp: reading VP8L header: %w", err)
	}
	if b[0] != vp8lSignature {
		return d, meta.Corrupt(types.WEBP, "invalid VP8L signature: 0x%02x", b[0])
	}
	d.Width, d.Height = VP8LDimensions([4]byte(b[1:]))
	return d, nil
}

func read_vp8x(c *riff.Chunk) (d meta.Dimensions, err error) {
	var b [10]byte
	if err = streams.ReadFull(c, b[:]); err != nil {
		return d, fmt.Errorf("webp: reading VP8X chunk: %w", err)
	}
	// b[:4] holds the feature flags
	d.Width, d.Height = VP8XDimensions([6]byte(b[4:]))
	return d, nil
}
