package gifmeta

import (
	"encoding/binary"
	"fmt"

	"github.com/kovidgoyal/imagemeta/meta"
	"github.com/kovidgoyal/imagemeta/streams"
	"github.com/kovidgoyal/imagemeta/types"
)

var _ = fmt.Print

const (
	sExtension       = 0x21
	sImageDescriptor = 0x2C
	sTrailer         = 0x3B
)

const (
	ePlainText      = 0x01
	eGraphicControl = 0xF9
	eComment        = 0xFE
	eApplication    = 0xFF
)

const (
	fColorTable         = 1 << 7
	fColorTableBitsMask = 7
)

// TableBytes returns the size in bytes of the color table announced by the
// packed fields byte of a logical screen or image descriptor.
func TableBytes(packed byte) int64 {
	if packed&fColorTable == 0 {
		return 0
	}
	return 3 * int64(2<<(packed&fColorTableBitsMask))
}

// ColorResolution returns the bits per primary color of the palette, from the
// packed fields byte of the logical screen descriptor.
func ColorResolution(packed byte) uint8 {
	return (packed>>4)&7 + 1
}

func ExtractMetadata(r streams.Source) (md *meta.Data, err error) {
	sig, err := streams.ReadSignature(r, 6)
	if err != nil {
		return nil, err
	}
	if v := string(sig); v != "GIF87a" && v != "GIF89a" {
		return nil, meta.ErrInvalidSignature
	}
	var lsd [7]byte
	if err = streams.ReadFull(r, lsd[:]); err != nil {
		return nil, fmt.Errorf("gif: reading logical screen descriptor: %w", err)
	}
	width := binary.LittleEndian.Uint16(lsd[0:2])
	height := binary.LittleEndian.Uint16(lsd[2:4])
	packed := lsd[4]
	// lsd[5] is the background color index and lsd[6] the pixel aspect ratio
	if err = streams.Skip(r, TableBytes(packed)); err != nil {
		return nil, err
	}
	frames, err := count_frames(r)
	if err != nil {
		return nil, err
	}
	md = &meta.Data{
		Format:     types.GIF,
		Dimensions: meta.Dimensions{Width: uint32(width), Height: uint32(height)},
		Color:      meta.Color{Mode: meta.Indexed, Resolution: ColorResolution(packed)},
	}
	if frames > 1 {
		md.AnimationFrames = frames
	}
	return md, nil
}

func count_frames(r streams.Source) (uint, error) {
	var frames uint
	for {
		b, err := streams.ReadU8(r)
		if err != nil {
			return 0, err
		}
		switch b {
		case sExtension:
			err = read_extension(r)
		case sImageDescriptor:
			if err = read_image_descriptor(r); err == nil {
				frames++
			}
		case sTrailer:
			return frames, nil
		default:
			return 0, meta.Corrupt(types.GIF, "unknown block type: 0x%02x", b)
		}
		if err != nil {
			return 0, err
		}
	}
}

func read_extension(r streams.Source) error {
	label, err := streams.ReadU8(r)
	if err != nil {
		return err
	}
	switch label {
	case ePlainText, eGraphicControl, eComment, eApplication:
	default:
		return meta.Corrupt(types.GIF, "unknown extension: 0x%02x", label)
	}
	return skip_sub_blocks(r)
}

func read_image_descriptor(r streams.Source) error {
	// left, top, width, height
	if err := streams.Skip(r, 8); err != nil {
		return err
	}
	packed, err := streams.ReadU8(r)
	if err != nil {
		return err
	}
	// the extra byte is the LZW minimum code size
	if err = streams.Skip(r, TableBytes(packed)+1); err != nil {
		return err
	}
	return skip_sub_blocks(r)
}

func skip_sub_blocks(r streams.Source) error {
	for {
		size, err := streams.ReadU8(r)
		if err != nil {
			return err
		}
		if size == 0 {
			return nil
		}
		if err = streams.Skip(r, int64(size)); err != nil {
			return err
		}
	}
}
