package pngmeta

import (
	"encoding/binary"
	"fmt"

	"github.com/kovidgoyal/imagemeta/meta"
	"github.com/kovidgoyal/imagemeta/streams"
	"github.com/kovidgoyal/imagemeta/types"
)

var _ = fmt.Print

const pngSignature = "\x89PNG\r\n\x1a\n"

const (
	ihdr_size = 13
	crc_size  = 4
	// eXIf payloads are copied into memory, refuse anything absurd
	max_exif_size = 64 * 1024 * 1024
)

var be = binary.BigEndian

type chunk_header struct {
	length uint32
	name   [4]byte
}

func (c chunk_header) is(name string) bool { return string(c.name[:]) == name }

func read_chunk_header(r streams.Source) (ans chunk_header, err error) {
	var b [8]byte
	if err = streams.ReadFull(r, b[:]); err != nil {
		return
	}
	ans.length = be.Uint32(b[:4])
	copy(ans.name[:], b[4:])
	return
}

// ColorFromIHDR maps the bit depth and color type fields of the IHDR chunk.
func ColorFromIHDR(bit_depth, color_type byte) (meta.Color, error) {
	c := meta.Color{Resolution: bit_depth}
	switch color_type {
	case 0:
		c.Mode = meta.Grayscale
	case 2:
		c.Mode = meta.RGB
	case 3:
		c.Mode = meta.Indexed
	case 4:
		c.Mode, c.AlphaChannel = meta.Grayscale, true
	case 6:
		c.Mode, c.AlphaChannel = meta.RGB, true
	default:
		return c, meta.Corrupt(types.PNG, "invalid color type: %d", color_type)
	}
	return c, nil
}

func ExtractMetadata(r streams.Source) (md *meta.Data, err error) {
	sig, err := streams.ReadSignature(r, len(pngSignature))
	if err != nil {
		return nil, err
	}
	if string(sig) != pngSignature {
		return nil, meta.ErrInvalidSignature
	}
	ch, err := read_chunk_header(r)
	if err != nil {
		return nil, err
	}
	if !ch.is("IHDR") {
		return nil, meta.Corrupt(types.PNG, "first chunk is %q not IHDR", ch.name[:])
	}
	if ch.length < ihdr_size {
		return nil, meta.Corrupt(types.PNG, "IHDR chunk too short: %d", ch.length)
	}
	var ihdr [ihdr_size]byte
	if err = streams.ReadFull(r, ihdr[:]); err != nil {
		return nil, fmt.Errorf("png: reading IHDR: %w", err)
	}
	// compression, filter and interlace methods are not needed
	color, err := ColorFromIHDR(ihdr[8], ihdr[9])
	if err != nil {
		return nil, err
	}
	if err = streams.Skip(r, int64(ch.length-ihdr_size)+crc_size); err != nil {
		return nil, err
	}
	md = &meta.Data{
		Format:     types.PNG,
		Dimensions: meta.Dimensions{Width: be.Uint32(ihdr[0:4]), Height: be.Uint32(ihdr[4:8])},
		Color:      color,
	}
	if err = scan_chunks(r, md); err != nil {
		return nil, err
	}
	return md, nil
}

// scan_chunks walks the chunks after IHDR up to and including IEND, counting
// frame control chunks.
func scan_chunks(r streams.Source, md *meta.Data) error {
	var frames uint
	for {
		ch, err := read_chunk_header(r)
		if err != nil {
			return err
		}
		skip := int64(ch.length) + crc_size
		switch {
		case ch.is("fcTL"):
			frames++
		case ch.is("eXIf") && ch.length <= max_exif_size && md.ExifData() == nil:
			payload, err := streams.ReadPayload(r, int64(ch.length))
			if err != nil {
				return fmt.Errorf("png: reading eXIf: %w", err)
			}
			md.SetExifData(payload)
			skip = crc_size
		}
		if err = streams.Skip(r, skip); err != nil {
			return err
		}
		if ch.is("IEND") {
			md.AnimationFrames = frames
			return nil
		}
	}
}
