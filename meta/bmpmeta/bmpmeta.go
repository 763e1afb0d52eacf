package bmpmeta

import (
	"encoding/binary"
	"fmt"

	"github.com/kovidgoyal/imagemeta/meta"
	"github.com/kovidgoyal/imagemeta/streams"
	"github.com/kovidgoyal/imagemeta/types"
)

var _ = fmt.Print

var le = binary.LittleEndian

const (
	os2_header_size     = 12
	os2_v2_header_size  = 64
	info_header_size    = 40
	v4_header_size      = 108
	v5_header_size      = 124
	file_header_remains = 12
)

func ExtractMetadata(r streams.Source) (md *meta.Data, err error) {
	sig, err := streams.ReadSignature(r, 2)
	if err != nil {
		return nil, err
	}
	if sig[0] != 'B' || sig[1] != 'M' {
		return nil, meta.ErrInvalidSignature
	}
	if err = streams.Skip(r, file_header_remains); err != nil {
		return nil, err
	}
	header_size, err := streams.ReadU32(r, le)
	if err != nil {
		return nil, err
	}
	var width, height uint32
	switch header_size {
	case os2_header_size, os2_v2_header_size:
		w, err := streams.ReadU16(r, le)
		if err != nil {
			return nil, err
		}
		h, err := streams.ReadI16(r, le)
		if err != nil {
			return nil, err
		}
		width, height = uint32(w), abs(int32(h))
	case info_header_size, v4_header_size, v5_header_size:
		if width, err = streams.ReadU32(r, le); err != nil {
			return nil, err
		}
		h, err := streams.ReadI32(r, le)
		if err != nil {
			return nil, err
		}
		height = abs(h)
	default:
		return nil, meta.Corrupt(types.BMP, "unsupported header size: %d", header_size)
	}
	// planes
	if err = streams.Skip(r, 2); err != nil {
		return nil, err
	}
	bpp, err := streams.ReadU16(r, le)
	if err != nil {
		return nil, err
	}
	return &meta.Data{
		Format:     types.BMP,
		Dimensions: meta.Dimensions{Width: width, Height: height},
		Color:      meta.Color{Mode: meta.RGB, Resolution: Resolution(bpp)},
	}, nil
}

// Resolution treats the bit count of a pixel as three equal channels.
func Resolution(bits_per_pixel uint16) uint8 {
	return uint8(bits_per_pixel / 3)
}

// The sign of a BMP height only selects the row order.
func abs(x int32) uint32 {
	if x < 0 {
		return uint32(-int64(x))
	}
	return uint32(x)
}
