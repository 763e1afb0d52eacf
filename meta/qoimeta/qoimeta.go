package qoimeta

import (
	"encoding/binary"
	"fmt"

	"github.com/kovidgoyal/imagemeta/meta"
	"github.com/kovidgoyal/imagemeta/streams"
	"github.com/kovidgoyal/imagemeta/types"
)

var _ = fmt.Print

// See https://qoiformat.org/qoi-specification.pdf
const magic = "qoif"

func ExtractMetadata(r streams.Source) (md *meta.Data, err error) {
	sig, err := streams.ReadSignature(r, len(magic))
	if err != nil {
		return nil, err
	}
	if string(sig) != magic {
		return nil, meta.ErrInvalidSignature
	}
	// width, height, channels; the trailing colorspace byte is not needed
	var hdr [9]byte
	if err = streams.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("qoi: reading header: %w", err)
	}
	color := meta.Color{Mode: meta.RGB, Resolution: 8}
	switch channels := hdr[8]; channels {
	case 3:
	case 4:
		color.AlphaChannel = true
	default:
		return nil, meta.Corrupt(types.QOI, "invalid number of channels: %d", channels)
	}
	return &meta.Data{
		Format: types.QOI,
		Dimensions: meta.Dimensions{
			Width:  binary.BigEndian.Uint32(hdr[0:4]),
			Height: binary.BigEndian.Uint32(hdr[4:8]),
		},
		Color: color,
	}, nil
}
