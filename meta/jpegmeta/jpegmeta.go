package jpegmeta

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/kovidgoyal/imagemeta/meta"
	"github.com/kovidgoyal/imagemeta/streams"
	"github.com/kovidgoyal/imagemeta/types"
)

var _ = fmt.Print

const (
	markerPrefix = 0xFF
	markerSOI    = 0xD8
	markerAPP1   = 0xE1
)

var exifHeader = []byte("Exif\x00\x00")

// IsSOF reports whether marker starts a frame, that is whether its segment
// carries the image dimensions. DHT (C4), JPG (C8) and DAC (CC) share the
// range but are not frames.
func IsSOF(marker byte) bool {
	switch marker {
	case 0xC0, 0xC1, 0xC2, 0xC3,
		0xC5, 0xC6, 0xC7,
		0xC9, 0xCA, 0xCB,
		0xCD, 0xCE, 0xCF:
		return true
	}
	return false
}

func ExtractMetadata(r streams.Source) (md *meta.Data, err error) {
	sig, err := streams.ReadSignature(r, 2)
	if err != nil {
		return nil, err
	}
	if sig[0] != markerPrefix || sig[1] != markerSOI {
		return nil, meta.ErrInvalidSignature
	}
	var exif_data []byte
	for {
		marker, length, err := read_segment_header(r)
		if err != nil {
			return nil, err
		}
		switch {
		case IsSOF(marker):
			var sof [5]byte
			if int(length) < len(sof) {
				return nil, meta.Corrupt(types.JPEG, "SOF segment too short: %d", length)
			}
			if err = streams.ReadFull(r, sof[:]); err != nil {
				return nil, fmt.Errorf("jpeg: reading SOF segment: %w", err)
			}
			// sof[0] is the sample precision
			md = &meta.Data{
				Format: types.JPEG,
				Dimensions: meta.Dimensions{
					Height: uint32(binary.BigEndian.Uint16(sof[1:3])),
					Width:  uint32(binary.BigEndian.Uint16(sof[3:5])),
				},
				Color: meta.Color{Mode: meta.RGB, Resolution: 8},
			}
			md.SetExifData(exif_data)
			return md, nil
		case marker == markerAPP1 && exif_data == nil:
			payload, err := streams.ReadPayload(r, int64(length))
			if err != nil {
				return nil, fmt.Errorf("jpeg: reading APP1 segment: %w", err)
			}
			if bytes.HasPrefix(payload, exifHeader) {
				exif_data = payload[len(exifHeader):]
			}
		default:
			if err = streams.Skip(r, int64(length)); err != nil {
				return nil, err
			}
		}
	}
}

// read_segment_header returns the marker of the next segment and the length
// of its payload.
func read_segment_header(r streams.Source) (marker byte, length uint16, err error) {
	prefix, err := streams.ReadU8(r)
	if err != nil {
		return
	}
	if prefix != markerPrefix {
		return 0, 0, meta.Corrupt(types.JPEG, "marker not found, got 0x%02x", prefix)
	}
	// any number of 0xFF fill bytes may precede the marker
	for marker = markerPrefix; marker == markerPrefix; {
		if marker, err = streams.ReadU8(r); err != nil {
			return
		}
	}
	if length, err = streams.ReadU16(r, binary.BigEndian); err != nil {
		return
	}
	if length < 2 {
		return 0, 0, meta.Corrupt(types.JPEG, "invalid length %d for segment 0x%02x", length, marker)
	}
	return marker, length - 2, nil
}
