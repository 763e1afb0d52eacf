// Package hdrmeta reads the header of Radiance RGBE (.hdr) images.
package hdrmeta

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kovidgoyal/imagemeta/meta"
	"github.com/kovidgoyal/imagemeta/streams"
	"github.com/kovidgoyal/imagemeta/types"
)

var _ = fmt.Print

const signature = "#?RADIANCE\n"

const max_line_length = 4096

var known_formats = map[string]bool{
	"32-bit_rle_rgbe": true,
	"32-bit_rle_xyze": true,
}

// read_line returns the next line without its terminator. ok is false once
// the input is exhausted.
func read_line(r io.ByteReader) (line string, ok bool, err error) {
	var buf bytes.Buffer
	for {
		b, err := r.ReadByte()
		if err == io.EOF {
			return strings.TrimSuffix(buf.String(), "\r"), buf.Len() > 0, nil
		}
		if err != nil {
			return "", false, err
		}
		if b == '\n' {
			return strings.TrimSuffix(buf.String(), "\r"), true, nil
		}
		if buf.Len() >= max_line_length {
			return "", false, meta.Corrupt(types.HDR, "header line longer than %d bytes", max_line_length)
		}
		buf.WriteByte(b)
	}
}

func ExtractMetadata(r streams.Source) (md *meta.Data, err error) {
	sig, err := streams.ReadSignature(r, len(signature))
	if err != nil {
		return nil, err
	}
	if string(sig) != signature {
		return nil, meta.ErrInvalidSignature
	}
	for {
		line, ok, err := read_line(r)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, meta.Unsupported(types.HDR, "no resolution line")
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if key, value, found := strings.Cut(line, "="); found {
			if key == "FORMAT" && !known_formats[value] {
				return nil, meta.Corrupt(types.HDR, "unsupported format: %s", value)
			}
			// PRIMARIES, EXPOSURE and friends do not affect the metadata
			continue
		}
		dims, err := ParseResolution(line)
		if err != nil {
			return nil, err
		}
		return &meta.Data{
			Format:     types.HDR,
			Dimensions: dims,
			Color:      meta.Color{Mode: meta.RGB, Resolution: 32},
		}, nil
	}
}

// ParseResolution parses the resolution line that ends the header. Only the
// standard orientation, top to bottom and left to right, is supported.
func ParseResolution(line string) (d meta.Dimensions, err error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return d, meta.Corrupt(types.HDR, "error parsing dimensions from: %q", line)
	}
	if fields[0] != "-Y" || fields[2] != "+X" {
		return d, meta.Unsupported(types.HDR, "orientation %s %s", fields[0], fields[2])
	}
	h, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return d, meta.Corrupt(types.HDR, "error parsing height: %s", err)
	}
	w, err := strconv.ParseUint(fields[3], 10, 32)
	if err != nil {
		return d, meta.Corrupt(types.HDR, "error parsing width: %s", err)
	}
	return meta.Dimensions{Width: uint32(w), Height: uint32(h)}, nil
}
