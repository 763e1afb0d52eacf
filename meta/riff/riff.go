// Package riff reads the chunks of a RIFF container, such as the one used by
// WebP, without buffering their payloads.
package riff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/kovidgoyal/imagemeta/meta"
	"github.com/kovidgoyal/imagemeta/streams"
)

var _ = fmt.Print

// FourCC is a four character code.
type FourCC [4]byte

func (f FourCC) String() string { return string(f[:]) }

const header_size = 12
const chunk_header_size = 8

var errStaleChunk = errors.New("riff: stale chunk")

type Reader struct {
	src       streams.Source
	form_type FourCC
	size      uint32
	remain    uint64
	current   *Chunk
}

// Chunk is a single chunk of the container. Reading from it yields at most
// Size bytes of payload. A Chunk becomes stale when Next is called again.
type Chunk struct {
	ID     FourCC
	Size   uint32
	owner  *Reader
	left   uint32
	padded bool
}

func saturating_sub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

// Open validates the RIFF header at the current position of src. A stream
// too short for the header, or not starting with "RIFF", is
// meta.ErrInvalidSignature. A declared size smaller than the form type is
// accepted and simply yields no chunks.
func Open(src streams.Source) (*Reader, error) {
	hdr, err := streams.ReadSignature(src, header_size)
	if err != nil {
		return nil, err
	}
	if string(hdr[:4]) != "RIFF" {
		return nil, meta.ErrInvalidSignature
	}
	ans := &Reader{src: src, form_type: FourCC(hdr[8:12]), size: binary.LittleEndian.Uint32(hdr[4:8])}
	ans.remain = saturating_sub(uint64(ans.size), 4)
	return ans, nil
}

// FormType is the form type tag of the container, such as "WEBP".
func (r *Reader) FormType() FourCC { return r.form_type }

// Size is the total size declared in the RIFF header.
func (r *Reader) Size() uint32 { return r.size }

// Remaining is the number of bytes of the form not yet accounted for by
// chunk headers and payloads.
func (r *Reader) Remaining() uint64 { return r.remain }

// Next returns the next chunk, skipping whatever was not read of the
// previous one, including its pad byte. It returns io.EOF when the declared
// form size is used up.
func (r *Reader) Next() (*Chunk, error) {
	prev := r.current
	r.current = nil
	if r.remain == 0 {
		return nil, io.EOF
	}
	if prev != nil {
		skip := int64(prev.left)
		if prev.padded {
			skip++
		}
		if skip > 0 {
			if err := streams.Skip(r.src, skip); err != nil {
				return nil, err
			}
		}
	}
	var hdr [chunk_header_size]byte
	if err := streams.ReadFull(r.src, hdr[:]); err != nil {
		return nil, err
	}
	c := &Chunk{ID: FourCC(hdr[:4]), Size: binary.LittleEndian.Uint32(hdr[4:]), owner: r}
	c.left = c.Size
	c.padded = c.Size&1 == 1
	consumed := chunk_header_size + uint64(c.Size)
	if c.padded {
		consumed++
	}
	r.remain = saturating_sub(r.remain, consumed)
	r.current = c
	return c, nil
}

func (c *Chunk) Read(p []byte) (n int, err error) {
	if c.owner.current != c {
		return 0, errStaleChunk
	}
	if c.left == 0 {
		return 0, io.EOF
	}
	if uint64(len(p)) > uint64(c.left) {
		p = p[:c.left]
	}
	n, err = c.owner.src.Read(p)
	c.left -= uint32(n)
	if err == io.EOF && c.left > 0 {
		err = io.ErrUnexpectedEOF
	}
	return
}

func (c *Chunk) ReadByte() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(c, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// Unread is the number of payload bytes not yet read.
func (c *Chunk) Unread() uint32 { return c.left }
