package streams

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

var _ = fmt.Print

// Source is what metadata extractors read from: a forward readable stream
// that can also be repositioned. *bytes.Reader and *Reader satisfy it.
type Source interface {
	io.Reader
	io.ByteReader
	io.Seeker
}

const buffer_size = 16 * 1024

var (
	errNegativePosition = errors.New("streams: negative position")
	errInvalidWhence    = errors.New("streams: invalid whence")
	errSeekEnd          = errors.New("streams: cannot seek relative to the end of an unseekable stream")
)

// Reader is a buffered Source over an arbitrary io.Reader. Offsets are
// relative to the position of the underlying reader when the Reader was
// created.
//
// If the underlying reader is an io.ReadSeeker that can actually seek, seeks
// are forwarded to it. Otherwise every byte consumed is remembered so that
// seeking backwards works anywhere in the already consumed data and seeking
// forwards consumes the input.
type Reader struct {
	rs      io.ReadSeeker
	br      *bufio.Reader
	start   int64
	pos     int64
	history []byte
}

func NewReader(r io.Reader) *Reader {
	ans := &Reader{}
	if rs, ok := r.(io.ReadSeeker); ok {
		if pos, err := rs.Seek(0, io.SeekCurrent); err == nil {
			ans.rs, ans.start = rs, pos
		}
	}
	ans.br = bufio.NewReaderSize(r, buffer_size)
	return ans
}

// Seekable reports whether seeks are forwarded to the underlying reader.
func (r *Reader) Seekable() bool { return r.rs != nil }

func (r *Reader) Read(p []byte) (n int, err error) {
	if r.rs == nil && r.pos < int64(len(r.history)) {
		n = copy(p, r.history[r.pos:])
		r.pos += int64(n)
		return n, nil
	}
	n, err = r.br.Read(p)
	if r.rs == nil {
		r.history = append(r.history, p[:n]...)
	}
	r.pos += int64(n)
	return
}

func (r *Reader) ReadByte() (b byte, err error) {
	if r.rs == nil && r.pos < int64(len(r.history)) {
		b = r.history[r.pos]
		r.pos++
		return b, nil
	}
	if b, err = r.br.ReadByte(); err != nil {
		return 0, err
	}
	if r.rs == nil {
		r.history = append(r.history, b)
	}
	r.pos++
	return b, nil
}

func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	var target int64
	force := false
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = r.pos + offset
	case io.SeekEnd:
		if r.rs == nil {
			return r.pos, errSeekEnd
		}
		end, err := r.rs.Seek(0, io.SeekEnd)
		if err != nil {
			return r.pos, err
		}
		target, force = end-r.start+offset, true
	default:
		return r.pos, errInvalidWhence
	}
	if target < 0 {
		return r.pos, errNegativePosition
	}
	if r.rs != nil {
		return r.seek_underlying(target, force)
	}
	return r.seek_recorded(target)
}

func (r *Reader) seek_underlying(target int64, force bool) (int64, error) {
	if !force && target >= r.pos && target-r.pos <= int64(r.br.Buffered()) {
		n, _ := r.br.Discard(int(target - r.pos))
		r.pos += int64(n)
		return r.pos, nil
	}
	if _, err := r.rs.Seek(r.start+target, io.SeekStart); err != nil {
		return r.pos, err
	}
	r.br.Reset(r.rs)
	r.pos = target
	return r.pos, nil
}

func (r *Reader) seek_recorded(target int64) (int64, error) {
	if target <= int64(len(r.history)) {
		r.pos = target
		return r.pos, nil
	}
	r.pos = int64(len(r.history))
	_, err := io.CopyN(io.Discard, r, target-r.pos)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return r.pos, err
}

// Stream returns a reader that yields the full input starting from the
// position it was at when this Reader was created. For unseekable input
// the returned reader replays the consumed bytes and then continues with the
// rest of the input; r must not be used afterwards.
func (r *Reader) Stream() (io.Reader, error) {
	if r.rs != nil {
		if _, err := r.rs.Seek(r.start, io.SeekStart); err != nil {
			return nil, err
		}
		r.br.Reset(r.rs)
		r.pos = 0
		return r.rs, nil
	}
	return io.MultiReader(bytes.NewReader(r.history), r.br), nil
}
