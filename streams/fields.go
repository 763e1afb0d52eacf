package streams

import (
	"encoding/binary"
	"io"

	"github.com/kovidgoyal/imagemeta/meta"
)

// ReadFull is io.ReadFull except that running out of input is always
// io.ErrUnexpectedEOF.
func ReadFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// ReadSignature reads the n leading bytes of a format. A stream too short to
// hold them cannot be in that format, so that is reported as
// meta.ErrInvalidSignature rather than as an I/O error.
func ReadSignature(r io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, meta.ErrInvalidSignature
		}
		return nil, err
	}
	return b, nil
}

func ReadU8(r io.ByteReader) (uint8, error) {
	b, err := r.ReadByte()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return b, err
}

func ReadU16(r io.Reader, order binary.ByteOrder) (uint16, error) {
	var b [2]byte
	if err := ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return order.Uint16(b[:]), nil
}

func ReadI16(r io.Reader, order binary.ByteOrder) (int16, error) {
	v, err := ReadU16(r, order)
	return int16(v), err
}

func ReadU32(r io.Reader, order binary.ByteOrder) (uint32, error) {
	var b [4]byte
	if err := ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return order.Uint32(b[:]), nil
}

func ReadI32(r io.Reader, order binary.ByteOrder) (int32, error) {
	v, err := ReadU32(r, order)
	return int32(v), err
}

// Skip moves n bytes forward from the current position.
func Skip(r io.Seeker, n int64) error {
	_, err := r.Seek(n, io.SeekCurrent)
	return err
}

// ReadPayload reads a block of n bytes whose size was declared by the input
// itself. The buffer grows with the data actually present, so a bogus size
// in a short stream cannot force a large allocation.
func ReadPayload(r io.Reader, n int64) ([]byte, error) {
	ans, err := io.ReadAll(io.LimitReader(r, n))
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if int64(len(ans)) != n {
		return nil, io.ErrUnexpectedEOF
	}
	return ans, nil
}
