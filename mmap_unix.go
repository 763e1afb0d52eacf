//go:build unix

package imagemeta

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

type mapped_file struct {
	*bytes.Reader
	data []byte
}

func (m *mapped_file) Close() (err error) {
	if m.data != nil {
		err = unix.Munmap(m.data)
		m.data = nil
	}
	return
}

// open_file maps regular files into memory so that the extractors seek and
// read without system calls. Anything that cannot be mapped, such as empty
// files or pipes, is read through the *os.File. Reading pages of a mapping
// whose file was truncated raises SIGBUS, so mapped files must only be read
// under load_in_memory.
func open_file(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	size := st.Size()
	if !st.Mode().IsRegular() || size <= 0 || int64(int(size)) != size {
		return f, nil
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return f, nil
	}
	// the mapping remains valid after the descriptor is closed
	f.Close()
	return &mapped_file{Reader: bytes.NewReader(data), data: data}, nil
}
