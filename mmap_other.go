//go:build !unix

package imagemeta

import (
	"io"
	"os"
)

func open_file(name string) (io.ReadCloser, error) {
	return os.Open(name)
}
