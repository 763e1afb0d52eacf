package imagemeta

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/kovidgoyal/go-parallel"
	"github.com/kovidgoyal/imagemeta/meta"
	"github.com/kovidgoyal/imagemeta/meta/autometa"
	"github.com/kovidgoyal/imagemeta/streams"
	"github.com/kovidgoyal/imagemeta/types"
)

var _ = fmt.Print

type fileSystem interface {
	Open(string) (io.ReadCloser, error)
}

type localFS struct{}

func (localFS) Open(name string) (io.ReadCloser, error) { return open_file(name) }

var fs fileSystem = localFS{}

type Format = types.Format

const (
	UNKNOWN = types.UNKNOWN
	BMP     = types.BMP
	GIF     = types.GIF
	JPEG    = types.JPEG
	PNG     = types.PNG
	WEBP    = types.WEBP
	HDR     = types.HDR
	QOI     = types.QOI
)

// ErrUnsupportedFormat means the given image format is not supported.
var ErrUnsupportedFormat = errors.New("imagemeta: unsupported image format")

// FormatFromExtension parses image format from filename extension.
func FormatFromExtension(ext string) (Format, error) {
	if f, ok := types.FormatExts[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return f, nil
	}
	return UNKNOWN, ErrUnsupportedFormat
}

// FormatFromFilename parses image format from the extension of filename.
func FormatFromFilename(filename string) (Format, error) {
	return FormatFromExtension(filepath.Ext(filename))
}

// Inspect reads the metadata of the image in r. The returned reader yields
// all bytes of r, so the image can still be decoded afterwards.
func Inspect(r io.Reader) (*meta.Data, io.Reader, error) {
	return autometa.Load(r)
}

// Open reads the metadata of the image file filename. The format is
// detected from the contents, not the name.
//
// Examples:
//
//	md, err := imagemeta.Open("test.webp")
//	fmt.Println(md.Dimensions.Width, md.Dimensions.Height)
func Open(filename string) (*meta.Data, error) {
	file, err := fs.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	if s, ok := file.(streams.Source); ok {
		return load_in_memory(s)
	}
	return autometa.LoadSource(streams.NewReader(file))
}

// load_in_memory reads from a source that may be backed by a memory mapping.
// If the file shrinks while mapped, touching the lost pages faults; that is
// turned into an error instead of killing the process.
func load_in_memory(s streams.Source) (md *meta.Data, err error) {
	defer debug.SetPanicOnFault(debug.SetPanicOnFault(true))
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(interface{ Addr() uintptr })
			if !ok {
				panic(r)
			}
			md, err = nil, fmt.Errorf("imagemeta: memory fault at 0x%x reading mapped file: %v", f.Addr(), r)
		}
	}()
	return autometa.LoadSource(s)
}

type Result struct {
	Path     string
	Metadata *meta.Data
	Err      error
}

type openConfig struct {
	parallelism int
}

// OpenOption sets an optional parameter for OpenAll.
type OpenOption func(*openConfig)

// Parallelism returns an OpenOption that sets the maximum number of files
// read concurrently. Zero, the default, uses one worker per CPU.
func Parallelism(n int) OpenOption {
	return func(c *openConfig) {
		c.parallelism = max(0, n)
	}
}

// OpenAll reads the metadata of every file in paths concurrently. Results
// are in the same order as paths, failures are reported per file in
// Result.Err. The returned error is only set if the workers themselves
// failed.
func OpenAll(paths []string, opts ...OpenOption) (ans []Result, err error) {
	cfg := openConfig{}
	for _, option := range opts {
		option(&cfg)
	}
	ans = make([]Result, len(paths))
	if len(paths) == 0 {
		return
	}
	f := func(start, limit int) {
		for i := start; i < limit; i++ {
			ans[i].Path = paths[i]
			ans[i].Metadata, ans[i].Err = Open(paths[i])
		}
	}
	err = parallel.Run_in_parallel_over_range(cfg.parallelism, f, 0, len(paths))
	return
}
