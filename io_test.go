package imagemeta

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/kovidgoyal/imagemeta/internal/testimages"
	"github.com/kovidgoyal/imagemeta/meta"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

type unseekable struct{ io.Reader }

// streamFS serves files as plain streams, the way pipes behave
type streamFS map[string][]byte

func (s streamFS) Open(name string) (io.ReadCloser, error) {
	if data, ok := s[name]; ok {
		return io.NopCloser(unseekable{bytes.NewReader(data)}), nil
	}
	return nil, os.ErrNotExist
}

var samples = map[string][]byte{
	"paw.jpg":  testimages.JPEG(),
	"paw.gif":  testimages.EncodedGIF(2),
	"paw.png":  testimages.PNG(),
	"paw.bmp":  testimages.EncodedBMP(),
	"paw.webp": testimages.WebPLossy(),
	"paw.hdr":  testimages.StandardHDR(),
	"paw.qoi":  testimages.QOI(testimages.Width, testimages.Height, 3),
}

func write_samples(t *testing.T) (dir string) {
	dir = t.TempDir()
	for name, data := range samples {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
	}
	return
}

func TestOpen(t *testing.T) {
	dir := write_samples(t)
	for name := range samples {
		path := filepath.Join(dir, name)
		md, err := Open(path)
		require.NoError(t, err, name)
		expected, err := FormatFromFilename(name)
		require.NoError(t, err)
		require.Equal(t, expected, md.Format, name)
		require.Equal(t, meta.Dimensions{Width: testimages.Width, Height: testimages.Height}, md.Dimensions, name)
	}

	_, err := Open(filepath.Join(dir, "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(dir, "empty.png")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = Open(empty)
	require.ErrorIs(t, err, meta.ErrUnsupported)
}

func TestOpenStreams(t *testing.T) {
	orig := fs
	defer func() { fs = orig }()
	fs = streamFS(samples)
	for name := range samples {
		md, err := Open(name)
		require.NoError(t, err, name)
		require.Equal(t, meta.Dimensions{Width: testimages.Width, Height: testimages.Height}, md.Dimensions, name)
	}
}

func TestInspect(t *testing.T) {
	data := samples["paw.webp"]
	md, stream, err := Inspect(unseekable{bytes.NewReader(data)})
	require.NoError(t, err)
	require.Equal(t, WEBP, md.Format)
	all, err := io.ReadAll(stream)
	require.NoError(t, err)
	require.Equal(t, data, all)
}

func TestOpenAll(t *testing.T) {
	dir := write_samples(t)
	var paths []string
	for range 5 {
		for name := range samples {
			paths = append(paths, filepath.Join(dir, name))
		}
		paths = append(paths, filepath.Join(dir, "missing"))
	}
	for _, n := range []int{0, 1, 3} {
		results, err := OpenAll(paths, Parallelism(n))
		require.NoError(t, err)
		require.Len(t, results, len(paths))
		for i, r := range results {
			require.Equal(t, paths[i], r.Path)
			if filepath.Base(r.Path) == "missing" {
				require.Error(t, r.Err)
				require.Nil(t, r.Metadata)
				continue
			}
			require.NoError(t, r.Err)
			expected, _ := FormatFromFilename(r.Path)
			require.Equal(t, expected, r.Metadata.Format)
		}
	}

	results, err := OpenAll(nil)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestFormatFromExtension(t *testing.T) {
	for ext, expected := range map[string]Format{
		"jpg": JPEG, ".JPEG": JPEG, "png": PNG, ".webp": WEBP, "Gif": GIF,
		"bmp": BMP, ".hdr": HDR, "qoi": QOI,
	} {
		f, err := FormatFromExtension(ext)
		require.NoError(t, err, ext)
		require.Equal(t, expected, f, ext)
	}
	f, err := FormatFromExtension("txt")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	require.Equal(t, UNKNOWN, f)
	require.Equal(t, "UNKNOWN", f.String())
	f, err = FormatFromFilename("/some/where/image.JPE")
	require.NoError(t, err)
	require.Equal(t, JPEG, f)
}

func TestVersion(t *testing.T) {
	v := ImagemetaVersion{1, 2, 3}
	require.Equal(t, "1.2.3", v.String())
	require.True(t, v.After(ImagemetaVersion{1, 1, 9}))
	require.True(t, v.Before(ImagemetaVersion{2, 0, 0}))
	require.True(t, v.Equal(ImagemetaVersion{1, 2, 3}))
	require.False(t, v.Before(v))
}
