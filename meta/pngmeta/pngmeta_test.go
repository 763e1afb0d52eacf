package pngmeta

import (
	"bytes"
	"fmt"
	"image/png"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kovidgoyal/imagemeta/internal/testimages"
	"github.com/kovidgoyal/imagemeta/meta"
	"github.com/kovidgoyal/imagemeta/types"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

var iend = testimages.PNGChunk("IEND", nil)

func TestEncodedByStdlib(t *testing.T) {
	md, err := ExtractMetadata(bytes.NewReader(testimages.PNG()))
	require.NoError(t, err)
	expected := &meta.Data{
		Format:     types.PNG,
		Dimensions: meta.Dimensions{Width: testimages.Width, Height: testimages.Height},
		Color:      meta.Color{Mode: meta.RGB, Resolution: 8},
	}
	if diff := cmp.Diff(expected, md, cmp.AllowUnexported(meta.Data{})); diff != "" {
		t.Fatal(diff)
	}
}

func TestAPNG(t *testing.T) {
	data := testimages.APNG(4)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	md, err := ExtractMetadata(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, meta.Dimensions{Width: uint32(cfg.Width), Height: uint32(cfg.Height)}, md.Dimensions)
	require.Equal(t, uint(4), md.AnimationFrames)
	require.True(t, md.IsAnimation())
}

func TestChunks(t *testing.T) {
	fctl := testimages.PNGChunk("fcTL", make([]byte, 26))
	idat := testimages.PNGChunk("IDAT", make([]byte, 10))
	data := testimages.PNGFromChunks(
		testimages.IHDR(9, 7, 16, 6),
		testimages.PNGChunk("acTL", make([]byte, 8)),
		fctl, idat,
		fctl, testimages.PNGChunk("fdAT", make([]byte, 14)),
		fctl, testimages.PNGChunk("fdAT", make([]byte, 14)),
		iend,
		// not read
		[]byte("garbage"),
	)
	md, err := ExtractMetadata(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, meta.Dimensions{Width: 9, Height: 7}, md.Dimensions)
	require.Equal(t, meta.Color{Mode: meta.RGB, AlphaChannel: true, Resolution: 16}, md.Color)
	require.Equal(t, uint(3), md.AnimationFrames)

	// a long IHDR is tolerated
	ihdr := testimages.PNGChunk("IHDR", append(testimages.IHDR(9, 7, 8, 0)[8:21], 1, 2, 3))
	md, err = ExtractMetadata(bytes.NewReader(testimages.PNGFromChunks(ihdr, idat, iend)))
	require.NoError(t, err)
	require.Equal(t, meta.Color{Mode: meta.Grayscale, Resolution: 8}, md.Color)
	require.False(t, md.IsAnimation())
}

func TestExif(t *testing.T) {
	data := testimages.PNGFromChunks(
		testimages.IHDR(9, 7, 8, 2),
		testimages.PNGChunk("eXIf", testimages.ExifTIFF(3)),
		testimages.PNGChunk("IDAT", make([]byte, 10)),
		iend,
	)
	md, err := ExtractMetadata(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, testimages.ExifTIFF(3), md.ExifData())
	require.Equal(t, 3, md.Orientation())
}

func TestTruncatedExifIsNotPreallocated(t *testing.T) {
	data := testimages.PNGFromChunks(testimages.IHDR(9, 7, 8, 2))
	data = be.AppendUint32(data, max_exif_size)
	data = append(data, "eXIf"...)
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := ExtractMetadata(bytes.NewReader(data))
	runtime.ReadMemStats(&after)
	require.Equal(t, meta.IOKind, meta.KindOf(err))
	require.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20))
}

func TestColorFromIHDR(t *testing.T) {
	for _, tc := range []struct {
		color_type byte
		expected   meta.Color
	}{
		{0, meta.Color{Mode: meta.Grayscale, Resolution: 1}},
		{2, meta.Color{Mode: meta.RGB, Resolution: 1}},
		{3, meta.Color{Mode: meta.Indexed, Resolution: 1}},
		{4, meta.Color{Mode: meta.Grayscale, AlphaChannel: true, Resolution: 1}},
		{6, meta.Color{Mode: meta.RGB, AlphaChannel: true, Resolution: 1}},
	} {
		c, err := ColorFromIHDR(1, tc.color_type)
		require.NoError(t, err)
		require.Equal(t, tc.expected, c)
	}
	for _, ct := range []byte{1, 5, 7, 255} {
		_, err := ColorFromIHDR(8, ct)
		require.ErrorIs(t, err, meta.ErrCorruptImage)
	}
}

func TestInvalid(t *testing.T) {
	_, err := ExtractMetadata(bytes.NewReader([]byte("\x89PNG\r\n")))
	require.ErrorIs(t, err, meta.ErrInvalidSignature)
	_, err = ExtractMetadata(bytes.NewReader([]byte("\x89PNG\r\n\x1a\x00")))
	require.ErrorIs(t, err, meta.ErrInvalidSignature)

	for name, data := range map[string][]byte{
		"IHDR not first": testimages.PNGFromChunks(testimages.PNGChunk("gAMA", make([]byte, 4)), testimages.IHDR(1, 1, 8, 2)),
		"IHDR too short": testimages.PNGFromChunks(testimages.PNGChunk("IHDR", make([]byte, 12))),
		"bad color type": testimages.PNGFromChunks(testimages.IHDR(1, 1, 8, 5), iend),
	} {
		_, err = ExtractMetadata(bytes.NewReader(data))
		require.ErrorIs(t, err, meta.ErrCorruptImage, name)
	}

	// missing IEND
	_, err = ExtractMetadata(bytes.NewReader(testimages.PNGFromChunks(testimages.IHDR(1, 1, 8, 2))))
	require.Equal(t, meta.IOKind, meta.KindOf(err))
}
