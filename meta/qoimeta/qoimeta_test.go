package qoimeta

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kovidgoyal/imagemeta/internal/testimages"
	"github.com/kovidgoyal/imagemeta/meta"
	"github.com/kovidgoyal/imagemeta/types"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestExtractMetadata(t *testing.T) {
	for channels, alpha := range map[byte]bool{3: false, 4: true} {
		md, err := ExtractMetadata(bytes.NewReader(testimages.QOI(507, 370, channels)))
		require.NoError(t, err)
		expected := &meta.Data{
			Format:     types.QOI,
			Dimensions: meta.Dimensions{Width: 507, Height: 370},
			Color:      meta.Color{Mode: meta.RGB, AlphaChannel: alpha, Resolution: 8},
		}
		if diff := cmp.Diff(expected, md, cmp.AllowUnexported(meta.Data{})); diff != "" {
			t.Fatal(diff)
		}
	}
}

func TestInvalid(t *testing.T) {
	_, err := ExtractMetadata(bytes.NewReader([]byte("qoi")))
	require.ErrorIs(t, err, meta.ErrInvalidSignature)
	_, err = ExtractMetadata(bytes.NewReader([]byte("qoix\x00\x00\x00\x01")))
	require.ErrorIs(t, err, meta.ErrInvalidSignature)
	_, err = ExtractMetadata(bytes.NewReader(testimages.QOI(1, 1, 2)))
	require.ErrorIs(t, err, meta.ErrCorruptImage)
	_, err = ExtractMetadata(bytes.NewReader(testimages.QOI(1, 1, 3)[:10]))
	require.Equal(t, meta.IOKind, meta.KindOf(err))
}
