package meta

import (
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/kovidgoyal/imagemeta/types"
	"github.com/stretchr/testify/require"
)

func orientation_tiff(orientation uint16) []byte {
	be := binary.BigEndian
	p := []byte("MM\x00\x2a")
	p = be.AppendUint32(p, 8)
	p = be.AppendUint16(p, 1)
	p = be.AppendUint16(p, 0x0112)
	p = be.AppendUint16(p, 3)
	p = be.AppendUint32(p, 1)
	p = be.AppendUint16(p, orientation)
	p = be.AppendUint16(p, 0)
	return be.AppendUint32(p, 0)
}

func TestDataString(t *testing.T) {
	md := Data{
		Format:          types.PNG,
		Dimensions:      Dimensions{Width: 507, Height: 370},
		Color:           Color{Mode: RGB, AlphaChannel: true, Resolution: 8},
		AnimationFrames: 4,
	}
	require.Equal(t, "PNG 507x370 RGBA(8) frames=4", md.String())
	require.True(t, md.IsAnimation())
	md.AnimationFrames = 0
	require.False(t, md.IsAnimation())

	b, err := json.Marshal(md.Color)
	require.NoError(t, err)
	require.JSONEq(t, `{"Mode":"RGB","AlphaChannel":true,"Resolution":8}`, string(b))
}

func TestOrientation(t *testing.T) {
	md := Data{}
	x, err := md.Exif()
	require.NoError(t, err)
	require.Nil(t, x)
	require.Equal(t, 0, md.Orientation())

	for _, prefix := range []string{"", "Exif\x00\x00"} {
		md.SetExifData(append([]byte(prefix), orientation_tiff(6)...))
		require.Equal(t, 6, md.Orientation())
	}

	md.SetExifData(orientation_tiff(42))
	require.Equal(t, 0, md.Orientation())

	md.SetExifData([]byte("definitely not tiff"))
	_, err = md.Exif()
	require.Error(t, err)
	require.Equal(t, 0, md.Orientation())
}
