// Package testimages synthesizes small image files for tests. Only headers
// and container structure are meaningful, pixel payloads are filler.
package testimages

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/kettek/apng"
	"golang.org/x/image/bmp"
)

// The dimensions used by all single frame images.
const Width, Height = 507, 370

var le, be = binary.LittleEndian, binary.BigEndian

func opaque_image(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func JPEG() []byte {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, opaque_image(Width, Height, color.RGBA{200, 100, 50, 255}), nil); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func PNG() []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, opaque_image(Width, Height, color.RGBA{10, 20, 30, 255})); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// APNG encodes an animated PNG with the given number of frames.
func APNG(frames int) []byte {
	a := apng.APNG{}
	for i := range frames {
		c := color.NRGBA{uint8(40 * i), 0, 0, 128}
		img := image.NewNRGBA(image.Rect(0, 0, Width, Height))
		draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
		a.Frames = append(a.Frames, apng.Frame{Image: img, DelayNumerator: 1, DelayDenominator: 10})
	}
	var buf bytes.Buffer
	if err := apng.Encode(&buf, a); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// EncodedBMP is a BMP as written by golang.org/x/image/bmp.
func EncodedBMP() []byte {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, opaque_image(Width, Height, color.RGBA{1, 2, 3, 255})); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// EncodedGIF is an animated GIF as written by image/gif.
func EncodedGIF(frames int) []byte {
	g := gif.GIF{}
	for i := range frames {
		img := image.NewPaletted(image.Rect(0, 0, Width, Height), palette.Plan9)
		draw.Draw(img, img.Bounds(), image.NewUniform(palette.Plan9[i*7]), image.Point{}, draw.Src)
		g.Image = append(g.Image, img)
		g.Delay = append(g.Delay, 10)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, &g); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// BMP builds a BMP file with a Windows style header of the given size (40,
// 108 or 124) or an OS/2 style header (12 or 64).
func BMP(header_size uint32, width uint32, height int32, bpp uint16) []byte {
	var b bytes.Buffer
	b.WriteString("BM")
	b.Write(le.AppendUint32(nil, 0)) // file size
	b.Write(make([]byte, 4))         // reserved
	b.Write(le.AppendUint32(nil, 14+header_size))
	b.Write(le.AppendUint32(nil, header_size))
	switch header_size {
	case 12, 64:
		b.Write(le.AppendUint16(nil, uint16(width)))
		b.Write(le.AppendUint16(nil, uint16(int16(height))))
	default:
		b.Write(le.AppendUint32(nil, width))
		b.Write(le.AppendUint32(nil, uint32(height)))
	}
	b.Write(le.AppendUint16(nil, 1)) // planes
	b.Write(le.AppendUint16(nil, bpp))
	if header_size > 16 {
		b.Write(make([]byte, header_size-16))
	}
	b.Write(make([]byte, 64)) // pixels
	return b.Bytes()
}

// GIFOptions controls the GIF built by GIF.
type GIFOptions struct {
	Frames      int
	GlobalTable bool
	LocalTables bool
	// Three bit color resolution field, the palette depth is this plus one
	ColorResolution uint8
	TableBits       uint8
}

func GIF(opts GIFOptions) []byte {
	var b bytes.Buffer
	b.WriteString("GIF89a")
	b.Write(le.AppendUint16(nil, Width))
	b.Write(le.AppendUint16(nil, Height))
	packed := (opts.ColorResolution&7)<<4 | opts.TableBits&7
	if opts.GlobalTable {
		packed |= 0x80
	}
	b.WriteByte(packed)
	b.Write([]byte{0, 0}) // background, aspect ratio
	if opts.GlobalTable {
		b.Write(make([]byte, 3*(2<<(opts.TableBits&7))))
	}
	if opts.Frames > 1 {
		// NETSCAPE2.0 looping extension
		b.Write([]byte{0x21, 0xff, 0x0b})
		b.WriteString("NETSCAPE2.0")
		b.Write([]byte{0x03, 0x01, 0x00, 0x00, 0x00})
	}
	b.Write([]byte{0x21, 0xfe, 0x05})
	b.WriteString("hello")
	b.WriteByte(0)
	for range opts.Frames {
		// graphic control extension
		b.Write([]byte{0x21, 0xf9, 0x04, 0x04, 0x0a, 0x00, 0x00, 0x00})
		b.WriteByte(0x2c)
		b.Write(make([]byte, 4))
		b.Write(le.AppendUint16(nil, Width))
		b.Write(le.AppendUint16(nil, Height))
		if opts.LocalTables {
			b.WriteByte(0x80 | opts.TableBits&7)
			b.Write(make([]byte, 3*(2<<(opts.TableBits&7))))
		} else {
			b.WriteByte(0)
		}
		b.WriteByte(8) // LZW minimum code size
		b.Write([]byte{0x03, 0x01, 0x02, 0x03, 0x02, 0x04, 0x05, 0x00})
	}
	b.WriteByte(0x3b)
	return b.Bytes()
}

// PNGChunk serializes a PNG chunk. The CRC is left zero.
func PNGChunk(name string, payload []byte) []byte {
	ans := be.AppendUint32(nil, uint32(len(payload)))
	ans = append(ans, name...)
	ans = append(ans, payload...)
	return append(ans, 0, 0, 0, 0)
}

func IHDR(width, height uint32, bit_depth, color_type byte) []byte {
	p := be.AppendUint32(nil, width)
	p = be.AppendUint32(p, height)
	p = append(p, bit_depth, color_type, 0, 0, 0)
	return PNGChunk("IHDR", p)
}

// PNGFromChunks prefixes the PNG signature to chunks.
func PNGFromChunks(chunks ...[]byte) []byte {
	ans := []byte("\x89PNG\r\n\x1a\n")
	for _, c := range chunks {
		ans = append(ans, c...)
	}
	return ans
}

// RIFFChunk serializes a RIFF chunk, adding the pad byte for odd sizes.
func RIFFChunk(id string, payload []byte) []byte {
	ans := append([]byte(id), le.AppendUint32(nil, uint32(len(payload)))...)
	ans = append(ans, payload...)
	if len(payload)%2 == 1 {
		ans = append(ans, 0)
	}
	return ans
}

// RIFF builds a RIFF container with a correct size field.
func RIFF(form_type string, chunks ...[]byte) []byte {
	body := []byte(form_type)
	for _, c := range chunks {
		body = append(body, c...)
	}
	ans := append([]byte("RIFF"), le.AppendUint32(nil, uint32(len(body)))...)
	return append(ans, body...)
}

// RIFFWithSize is RIFF with an arbitrary declared size.
func RIFFWithSize(size uint32, form_type string, chunks ...[]byte) []byte {
	ans := RIFF(form_type, chunks...)
	le.PutUint32(ans[4:8], size)
	return ans
}

func VP8Payload(width, height uint16, key_frame bool) []byte {
	tag := []byte{0x10, 0x02, 0x00}
	if !key_frame {
		tag[0] |= 1
	}
	p := append(tag, 0x9d, 0x01, 0x2a)
	p = le.AppendUint16(p, width&0x3fff)
	p = le.AppendUint16(p, height&0x3fff)
	return append(p, make([]byte, 7)...)
}

func VP8LPayload(width, height uint32, alpha bool) []byte {
	bits := (width - 1) | (height-1)<<14
	if alpha {
		bits |= 1 << 28
	}
	p := le.AppendUint32([]byte{0x2f}, bits)
	return append(p, make([]byte, 6)...)
}

func VP8XPayload(flags byte, width, height uint32) []byte {
	p := []byte{flags, 0, 0, 0}
	w, h := width-1, height-1
	p = append(p, byte(w), byte(w>>8), byte(w>>16))
	return append(p, byte(h), byte(h>>8), byte(h>>16))
}

// ANMFPayload is an animation frame wrapping a lossless bitstream.
func ANMFPayload(width, height uint32) []byte {
	p := make([]byte, 16)
	w, h := width-1, height-1
	p[6], p[7], p[8] = byte(w), byte(w>>8), byte(w>>16)
	p[9], p[10], p[11] = byte(h), byte(h>>8), byte(h>>16)
	return append(p, RIFFChunk("VP8L", VP8LPayload(width, height, true))...)
}

func WebPLossy() []byte {
	return RIFF("WEBP", RIFFChunk("VP8 ", VP8Payload(Width, Height, true)))
}

func WebPLossless() []byte {
	return RIFF("WEBP", RIFFChunk("VP8L", VP8LPayload(Width, Height, true)))
}

// WebPAnimated builds an extended WebP with the given number of ANMF chunks.
func WebPAnimated(frames int) []byte {
	chunks := [][]byte{
		RIFFChunk("VP8X", VP8XPayload(0x12, Width, Height)),
		RIFFChunk("ANIM", make([]byte, 6)),
	}
	for range frames {
		chunks = append(chunks, RIFFChunk("ANMF", ANMFPayload(Width, Height)))
	}
	return RIFF("WEBP", chunks...)
}

func HDR(header ...string) []byte {
	var b bytes.Buffer
	b.WriteString("#?RADIANCE\n")
	for _, line := range header {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.Write(make([]byte, 32))
	return b.Bytes()
}

func StandardHDR() []byte {
	return HDR("# made by a test", "FORMAT=32-bit_rle_rgbe", "EXPOSURE=1.0", "", "-Y 370 +X 507")
}

func QOI(width, height uint32, channels byte) []byte {
	p := []byte("qoif")
	p = be.AppendUint32(p, width)
	p = be.AppendUint32(p, height)
	p = append(p, channels, 0)
	// end marker
	return append(p, 0, 0, 0, 0, 0, 0, 0, 1)
}

// ExifTIFF returns a big endian TIFF structure holding a single IFD with
// the Orientation tag.
func ExifTIFF(orientation uint16) []byte {
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

// JPEGWithExif inserts an APP1 Exif segment right after the SOI marker of
// the JPEG image.
func JPEGWithExif(orientation uint16) []byte {
	j := JPEG()
	payload := append([]byte("Exif\x00\x00"), ExifTIFF(orientation)...)
	seg := []byte{0xff, 0xe1}
	seg = be.AppendUint16(seg, uint16(len(payload)+2))
	seg = append(seg, payload...)
	ans := append([]byte{}, j[:2]...)
	ans = append(ans, seg...)
	return append(ans, j[2:]...)
}
