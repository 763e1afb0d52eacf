package types

import (
	"fmt"
)

var _ = fmt.Print

// Format is an image file format.
type Format int

// Image file formats.
const (
	UNKNOWN Format = iota
	BMP
	GIF
	JPEG
	PNG
	WEBP
	HDR
	QOI
)

var FormatExts = map[string]Format{
	"bmp":  BMP,
	"dib":  BMP,
	"gif":  GIF,
	"jpg":  JPEG,
	"jpeg": JPEG,
	"jpe":  JPEG,
	"jfif": JPEG,
	"png":  PNG,
	"apng": PNG,
	"webp": WEBP,
	"hdr":  HDR,
	"pic":  HDR,
	"qoi":  QOI,
}

var formatNames = map[Format]string{
	BMP:  "BMP",
	GIF:  "GIF",
	JPEG: "JPEG",
	PNG:  "PNG",
	WEBP: "WEBP",
	HDR:  "HDR",
	QOI:  "QOI",
}

func (f Format) String() string {
	if ans, ok := formatNames[f]; ok {
		return ans
	}
	return "UNKNOWN"
}

func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
