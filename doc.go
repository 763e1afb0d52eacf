/*
Package imagemeta reads the dimensions, color model and animation frame count
of BMP, GIF, JPEG, PNG, WebP, Radiance HDR and QOI images by parsing only their
headers and container structures. Pixel data is never decoded.

The format of a stream is detected by trying each supported format in turn,
see the autometa package. The per format extractors live in the meta/*meta
packages and can be used directly when the format is already known.
*/
package imagemeta

import "fmt"

type ImagemetaVersion struct {
	Major, Minor, Patch uint
}

func (v ImagemetaVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v ImagemetaVersion) Equal(o ImagemetaVersion) bool {
	return v.Major == o.Major && v.Minor == o.Minor && v.Patch == o.Patch
}

func (v ImagemetaVersion) After(o ImagemetaVersion) bool {
	switch {
	case v.Major != o.Major:
		return v.Major > o.Major
	case v.Minor != o.Minor:
		return v.Minor > o.Minor
	}
	return v.Patch > o.Patch
}

func (v ImagemetaVersion) Before(o ImagemetaVersion) bool {
	return !v.Equal(o) && !v.After(o)
}

var Version = ImagemetaVersion{0, 3, 0}
