package autometa

import (
	"errors"
	"fmt"
	"io"

	"github.com/kovidgoyal/imagemeta/meta"
	"github.com/kovidgoyal/imagemeta/meta/bmpmeta"
	"github.com/kovidgoyal/imagemeta/meta/gifmeta"
	"github.com/kovidgoyal/imagemeta/meta/hdrmeta"
	"github.com/kovidgoyal/imagemeta/meta/jpegmeta"
	"github.com/kovidgoyal/imagemeta/meta/pngmeta"
	"github.com/kovidgoyal/imagemeta/meta/qoimeta"
	"github.com/kovidgoyal/imagemeta/meta/webpmeta"
	"github.com/kovidgoyal/imagemeta/streams"
)

var _ = fmt.Print

type Loader func(streams.Source) (*meta.Data, error)

var loaders = []Loader{
	jpegmeta.ExtractMetadata,
	gifmeta.ExtractMetadata,
	pngmeta.ExtractMetadata,
	bmpmeta.ExtractMetadata,
	webpmeta.ExtractMetadata,
	hdrmeta.ExtractMetadata,
	qoimeta.ExtractMetadata,
}

// Loaders returns the extractors in the order they are tried.
func Loaders() []Loader {
	return append([]Loader(nil), loaders...)
}

// LoadSource tries every extractor in turn on r. An extractor rejecting the
// signature causes r to be rewound to where it started before the next one
// is tried, any other error is returned as is. If no extractor recognizes
// the stream meta.ErrUnsupported is returned.
func LoadSource(r streams.Source) (*meta.Data, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	for _, loader := range loaders {
		md, err := loader(r)
		if err == nil {
			return md, nil
		}
		if !errors.Is(err, meta.ErrInvalidSignature) {
			return nil, err
		}
		if _, err = r.Seek(start, io.SeekStart); err != nil {
			return nil, err
		}
	}
	return nil, meta.ErrUnsupported
}

// Load loads the metadata for an image stream, which may be one of the
// supported image formats.
//
// Only as much of the stream is consumed as necessary to extract the metadata;
// the returned stream yields the full input from where r was positioned, such
// that reading from it will produce the same results as fully reading the
// input stream. This provides a convenient way to load the full image after
// loading the metadata.
//
// An error is returned if the metadata could not be extracted. The returned
// stream still provides the full image data.
func Load(r io.Reader) (md *meta.Data, imgStream io.Reader, err error) {
	s := streams.NewReader(r)
	md, err = LoadSource(s)
	imgStream, serr := s.Stream()
	if serr != nil {
		imgStream = nil
		if err == nil {
			md, err = nil, serr
		}
	}
	return md, imgStream, err
}
