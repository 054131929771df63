package imgkit

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"strings"

	"github.com/gogpu/imgkit/codec"
	"github.com/gogpu/imgkit/surface"
)

//go:generate mockgen -destination=mocks/mock_decoder.go -package=mocks github.com/gogpu/imgkit Decoder

// Decoder turns encoded bytes into an image and reports the codec name.
// codec.Decoder is the default implementation.
type Decoder interface {
	Decode(r io.Reader) (image.Image, string, error)
}

var errNilSource = errors.New("nil source")

// Loader normalizes any Source into a decoded *Image.
//
// Loader is safe for concurrent use.
type Loader struct {
	decoder Decoder
	opener  Opener
	objects *ObjectURLs
}

// NewLoader creates a loader. Only WithDecoder, WithOpener, WithObjectURLs,
// WithHTTPClient, WithAllowedOrigins and WithMaxSourceBytes apply.
func NewLoader(opts ...Option) *Loader {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return newLoader(&o)
}

func newLoader(o *options) *Loader {
	l := &Loader{
		decoder: o.decoder,
		opener:  o.opener,
		objects: o.objects,
	}
	if l.decoder == nil {
		l.decoder = codec.NewDecoder()
	}
	if l.objects == nil {
		l.objects = NewObjectURLs()
	}
	if l.opener == nil {
		l.opener = newPlatformOpener(l.objects, o.client, o.allowed, o.maxBytes)
	}
	return l
}

// ObjectURLs returns the store holding the loader's temporary URLs.
func (l *Loader) ObjectURLs() *ObjectURLs {
	return l.objects
}

// Load returns the decoded image for src.
//
// An *Image is returned unchanged without decoding. A *Blob or *File is
// exposed through a temporary object URL for the duration of the decode;
// the URL is revoked before Load returns. A URL is resolved through the
// Opener. Every failure is a *DecodeError matching ErrDecodeFailure.
func (l *Loader) Load(ctx context.Context, src Source) (*Image, error) {
	switch s := src.(type) {
	case *Image:
		if s == nil || s.Image() == nil {
			return nil, &DecodeError{Err: errNilSource}
		}
		return s, nil
	case *File:
		if s == nil {
			return nil, &DecodeError{Err: errNilSource}
		}
		return l.loadBlob(ctx, &s.Blob)
	case *Blob:
		if s == nil {
			return nil, &DecodeError{Err: errNilSource}
		}
		return l.loadBlob(ctx, s)
	case URL:
		return l.loadURL(ctx, string(s))
	default:
		return nil, &DecodeError{Err: errNilSource}
	}
}

func (l *Loader) loadBlob(ctx context.Context, b *Blob) (*Image, error) {
	url := l.objects.Create(b)
	defer l.objects.Revoke(url)

	return l.loadURL(ctx, url)
}

func (l *Loader) loadURL(ctx context.Context, url string) (*Image, error) {
	b, err := l.open(ctx, url)
	if err != nil {
		Logger().Warn("imgkit: load failed", "url", url, "error", err)
		return nil, &DecodeError{Source: url, Err: err}
	}

	// Reject oversized images from their header before allocating pixels.
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(b.Data)); err == nil {
		if err := surface.ValidateSize(cfg.Width, cfg.Height); err != nil {
			Logger().Warn("imgkit: image too large", "url", url, "error", err)
			return nil, &DecodeError{Source: url, Err: err}
		}
	}

	img, name, err := l.decoder.Decode(bytes.NewReader(b.Data))
	if err != nil {
		Logger().Warn("imgkit: decode failed", "url", url, "error", err)
		return nil, &DecodeError{Source: url, Err: err}
	}

	format := Format(mediaType(b.Type))
	if format == "" {
		format = Format(codec.SniffType(b.Data))
	}
	if format == "" && name != "" {
		format = codec.FormatFromCodec(name)
	}

	bounds := img.Bounds()
	Logger().Debug("imgkit: image loaded",
		"url", url, "format", format, "width", bounds.Dx(), "height", bounds.Dy())
	return NewImage(img, format), nil
}

func (l *Loader) open(ctx context.Context, url string) (*Blob, error) {
	if strings.HasPrefix(url, ObjectURLPrefix) {
		b, ok := l.objects.Resolve(url)
		if !ok {
			return nil, ErrObjectURLNotFound
		}
		return b, nil
	}
	return l.opener.Open(ctx, url)
}
