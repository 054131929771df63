package imgkit

import (
	"net/http"

	"github.com/gogpu/imgkit/codec"
	"github.com/gogpu/imgkit/surface"
)

// Quality defaults.
const (
	// DefaultQuality is used by Manipulate, Flip and Rotate when the
	// caller does not supply a quality.
	DefaultQuality = 1.0

	// DefaultEncodeQuality is used by Convert and Resize when the caller
	// does not supply a quality.
	DefaultEncodeQuality = 0.9
)

// Fit controls how a decoded image is placed on a surface whose size
// differs from the image's natural size.
type Fit uint8

const (
	// FitNone draws the image at its natural size, centered. Larger
	// targets are padded with transparency and smaller ones crop.
	FitNone Fit = iota

	// FitStretch resamples the image to the target size before drawing.
	FitStretch
)

// String returns the fit mode name.
func (f Fit) String() string {
	switch f {
	case FitNone:
		return "none"
	case FitStretch:
		return "stretch"
	default:
		return "unknown"
	}
}

// ParseFit parses "none" or "stretch". The empty string is FitNone.
func ParseFit(s string) (Fit, bool) {
	switch s {
	case "", "none":
		return FitNone, true
	case "stretch":
		return FitStretch, true
	default:
		return FitNone, false
	}
}

// ImageOptions is the fully resolved parameter set of one manipulation.
type ImageOptions struct {
	Format           Format
	Width            int
	Height           int
	Quality          float64
	FlipHorizontally bool
	FlipVertically   bool

	// RotateAngle is in radians, clockwise in image space.
	RotateAngle float64

	Fit Fit
}

// ManipulateOptions is a partial ImageOptions. A nil field means
// "not supplied" and keeps the default derived from the source.
type ManipulateOptions struct {
	Format           *Format
	Width            *int
	Height           *int
	Quality          *float64
	FlipHorizontally *bool
	FlipVertically   *bool
	RotateAngle      *float64
	Fit              *Fit
}

// DefaultOptions derives the options used when the caller supplies none:
// the source format, the natural size, full quality and no transforms.
func DefaultOptions(src Source, img *Image) ImageOptions {
	return ImageOptions{
		Format:  sourceFormat(src, img),
		Width:   img.Width(),
		Height:  img.Height(),
		Quality: DefaultQuality,
	}
}

// sourceFormat returns the MIME type carried by the source, falling back
// to the format the image was decoded from.
func sourceFormat(src Source, img *Image) Format {
	var typ string
	switch s := src.(type) {
	case *Blob:
		typ = s.Type
	case *File:
		typ = s.Type
	}
	if typ = mediaType(typ); typ != "" {
		return Format(typ)
	}
	if img.Format() != "" {
		return img.Format()
	}
	return FormatPNG
}

// Merge returns base with every non-nil field of o applied on top.
func (o ManipulateOptions) Merge(base ImageOptions) ImageOptions {
	if o.Format != nil {
		base.Format = *o.Format
	}
	if o.Width != nil {
		base.Width = *o.Width
	}
	if o.Height != nil {
		base.Height = *o.Height
	}
	if o.Quality != nil {
		base.Quality = *o.Quality
	}
	if o.FlipHorizontally != nil {
		base.FlipHorizontally = *o.FlipHorizontally
	}
	if o.FlipVertically != nil {
		base.FlipVertically = *o.FlipVertically
	}
	if o.RotateAngle != nil {
		base.RotateAngle = *o.RotateAngle
	}
	if o.Fit != nil {
		base.Fit = *o.Fit
	}
	return base
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// FormatPtr returns a pointer to f.
func FormatPtr(f Format) *Format { return &f }

// ConvertOptions selects the output format of Convert.
type ConvertOptions struct {
	Format Format

	// Quality in [0, 1]. Nil means DefaultEncodeQuality.
	Quality *float64
}

func (o ConvertOptions) manipulate() ManipulateOptions {
	q := DefaultEncodeQuality
	if o.Quality != nil {
		q = *o.Quality
	}
	return ManipulateOptions{Format: &o.Format, Quality: &q}
}

// ResizeOptions sets the target size of Resize.
type ResizeOptions struct {
	Width  int
	Height int

	// Format overrides the output format. Nil keeps the source format.
	Format *Format

	// Quality in [0, 1]. Nil means DefaultEncodeQuality.
	Quality *float64

	Fit Fit
}

func (o ResizeOptions) manipulate() ManipulateOptions {
	q := DefaultEncodeQuality
	if o.Quality != nil {
		q = *o.Quality
	}
	return ManipulateOptions{
		Format:  o.Format,
		Width:   &o.Width,
		Height:  &o.Height,
		Quality: &q,
		Fit:     &o.Fit,
	}
}

// FlipOptions selects the mirror axes of Flip.
type FlipOptions struct {
	Horizontally bool
	Vertically   bool
}

func (o FlipOptions) manipulate() ManipulateOptions {
	return ManipulateOptions{
		FlipHorizontally: &o.Horizontally,
		FlipVertically:   &o.Vertically,
	}
}

// RotateOptions sets the rotation of Rotate.
type RotateOptions struct {
	// Angle in radians. The surface keeps the natural size, so corners
	// rotated outside it are cropped.
	Angle float64
}

func (o RotateOptions) manipulate() ManipulateOptions {
	return ManipulateOptions{RotateAngle: &o.Angle}
}

// Option configures a Loader or a Manipulator during creation.
//
// Example:
//
//	m, err := imgkit.NewManipulator(
//	    imgkit.WithAllowedOrigins("*.example.com"),
//	    imgkit.WithSurfaceFactory(f),
//	)
type Option func(*options)

// options holds optional configuration for Loader and Manipulator.
type options struct {
	decoder  Decoder
	opener   Opener
	objects  *ObjectURLs
	client   *http.Client
	allowed  []string
	maxBytes int64
	loader   *Loader
	factory  *surface.Factory
	encoders *codec.Registry
}

// WithDecoder sets the image decoder. Defaults to codec.NewDecoder().
func WithDecoder(d Decoder) Option {
	return func(o *options) {
		o.decoder = d
	}
}

// WithOpener sets the opener used for non-object URLs.
func WithOpener(op Opener) Option {
	return func(o *options) {
		o.opener = op
	}
}

// WithObjectURLs sets the store used for temporary object URLs.
func WithObjectURLs(s *ObjectURLs) Option {
	return func(o *options) {
		o.objects = s
	}
}

// WithHTTPClient sets the client used for http and https URLs.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.client = c
	}
}

// WithAllowedOrigins restricts http and https URLs to hosts matching one
// of the glob patterns, e.g. "*.example.com". No patterns allows all.
func WithAllowedOrigins(patterns ...string) Option {
	return func(o *options) {
		o.allowed = append(o.allowed, patterns...)
	}
}

// WithMaxSourceBytes caps the size of sources fetched from http, https
// and file URLs. Zero or negative means no limit.
func WithMaxSourceBytes(n int64) Option {
	return func(o *options) {
		o.maxBytes = n
	}
}

// WithLoader sets the loader used by a Manipulator. Loader options passed
// to the same NewManipulator call are then ignored.
func WithLoader(l *Loader) Option {
	return func(o *options) {
		o.loader = l
	}
}

// WithSurfaceFactory sets the surface factory used by a Manipulator.
// The Manipulator does not close a factory it did not create.
func WithSurfaceFactory(f *surface.Factory) Option {
	return func(o *options) {
		o.factory = f
	}
}

// WithEncoders sets the output encoders. Defaults to codec.NewRegistry().
func WithEncoders(r *codec.Registry) Option {
	return func(o *options) {
		o.encoders = r
	}
}
