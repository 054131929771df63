package imgkit

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/imgkit/codec"
	"github.com/gogpu/imgkit/surface"
	"github.com/nfnt/resize"
)

// Manipulator runs the load, transform and encode pipeline.
//
// Manipulator is safe for concurrent use. Each call owns its decoded image
// and its surface, and releases both before returning.
type Manipulator struct {
	loader      *Loader
	factory     *surface.Factory
	ownsFactory bool
	encoders    *codec.Registry
}

// NewManipulator creates a Manipulator.
//
// Without WithSurfaceFactory a factory is created with the best available
// surface backend and is closed by Close.
func NewManipulator(opts ...Option) (*Manipulator, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	m := &Manipulator{
		loader:   o.loader,
		factory:  o.factory,
		encoders: o.encoders,
	}
	if m.loader == nil {
		m.loader = newLoader(&o)
	}
	if m.encoders == nil {
		m.encoders = codec.NewRegistry()
	}
	if m.factory == nil {
		f, err := surface.NewFactory()
		if err != nil {
			return nil, fmt.Errorf("imgkit: create surface factory: %w", err)
		}
		m.factory = f
		m.ownsFactory = true
	}
	return m, nil
}

// Close releases the surface factory if the Manipulator created it.
func (m *Manipulator) Close() error {
	if m.ownsFactory {
		return m.factory.Close()
	}
	return nil
}

// Loader returns the loader used by m.
func (m *Manipulator) Loader() *Loader {
	return m.loader
}

// Backend returns the name of the surface backend in use.
func (m *Manipulator) Backend() string {
	return m.factory.Backend()
}

// Formats returns the output formats that can currently be encoded.
func (m *Manipulator) Formats() []Format {
	return m.encoders.Supported()
}

// LoadImage decodes src without transforming it.
func (m *Manipulator) LoadImage(ctx context.Context, src Source) (*Image, error) {
	return m.loader.Load(ctx, src)
}

// Manipulate loads src, applies opts over the defaults derived from the
// source and encodes the result.
//
// The drawing order is fixed: translate to the surface center, mirror if
// either flip is set, rotate if the angle is non-zero, then draw the image
// centered on the origin.
func (m *Manipulator) Manipulate(ctx context.Context, src Source, opts ManipulateOptions) (*Blob, error) {
	img, err := m.loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}

	eff := opts.Merge(DefaultOptions(src, img))
	Logger().Debug("imgkit: manipulate",
		"format", eff.Format,
		"width", eff.Width,
		"height", eff.Height,
		"quality", eff.Quality,
		"flipH", eff.FlipHorizontally,
		"flipV", eff.FlipVertically,
		"angle", eff.RotateAngle,
		"fit", eff.Fit)

	if err := surface.ValidateSize(eff.Width, eff.Height); err != nil {
		return nil, err
	}
	enc, err := m.encoders.Lookup(eff.Format)
	if err != nil {
		Logger().Warn("imgkit: no encoder", "format", eff.Format, "error", err)
		return nil, err
	}

	drawn := img.Image()
	if eff.Fit == FitStretch {
		drawn = stretch(drawn, eff.Width, eff.Height)
	}

	s, dc, err := m.factory.New(eff.Width, eff.Height)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	dc.Translate(float64(eff.Width)/2, float64(eff.Height)/2)
	if eff.FlipHorizontally || eff.FlipVertically {
		sx, sy := 1.0, 1.0
		if eff.FlipHorizontally {
			sx = -1
		}
		if eff.FlipVertically {
			sy = -1
		}
		dc.Scale(sx, sy)
	}
	if eff.RotateAngle != 0 {
		dc.Rotate(eff.RotateAngle)
	}
	b := drawn.Bounds()
	dc.DrawImage(drawn, -float64(b.Dx())/2, -float64(b.Dy())/2)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.Encode(&buf, enc, eff.Quality); err != nil {
		return nil, fmt.Errorf("imgkit: encode %s: %w", eff.Format, err)
	}

	Logger().Debug("imgkit: encoded", "backend", s.Kind(), "format", eff.Format, "bytes", buf.Len())
	return &Blob{Data: buf.Bytes(), Type: string(eff.Format)}, nil
}

// Convert re-encodes src in another format at its natural size.
func (m *Manipulator) Convert(ctx context.Context, src Source, opts ConvertOptions) (*Blob, error) {
	return m.Manipulate(ctx, src, opts.manipulate())
}

// Resize draws src onto a surface of the given size.
func (m *Manipulator) Resize(ctx context.Context, src Source, opts ResizeOptions) (*Blob, error) {
	return m.Manipulate(ctx, src, opts.manipulate())
}

// Flip mirrors src about its center.
func (m *Manipulator) Flip(ctx context.Context, src Source, opts FlipOptions) (*Blob, error) {
	return m.Manipulate(ctx, src, opts.manipulate())
}

// Rotate rotates src about its center.
func (m *Manipulator) Rotate(ctx context.Context, src Source, opts RotateOptions) (*Blob, error) {
	return m.Manipulate(ctx, src, opts.manipulate())
}

// stretch resamples img to w x h unless it already has that size.
func stretch(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	return resize.Resize(uint(w), uint(h), img, resize.Lanczos3)
}

var defaultManipulator = sync.OnceValues(func() (*Manipulator, error) {
	return NewManipulator()
})

func shared() (*Manipulator, error) {
	return defaultManipulator()
}

// LoadImage decodes src with the shared default Manipulator.
func LoadImage(ctx context.Context, src Source) (*Image, error) {
	m, err := shared()
	if err != nil {
		return nil, err
	}
	return m.LoadImage(ctx, src)
}

// Manipulate transforms src with the shared default Manipulator.
func Manipulate(ctx context.Context, src Source, opts ManipulateOptions) (*Blob, error) {
	m, err := shared()
	if err != nil {
		return nil, err
	}
	return m.Manipulate(ctx, src, opts)
}

// Convert re-encodes src with the shared default Manipulator.
func Convert(ctx context.Context, src Source, opts ConvertOptions) (*Blob, error) {
	m, err := shared()
	if err != nil {
		return nil, err
	}
	return m.Convert(ctx, src, opts)
}

// Resize resizes src with the shared default Manipulator.
func Resize(ctx context.Context, src Source, opts ResizeOptions) (*Blob, error) {
	m, err := shared()
	if err != nil {
		return nil, err
	}
	return m.Resize(ctx, src, opts)
}

// Flip mirrors src with the shared default Manipulator.
func Flip(ctx context.Context, src Source, opts FlipOptions) (*Blob, error) {
	m, err := shared()
	if err != nil {
		return nil, err
	}
	return m.Flip(ctx, src, opts)
}

// Rotate rotates src with the shared default Manipulator.
func Rotate(ctx context.Context, src Source, opts RotateOptions) (*Blob, error) {
	m, err := shared()
	if err != nil {
		return nil, err
	}
	return m.Rotate(ctx, src, opts)
}
