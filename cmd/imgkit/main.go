// Command imgkit converts, resizes, flips and rotates a single image.
//
// Usage:
//
//	imgkit -op convert -in photo.png -out photo.jpg -format jpeg -quality 0.8
//	imgkit -op resize -in https://example.com/a.webp -out a.png -width 320 -height 200 -fit stretch
//	imgkit -op flip -in a.png -out b.png -h
//	imgkit -op rotate -in a.png -out b.png -angle 1.5708
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/imgkit"
	"github.com/gogpu/imgkit/codec"
	"github.com/gogpu/imgkit/surface"
)

func main() {
	var (
		op      = flag.String("op", "convert", "operation: convert, resize, flip, rotate or manipulate")
		in      = flag.String("in", "", "input file or URL")
		out     = flag.String("out", "", "output file, - for stdout")
		format  = flag.String("format", "", "output format: "+formatList(codec.NewRegistry().Supported()))
		quality = flag.Float64("quality", -1, "output quality in [0, 1]; negative keeps the default")
		width   = flag.Int("width", 0, "target width")
		height  = flag.Int("height", 0, "target height")
		flipH   = flag.Bool("h", false, "flip horizontally")
		flipV   = flag.Bool("v", false, "flip vertically")
		angle   = flag.Float64("angle", 0, "rotation in radians")
		fit     = flag.String("fit", "none", "resize fit: none or stretch")
		allow   = flag.String("allow", "", "comma separated host globs allowed for URL input")
		maxIn   = flag.Int64("max-bytes", 0, "maximum size in bytes of URL input; 0 is unlimited")
		backend = flag.String("backend", "", "surface backend: offscreen or standard")
		verbose = flag.Bool("debug", false, "log pipeline steps to stderr")
	)
	flag.Parse()

	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		imgkit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	factory, m, err := newManipulator(*backend, *allow, *maxIn)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer factory.Close()

	src, err := openSource(*in)
	if err != nil {
		log.Fatalf("Failed to open input: %v", err)
	}

	opts, err := buildOptions(*op, *format, *quality, *width, *height, *flipH, *flipV, *angle, *fit)
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	blob, err := m.Manipulate(context.Background(), src, opts)
	if err != nil {
		log.Fatalf("Failed to %s: %v", *op, err)
	}

	if *out == "-" {
		_, err = os.Stdout.Write(blob.Data)
	} else {
		err = os.WriteFile(*out, blob.Data, 0o644)
	}
	if err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	if *out != "-" {
		log.Printf("Saved %s (%s, %d bytes)\n", *out, blob.Type, len(blob.Data))
	}
}

func newManipulator(backend, allow string, maxBytes int64) (*surface.Factory, *imgkit.Manipulator, error) {
	var fopts []surface.FactoryOption
	if backend != "" {
		fopts = append(fopts, surface.WithBackend(backend))
	}
	f, err := surface.NewFactory(fopts...)
	if err != nil {
		return nil, nil, err
	}

	opts := []imgkit.Option{
		imgkit.WithSurfaceFactory(f),
		imgkit.WithMaxSourceBytes(maxBytes),
	}
	if allow != "" {
		opts = append(opts, imgkit.WithAllowedOrigins(strings.Split(allow, ",")...))
	}
	m, err := imgkit.NewManipulator(opts...)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, m, nil
}

// formatList returns the short names of formats, e.g. "jpeg, png".
func formatList(formats []codec.Format) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = strings.TrimPrefix(f.String(), "image/")
	}
	return strings.Join(names, ", ")
}

func openSource(in string) (imgkit.Source, error) {
	if strings.Contains(in, "://") || strings.HasPrefix(in, "data:") || strings.HasPrefix(in, "blob:") {
		return imgkit.URL(in), nil
	}
	return imgkit.OpenFile(in)
}

// buildOptions maps the flags of one operation onto manipulation options.
// Flags that do not belong to the operation are ignored.
func buildOptions(op, format string, quality float64, width, height int, flipH, flipV bool, angle float64, fit string) (imgkit.ManipulateOptions, error) {
	var opts imgkit.ManipulateOptions

	if format != "" {
		f, err := imgkit.ParseFormat(format)
		if err != nil {
			return opts, err
		}
		opts.Format = &f
	}
	if quality >= 0 {
		opts.Quality = imgkit.Float(quality)
	}
	fitMode, ok := imgkit.ParseFit(fit)
	if !ok {
		return opts, fmt.Errorf("unknown fit %q", fit)
	}

	switch op {
	case "convert":
		if opts.Format == nil {
			return opts, fmt.Errorf("convert requires -format")
		}
		if opts.Quality == nil {
			opts.Quality = imgkit.Float(imgkit.DefaultEncodeQuality)
		}
	case "resize":
		opts.Width, opts.Height = &width, &height
		opts.Fit = &fitMode
		if opts.Quality == nil {
			opts.Quality = imgkit.Float(imgkit.DefaultEncodeQuality)
		}
	case "flip":
		opts.FlipHorizontally, opts.FlipVertically = &flipH, &flipV
	case "rotate":
		opts.RotateAngle = &angle
	case "manipulate":
		if width > 0 {
			opts.Width = &width
		}
		if height > 0 {
			opts.Height = &height
		}
		opts.FlipHorizontally, opts.FlipVertically = &flipH, &flipV
		opts.RotateAngle = &angle
		opts.Fit = &fitMode
	default:
		return opts, fmt.Errorf("unknown operation %q", op)
	}
	return opts, nil
}
