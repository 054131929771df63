package imgkit

import "github.com/gogpu/imgkit/codec"

// Format is an output image format identified by its MIME type.
type Format = codec.Format

// Output formats.
const (
	FormatPNG  = codec.PNG
	FormatJPEG = codec.JPEG
	FormatWebP = codec.WebP
	FormatAVIF = codec.AVIF
)

// ParseFormat parses a MIME type or short name such as "jpg" or "webp".
func ParseFormat(s string) (Format, error) {
	return codec.ParseFormat(s)
}
