package imgkit

import "image"

// Image is a decoded, dimensioned image. It is itself a Source: passing
// an *Image to a manipulation call skips loading and decoding.
type Image struct {
	img    image.Image
	format Format
}

func (*Image) source() {}

// NewImage wraps a decoded image. Format is the format the image was
// decoded from and may be empty.
func NewImage(img image.Image, format Format) *Image {
	return &Image{img: img, format: format}
}

// Image returns the underlying decoded image.
func (i *Image) Image() image.Image {
	return i.img
}

// Bounds returns the image bounds.
func (i *Image) Bounds() image.Rectangle {
	if i.img == nil {
		return image.Rectangle{}
	}
	return i.img.Bounds()
}

// Width returns the natural width in pixels.
func (i *Image) Width() int {
	return i.Bounds().Dx()
}

// Height returns the natural height in pixels.
func (i *Image) Height() int {
	return i.Bounds().Dy()
}

// Format returns the format the image was decoded from, or "" if unknown.
func (i *Image) Format() Format {
	return i.format
}
