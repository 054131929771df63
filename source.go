package imgkit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/imgkit/codec"
)

// Source is anything a manipulation call accepts as input:
// *Blob, *File, *Image or URL.
type Source interface {
	source()
}

// Blob is an in-memory binary image with its MIME type.
// A Blob is never modified by imgkit.
type Blob struct {
	// Data holds the encoded image bytes.
	Data []byte

	// Type is the MIME type of Data, e.g. "image/png".
	// Empty means unknown.
	Type string
}

func (*Blob) source() {}

// NewBlob returns a Blob for data. When typ is empty the type is sniffed
// from the content.
func NewBlob(data []byte, typ string) *Blob {
	if typ = mediaType(typ); typ == "" {
		typ = codec.SniffType(data)
	}
	return &Blob{Data: data, Type: typ}
}

// ReadBlob reads r fully into a Blob with a sniffed type.
func ReadBlob(r io.Reader) (*Blob, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("imgkit: read blob: %w", err)
	}
	return NewBlob(data, ""), nil
}

// Size returns the length of the blob in bytes.
func (b *Blob) Size() int {
	return len(b.Data)
}

// File is a Blob with a name and modification time.
type File struct {
	Blob

	// Name is the base name of the file.
	Name string

	// LastModified is the file modification time.
	LastModified time.Time
}

// OpenFile reads the file at path into a File.
func OpenFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("imgkit: open file: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("imgkit: stat file: %w", err)
	}
	return &File{
		Blob:         *NewBlob(data, ""),
		Name:         filepath.Base(path),
		LastModified: info.ModTime(),
	}, nil
}

// URL is an image location resolved by the loader's Opener.
// Supported schemes are blob, data, file, http and https.
type URL string

func (URL) source() {}

// String returns the URL text.
func (u URL) String() string {
	return string(u)
}
