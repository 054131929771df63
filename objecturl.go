package imgkit

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ObjectURLPrefix starts every object URL created by an ObjectURLs store.
const ObjectURLPrefix = "blob:imgkit/"

// ObjectURLs maps temporary blob: URLs to in-memory blobs.
//
// ObjectURLs is safe for concurrent use.
type ObjectURLs struct {
	mu    sync.RWMutex
	blobs map[string]*Blob
}

// NewObjectURLs creates an empty store.
func NewObjectURLs() *ObjectURLs {
	return &ObjectURLs{blobs: make(map[string]*Blob)}
}

// Create registers b and returns a new unique URL for it.
// The URL stays valid until Revoke is called.
func (s *ObjectURLs) Create(b *Blob) string {
	url := ObjectURLPrefix + uuid.NewString()

	s.mu.Lock()
	s.blobs[url] = b
	s.mu.Unlock()

	return url
}

// Revoke releases url. Revoking an unknown URL is a no-op.
func (s *ObjectURLs) Revoke(url string) {
	s.mu.Lock()
	delete(s.blobs, url)
	s.mu.Unlock()
}

// Resolve returns the blob registered for url.
func (s *ObjectURLs) Resolve(url string) (*Blob, bool) {
	if !strings.HasPrefix(url, "blob:") {
		return nil, false
	}

	s.mu.RLock()
	b, ok := s.blobs[url]
	s.mu.RUnlock()
	return b, ok
}

// Len returns the number of live URLs.
func (s *ObjectURLs) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
