package imgkit

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gogpu/imgkit/codec"
	"github.com/ryanuber/go-glob"
)

// Opener errors.
var (
	ErrUnsupportedScheme = errors.New("imgkit: unsupported URL scheme")
	ErrObjectURLNotFound = errors.New("imgkit: object URL not found or revoked")
	ErrOriginNotAllowed  = errors.New("imgkit: URL host is not allowed")
	ErrMalformedDataURL  = errors.New("imgkit: malformed data URL")
	ErrResponseStatus    = errors.New("imgkit: unexpected response status")
	ErrSourceTooLarge    = errors.New("imgkit: source exceeds size limit")
)

// Opener fetches the bytes behind a URL.
type Opener interface {
	Open(ctx context.Context, rawURL string) (*Blob, error)
}

// platformOpener resolves blob, data, file and http(s) URLs.
// Remote requests are anonymous: no cookies, no credentials.
type platformOpener struct {
	objects  *ObjectURLs
	client   *http.Client
	allowed  []string
	maxBytes int64
}

func newPlatformOpener(objects *ObjectURLs, client *http.Client, allowed []string, maxBytes int64) *platformOpener {
	if client == nil {
		client = http.DefaultClient
	}
	return &platformOpener{objects: objects, client: client, allowed: allowed, maxBytes: maxBytes}
}

func (o *platformOpener) Open(ctx context.Context, rawURL string) (*Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.HasPrefix(rawURL, "blob:") {
		b, ok := o.objects.Resolve(rawURL)
		if !ok {
			return nil, ErrObjectURLNotFound
		}
		return b, nil
	}
	if strings.HasPrefix(rawURL, "data:") {
		return parseDataURL(rawURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("imgkit: parse URL: %w", err)
	}

	switch u.Scheme {
	case "file":
		f, err := os.Open(u.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		data, err := o.readAll(f)
		if err != nil {
			return nil, err
		}
		return NewBlob(data, ""), nil
	case "http", "https":
		return o.fetch(ctx, u)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

func (o *platformOpener) fetch(ctx context.Context, u *url.URL) (*Blob, error) {
	if !o.isAllowedHost(u.Hostname()) {
		return nil, fmt.Errorf("%w: %s", ErrOriginNotAllowed, u.Hostname())
	}

	anon := *u
	anon.User = nil

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, anon.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "image/*")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrResponseStatus, resp.StatusCode)
	}

	data, err := o.readAll(resp.Body)
	if err != nil {
		return nil, err
	}

	typ := mediaType(resp.Header.Get("Content-Type"))
	if !strings.HasPrefix(typ, "image/") {
		typ = codec.SniffType(data)
	}
	return &Blob{Data: data, Type: typ}, nil
}

// readAll reads r, failing with ErrSourceTooLarge past maxBytes.
func (o *platformOpener) readAll(r io.Reader) ([]byte, error) {
	if o.maxBytes <= 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, o.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > o.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrSourceTooLarge, o.maxBytes)
	}
	return data, nil
}

func (o *platformOpener) isAllowedHost(host string) bool {
	if len(o.allowed) == 0 {
		return true
	}

	for _, pattern := range o.allowed {
		if glob.Glob(pattern, host) {
			return true
		}
	}
	return false
}

// parseDataURL decodes "data:[<mediatype>][;base64],<data>".
func parseDataURL(raw string) (*Blob, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(raw, "data:"), ",")
	if !ok {
		return nil, ErrMalformedDataURL
	}

	isBase64 := strings.HasSuffix(header, ";base64")
	typ := mediaType(strings.TrimSuffix(header, ";base64"))

	var data []byte
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDataURL, err)
		}
		data = decoded
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDataURL, err)
		}
		data = []byte(unescaped)
	}

	if !strings.HasPrefix(typ, "image/") {
		typ = ""
	}
	return NewBlob(data, typ), nil
}

// mediaType strips parameters from a Content-Type value.
func mediaType(v string) string {
	mt, _, _ := strings.Cut(v, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}
