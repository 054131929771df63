package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gogpu/imgkit"
	"github.com/gogpu/imgkit/surface"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 20), G: uint8(y * 20), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestServer(t *testing.T, maxBody int64) *httptest.Server {
	t.Helper()
	f, err := surface.NewFactory(surface.WithBackend("standard"))
	if err != nil {
		t.Fatalf("NewFactory() = %v", err)
	}
	m, err := imgkit.NewManipulator(imgkit.WithSurfaceFactory(f))
	if err != nil {
		t.Fatalf("NewManipulator() = %v", err)
	}
	srv := httptest.NewServer(NewServer(m, maxBody, nil).Handler())
	t.Cleanup(func() {
		srv.Close()
		f.Close()
	})
	return srv
}

func TestOperations(t *testing.T) {
	srv := newTestServer(t, 1<<20)
	body := testPNG(t, 8, 6)

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantType string
		wantSize image.Point
	}{
		{"convert jpeg", "/v1/convert?format=jpeg&quality=0.7", http.StatusOK, "image/jpeg", image.Pt(8, 6)},
		{"convert webp", "/v1/convert?format=image/webp", http.StatusOK, "image/webp", image.Pt(8, 6)},
		{"resize", "/v1/resize?width=4&height=3&fit=stretch", http.StatusOK, "image/png", image.Pt(4, 3)},
		{"flip", "/v1/flip?horizontally=true", http.StatusOK, "image/png", image.Pt(8, 6)},
		{"rotate", "/v1/rotate?angle=1.5707963", http.StatusOK, "image/png", image.Pt(8, 6)},
		{"manipulate", "/v1/manipulate?width=10&flipVertically=1&format=png", http.StatusOK, "image/png", image.Pt(10, 6)},
		{"avif unsupported", "/v1/convert?format=avif", http.StatusUnsupportedMediaType, "", image.Point{}},
		{"zero width", "/v1/resize?width=0&height=3", http.StatusBadRequest, "", image.Point{}},
		{"oversized", "/v1/resize?width=2147483648&height=2147483648", http.StatusBadRequest, "", image.Point{}},
		{"missing format", "/v1/convert", http.StatusBadRequest, "", image.Point{}},
		{"missing height", "/v1/resize?width=3", http.StatusBadRequest, "", image.Point{}},
		{"bad bool", "/v1/flip?horizontally=maybe", http.StatusBadRequest, "", image.Point{}},
		{"bad fit", "/v1/manipulate?fit=cover", http.StatusBadRequest, "", image.Point{}},
		{"unknown format", "/v1/convert?format=heic", http.StatusBadRequest, "", image.Point{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+tt.path, "image/png", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("POST %s: %v", tt.path, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantCode {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantCode)
			}
			if tt.wantCode != http.StatusOK {
				var msg map[string]string
				if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil || msg["error"] == "" {
					t.Errorf("error body = %v, %v, want {\"error\": ...}", msg, err)
				}
				return
			}

			if got := resp.Header.Get("Content-Type"); got != tt.wantType {
				t.Errorf("Content-Type = %q, want %q", got, tt.wantType)
			}
			img, err := imgkit.NewLoader().Load(t.Context(), readBlob(t, resp))
			if err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if got := image.Pt(img.Width(), img.Height()); got != tt.wantSize {
				t.Errorf("size = %v, want %v", got, tt.wantSize)
			}
		})
	}
}

func readBlob(t *testing.T, resp *http.Response) *imgkit.Blob {
	t.Helper()
	b, err := imgkit.ReadBlob(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestDecodeFailure(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	resp, err := http.Post(srv.URL+"/v1/flip?vertically=true", "image/png", bytes.NewReader([]byte("garbage")))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestContentTypeParameters(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	for _, ct := range []string{"image/png; name=a.png", "IMAGE/PNG", "application/octet-stream"} {
		t.Run(ct, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/v1/flip?horizontally=true", ct, bytes.NewReader(testPNG(t, 4, 4)))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			if got := resp.Header.Get("Content-Type"); got != "image/png" {
				t.Errorf("Content-Type = %q, want image/png", got)
			}
		})
	}
}

func TestBodyLimits(t *testing.T) {
	srv := newTestServer(t, 64)

	tests := []struct {
		name string
		body []byte
		want int
	}{
		{"empty", nil, http.StatusBadRequest},
		{"too large", testPNG(t, 32, 32), http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/v1/convert?format=png", "image/png", bytes.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var health struct {
		Status  string   `json:"status"`
		Backend string   `json:"backend"`
		Formats []string `json:"formats"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode healthz: %v", err)
	}
	if health.Status != "ok" || health.Backend != "standard" {
		t.Errorf("healthz = %+v", health)
	}
	if got := fmt.Sprint(health.Formats); got != "[image/jpeg image/png image/webp]" {
		t.Errorf("healthz formats = %s, want [image/jpeg image/png image/webp]", got)
	}

	resp2, err := http.Get(srv.URL + "/v1/convert?format=png")
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/convert status = %d, want 405", resp2.StatusCode)
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&badRequestError{errors.New("x")}, http.StatusBadRequest},
		{&imgkit.InvalidDimensionsError{Width: 0, Height: 1}, http.StatusBadRequest},
		{&http.MaxBytesError{Limit: 1}, http.StatusRequestEntityTooLarge},
		{fmt.Errorf("wrapped: %w", imgkit.ErrUnsupportedOutputFormat), http.StatusUnsupportedMediaType},
		{&imgkit.DecodeError{Err: errors.New("x")}, http.StatusUnprocessableEntity},
		{imgkit.ErrDrawingContextUnavailable, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusCode(tt.err); got != tt.want {
			t.Errorf("statusCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
