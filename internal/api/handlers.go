package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gogpu/imgkit"
)

// badRequestError marks a malformed request.
type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

// operation builds manipulation options from the query and runs them.
type operation func(m *imgkit.Manipulator, r *http.Request, src imgkit.Source, p *params) (*imgkit.Blob, error)

func convertOp(m *imgkit.Manipulator, r *http.Request, src imgkit.Source, p *params) (*imgkit.Blob, error) {
	p.require("format")
	format := p.format("format")
	quality := p.float("quality")
	if p.err != nil {
		return nil, &badRequestError{p.err}
	}
	return m.Convert(r.Context(), src, imgkit.ConvertOptions{Format: *format, Quality: quality})
}

func resizeOp(m *imgkit.Manipulator, r *http.Request, src imgkit.Source, p *params) (*imgkit.Blob, error) {
	p.require("width")
	p.require("height")
	opts := imgkit.ResizeOptions{
		Format:  p.format("format"),
		Quality: p.float("quality"),
	}
	w, h := p.int("width"), p.int("height")
	if fit := p.fit("fit"); fit != nil {
		opts.Fit = *fit
	}
	if p.err != nil {
		return nil, &badRequestError{p.err}
	}
	opts.Width, opts.Height = *w, *h
	return m.Resize(r.Context(), src, opts)
}

func flipOp(m *imgkit.Manipulator, r *http.Request, src imgkit.Source, p *params) (*imgkit.Blob, error) {
	h, v := p.bool("horizontally"), p.bool("vertically")
	if p.err != nil {
		return nil, &badRequestError{p.err}
	}
	var opts imgkit.FlipOptions
	if h != nil {
		opts.Horizontally = *h
	}
	if v != nil {
		opts.Vertically = *v
	}
	return m.Flip(r.Context(), src, opts)
}

func rotateOp(m *imgkit.Manipulator, r *http.Request, src imgkit.Source, p *params) (*imgkit.Blob, error) {
	p.require("angle")
	angle := p.float("angle")
	if p.err != nil {
		return nil, &badRequestError{p.err}
	}
	return m.Rotate(r.Context(), src, imgkit.RotateOptions{Angle: *angle})
}

func manipulateOp(m *imgkit.Manipulator, r *http.Request, src imgkit.Source, p *params) (*imgkit.Blob, error) {
	opts := imgkit.ManipulateOptions{
		Format:           p.format("format"),
		Width:            p.int("width"),
		Height:           p.int("height"),
		Quality:          p.float("quality"),
		FlipHorizontally: p.bool("flipHorizontally"),
		FlipVertically:   p.bool("flipVertically"),
		RotateAngle:      p.float("angle"),
		Fit:              p.fit("fit"),
	}
	if p.err != nil {
		return nil, &badRequestError{p.err}
	}
	return m.Manipulate(r.Context(), src, opts)
}

func (s *Server) handle(op operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if len(data) == 0 {
			s.writeError(w, r, &badRequestError{errors.New("empty request body")})
			return
		}

		typ := r.Header.Get("Content-Type")
		if !strings.HasPrefix(strings.ToLower(typ), "image/") {
			typ = ""
		}
		src := imgkit.NewBlob(data, typ)

		out, err := op(s.manipulator, r, src, newParams(r.URL.Query()))
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		s.logger.Debug("api: request served",
			"path", r.URL.Path, "in", len(data), "out", len(out.Data), "type", out.Type)
		w.Header().Set("Content-Type", out.Type)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out.Data)
	}
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"backend": s.manipulator.Backend(),
		"formats": s.manipulator.Formats(),
	})
}

// statusCode maps a manipulation error to an HTTP status.
func statusCode(err error) int {
	var bre *badRequestError
	var mbe *http.MaxBytesError
	switch {
	case errors.As(err, &bre), errors.Is(err, imgkit.ErrInvalidDimensions):
		return http.StatusBadRequest
	case errors.As(err, &mbe):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, imgkit.ErrUnsupportedOutputFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, imgkit.ErrDecodeFailure):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusCode(err)
	level := slog.LevelInfo
	if code >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.Log(r.Context(), level, "api: request failed", "path", r.URL.Path, "status", code, "error", err)
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
