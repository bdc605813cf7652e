package utils

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	u := &PosterUploader{}
	data := tinyPNG(t)

	if err := u.ValidateImage(data, "image/png"); err != nil {
		t.Errorf("valid PNG rejected: %v", err)
	}
	if err := u.ValidateImage(data, "application/pdf"); err == nil {
		t.Error("expected error for disallowed MIME type")
	}
	if err := u.ValidateImage([]byte("not an image at all"), "image/png"); err == nil {
		t.Error("expected error for undecodable content")
	}
}

func TestUploadRequiresAPIKey(t *testing.T) {
	u := &PosterUploader{client: &http.Client{}}
	if _, err := u.Upload(tinyPNG(t)); !errors.Is(err, ErrUploaderNotConfigured) {
		t.Fatalf("expected ErrUploaderNotConfigured, got %v", err)
	}
}

func TestUploadReturnsHostedURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("bad form: %v", err)
		}
		if r.FormValue("key") != "test-key" {
			t.Errorf("key = %q", r.FormValue("key"))
		}
		if r.FormValue("image") == "" {
			t.Error("image payload missing")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "data": {"url": "https://i.ibb.co/abc123/poster.png"}}`))
	}))
	defer srv.Close()

	u := &PosterUploader{
		apiKey:    "test-key",
		uploadURL: srv.URL,
		client:    &http.Client{Timeout: 5 * time.Second},
	}

	got, err := u.Upload(tinyPNG(t))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if got != "https://i.ibb.co/abc123/poster.png" {
		t.Errorf("url = %q", got)
	}
}

func TestUploadSurfacesServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": false, "error": {"message": "Invalid API key"}}`))
	}))
	defer srv.Close()

	u := &PosterUploader{
		apiKey:    "bad-key",
		uploadURL: srv.URL,
		client:    &http.Client{Timeout: 5 * time.Second},
	}

	if _, err := u.Upload(tinyPNG(t)); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream for rejected upload, got %v", err)
	}
}

func TestUploadMarksHostFailuresAsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	u := &PosterUploader{
		apiKey:    "test-key",
		uploadURL: srv.URL,
		client:    &http.Client{Timeout: 5 * time.Second},
	}

	if _, err := u.Upload(tinyPNG(t)); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream for HTTP 502, got %v", err)
	}

	// unreachable host
	srv.Close()
	if _, err := u.Upload(tinyPNG(t)); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream for connection failure, got %v", err)
	}
}

func TestUploadMarksBadResponseAsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	u := &PosterUploader{
		apiKey:    "test-key",
		uploadURL: srv.URL,
		client:    &http.Client{Timeout: 5 * time.Second},
	}

	if _, err := u.Upload(tinyPNG(t)); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream for undecodable response, got %v", err)
	}
}
