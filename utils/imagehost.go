package utils

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"net/url"
	"time"

	"github.com/eventsynk/eventsynk-backend/config"
)

const imgbbUploadURL = "https://api.imgbb.com/1/upload"

var allowedImageMIMEs = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/gif":  true,
}

var (
	ErrUploaderNotConfigured = errors.New("ImgBB API key not configured")

	// ErrUpstream marks failures of the image host itself, as opposed to a
	// bad image from the client.
	ErrUpstream = errors.New("image host unavailable")
)

// PosterUploader validates poster images and pushes them to ImgBB.
type PosterUploader struct {
	apiKey    string
	uploadURL string
	client    *http.Client
}

func NewPosterUploader(cfg *config.Config) *PosterUploader {
	return &PosterUploader{
		apiKey:    cfg.ImgBBAPIKey,
		uploadURL: imgbbUploadURL,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ValidateImage checks the declared MIME type and then verifies the content
// actually decodes as an image.
func (u *PosterUploader) ValidateImage(data []byte, mimeType string) error {
	if !allowedImageMIMEs[mimeType] {
		return errors.New("invalid file type, only PNG, JPG, JPEG, and GIF images are allowed")
	}

	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return errors.New("uploaded file is not a valid image or is corrupted")
	}
	return nil
}

// Upload sends the image to ImgBB and returns the hosted URL.
func (u *PosterUploader) Upload(data []byte) (string, error) {
	if u.apiKey == "" {
		return "", ErrUploaderNotConfigured
	}

	form := url.Values{}
	form.Set("key", u.apiKey)
	form.Set("image", base64.StdEncoding.EncodeToString(data))

	resp, err := u.client.PostForm(u.uploadURL, form)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: ImgBB API error: HTTP %d", ErrUpstream, resp.StatusCode)
	}

	var result struct {
		Success bool `json:"success"`
		Data    struct {
			URL string `json:"url"`
		} `json:"data"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: ImgBB response decode failed: %v", ErrUpstream, err)
	}

	// The image was already validated locally, so a rejection here is the
	// host's problem (bad key, quota, outage), not the client's.
	if !result.Success {
		msg := result.Error.Message
		if msg == "" {
			msg = "unknown error"
		}
		return "", fmt.Errorf("%w: ImgBB upload failed: %s", ErrUpstream, msg)
	}

	return result.Data.URL, nil
}
