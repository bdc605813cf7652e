package event

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/eventsynk/eventsynk-backend/config"
	"github.com/eventsynk/eventsynk-backend/utils"
)

func posterRequest(t *testing.T, contentType string, payload []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("title", "Hackathon"); err != nil {
		t.Fatalf("write field: %v", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="poster"; filename="poster.png"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write part: %v", err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/events", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func posterTestRouter(uploader *utils.PosterUploader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, uploader)
	r := gin.New()
	r.POST("/events", func(c *gin.Context) {
		c.Set("user_id", uint(1))
		h.CreateEvent(c)
	})
	return r
}

func TestCreateEventPosterHostFailureIsServerError(t *testing.T) {
	// no API key: the upload layer fails on our side, not the client's
	router := posterTestRouter(utils.NewPosterUploader(&config.Config{}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, posterRequest(t, "image/png", pngBytes(t)))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 for an upload-side failure", w.Code)
	}
}

func TestCreateEventBadPosterIsClientError(t *testing.T) {
	router := posterTestRouter(utils.NewPosterUploader(&config.Config{ImgBBAPIKey: "test-key"}))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, posterRequest(t, "application/pdf", []byte("%PDF-1.4")))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for a disallowed poster type", w.Code)
	}
}
