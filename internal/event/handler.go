package event

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventsynk/eventsynk-backend/middleware"
	"github.com/eventsynk/eventsynk-backend/utils"
)

type Handler struct {
	service  *Service
	uploader *utils.PosterUploader
}

func NewHandler(s *Service, uploader *utils.PosterUploader) *Handler {
	return &Handler{service: s, uploader: uploader}
}

// ===========================
// 📄 List all events
func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.service.ListEvents()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list events.", "status": http.StatusInternalServerError})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "status": http.StatusOK})
}

// ===========================
// 🎯 Create event — multipart form with an optional poster image and a
// JSON-encoded list of field definitions
func (h *Handler) CreateEvent(c *gin.Context) {
	userID := c.GetUint("user_id")
	ip := middleware.GetIPFromContext(c)

	var req CreateEventRequest

	if c.ContentType() == "application/json" {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body.", "status": http.StatusBadRequest})
			return
		}
	} else {
		req = CreateEventRequest{
			Title:             c.PostForm("title"),
			Description:       c.PostForm("description"),
			Date:              c.PostForm("date"),
			Deadline:          c.PostForm("deadline"),
			Prizes:            c.PostForm("prizes"),
			Eligibility:       c.PostForm("eligibility"),
			Category:          c.PostForm("category"),
			Mode:              c.PostForm("mode"),
			Venue:             c.PostForm("venue"),
			ParticipationType: c.PostForm("participation_type"),
		}
		if ts := c.PostForm("team_size"); ts != "" {
			if n, err := strconv.Atoi(ts); err == nil {
				req.TeamSize = &n
			}
		}
		if fieldsJSON := c.PostForm("fields"); fieldsJSON != "" {
			if err := json.Unmarshal([]byte(fieldsJSON), &req.Fields); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid fields JSON.", "status": http.StatusBadRequest})
				return
			}
		}

		posterURL, err := h.uploadPoster(c)
		if err != nil {
			// Bad input is the client's fault; anything wrong with the
			// image host itself is ours.
			if errors.Is(err, utils.ErrUploaderNotConfigured) || errors.Is(err, utils.ErrUpstream) {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Poster upload failed.", "status": http.StatusInternalServerError})
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error(), "status": http.StatusBadRequest})
			}
			return
		}
		req.PosterURL = posterURL
	}

	e, err := h.service.CreateEvent(&req, userID, ip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error(), "status": http.StatusBadRequest})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Event created successfully.", "event_id": e.ID, "status": http.StatusCreated})
}

// uploadPoster validates and forwards the optional poster file to the image
// host. Returns an empty URL when no file was supplied.
func (h *Handler) uploadPoster(c *gin.Context) (string, error) {
	fileHeader, err := c.FormFile("poster")
	if err != nil {
		return "", nil // no poster supplied
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", errors.New("failed to read poster file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", errors.New("failed to read poster file")
	}

	if err := h.uploader.ValidateImage(data, fileHeader.Header.Get("Content-Type")); err != nil {
		return "", err
	}

	return h.uploader.Upload(data)
}

// ===========================
// 🔍 Event detail
func (h *Handler) GetEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event id.", "status": http.StatusBadRequest})
		return
	}

	e, err := h.service.GetEvent(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found.", "status": http.StatusNotFound})
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": e, "status": http.StatusOK})
}

// ===========================
// 🛠 Update event — organiser only
func (h *Handler) UpdateEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event id.", "status": http.StatusBadRequest})
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body.", "status": http.StatusBadRequest})
		return
	}

	user, _ := middleware.CurrentUser(c)
	ip := middleware.GetIPFromContext(c)

	if _, err := h.service.UpdateEvent(uint(id), &req, user.ID, user.Name, ip); err != nil {
		h.writeMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully.", "status": http.StatusOK})
}

// ===========================
// ❌ Delete event — organiser only; cascades
func (h *Handler) DeleteEvent(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event id.", "status": http.StatusBadRequest})
		return
	}

	user, _ := middleware.CurrentUser(c)
	ip := middleware.GetIPFromContext(c)

	if err := h.service.DeleteEvent(uint(id), user.ID, user.Name, ip); err != nil {
		h.writeMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully.", "status": http.StatusOK})
}

// ===========================
// 📄 Self-only listing of a user's created events
func (h *Handler) GetUserEvents(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id.", "status": http.StatusBadRequest})
		return
	}

	userID := c.GetUint("user_id")
	if uint(targetID) != userID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden", "status": http.StatusForbidden})
		return
	}

	events, err := h.service.ListByOrganiser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list events.", "status": http.StatusInternalServerError})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "status": http.StatusOK})
}

func (h *Handler) writeMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found.", "status": http.StatusNotFound})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden: Only organiser can modify this event.", "status": http.StatusForbidden})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error(), "status": http.StatusBadRequest})
	}
}
