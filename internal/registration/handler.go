package registration

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventsynk/eventsynk-backend/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// ===========================
// 📝 Register the authenticated user for an event
func (h *Handler) Register(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event id.", "status": http.StatusBadRequest})
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body.", "status": http.StatusBadRequest})
		return
	}

	userID := c.GetUint("user_id")
	ip := middleware.GetIPFromContext(c)

	reg, err := h.service.Register(uint(eventID), userID, &req, ip)
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found.", "status": http.StatusNotFound})
		case errors.Is(err, ErrAlreadyRegistered):
			c.JSON(http.StatusBadRequest, gin.H{"message": "You are already registered for this event.", "status": http.StatusBadRequest})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error(), "status": http.StatusBadRequest})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Registered successfully.",
		"ref_code": reg.RefCode,
		"status":   http.StatusCreated,
	})
}

// ===========================
// 🗑 Cancel the authenticated user's registration
func (h *Handler) Cancel(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event id.", "status": http.StatusBadRequest})
		return
	}

	userID := c.GetUint("user_id")
	ip := middleware.GetIPFromContext(c)

	if err := h.service.Cancel(uint(eventID), userID, ip); err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found.", "status": http.StatusNotFound})
		case errors.Is(err, ErrNotRegistered):
			c.JSON(http.StatusNotFound, gin.H{"message": "You are not registered for this event.", "status": http.StatusNotFound})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to cancel registration.", "status": http.StatusInternalServerError})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration cancelled.", "status": http.StatusOK})
}

// ===========================
// 👥 Organiser-only roster of participants with their form answers
func (h *Handler) GetParticipants(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event id.", "status": http.StatusBadRequest})
		return
	}

	userID := c.GetUint("user_id")

	rows, err := h.service.GetParticipants(uint(eventID), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found.", "status": http.StatusNotFound})
		case errors.Is(err, ErrNotOrganiser):
			c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden: Only the organiser can view participants.", "status": http.StatusForbidden})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch participants.", "status": http.StatusInternalServerError})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"participants": rows, "count": len(rows), "status": http.StatusOK})
}

// ===========================
// 📄 Self-only listing of a user's registrations
func (h *Handler) GetUserRegistrations(c *gin.Context) {
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

	regs, err := h.service.ListByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list registrations.", "status": http.StatusInternalServerError})
		return
	}

	c.JSON(http.StatusOK, gin.H{"registrations": regs, "status": http.StatusOK})
}
