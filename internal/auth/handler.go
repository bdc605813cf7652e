package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventsynk/eventsynk-backend/utils"
)

type Handler struct {
	service  Service
	verifier *utils.SessionVerifier
}

func NewHandler(s Service, verifier *utils.SessionVerifier) *Handler {
	return &Handler{service: s, verifier: verifier}
}

// ===============================
// Registration
// ===============================
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email, and password are required.", "status": http.StatusBadRequest})
		return
	}

	if err := h.service.Register(req); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered.", "status": http.StatusBadRequest})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error(), "status": http.StatusBadRequest})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful.", "status": http.StatusCreated})
}

// ===============================
// Login
// ===============================
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required.", "status": http.StatusBadRequest})
		return
	}

	token, user, err := h.service.Login(req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password.", "status": http.StatusUnauthorized})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"user":   user.ToResponse(),
		"status": http.StatusOK,
	})
}

// ===============================
// Current user profile
// ===============================
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetUint("user_id")

	user, err := h.service.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found.", "status": http.StatusNotFound})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse(), "status": http.StatusOK})
}

// ===============================
// Sync user from Clerk session token
// ===============================
// SyncUser verifies the Clerk-issued session token carried in the Authorization
// header with Firebase and creates or refreshes the mapped User.
func (h *Handler) SyncUser(c *gin.Context) {
	tokenStr, ok := utils.BearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization token is missing!", "status": http.StatusUnauthorized})
		return
	}

	claims, err := h.verifier.Verify(c.Request.Context(), tokenStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is invalid or expired!", "status": http.StatusUnauthorized})
		return
	}

	var req SyncUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required.", "status": http.StatusBadRequest})
		return
	}

	user, err := h.service.SyncUser(claims.Subject, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to sync user.", "status": http.StatusInternalServerError})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.ToResponse(), "status": http.StatusOK})
}
