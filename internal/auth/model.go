package auth

import (
	"time"
)

// ============================
// 🔷 GORM User Model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Email        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255)" json:"-"`
	ClerkUserID  *string   `gorm:"type:varchar(255);uniqueIndex" json:"clerk_user_id,omitempty"`
	AvatarURL    string    `gorm:"type:varchar(255)" json:"avatar_url,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	LastLogin    time.Time `json:"last_login"`
}

// ============================
// 🟡 Register Request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ============================
// 🟡 Login Request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ============================
// 🟡 Sync User Request (Clerk-issued session token in Authorization header)
type SyncUserRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email" binding:"required"`
	AvatarURL string `json:"avatar_url"`
}

// UserResponse is the public profile shape returned by /auth routes
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}
