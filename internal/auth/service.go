package auth

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/eventsynk/eventsynk-backend/config"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service interface {
	Register(in RegisterRequest) error
	Login(in LoginRequest) (string, *User, error)
	GetUserByID(userID uint) (User, error)
	SyncUser(clerkUserID string, in SyncUserRequest) (*User, error)
}

type service struct {
	repo          Repository
	secret        string
	ttl           time.Duration
	allowedDomain string
}

func NewService(r Repository, cfg *config.Config) Service {
	return &service{
		repo:          r,
		secret:        cfg.JWTSecret,
		ttl:           time.Duration(cfg.JWTTTLHours) * time.Hour,
		allowedDomain: cfg.AllowedEmailDomain,
	}
}

// =============================
// Register
// =============================
func (s *service) Register(in RegisterRequest) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if s.allowedDomain != "" && !strings.HasSuffix(email, "@"+s.allowedDomain) {
		return errors.New("email must be a college email (@" + s.allowedDomain + ")")
	}

	if err := ValidatePassword(in.Password); err != nil {
		return err
	}

	if _, err := s.repo.FindByEmail(email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
	}
	return s.repo.Create(user)
}

// ValidatePassword enforces the minimum strength rule: at least 8 characters
// containing both letters and digits.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters and contain letters and numbers")
	}
	var hasLetter, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsLetter(c):
			hasLetter = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return errors.New("password must be at least 8 characters and contain letters and numbers")
	}
	return nil
}

// =============================
// Login
// =============================
func (s *service) Login(in LoginRequest) (string, *User, error) {
	user, err := s.repo.FindByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if user.PasswordHash == "" {
		// External-identity account, no local password
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	_ = s.repo.TouchLastLogin(user.ID)

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *service) generateToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *service) GetUserByID(userID uint) (User, error) {
	return s.repo.FindByID(userID)
}

// =============================
// Sync User (Clerk identity)
// =============================
// SyncUser creates or refreshes the User mapped to an external Clerk identity.
// The clerkUserID comes from the verified session token's sub claim.
func (s *service) SyncUser(clerkUserID string, in SyncUserRequest) (*User, error) {
	user, err := s.repo.FindByClerkID(clerkUserID)
	if err == nil {
		// Refresh profile fields supplied by the identity provider
		if in.Name != "" {
			user.Name = in.Name
		}
		if in.Email != "" {
			user.Email = strings.ToLower(in.Email)
		}
		if in.AvatarURL != "" {
			user.AvatarURL = in.AvatarURL
		}
		user.LastLogin = time.Now()
		if err := s.repo.Update(user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	name := in.Name
	if name == "" {
		name = strings.Split(in.Email, "@")[0]
	}

	user = &User{
		Name:        name,
		Email:       strings.ToLower(in.Email),
		ClerkUserID: &clerkUserID,
		AvatarURL:   in.AvatarURL,
		LastLogin:   time.Now(),
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}
