package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/eventsynk/eventsynk-backend/config"
)

// SessionClaims is the subset of verified token claims the auth layer needs.
type SessionClaims struct {
	Subject string
}

// SessionVerifier verifies third-party-issued session tokens through the
// Firebase Admin SDK. Constructed once in main and passed to the auth handler.
// Verification is mandatory: tokens are never accepted with signature checking
// disabled.
type SessionVerifier struct {
	client *firebaseauth.Client
}

// NewSessionVerifier initializes the Firebase Admin SDK. A nil verifier with an
// error is returned when credentials are not configured; the sync-user route
// then rejects all tokens.
func NewSessionVerifier(cfg *config.Config) (*SessionVerifier, error) {
	ctx := context.Background()

	credentialsPath := cfg.FirebaseCredentialsPath
	if credentialsPath == "" {
		credentialsPath = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	if credentialsPath == "" {
		return nil, errors.New("firebase credentials not configured")
	}

	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
	}

	fbConfig := &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	opt := option.WithCredentialsFile(credentialsPath)

	app, err := firebase.NewApp(ctx, fbConfig, opt)
	if err != nil {
		return nil, fmt.Errorf("firebase app initialization failed: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client failed: %w", err)
	}

	log.Println("✅ Firebase session verification initialized")
	return &SessionVerifier{client: client}, nil
}

// Verify checks a session token and returns its claims. The sub claim carries
// the external identity.
func (v *SessionVerifier) Verify(ctx context.Context, token string) (*SessionClaims, error) {
	if v == nil || v.client == nil {
		return nil, errors.New("session verification not configured")
	}

	verified, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("session token verification failed: %w", err)
	}
	if verified.Subject == "" {
		return nil, errors.New("session token missing subject")
	}

	return &SessionClaims{Subject: verified.Subject}, nil
}
