package auth

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/eventsynk/eventsynk-backend/config"
)

type fakeUserRepo struct {
	byClerkID  map[string]*User
	byEmail    map[string]*User
	created    []*User
	updated    []*User
	touchedIDs []uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byClerkID: make(map[string]*User), byEmail: make(map[string]*User)}
}

func (f *fakeUserRepo) Create(user *User) error {
	user.ID = uint(len(f.created) + 1)
	f.created = append(f.created, user)
	if user.ClerkUserID != nil {
		f.byClerkID[*user.ClerkUserID] = user
	}
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByID(userID uint) (User, error) {
	for _, u := range f.created {
		if u.ID == userID {
			return *u, nil
		}
	}
	return User{}, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByClerkID(clerkUserID string) (*User, error) {
	u, ok := f.byClerkID[clerkUserID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Update(user *User) error {
	f.updated = append(f.updated, user)
	return nil
}

func (f *fakeUserRepo) TouchLastLogin(userID uint) error {
	f.touchedIDs = append(f.touchedIDs, userID)
	return nil
}

func testAuthService(repo Repository) Service {
	return NewService(repo, &config.Config{JWTSecret: "test-secret", JWTTTLHours: 1})
}

func TestSyncUserStampsLastLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := testAuthService(repo)

	created, err := svc.SyncUser("clerk_abc", SyncUserRequest{Name: "Asha", Email: "Asha@Example.com"})
	if err != nil {
		t.Fatalf("sync (create) failed: %v", err)
	}
	if created.LastLogin.IsZero() {
		t.Error("expected last login stamped on first sync")
	}
	if created.Email != "asha@example.com" {
		t.Errorf("email not lowercased: %q", created.Email)
	}

	firstLogin := created.LastLogin
	time.Sleep(10 * time.Millisecond)

	refreshed, err := svc.SyncUser("clerk_abc", SyncUserRequest{Email: "asha@example.com", AvatarURL: "https://img.example/a.png"})
	if err != nil {
		t.Fatalf("sync (refresh) failed: %v", err)
	}
	if !refreshed.LastLogin.After(firstLogin) {
		t.Error("expected last login advanced on repeat sync")
	}
	if refreshed.AvatarURL != "https://img.example/a.png" {
		t.Errorf("avatar not refreshed: %q", refreshed.AvatarURL)
	}
	if len(repo.created) != 1 {
		t.Errorf("repeat sync must not create a second user, created %d", len(repo.created))
	}
}

func TestLoginTouchesLastLogin(t *testing.T) {
	repo := newFakeUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	user := &User{Name: "Asha", Email: "asha@example.com", PasswordHash: string(hash)}
	if err := repo.Create(user); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	svc := testAuthService(repo)

	token, got, err := svc.Login(LoginRequest{Email: "asha@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}
	if len(repo.touchedIDs) != 1 || repo.touchedIDs[0] != got.ID {
		t.Errorf("expected last login touched for user %d, got %v", got.ID, repo.touchedIDs)
	}

	if _, _, err := svc.Login(LoginRequest{Email: "asha@example.com", Password: "wrong"}); err == nil {
		t.Error("expected error for wrong password")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "secret123", false},
		{"valid mixed", "P4ssword!", false},
		{"too short", "ab12", true},
		{"seven chars", "abcd123", true},
		{"letters only", "passwordonly", true},
		{"digits only", "12345678", true},
		{"empty", "", true},
	}

	for _, tc := range cases {
		err := ValidatePassword(tc.password)
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error for %q", tc.name, tc.password)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error for %q: %v", tc.name, tc.password, err)
		}
	}
}
