package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"portfolio-backend/internal/supabase"
)

// SettingsTable holds the single admin credential row.
const SettingsTable = "admin_settings"

var (
	ErrIncorrectPassword = errors.New("Incorrect password")
	ErrUnverifiable      = errors.New("Unable to verify. Check Supabase config.")
	ErrConnection        = errors.New("Connection error")
)

type Credentials struct {
	store supabase.Store
}

func NewCredentials(store supabase.Store) *Credentials {
	return &Credentials{store: store}
}

// Verify fetches the stored credential and compares input against it.
func (c *Credentials) Verify(ctx context.Context, input string) error {
	res := c.store.From(SettingsTable).Select("password").Single().Execute(ctx)
	if ctx.Err() != nil {
		return ErrConnection
	}
	if res.Error != nil || res.Empty() {
		return ErrUnverifiable
	}

	var row struct {
		Password *string `json:"password"`
	}
	if err := res.Decode(&row); err != nil || row.Password == nil {
		return ErrUnverifiable
	}
	if !Matches(*row.Password, input) {
		return ErrIncorrectPassword
	}
	return nil
}

// Matches compares input with a stored credential. A bcrypt hash is checked
// with bcrypt; any other value must be byte-for-byte equal.
func Matches(stored, input string) bool {
	if IsHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(input)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(input)) == 1
}

func IsHash(stored string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(stored, prefix) {
			return true
		}
	}
	return false
}

// HashPassword returns the bcrypt hash to store in admin_settings.password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
