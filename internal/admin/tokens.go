package admin

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Subject is the sub claim of every admin session token.
const Subject = "admin"

type Claims struct {
	jwt.RegisteredClaims
}

// Tokens issues and parses short-lived HS256 admin session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens uses secret as the signing key. An empty secret is replaced by a
// random per-process key, which invalidates sessions on restart.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	key := []byte(secret)
	if len(key) == 0 {
		log.Printf("Warning: ADMIN_JWT_SECRET not set, using a random key for this process")
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("failed to generate session key: %v", err))
		}
	}
	return &Tokens{secret: key, ttl: ttl, now: time.Now}
}

func (t *Tokens) TTL() time.Duration { return t.ttl }

// Issue signs a new session token.
func (t *Tokens) Issue() (string, *Claims, error) {
	now := t.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   Subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, claims, nil
}

// Parse validates signature, algorithm, expiry and subject.
func (t *Tokens) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject != Subject {
		return nil, fmt.Errorf("unexpected subject %q", claims.Subject)
	}
	if claims.ID == "" {
		return nil, errors.New("missing token id")
	}
	return claims, nil
}
