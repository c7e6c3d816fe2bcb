// internal/app/system/deeplink/deeplink.go

// Package deeplink mints and verifies the hand-off token that opens the
// companion desktop application pre-authenticated as a given identity.
//
// The legacy token was a bare base64 JSON object with no signature or
// expiry. That is an impersonation hole, so tokens here are HMAC-signed
// JWTs with a short lifetime; the claim shape {uid, email, name, role}
// is unchanged so the companion app's parsing keeps working.
package deeplink

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL bounds how long a minted token stays usable.
const DefaultTTL = 10 * time.Minute

var (
	ErrExpired = errors.New("deep-link token expired")
	ErrInvalid = errors.New("deep-link token invalid")
)

// Identity is the claim payload carried across to the companion app.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Minter signs and verifies hand-off tokens with a shared secret.
type Minter struct {
	secret []byte
	ttl    time.Duration
}

// NewMinter creates a Minter. ttl <= 0 falls back to DefaultTTL.
func NewMinter(secret string, ttl time.Duration) (*Minter, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("deeplink secret too short: need 32+ chars, got %d", len(secret))
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Minter{secret: []byte(secret), ttl: ttl}, nil
}

type claims struct {
	Identity
	jwt.RegisteredClaims
}

// Mint returns a signed token for id, valid for the minter's TTL.
func (m *Minter) Mint(id Identity, now time.Time) (string, error) {
	c := claims{
		Identity: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			Issuer:    "makerhub",
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return tok.SignedString(m.secret)
}

// Verify parses and checks a token, returning the embedded identity.
func (m *Minter) Verify(token string) (Identity, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpired
		}
		return Identity{}, ErrInvalid
	}
	if !parsed.Valid {
		return Identity{}, ErrInvalid
	}
	return c.Identity, nil
}
