// Package token issues and verifies the signed session tokens carried in the
// session cookie. Tokens are HS256 JWTs embedding the user id, email, and
// role, valid for a fixed window (7 days by default).
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the session validity window.
const DefaultTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned for every verification failure: bad signature,
// malformed token, wrong algorithm, or expiry. Verification fails closed and
// never differentiates the cause to the caller.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the payload recovered from a verified token.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens with a process-wide secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer. A zero ttl falls back to DefaultTTL. Negative
// ttls are kept as-is and yield already-expired tokens.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token for the given identity.
func (i *Issuer) Issue(userID, email, role string) (string, error) {
	now := time.Now()
	c := claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
}

// Verify checks signature and expiry and returns the embedded identity.
// Any failure yields ErrInvalidToken.
func (i *Issuer) Verify(raw string) (*Identity, error) {
	var c claims
	tkn, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !tkn.Valid || c.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{UserID: c.Subject, Email: c.Email, Role: c.Role}, nil
}
