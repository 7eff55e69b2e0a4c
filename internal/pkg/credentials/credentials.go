// Package credentials owns the two secrets-handling primitives of the API:
// one-way password hashing and symmetric bearer-token issuance/verification.
// It is shared by the auth service (hash, issue) and the authentication
// middleware (verify).
package credentials

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/securecontent/workspace-api/internal/core/domain"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// HashPassword returns a salted bcrypt hash of password. The salt is
// randomized per call, so hashing the same password twice yields different
// values.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Claims is the payload embedded in every issued token.
type Claims struct {
	UserID string
	Role   string
}

// TokenCodec signs and verifies HS256 bearer tokens with a process-wide
// secret and a fixed validity window.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec. A non-positive ttl falls back to 7 days.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token embedding claims plus issuance and expiry
// timestamps.
func (tc *TokenCodec) Issue(claims Claims) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": claims.UserID,
		"role":    claims.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(tc.ttl).Unix(),
	})
	return t.SignedString(tc.secret)
}

// Verify parses and validates token. It fails with domain.ErrTokenExpired
// past the validity window and domain.ErrInvalidToken for any other defect
// (bad signature, malformed structure, missing claims).
func (tc *TokenCodec) Verify(token string) (*Claims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return tc.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || role == "" {
		return nil, domain.ErrInvalidToken
	}
	return &Claims{UserID: userID, Role: role}, nil
}
