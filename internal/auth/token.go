package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified content of a session token. Kind pins the subject
// id to a single principal store; Role is informational and re-read from the
// database on every request.
type Claims struct {
	PrincipalID uint
	Kind        string
	Role        string
}

type sessionClaims struct {
	Kind string `json:"kind"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies the signed session tokens carried by the
// Authorization header or the token cookie.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager with the given HMAC secret and token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the principal. The subject is the principal id;
// the kind claim keeps colliding auto-increment ids across stores from
// resolving to the wrong account.
func (m *TokenManager) Issue(principal Principal) (string, error) {
	now := m.now()
	claims := sessionClaims{
		Kind: principal.Kind,
		Role: principal.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(principal.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses the token and returns its claims. Any parse or expiry
// failure, and any token missing the subject or kind claim, maps to
// ErrInvalidCredential.
func (m *TokenManager) Verify(tokenString string) (Claims, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidCredential
	}

	if claims.Subject == "" || claims.Kind == "" {
		return Claims{}, ErrInvalidCredential
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return Claims{}, ErrInvalidCredential
	}

	return Claims{PrincipalID: uint(id), Kind: claims.Kind, Role: claims.Role}, nil
}
