// Package auth issues and verifies the signed session tokens carried in the
// session cookie.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the server-side session id (jti) and the user id (sub).
type Claims struct {
	jwt.RegisteredClaims
}

// SessionID is the id of the server-side session row.
func (c *Claims) SessionID() string { return c.ID }

// UserID is the id of the logged-in user.
func (c *Claims) UserID() string { return c.Subject }

// GenerateToken signs an HS256 token for the given session that stops being
// valid at expiresAt.
func GenerateToken(sessionID, userID string, secretKey []byte, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken checks signature and expiry. It returns common.ErrTokenExpired
// for expired tokens and common.ErrInvalidToken for anything else that fails.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.ID == "" || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
