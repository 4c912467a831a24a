package utils // package utils provides helper functions for token creation and hashing

import (
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT along with its expiry. The Token field
// contains the serialized JWT string; Exp stores the UTC expiration time.
// Tokens are sent in the Authorization header when calling protected
// endpoints.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// NewAccessToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user id, email and role, and a TTL in days. The JWT
// carries the subject (sub), email, role, expiration (exp) and issued at
// (iat) claims.
func NewAccessToken(secret string, userID int64, email, role string, ttlDays int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
