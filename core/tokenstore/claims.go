package tokenstore

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what can be read from a token without verifying it.
// The values are informational only; the backend stays the authority on
// whether a token is valid.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Inspect reads the registered claims of a JWT without checking its
// signature. Opaque tokens report false.
func Inspect(token string) (Claims, bool) {
	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &rc); err != nil {
		return Claims{}, false
	}
	c := Claims{Subject: rc.Subject}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, true
}
