package credential

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Info describes what can be read from a credential without contacting
// the server. Nothing here is verified.
type Info struct {
	// JWT is false for opaque tokens; the other fields are then zero.
	JWT       bool
	Subject   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Expired reports whether the token carries an expiry that lies before now.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// Inspect decodes token claims without checking the signature.
func Inspect(token string) Info {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Info{}
	}

	info := Info{JWT: true}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		info.Subject = sub
	} else if id, ok := claims["id"].(string); ok {
		// Express/Mongo backends commonly sign {id: <user id>}.
		info.Subject = id
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	return info
}
