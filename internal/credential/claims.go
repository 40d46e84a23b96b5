package credential

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned by Inspect for opaque (non-JWT) tokens.
var ErrNotJWT = errors.New("token is not a JWT")

// Claims is the identity information carried by a token. Values are read
// without signature verification and are for display only.
type Claims struct {
	Subject   string
	TenantID  string
	StudentID string
	Email     string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry in the past.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Identity returns the best human-readable label for the token holder.
func (c Claims) Identity() string {
	switch {
	case c.Email != "":
		return c.Email
	case c.StudentID != "":
		return c.StudentID
	default:
		return c.Subject
	}
}

// Inspect decodes the claims of a JWT without verifying it.
func Inspect(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if strings.Count(token, ".") != 2 {
		return Claims{}, ErrNotJWT
	}

	mapClaims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mapClaims); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrNotJWT, err)
	}

	claims := Claims{
		Subject:   stringClaim(mapClaims, "sub"),
		TenantID:  firstClaim(mapClaims, "tenant_id", "custom:tenant_id"),
		StudentID: firstClaim(mapClaims, "student_id", "custom:student_id"),
		Email:     stringClaim(mapClaims, "email"),
	}
	if claims.StudentID == "" {
		claims.StudentID = claims.Subject
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

func firstClaim(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if v := stringClaim(claims, k); v != "" {
			return v
		}
	}
	return ""
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}
