package fakeapi

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// identity scopes stored records to one caller.
type identity struct {
	TenantID  string
	StudentID string
}

const defaultTenant = "default"

// identify reads the raw Authorization header. JWTs are decoded without
// verification; any other token is its own student id.
func identify(r *http.Request) (identity, bool) {
	token := strings.TrimSpace(r.Header.Get("Authorization"))
	if token == "" {
		return identity{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return identity{TenantID: defaultTenant, StudentID: token}, true
	}

	id := identity{
		TenantID:  stringClaim(claims, "tenant_id", "custom:tenant_id"),
		StudentID: stringClaim(claims, "student_id", "custom:student_id", "sub"),
	}
	if id.TenantID == "" {
		id.TenantID = defaultTenant
	}
	if id.StudentID == "" {
		id.StudentID = token
	}
	return id, true
}

func stringClaim(claims jwt.MapClaims, names ...string) string {
	for _, name := range names {
		if v, ok := claims[name].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
