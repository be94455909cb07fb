package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the only role the system issues; the token is a capability to
// reach the admin surface, not an identity.
const RoleAdmin = "admin"

// SessionClaims represents the typed JWT carried by the admin cookie.
type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
