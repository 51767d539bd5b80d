package types

import "github.com/golang-jwt/jwt/v5"

// Claims represents the JWT claims. Email and FullName come from the
// upstream auth layer and feed the admin identity resolver.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
