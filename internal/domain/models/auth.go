package models

import "github.com/golang-jwt/jwt/v5"

// AuthClaims represents the JWT claims structure issued by the identity
// provider. This core only ever reads the subject; authentication itself is
// the collaborator's concern.
type AuthClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *AuthClaims) GetUserID() string {
	return c.Subject
}
