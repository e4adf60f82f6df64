package structs

import "time"

// AuthClaims are the parsed contents of an admin session token.
type AuthClaims struct {
	Email string
	Role  string
	Iat   time.Time
	Exp   time.Time
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
