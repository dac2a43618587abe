package auth

import "github.com/golang-jwt/jwt/v5"

// SessionTokenPayload captures the data available when minting a session JWT.
type SessionTokenPayload struct {
	UserID   uint
	Username string
	JTI      string
}

// SessionTokenClaims represents the typed JWT carried by the session cookie.
type SessionTokenClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
