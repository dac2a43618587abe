package auth

import (
	"github.com/lucakurth/techfinder-backend/internal/users"
)

// RegisterRequest captures the payload for creating a new account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=80"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,max=128"`
}

// RegisterResult identifies the newly created account. The credential hash
// never leaves the service layer.
type RegisterResult struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// LoginRequest captures the credentials sent to the login endpoint. The
// username field also accepts an email address.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult contains the session token and the authenticated user.
type LoginResult struct {
	Token string
	User  *users.UserDTO
}

// StatusResult reports whether the caller holds a live session.
type StatusResult struct {
	Authenticated bool           `json:"authenticated"`
	User          *users.UserDTO `json:"user,omitempty"`
}
