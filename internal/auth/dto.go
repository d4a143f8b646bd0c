package auth

import "github.com/rigtrack/rigtrack-backend/internal/users"

// LoginRequest carries the credentials posted by the client. IP is filled
// from the connection, not the body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	IP       string `json:"-"`
}

// LoginResponse bundles the minted token with the authenticated account.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	User        *users.UserDTO `json:"user"`
}

// ChangePasswordRequest carries a password rotation for the current user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
