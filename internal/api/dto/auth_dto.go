package dto

import "time"

// RegisterRequest payload.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate enforces boundary constraints; an empty result means valid.
func (r RegisterRequest) Validate() map[string]any {
	details := map[string]any{}
	checkFullName(details, r.FullName)
	checkEmail(details, r.Email)
	checkPassword(details, r.Password)
	return details
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries an issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
