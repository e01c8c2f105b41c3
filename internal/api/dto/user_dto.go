package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateUserRequest payload.
type CreateUserRequest struct {
	FullName  string   `json:"full_name"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	RoleNames []string `json:"role_names"`
}

// Validate enforces boundary constraints; an empty result means valid.
func (r CreateUserRequest) Validate() map[string]any {
	details := map[string]any{}
	checkFullName(details, r.FullName)
	checkEmail(details, r.Email)
	checkPassword(details, r.Password)
	return details
}

// UpdateUserRequest is a patch payload; absent fields are left untouched.
type UpdateUserRequest struct {
	FullName  *string  `json:"full_name"`
	Email     *string  `json:"email"`
	Password  *string  `json:"password"`
	RoleNames []string `json:"role_names"`
}

// Validate enforces boundary constraints on present fields only.
func (r UpdateUserRequest) Validate() map[string]any {
	details := map[string]any{}
	if r.FullName != nil {
		checkFullName(details, *r.FullName)
	}
	if r.Email != nil {
		checkEmail(details, *r.Email)
	}
	if r.Password != nil {
		checkPassword(details, *r.Password)
	}
	return details
}

// UserResponse response shape.
type UserResponse struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	RoleNames []string  `json:"role_names"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Active:    user.Active,
		RoleNames: user.RoleNames(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// UserSummary is the embedded shape used inside ticket responses.
type UserSummary struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Active   bool   `json:"active"`
}

// NewUserSummary maps a domain user; nil maps to nil.
func NewUserSummary(user *domain.User) *UserSummary {
	if user == nil {
		return nil
	}
	return &UserSummary{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Active:   user.Active,
	}
}
