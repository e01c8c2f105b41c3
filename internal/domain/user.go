package domain

import "time"

// User is the domain model for registered accounts.
type User struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string
	Active       bool
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleNames returns the names of the user's roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, string(role.Name))
	}
	return names
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(name RoleName) bool {
	for _, role := range u.Roles {
		if role.Name == name {
			return true
		}
	}
	return false
}
