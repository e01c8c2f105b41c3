package domain

import (
	"fmt"
	"strings"
)

// RoleName identifies an authorization role.
type RoleName string

const (
	RoleAdmin RoleName = "ADMIN"
	RoleAgent RoleName = "AGENT"
	RoleUser  RoleName = "USER"
)

// AllRoleNames lists every known role.
func AllRoleNames() []RoleName {
	return []RoleName{RoleAdmin, RoleAgent, RoleUser}
}

// ParseRoleName matches a role name case-insensitively.
func ParseRoleName(raw string) (RoleName, error) {
	switch RoleName(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleAgent:
		return RoleAgent, nil
	case RoleUser:
		return RoleUser, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Role is a persisted authorization role.
type Role struct {
	ID   int64
	Name RoleName
}
