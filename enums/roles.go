package enums

import "fmt"

// Role is the dashboard role carried on an admin user record.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleGestor Role = "gestor"
)

// ParseRole returns the Role named by s, or an error for anything outside the enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleGestor:
		return RoleGestor, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleGestor:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
