package models

import "fmt"

type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleSuperAdmin Role = "Super Admin"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleSuperAdmin:
		return r, nil
	}

	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	return string(r)
}
