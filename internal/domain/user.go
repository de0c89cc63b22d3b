package domain

import "time"

// UserRole enumerates directory roles.
type UserRole string

const (
	RoleAdministrator UserRole = "ADMINISTRATOR"
	RoleEmployee      UserRole = "EMPLOYEE"
	RoleSupervisor    UserRole = "SUPERVISOR"
	RoleClient        UserRole = "CLIENT"
)

// Valid reports whether the role is a member of the closed enumeration.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdministrator, RoleEmployee, RoleSupervisor, RoleClient:
		return true
	}
	return false
}

// IsStaff reports whether the role may authenticate against the session gate.
func (r UserRole) IsStaff() bool {
	return r == RoleAdministrator || r == RoleSupervisor || r == RoleEmployee
}

// DisplayName returns the human label used in projections.
func (r UserRole) DisplayName() string {
	switch r {
	case RoleAdministrator:
		return "Administrator"
	case RoleEmployee:
		return "Employee"
	case RoleSupervisor:
		return "Supervisor"
	case RoleClient:
		return "Client"
	}
	return string(r)
}

// User is a directory entry. Client entries created implicitly during booking
// carry no credential hash. Deleting a user only clears the active flag.
type User struct {
	ID           string
	Name         string
	Phone        string
	Email        string
	Role         UserRole
	PasswordHash *string
	Active       bool
	Department   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
