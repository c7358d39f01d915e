package domain

import "time"

// Role is an employee role
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleMechanic  Role = "mechanic"  // montir
	RoleWarehouse Role = "warehouse" // gudang
)

// IsValid returns true for known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMechanic, RoleWarehouse:
		return true
	}
	return false
}

// User is an employee account
type User struct {
	ID           int64
	Username     string
	Name         string
	Phone        string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UsersFilter фильтр списка сотрудников
type UsersFilter struct {
	Search string // по имени или username
	Role   *Role
}

// Session is the authenticated principal carried by a request
type Session struct {
	UserID    int64
	Username  string
	Name      string
	Role      Role
	ExpiresAt time.Time
}

// HasRole returns true if the session role is one of the given roles
func (s *Session) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}
