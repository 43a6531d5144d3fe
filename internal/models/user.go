package models

import (
	"gorm.io/datatypes"
)

// Roles assignable at registration. A user keeps its role for its lifetime.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User describes a platform member: a student looking for a team or an
// admin who owns projects.
type User struct {
	BaseModel

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"not null;index" json:"role"`

	Skills       datatypes.JSONSlice[string] `json:"skills"`
	Availability string                      `json:"availability"`
}

// IsStudent reports whether the user registered with the student role.
func (u *User) IsStudent() bool {
	return u != nil && u.Role == RoleStudent
}

// IsAdmin reports whether the user registered with the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
