package models

import (
	"gorm.io/datatypes"
)

// Project is a team-formation listing created by an admin. The creator is
// fixed at creation time and is the only user allowed to delete the project
// or decide its applications.
type Project struct {
	BaseModel

	Title          string                      `gorm:"not null" json:"title"`
	Description    string                      `gorm:"not null" json:"description"`
	RequiredSkills datatypes.JSONSlice[string] `json:"required_skills"`

	CreatedByID string `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedBy   *User  `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}
