package models

// Application lifecycle states. Pending applications may be accepted or
// rejected by the owning admin; the decision endpoint overwrites rather
// than enforcing terminality (see ApplicationService.Decide).
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// Application records a student applying to a project. The composite unique
// index closes the duplicate-apply race at the storage layer: two concurrent
// applies for the same (student, project) pair cannot both insert.
type Application struct {
	BaseModel

	StudentID string `gorm:"type:uuid;not null;uniqueIndex:idx_applications_student_project" json:"student_id"`
	ProjectID string `gorm:"type:uuid;not null;uniqueIndex:idx_applications_student_project;index" json:"project_id"`
	Status    string `gorm:"not null;default:pending" json:"status"`

	Student *User    `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
