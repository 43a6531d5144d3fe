package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/teambuilder-dev/teambuilder/internal/matching"
	"github.com/teambuilder-dev/teambuilder/internal/models"
)

// ApplicationService governs the application lifecycle: a student applies to
// a project, the owning admin accepts or rejects.
type ApplicationService struct {
	db *gorm.DB
}

// NewApplicationService constructs an application service once a database handle is supplied.
func NewApplicationService(db *gorm.DB) (*ApplicationService, error) {
	if db == nil {
		return nil, errors.New("application service: db is required")
	}
	return &ApplicationService{db: db}, nil
}

// Apply creates a pending application for (studentID, projectID).
//
// The duplicate check is not read-then-write: the composite unique index on
// applications does the enforcement, so two concurrent applies cannot both
// succeed. Any existing application for the pair, whatever its status,
// yields ErrAlreadyApplied.
func (s *ApplicationService) Apply(ctx context.Context, studentID, projectID string) (*models.Application, error) {
	ctx = ensuredContext(ctx)

	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	application := models.Application{
		StudentID: studentID,
		ProjectID: projectID,
		Status:    models.ApplicationPending,
	}

	if err := s.db.WithContext(ctx).Create(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}

	return &application, nil
}

// Decide sets the application status to accepted or rejected. Only the admin
// who created the referenced project may decide.
//
// Deciding an already-decided application overwrites the previous outcome;
// terminality is deliberately not enforced here, unlike invites.
func (s *ApplicationService) Decide(ctx context.Context, applicationID, actingAdminID, outcome string) (*models.Application, error) {
	ctx = ensuredContext(ctx)

	if outcome != models.ApplicationAccepted && outcome != models.ApplicationRejected {
		return nil, ErrInvalidDecision
	}

	var application models.Application
	if err := s.db.WithContext(ctx).Preload("Project").First(&application, "id = ?", applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	if application.Project == nil || application.Project.CreatedByID != actingAdminID {
		return nil, ErrNotProjectOwner
	}

	if err := s.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", applicationID).
		Update("status", outcome).Error; err != nil {
		return nil, err
	}

	application.Status = outcome
	return &application, nil
}

// StudentApplicationView is a student-facing application with the referenced
// project denormalised onto it. No match score here: students see their own
// applications, not a ranking.
type StudentApplicationView struct {
	ID             string   `json:"id"`
	Status         string   `json:"status"`
	ProjectID      string   `json:"project_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"required_skills"`
	CreatedByName  string   `json:"created_by_name,omitempty"`
	CreatedAt      string   `json:"created_at"`
}

// ListForStudent returns the student's applications newest first. Orphaned
// applications (project deleted) are excluded defensively; the delete cascade
// should already have removed them.
func (s *ApplicationService) ListForStudent(ctx context.Context, studentID string) ([]StudentApplicationView, error) {
	return s.listForStudent(ctx, studentID, "")
}

// ListAccepted returns the student's accepted applications with project and
// creator attached, for the "my teams" view.
func (s *ApplicationService) ListAccepted(ctx context.Context, studentID string) ([]StudentApplicationView, error) {
	return s.listForStudent(ctx, studentID, models.ApplicationAccepted)
}

func (s *ApplicationService) listForStudent(ctx context.Context, studentID, status string) ([]StudentApplicationView, error) {
	ctx = ensuredContext(ctx)

	query := s.db.WithContext(ctx).
		Preload("Project").
		Preload("Project.CreatedBy").
		Where("student_id = ?", studentID).
		Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var applications []models.Application
	if err := query.Find(&applications).Error; err != nil {
		return nil, err
	}

	views := make([]StudentApplicationView, 0, len(applications))
	for i := range applications {
		application := applications[i]
		if application.Project == nil {
			continue
		}

		view := StudentApplicationView{
			ID:             application.ID,
			Status:         application.Status,
			ProjectID:      application.ProjectID,
			Title:          application.Project.Title,
			Description:    application.Project.Description,
			RequiredSkills: application.Project.RequiredSkills,
			CreatedAt:      application.CreatedAt.UTC().Format(time.RFC3339),
		}
		if application.Project.CreatedBy != nil {
			view.CreatedByName = application.Project.CreatedBy.Name
		}
		views = append(views, view)
	}

	return views, nil
}

// ApplicantView is an admin-facing applicant annotated with the skill match
// against the project's current required skills.
type ApplicantView struct {
	ApplicationID string          `json:"application_id"`
	Status        string          `json:"status"`
	StudentID     string          `json:"student_id"`
	StudentName   string          `json:"student_name"`
	Skills        []string        `json:"skills"`
	Availability  string          `json:"availability,omitempty"`
	Match         matching.Result `json:"match"`
}

// ListForProject returns every application for the project, each scored
// against the applicant's current skills. Only the project owner may list.
func (s *ApplicationService) ListForProject(ctx context.Context, projectID, actingAdminID string) ([]ApplicantView, error) {
	ctx = ensuredContext(ctx)

	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if project.CreatedByID != actingAdminID {
		return nil, ErrNotProjectOwner
	}

	var applications []models.Application
	if err := s.db.WithContext(ctx).
		Preload("Student").
		Where("project_id = ?", projectID).
		Order("created_at").
		Find(&applications).Error; err != nil {
		return nil, err
	}

	views := make([]ApplicantView, 0, len(applications))
	for i := range applications {
		application := applications[i]
		if application.Student == nil {
			continue
		}

		views = append(views, ApplicantView{
			ApplicationID: application.ID,
			Status:        application.Status,
			StudentID:     application.StudentID,
			StudentName:   application.Student.Name,
			Skills:        application.Student.Skills,
			Availability:  application.Student.Availability,
			Match:         matching.Match(application.Student.Skills, project.RequiredSkills),
		})
	}

	return views, nil
}
