package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/teambuilder-dev/teambuilder/internal/matching"
	"github.com/teambuilder-dev/teambuilder/internal/models"
)

// ProjectService manages project listings and the deletion cascade.
type ProjectService struct {
	db *gorm.DB
}

// NewProjectService constructs a project service once a database handle is supplied.
func NewProjectService(db *gorm.DB) (*ProjectService, error) {
	if db == nil {
		return nil, errors.New("project service: db is required")
	}
	return &ProjectService{db: db}, nil
}

// CreateProjectInput captures required fields when creating a project.
type CreateProjectInput struct {
	Title          string
	Description    string
	RequiredSkills []string
	CreatedByID    string
}

// Create persists a new project owned by the acting admin.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	ctx = ensuredContext(ctx)

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, errors.New("project service: title and description are required")
	}
	if strings.TrimSpace(input.CreatedByID) == "" {
		return nil, errors.New("project service: creator id is required")
	}

	skills := make([]string, 0, len(input.RequiredSkills))
	for _, skill := range input.RequiredSkills {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}

	project := models.Project{
		Title:          title,
		Description:    description,
		RequiredSkills: datatypes.JSONSlice[string](skills),
		CreatedByID:    input.CreatedByID,
	}

	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Get retrieves a project by identifier.
func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	ctx = ensuredContext(ctx)

	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// ListProjectsOptions controls project listing filters and annotation.
type ListProjectsOptions struct {
	// Search filters by case-insensitive title substring.
	Search string
	// Skill keeps only projects whose required skills contain the value
	// (case-insensitively).
	Skill string
	// MatchSkills, when non-nil, annotates every project with the match
	// result for this candidate skill set. Set for student callers.
	MatchSkills []string
}

// ProjectView is a project annotated for the caller.
type ProjectView struct {
	models.Project
	Match *matching.Result `json:"match,omitempty"`
}

// List returns projects newest first, with owner identity attached and
// optional per-project match annotation.
func (s *ProjectService) List(ctx context.Context, opts ListProjectsOptions) ([]ProjectView, error) {
	ctx = ensuredContext(ctx)

	query := s.db.WithContext(ctx).
		Model(&models.Project{}).
		Preload("CreatedBy").
		Order("created_at DESC")

	if search := strings.TrimSpace(opts.Search); search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, err
	}

	skillFilter := strings.ToLower(strings.TrimSpace(opts.Skill))

	views := make([]ProjectView, 0, len(projects))
	for i := range projects {
		project := projects[i]

		// Required skills live in a JSON column, so the skill filter is
		// applied here rather than in SQL to stay driver-agnostic.
		if skillFilter != "" && !containsSkill(project.RequiredSkills, skillFilter) {
			continue
		}

		view := ProjectView{Project: project}
		if opts.MatchSkills != nil {
			result := matching.Match(opts.MatchSkills, project.RequiredSkills)
			view.Match = &result
		}
		views = append(views, view)
	}

	return views, nil
}

// Delete removes a project and every application referencing it in a single
// transaction: concurrent readers observe either both or neither. Only the
// creator may delete.
func (s *ProjectService) Delete(ctx context.Context, projectID, actingUserID string) error {
	ctx = ensuredContext(ctx)

	project, err := s.Get(ctx, projectID)
	if err != nil {
		return err
	}
	if project.CreatedByID != actingUserID {
		return ErrNotProjectOwner
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", projectID).Error
	})
}

func containsSkill(skills []string, needle string) bool {
	for _, skill := range skills {
		if strings.ToLower(strings.TrimSpace(skill)) == needle {
			return true
		}
	}
	return false
}
