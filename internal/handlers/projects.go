package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teambuilder-dev/teambuilder/internal/middleware"
	"github.com/teambuilder-dev/teambuilder/internal/models"
	"github.com/teambuilder-dev/teambuilder/internal/services"
	"github.com/teambuilder-dev/teambuilder/pkg/response"
)

// ProjectsHandler manages project listings.
type ProjectsHandler struct {
	projects *services.ProjectService
	users    *services.UserService
}

func NewProjectsHandler(projects *services.ProjectService, users *services.UserService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects, users: users}
}

type createProjectRequest struct {
	Title          string   `json:"title" validate:"required,max=200"`
	Description    string   `json:"description" validate:"required,max=2000"`
	RequiredSkills []string `json:"required_skills" validate:"omitempty,max=50,dive,max=60"`
}

// POST /api/projects (admin only)
func (h *ProjectsHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if !bindAndValidate(c, &req) {
		return
	}

	project, err := h.projects.Create(requestContext(c), services.CreateProjectInput{
		Title:          req.Title,
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		CreatedByID:    currentUserID(c),
	})
	if err != nil {
		response.Error(c, translateServiceError(err))
		return
	}
	response.Success(c, http.StatusCreated, project)
}

// GET /api/projects
//
// Students see each project annotated with their personal skill match;
// admins see the raw listing.
func (h *ProjectsHandler) List(c *gin.Context) {
	opts := services.ListProjectsOptions{
		Search: c.Query("search"),
		Skill:  c.Query("skill"),
	}

	if c.GetString(middleware.CtxRoleKey) == models.RoleStudent {
		user, err := h.users.Get(requestContext(c), currentUserID(c))
		if err != nil {
			response.Error(c, translateServiceError(err))
			return
		}
		skills := []string(user.Skills)
		if skills == nil {
			skills = []string{}
		}
		opts.MatchSkills = skills
	}

	views, err := h.projects.List(requestContext(c), opts)
	if err != nil {
		response.Error(c, translateServiceError(err))
		return
	}
	response.Success(c, http.StatusOK, views)
}

// DELETE /api/projects/:id (admin only, creator only)
func (h *ProjectsHandler) Delete(c *gin.Context) {
	if err := h.projects.Delete(requestContext(c), c.Param("id"), currentUserID(c)); err != nil {
		response.Error(c, translateServiceError(err))
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
