package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teambuilder-dev/teambuilder/internal/services"
	"github.com/teambuilder-dev/teambuilder/pkg/response"
)

// ApplicationsHandler manages the student-to-project application lifecycle.
type ApplicationsHandler struct {
	applications *services.ApplicationService
}

func NewApplicationsHandler(applications *services.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applications}
}

type applyRequest struct {
	ProjectID string `json:"project_id" validate:"required"`
}

// POST /api/applications (student only)
func (h *ApplicationsHandler) Apply(c *gin.Context) {
	var req applyRequest
	if !bindAndValidate(c, &req) {
		return
	}

	application, err := h.applications.Apply(requestContext(c), currentUserID(c), req.ProjectID)
	if err != nil {
		response.Error(c, translateServiceError(err))
		return
	}
	response.Success(c, http.StatusCreated, application)
}

// GET /api/projects/:id/applications (admin only, creator only)
func (h *ApplicationsHandler) ListForProject(c *gin.Context) {
	views, err := h.applications.ListForProject(requestContext(c), c.Param("id"), currentUserID(c))
	if err != nil {
		response.Error(c, translateServiceError(err))
		return
	}
	response.Success(c, http.StatusOK, views)
}

type decisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accepted rejected"`
}

// POST /api/applications/:id/decision (admin only, creator only)
func (h *ApplicationsHandler) Decide(c *gin.Context) {
	var req decisionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	application, err := h.applications.Decide(requestContext(c), c.Param("id"), currentUserID(c), req.Decision)
	if err != nil {
		response.Error(c, translateServiceError(err))
		return
	}
	response.Success(c, http.StatusOK, application)
}

// GET /api/applications/mine (student only)
func (h *ApplicationsHandler) Mine(c *gin.Context) {
	views, err := h.applications.ListForStudent(requestContext(c), currentUserID(c))
	if err != nil {
		response.Error(c, translateServiceError(err))
		return
	}
	response.Success(c, http.StatusOK, views)
}

// GET /api/applications/accepted (student only)
func (h *ApplicationsHandler) Accepted(c *gin.Context) {
	views, err := h.applications.ListAccepted(requestContext(c), currentUserID(c))
	if err != nil {
		response.Error(c, translateServiceError(err))
		return
	}
	response.Success(c, http.StatusOK, views)
}
