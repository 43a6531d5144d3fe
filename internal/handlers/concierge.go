package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teambuilder-dev/teambuilder/internal/services"
	"github.com/teambuilder-dev/teambuilder/pkg/response"
)

// ConciergeHandler exposes the AI team-building concierge.
type ConciergeHandler struct {
	concierge *services.ConciergeService
}

func NewConciergeHandler(concierge *services.ConciergeService) *ConciergeHandler {
	return &ConciergeHandler{concierge: concierge}
}

type buildTeamRequest struct {
	Goal string `json:"goal" validate:"required,max=500"`
}

// POST /api/concierge
func (h *ConciergeHandler) BuildTeam(c *gin.Context) {
	var req buildTeamRequest
	if !bindAndValidate(c, &req) {
		return
	}

	plan, err := h.concierge.BuildTeam(requestContext(c), currentUserID(c), req.Goal)
	if err != nil {
		response.Error(c, translateServiceError(err))
		return
	}
	response.Success(c, http.StatusOK, plan)
}
