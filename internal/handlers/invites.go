package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teambuilder-dev/teambuilder/internal/services"
	"github.com/teambuilder-dev/teambuilder/pkg/response"
)

// InvitesHandler manages direct collaboration invites.
type InvitesHandler struct {
	invites *services.InviteService
}

func NewInvitesHandler(invites *services.InviteService) *InvitesHandler {
	return &InvitesHandler{invites: invites}
}

type sendInviteRequest struct {
	ToUserID string `json:"to_user_id" validate:"required"`
	Message  string `json:"message" validate:"required,max=1000"`
	Goal     string `json:"goal" validate:"omitempty,max=500"`
	Role     string `json:"role" validate:"omitempty,max=100"`
}

// POST /api/invites
func (h *InvitesHandler) Send(c *gin.Context) {
	var req sendInviteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	invite, err := h.invites.Send(requestContext(c), services.SendInviteInput{
		FromUserID: currentUserID(c),
		ToUserID:   req.ToUserID,
		Message:    req.Message,
		Goal:       req.Goal,
		Role:       req.Role,
	})
	if err != nil {
		response.Error(c, translateServiceError(err))
		return
	}
	response.Success(c, http.StatusCreated, invite)
}

// GET /api/invites/received
func (h *InvitesHandler) Received(c *gin.Context) {
	invites, err := h.invites.ListReceived(requestContext(c), currentUserID(c))
	if err != nil {
		response.Error(c, translateServiceError(err))
		return
	}
	response.Success(c, http.StatusOK, invites)
}

// GET /api/invites/sent
func (h *InvitesHandler) Sent(c *gin.Context) {
	invites, err := h.invites.ListSent(requestContext(c), currentUserID(c))
	if err != nil {
		response.Error(c, translateServiceError(err))
		return
	}
	response.Success(c, http.StatusOK, invites)
}

type respondInviteRequest struct {
	Response string `json:"response" validate:"required,oneof=accepted declined"`
}

// POST /api/invites/:id/respond
func (h *InvitesHandler) Respond(c *gin.Context) {
	var req respondInviteRequest
	if !bindAndValidate(c, &req) {
		return
	}

	invite, err := h.invites.Respond(requestContext(c), c.Param("id"), currentUserID(c), req.Response)
	if err != nil {
		response.Error(c, translateServiceError(err))
		return
	}
	response.Success(c, http.StatusOK, invite)
}
