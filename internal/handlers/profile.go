package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"github.com/teambuilder-dev/teambuilder/internal/services"
	"github.com/teambuilder-dev/teambuilder/pkg/errors"
	"github.com/teambuilder-dev/teambuilder/pkg/response"
)

const contactQRSize = 256

// ProfileHandler manages the caller's own skill profile.
type ProfileHandler struct {
	users *services.UserService
}

func NewProfileHandler(users *services.UserService) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	user, err := h.users.Get(requestContext(c), currentUserID(c))
	if err != nil {
		response.Error(c, translateServiceError(err))
		return
	}
	response.Success(c, http.StatusOK, user)
}

type updateProfileRequest struct {
	Skills       *[]string `json:"skills" validate:"omitempty,max=50,dive,max=60"`
	Availability *string   `json:"availability" validate:"omitempty,max=200"`
}

// PUT /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.users.UpdateProfile(requestContext(c), currentUserID(c), services.UpdateProfileInput{
		Skills:       req.Skills,
		Availability: req.Availability,
	})
	if err != nil {
		response.Error(c, translateServiceError(err))
		return
	}
	response.Success(c, http.StatusOK, user)
}

// GET /api/profile/qr
//
// Renders the caller's contact card as a PNG QR code, so teammates can scan
// it at in-person events.
func (h *ProfileHandler) ContactQR(c *gin.Context) {
	user, err := h.users.Get(requestContext(c), currentUserID(c))
	if err != nil {
		response.Error(c, translateServiceError(err))
		return
	}

	card := fmt.Sprintf("MECARD:N:%s;EMAIL:%s;NOTE:%s;;",
		sanitizeMecardField(user.Name),
		sanitizeMecardField(user.Email),
		sanitizeMecardField(strings.Join(user.Skills, ", ")),
	)

	png, err := qrcode.Encode(card, qrcode.Medium, contactQRSize)
	if err != nil {
		response.Error(c, errors.ErrInternalServer.WithInternal(err))
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// sanitizeMecardField escapes the MECARD reserved characters.
func sanitizeMecardField(value string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		":", `\:`,
		",", `\,`,
	)
	return replacer.Replace(value)
}
