package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teambuilder-dev/teambuilder/internal/services"
	"github.com/teambuilder-dev/teambuilder/pkg/response"
)

// StudentsHandler exposes the student roster for the invite picker.
type StudentsHandler struct {
	users *services.UserService
}

func NewStudentsHandler(users *services.UserService) *StudentsHandler {
	return &StudentsHandler{users: users}
}

// GET /api/students
func (h *StudentsHandler) List(c *gin.Context) {
	students, err := h.users.ListStudents(requestContext(c), currentUserID(c))
	if err != nil {
		response.Error(c, translateServiceError(err))
		return
	}
	response.Success(c, http.StatusOK, students)
}
