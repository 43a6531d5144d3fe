package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/teambuilder-dev/teambuilder/internal/database/testutil"
	"github.com/teambuilder-dev/teambuilder/internal/models"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.MustOpenTestDB(t)
}

func seedUser(t *testing.T, db *gorm.DB, name, role string, skills ...string) *models.User {
	t.Helper()

	user := models.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", strings.ToLower(strings.ReplaceAll(name, " ", "."))),
		Password: "not-a-real-hash",
		Role:     role,
		Skills:   datatypes.JSONSlice[string](skills),
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedProject(t *testing.T, db *gorm.DB, ownerID, title string, requiredSkills ...string) *models.Project {
	t.Helper()

	project := models.Project{
		Title:          title,
		Description:    "test project " + title,
		RequiredSkills: datatypes.JSONSlice[string](requiredSkills),
		CreatedByID:    ownerID,
	}
	require.NoError(t, db.Create(&project).Error)
	return &project
}
