package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teambuilder-dev/teambuilder/internal/models"
)

func TestApplicationServiceApply(t *testing.T) {
	db := openServiceTestDB(t)
	service, err := NewApplicationService(db)
	require.NoError(t, err)

	admin := seedUser(t, db, "Apply Admin", models.RoleAdmin)
	student := seedUser(t, db, "Apply Student", models.RoleStudent, "Go")
	project := seedProject(t, db, admin.ID, "Open Project", "Go")

	application, err := service.Apply(context.Background(), student.ID, project.ID)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationPending, application.Status)
	require.Equal(t, student.ID, application.StudentID)
	require.Equal(t, project.ID, application.ProjectID)
}

func TestApplicationServiceApplyUnknownProject(t *testing.T) {
	db := openServiceTestDB(t)
	service, err := NewApplicationService(db)
	require.NoError(t, err)

	student := seedUser(t, db, "Lost Student", models.RoleStudent)

	_, err = service.Apply(context.Background(), student.ID, "no-such-project")
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestApplicationServiceApplyRejectsDuplicates(t *testing.T) {
	db := openServiceTestDB(t)
	service, err := NewApplicationService(db)
	require.NoError(t, err)

	admin := seedUser(t, db, "Dup Admin", models.RoleAdmin)
	student := seedUser(t, db, "Dup Student", models.RoleStudent)
	project := seedProject(t, db, admin.ID, "Popular Project", "Go")

	first, err := service.Apply(context.Background(), student.ID, project.ID)
	require.NoError(t, err)

	_, err = service.Apply(context.Background(), student.ID, project.ID)
	require.ErrorIs(t, err, ErrAlreadyApplied)

	// A rejected application still blocks re-applying.
	_, err = service.Decide(context.Background(), first.ID, admin.ID, models.ApplicationRejected)
	require.NoError(t, err)
	_, err = service.Apply(context.Background(), student.ID, project.ID)
	require.ErrorIs(t, err, ErrAlreadyApplied)
}

func TestApplicationServiceDecide(t *testing.T) {
	db := openServiceTestDB(t)
	service, err := NewApplicationService(db)
	require.NoError(t, err)

	admin := seedUser(t, db, "Decide Admin", models.RoleAdmin)
	student := seedUser(t, db, "Decide Student", models.RoleStudent)
	project := seedProject(t, db, admin.ID, "Decision Project", "Go")

	application, err := service.Apply(context.Background(), student.ID, project.ID)
	require.NoError(t, err)

	decided, err := service.Decide(context.Background(), application.ID, admin.ID, models.ApplicationAccepted)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationAccepted, decided.Status)

	// A later decision overwrites the earlier one.
	decided, err = service.Decide(context.Background(), application.ID, admin.ID, models.ApplicationRejected)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationRejected, decided.Status)

	var stored models.Application
	require.NoError(t, db.First(&stored, "id = ?", application.ID).Error)
	require.Equal(t, models.ApplicationRejected, stored.Status)
}

func TestApplicationServiceDecideValidation(t *testing.T) {
	db := openServiceTestDB(t)
	service, err := NewApplicationService(db)
	require.NoError(t, err)

	admin := seedUser(t, db, "Val Admin", models.RoleAdmin)
	other := seedUser(t, db, "Val Other Admin", models.RoleAdmin)
	student := seedUser(t, db, "Val Student", models.RoleStudent)
	project := seedProject(t, db, admin.ID, "Validation Project", "Go")

	application, err := service.Apply(context.Background(), student.ID, project.ID)
	require.NoError(t, err)

	_, err = service.Decide(context.Background(), application.ID, admin.ID, "maybe")
	require.ErrorIs(t, err, ErrInvalidDecision)

	_, err = service.Decide(context.Background(), application.ID, other.ID, models.ApplicationAccepted)
	require.ErrorIs(t, err, ErrNotProjectOwner)

	_, err = service.Decide(context.Background(), "no-such-application", admin.ID, models.ApplicationAccepted)
	require.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestApplicationServiceListForStudent(t *testing.T) {
	db := openServiceTestDB(t)
	service, err := NewApplicationService(db)
	require.NoError(t, err)

	admin := seedUser(t, db, "Roster Admin", models.RoleAdmin)
	student := seedUser(t, db, "Roster Student", models.RoleStudent)
	first := seedProject(t, db, admin.ID, "First Project", "Go")
	second := seedProject(t, db, admin.ID, "Second Project", "React")

	a1, err := service.Apply(context.Background(), student.ID, first.ID)
	require.NoError(t, err)
	_, err = service.Apply(context.Background(), student.ID, second.ID)
	require.NoError(t, err)

	_, err = service.Decide(context.Background(), a1.ID, admin.ID, models.ApplicationAccepted)
	require.NoError(t, err)

	all, err := service.ListForStudent(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, view := range all {
		require.NotEmpty(t, view.Title)
		require.Equal(t, "Roster Admin", view.CreatedByName)
		require.NotEmpty(t, view.CreatedAt)
	}

	accepted, err := service.ListAccepted(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	require.Equal(t, "First Project", accepted[0].Title)
	require.Equal(t, models.ApplicationAccepted, accepted[0].Status)
}

func TestApplicationServiceListForProjectScoresApplicants(t *testing.T) {
	db := openServiceTestDB(t)
	service, err := NewApplicationService(db)
	require.NoError(t, err)

	admin := seedUser(t, db, "Score Admin", models.RoleAdmin)
	strong := seedUser(t, db, "Strong Applicant", models.RoleStudent, "react", "node", "python")
	weak := seedUser(t, db, "Weak Applicant", models.RoleStudent, "java")
	project := seedProject(t, db, admin.ID, "Scored Project", "React", "Node")

	_, err = service.Apply(context.Background(), strong.ID, project.ID)
	require.NoError(t, err)
	_, err = service.Apply(context.Background(), weak.ID, project.ID)
	require.NoError(t, err)

	views, err := service.ListForProject(context.Background(), project.ID, admin.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	byName := map[string]ApplicantView{}
	for _, view := range views {
		byName[view.StudentName] = view
	}

	require.Equal(t, 100, byName["Strong Applicant"].Match.Percentage)
	require.Equal(t, []string{"React", "Node"}, byName["Strong Applicant"].Match.MatchedSkills)
	require.Equal(t, 0, byName["Weak Applicant"].Match.Percentage)
	require.Empty(t, byName["Weak Applicant"].Match.MatchedSkills)
}

func TestApplicationServiceListForProjectRequiresOwner(t *testing.T) {
	db := openServiceTestDB(t)
	service, err := NewApplicationService(db)
	require.NoError(t, err)

	admin := seedUser(t, db, "List Owner", models.RoleAdmin)
	other := seedUser(t, db, "List Intruder", models.RoleAdmin)
	project := seedProject(t, db, admin.ID, "Private List", "Go")

	_, err = service.ListForProject(context.Background(), project.ID, other.ID)
	require.ErrorIs(t, err, ErrNotProjectOwner)

	_, err = service.ListForProject(context.Background(), "no-such-project", admin.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)
}
