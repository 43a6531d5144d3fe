package handlers

import (
	"errors"

	"github.com/teambuilder-dev/teambuilder/internal/services"
	appErrors "github.com/teambuilder-dev/teambuilder/pkg/errors"
)

// translateServiceError maps service sentinel errors onto the API error
// taxonomy. Unknown errors pass through and render as 500.
func translateServiceError(err error) error {
	switch {
	case err == nil:
		return nil

	case errors.Is(err, services.ErrInvalidCredentials):
		return appErrors.ErrInvalidCredentials

	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrApplicationNotFound),
		errors.Is(err, services.ErrInviteNotFound),
		errors.Is(err, services.ErrRecipientNotFound):
		return appErrors.ErrNotFound.WithInternal(err)

	case errors.Is(err, services.ErrNotProjectOwner),
		errors.Is(err, services.ErrNotInviteRecipient):
		return appErrors.ErrForbidden.WithInternal(err)

	case errors.Is(err, services.ErrEmailTaken):
		return appErrors.NewConflict("email is already registered")
	case errors.Is(err, services.ErrAlreadyApplied):
		return appErrors.NewConflict("you have already applied to this project")
	case errors.Is(err, services.ErrDuplicatePending):
		return appErrors.NewConflict("a pending invite to this user already exists")
	case errors.Is(err, services.ErrInviteResolved):
		return appErrors.NewConflict("this invite has already been responded to")

	case errors.Is(err, services.ErrInvalidRole):
		return appErrors.NewBadRequest("role must be student or admin")
	case errors.Is(err, services.ErrInvalidDecision):
		return appErrors.NewBadRequest("decision must be accepted or rejected")
	case errors.Is(err, services.ErrInvalidResponse):
		return appErrors.NewBadRequest("response must be accepted or declined")
	case errors.Is(err, services.ErrEmptyMessage):
		return appErrors.NewBadRequest("message is required")
	case errors.Is(err, services.ErrSelfInvite):
		return appErrors.NewBadRequest("you cannot invite yourself")
	case errors.Is(err, services.ErrGoalTooShort):
		return appErrors.NewBadRequest("goal must be at least 5 characters")

	case errors.Is(err, services.ErrPlanFormat):
		return appErrors.ErrUpstreamFormat.WithInternal(err)

	default:
		return err
	}
}
