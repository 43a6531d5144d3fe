package services

import "errors"

// Sentinel errors shared across services. Handlers translate these into the
// API error taxonomy (400/403/404/409/502) via pkg/errors.
var (
	ErrUserNotFound        = errors.New("users: user not found")
	ErrEmailTaken          = errors.New("users: email already registered")
	ErrInvalidRole         = errors.New("users: role must be student or admin")
	ErrInvalidCredentials  = errors.New("users: invalid email or password")
	ErrProjectNotFound     = errors.New("projects: project not found")
	ErrNotProjectOwner     = errors.New("projects: acting user does not own the project")
	ErrApplicationNotFound = errors.New("applications: application not found")
	ErrAlreadyApplied      = errors.New("applications: student already applied to this project")
	ErrInvalidDecision     = errors.New("applications: decision must be accepted or rejected")
	ErrInviteNotFound      = errors.New("invites: invite not found")
	ErrSelfInvite          = errors.New("invites: sender and recipient are the same user")
	ErrEmptyMessage        = errors.New("invites: message is required")
	ErrRecipientNotFound   = errors.New("invites: recipient not found")
	ErrDuplicatePending    = errors.New("invites: a pending invite to this user already exists")
	ErrInviteResolved      = errors.New("invites: invite has already been responded to")
	ErrNotInviteRecipient  = errors.New("invites: acting user is not the recipient")
	ErrInvalidResponse     = errors.New("invites: response must be accepted or declined")
	ErrGoalTooShort        = errors.New("concierge: goal must be at least 5 characters")
	ErrPlanFormat          = errors.New("concierge: generator returned an unusable team plan")
)
