package models

// Invite lifecycle states. Unlike applications, a resolved invite is
// terminal: the recipient responds exactly once.
const (
	InvitePending  = "pending"
	InviteAccepted = "accepted"
	InviteDeclined = "declined"
)

// Invite is a direct collaboration proposal from one user to another.
//
// PendingKey holds "<from>:<to>" while the invite is pending and is cleared
// when it resolves. The unique index on it enforces the one-pending-invite-
// per-pair invariant in storage, so two concurrent sends cannot both pass
// the duplicate check and insert. NULLs never collide, so any number of
// resolved invites may exist for the same pair.
type Invite struct {
	BaseModel

	FromUserID string  `gorm:"type:uuid;not null;index" json:"from_user_id"`
	ToUserID   string  `gorm:"type:uuid;not null;index" json:"to_user_id"`
	Message    string  `gorm:"not null" json:"message"`
	Goal       string  `json:"goal,omitempty"`
	Role       string  `json:"role,omitempty"`
	Status     string  `gorm:"not null;default:pending" json:"status"`
	PendingKey *string `gorm:"uniqueIndex" json:"-"`

	FromUser *User `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUser   *User `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`
}
