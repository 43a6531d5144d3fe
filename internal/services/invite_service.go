package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/teambuilder-dev/teambuilder/internal/models"
)

// InviteService governs direct collaboration invites between users.
type InviteService struct {
	db *gorm.DB
}

// NewInviteService constructs an invite service once a database handle is supplied.
func NewInviteService(db *gorm.DB) (*InviteService, error) {
	if db == nil {
		return nil, errors.New("invite service: db is required")
	}
	return &InviteService{db: db}, nil
}

// SendInviteInput captures the fields of a new invite. Goal and Role are
// optional and typically filled in by the concierge draft.
type SendInviteInput struct {
	FromUserID string
	ToUserID   string
	Message    string
	Goal       string
	Role       string
}

// Send creates a pending invite from one user to another.
//
// The one-pending-invite-per-pair rule is enforced by the unique pending key
// in storage, so two concurrent sends cannot both slip past the check.
func (s *InviteService) Send(ctx context.Context, input SendInviteInput) (*models.Invite, error) {
	ctx = ensuredContext(ctx)

	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if input.ToUserID == input.FromUserID {
		return nil, ErrSelfInvite
	}

	var recipient models.User
	if err := s.db.WithContext(ctx).First(&recipient, "id = ?", input.ToUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	pendingKey := fmt.Sprintf("%s:%s", input.FromUserID, input.ToUserID)
	invite := models.Invite{
		FromUserID: input.FromUserID,
		ToUserID:   input.ToUserID,
		Message:    message,
		Goal:       strings.TrimSpace(input.Goal),
		Role:       strings.TrimSpace(input.Role),
		Status:     models.InvitePending,
		PendingKey: &pendingKey,
	}

	if err := s.db.WithContext(ctx).Create(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicatePending
		}
		return nil, err
	}

	return &invite, nil
}

// Respond resolves a pending invite exactly once. Only the recipient may
// respond, and only while the invite is pending.
//
// The transition is a compare-and-set guarded on status=pending, so a
// concurrent double-response resolves to exactly one winner. The pending key
// is cleared in the same update, freeing the pair for a future invite.
func (s *InviteService) Respond(ctx context.Context, inviteID, actingUserID, outcome string) (*models.Invite, error) {
	ctx = ensuredContext(ctx)

	if outcome != models.InviteAccepted && outcome != models.InviteDeclined {
		return nil, ErrInvalidResponse
	}

	var invite models.Invite
	if err := s.db.WithContext(ctx).First(&invite, "id = ?", inviteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}

	if invite.ToUserID != actingUserID {
		return nil, ErrNotInviteRecipient
	}
	if invite.Status != models.InvitePending {
		return nil, ErrInviteResolved
	}

	result := s.db.WithContext(ctx).
		Model(&models.Invite{}).
		Where("id = ? AND status = ?", inviteID, models.InvitePending).
		Updates(map[string]any{"status": outcome, "pending_key": nil})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Lost the race to another response.
		return nil, ErrInviteResolved
	}

	invite.Status = outcome
	invite.PendingKey = nil
	return &invite, nil
}

// ListReceived returns invites addressed to the user, newest first, with the
// sender attached.
func (s *InviteService) ListReceived(ctx context.Context, userID string) ([]models.Invite, error) {
	ctx = ensuredContext(ctx)

	var invites []models.Invite
	if err := s.db.WithContext(ctx).
		Preload("FromUser").
		Where("to_user_id = ?", userID).
		Order("created_at DESC").
		Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

// ListSent returns invites the user has sent, newest first, with the
// recipient attached.
func (s *InviteService) ListSent(ctx context.Context, userID string) ([]models.Invite, error) {
	ctx = ensuredContext(ctx)

	var invites []models.Invite
	if err := s.db.WithContext(ctx).
		Preload("ToUser").
		Where("from_user_id = ?", userID).
		Order("created_at DESC").
		Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}
