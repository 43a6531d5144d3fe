package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/teambuilder-dev/teambuilder/internal/models"
	"github.com/teambuilder-dev/teambuilder/pkg/crypto"
)

// UserService manages accounts and skill profiles.
type UserService struct {
	db *gorm.DB
}

// NewUserService constructs a user service once a database handle is supplied.
func NewUserService(db *gorm.DB) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	return &UserService{db: db}, nil
}

func ensuredContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// RegisterInput captures the fields required to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Register creates a new user with a hashed password. The role is fixed here
// for the lifetime of the account.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	ctx = ensuredContext(ctx)

	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	role := strings.ToLower(strings.TrimSpace(input.Role))

	if name == "" || email == "" || input.Password == "" {
		return nil, errors.New("user service: name, email and password are required")
	}
	if role != models.RoleStudent && role != models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     role,
		Skills:   datatypes.JSONSlice[string]{},
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return &user, nil
}

// Authenticate verifies the email/password pair and returns the matching user.
// Missing user and wrong password are deliberately indistinguishable.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	ctx = ensuredContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// Get retrieves a user by identifier.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	ctx = ensuredContext(ctx)

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfileInput describes mutable profile fields. A nil pointer means no change.
type UpdateProfileInput struct {
	Skills       *[]string
	Availability *string
}

// UpdateProfile applies skill/availability changes to the holder's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*models.User, error) {
	ctx = ensuredContext(ctx)

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Skills != nil {
		skills := make([]string, 0, len(*input.Skills))
		for _, skill := range *input.Skills {
			if trimmed := strings.TrimSpace(skill); trimmed != "" {
				skills = append(skills, trimmed)
			}
		}
		user.Skills = datatypes.JSONSlice[string](skills)
	}
	if input.Availability != nil {
		user.Availability = strings.TrimSpace(*input.Availability)
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ListStudents returns every student except the given user, for the invite
// picker and the concierge roster.
func (s *UserService) ListStudents(ctx context.Context, excludeUserID string) ([]models.User, error) {
	ctx = ensuredContext(ctx)

	var students []models.User
	query := s.db.WithContext(ctx).
		Where("role = ?", models.RoleStudent).
		Order("created_at")
	if excludeUserID != "" {
		query = query.Where("id <> ?", excludeUserID)
	}
	if err := query.Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}
