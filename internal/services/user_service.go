package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/HammadCopilot/star-video-review/internal/errors"
	"github.com/HammadCopilot/star-video-review/internal/models"
	"github.com/HammadCopilot/star-video-review/internal/pagination"
)

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser registers a new user with the given role.
func (s *userService) CreateUser(email, password, firstName, lastName string, role models.Role) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}
	if role == "" {
		role = models.RoleReviewer
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", strings.ToLower(email)).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Email:     strings.ToLower(email),
		Password:  string(hashedPassword),
		Role:      role,
		FirstName: firstName,
		LastName:  lastName,
		IsActive:  true,
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// AttemptLogin verifies the credentials and returns the user on success.
// Invalid email and invalid password are indistinguishable to the caller.
func (s *userService) AttemptLogin(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	now := time.Now()
	if err := s.db.Model(&user).Update("last_login_at", now).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	user.LastLoginAt = &now

	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// ListUsers retrieves a paginated list of all users, newest first.
func (s *userService) ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.User{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var users []models.User
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(users, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateUser applies the update to the target user. Users may edit their own
// name and password; role and is_active changes require the admin role, as
// does editing anyone else.
func (s *userService) UpdateUser(actorID string, actorRole models.Role, targetID string, update UserUpdate) (*models.User, error) {
	if actorRole != models.RoleAdmin && actorID != targetID {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.GetUserByID(targetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.FirstName != nil {
		updates["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		updates["last_name"] = *update.LastName
	}
	if update.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updates["password"] = string(hashed)
	}
	if update.Role != nil {
		if actorRole != models.RoleAdmin {
			return nil, apperrors.ErrForbidden
		}
		updates["role"] = *update.Role
	}
	if update.IsActive != nil {
		if actorRole != models.RoleAdmin {
			return nil, apperrors.ErrForbidden
		}
		updates["is_active"] = *update.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return user, nil
}

// DeleteUser soft-deletes the target user. Admins cannot delete themselves.
func (s *userService) DeleteUser(actorID, targetID string) error {
	if actorID == targetID {
		return apperrors.ErrSelfDelete
	}

	user, err := s.GetUserByID(targetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(user).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// StoreRefreshTokenHash persists the hash of the user's current refresh token.
func (s *userService) StoreRefreshTokenHash(userID, tokenHash string) error {
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("refresh_token_hash", tokenHash).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetRefreshTokenHash returns the stored refresh token hash for the user.
func (s *userService) GetRefreshTokenHash(userID string) (string, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return "", err
	}
	return user.RefreshTokenHash, nil
}
