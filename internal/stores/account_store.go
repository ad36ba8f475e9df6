package stores

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/example/mangal/internal/apperrors"
	"github.com/example/mangal/internal/models"
	"github.com/example/mangal/internal/utils"
)

// AccountStore persists user identity records keyed by unique email.
type AccountStore struct {
	db *gorm.DB
}

// NewAccountStore constructs an AccountStore.
func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

// Register creates an account with a bcrypt-hashed password. The email
// pre-check gives a friendly conflict early; the unique indexes on email and
// phone remain the authoritative guarantee and reject duplicates the
// pre-check misses.
func (s *AccountStore) Register(fio, phone, email, password string, date time.Time) (*models.User, error) {
	existing, err := s.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.CodeConflict, "user with this email already exists")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodePersistence, err, "failed to hash password")
	}

	user := models.User{
		FIO:          fio,
		Phone:        phone,
		Email:        email,
		PasswordHash: hash,
		Date:         date,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Wrap(apperrors.CodeConflict, err, "user with this email or phone already exists")
		}
		return nil, apperrors.Wrap(apperrors.CodePersistence, err, "failed to create user")
	}

	return &user, nil
}

// FindByEmail returns the full record including the password hash, or nil
// when no account matches. A miss is not an error at this layer.
func (s *AccountStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.CodePersistence, err, "failed to look up user")
	}
	return &user, nil
}

// Update rewrites fio, phone and email for the account matching
// currentEmail. Zero rows changed means the target does not exist; a unique
// violation on the new email or phone surfaces as a conflict.
func (s *AccountStore) Update(fio, phone, email, currentEmail string) (*models.User, error) {
	result := s.db.Model(&models.User{}).
		Where("email = ?", currentEmail).
		Updates(map[string]interface{}{
			"fio":   fio,
			"phone": phone,
			"email": email,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Wrap(apperrors.CodeConflict, result.Error, "email or phone already in use")
		}
		return nil, apperrors.Wrap(apperrors.CodePersistence, result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.New(apperrors.CodeNotFound, "user not found")
	}

	updated, err := s.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "user not found")
	}
	return updated, nil
}

// VerifyCredentials checks email and password and returns the profile on
// match. A lookup miss and a password mismatch are indistinguishable to the
// caller so registered emails cannot be probed.
func (s *AccountStore) VerifyCredentials(email, password string) (models.Profile, error) {
	user, err := s.FindByEmail(email)
	if err != nil {
		return models.Profile{}, err
	}
	if user == nil || !utils.CheckPassword(user.PasswordHash, password) {
		return models.Profile{}, apperrors.New(apperrors.CodeUnauthorized, "invalid email or password")
	}
	return user.Profile(), nil
}
