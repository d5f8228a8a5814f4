package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"maison/internal/models"
	"maison/internal/repositories"
)

var (
	// ErrUsernameTaken is returned when a create or rename collides
	// with an existing username.
	ErrUsernameTaken = errors.New("username already registered")
	// ErrCannotDeleteSelf guards the super admin against deleting
	// their own account.
	ErrCannotDeleteSelf = errors.New("cannot delete yourself")
	// ErrInvalidResetCode covers unknown email, missing code and
	// mismatched code during password reset.
	ErrInvalidResetCode = errors.New("invalid reset code")
	// ErrResetCodeExpired is returned when the code matched but its
	// 15 minute window has passed.
	ErrResetCodeExpired = errors.New("reset code expired")
)

const resetCodeTTL = 15 * time.Minute

// UserService handles account management and the password reset flow.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Create registers a new account with a hashed password. The caller
// is responsible for the super-admin role check.
func (s *UserService) Create(user *models.User, password string) error {
	if existing, err := s.userRepo.GetByUsername(user.Username); err == nil && existing != nil {
		return ErrUsernameTaken
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = string(hashed)
	user.IsActive = true
	return s.userRepo.Create(user)
}

// List returns every user.
func (s *UserService) List() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// Get returns a user by ID.
func (s *UserService) Get(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UserUpdate carries the mutable profile fields. Nil means "leave as is".
type UserUpdate struct {
	Username     *string `json:"username"`
	Email        *string `json:"email"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	PhoneNumber  *string `json:"phone_number"`
	IsAdmin      *bool   `json:"is_admin"`
	IsSuperAdmin *bool   `json:"is_super_admin"`
	IsActive     *bool   `json:"is_active"`
}

// Update applies the set fields to the user record. A username change
// is re-checked for uniqueness.
func (s *UserService) Update(id uint, update UserUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Username != nil && *update.Username != user.Username {
		if existing, err := s.userRepo.GetByUsername(*update.Username); err == nil && existing != nil {
			return nil, ErrUsernameTaken
		}
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.PhoneNumber != nil {
		user.PhoneNumber = *update.PhoneNumber
	}
	if update.IsAdmin != nil {
		user.IsAdmin = *update.IsAdmin
	}
	if update.IsSuperAdmin != nil {
		user.IsSuperAdmin = *update.IsSuperAdmin
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPassword replaces a user's password. Super-admin only; the role
// check lives in the handler.
func (s *UserService) SetPassword(id uint, password string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = string(hashed)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user. Self-deletion is refused.
func (s *UserService) Delete(id, actorID uint) error {
	if id == actorID {
		return ErrCannotDeleteSelf
	}
	if _, err := s.userRepo.GetByID(id); err != nil {
		return err
	}
	return s.userRepo.Delete(id)
}

// ForgotPassword issues a 6-digit reset code valid for 15 minutes.
// An unknown email returns ("", nil) so callers can answer with the
// same generic acknowledgement either way.
func (s *UserService) ForgotPassword(email string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	code, err := generateResetCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	expiry := time.Now().Add(resetCodeTTL)
	user.ResetToken = &code
	user.ResetTokenExpiry = &expiry
	if err := s.userRepo.Update(user); err != nil {
		return "", err
	}
	return code, nil
}

// ResetPassword consumes a reset code. The code is single use: it is
// cleared on success, and a second attempt with the same code fails.
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return ErrInvalidResetCode
	}
	if user.ResetToken == nil || *user.ResetToken != code {
		return ErrInvalidResetCode
	}
	if user.ResetTokenExpiry == nil || user.ResetTokenExpiry.Before(time.Now()) {
		return ErrResetCodeExpired
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = string(hashed)
	user.ResetToken = nil
	user.ResetTokenExpiry = nil
	return s.userRepo.Update(user)
}

// generateResetCode returns a random 6-digit numeric code.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
