package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"maison/internal/models"
	"maison/internal/repositories"
)

// ErrInvalidCredentials is returned for any login failure. The message
// is deliberately generic so it never reveals whether the username exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService issues and validates stateless signed bearer tokens.
// Expiry is embedded in the token payload; there is no server-side
// session table.
type AuthService struct {
	userRepo      repositories.UserRepository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour,
	}
}

// Login authenticates a user and returns a signed token on success.
func (s *AuthService) Login(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      float64(user.ID),
		"username": user.Username,
		"exp":      now.Add(s.tokenDuration).Unix(),
		"iat":      now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// UserFromToken resolves the token to a live, active user record.
// Role flags are read from the database on every request so a demoted
// admin loses access immediately, not at token expiry.
func (s *AuthService) UserFromToken(tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, errors.New("invalid token: missing subject")
	}
	user, err := s.userRepo.GetByID(uint(sub))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !user.IsActive {
		return nil, errors.New("user is inactive")
	}
	return user, nil
}

// VerifyPassword checks a plaintext password against the user's hash.
func (s *AuthService) VerifyPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) == nil
}

// VerifySuperCredentials authenticates username/password and confirms
// the account holds the super admin role.
func (s *AuthService) VerifySuperCredentials(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !s.VerifyPassword(user, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsSuperAdmin {
		return nil, ErrNotSuperAdmin
	}
	return user, nil
}

// ErrNotSuperAdmin is returned when valid credentials belong to a
// non-super-admin account.
var ErrNotSuperAdmin = errors.New("user is not a super admin")
