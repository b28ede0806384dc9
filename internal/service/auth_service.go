package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hevatrack/internal/auth"
	"hevatrack/internal/errors"
	"hevatrack/internal/model"
	"hevatrack/internal/repository"
)

const bcryptCost = 10

// PredefinedUser is a system-critical account seeded at boot.
type PredefinedUser struct {
	Username string
	Password string
	Role     model.Role
	FullName string
	Email    string
}

// AuthService handles authentication and user administration.
type AuthService interface {
	RegisterFieldAgent(ctx context.Context, username, password, fullName, email string) (*model.User, error)
	Login(ctx context.Context, username, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, token string) error
	CreateUser(ctx context.Context, actor model.Actor, username, password string, role model.Role, fullName, email string) (*model.User, error)
	SetUserActive(ctx context.Context, actor model.Actor, userID uint, active bool) error
	GetUser(ctx context.Context, actor model.Actor, userID uint) (*model.User, error)
	SeedPredefinedUsers(ctx context.Context, users []PredefinedUser) (int, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// RegisterFieldAgent creates a self-registered user. The role is always
// field_agent regardless of what the caller asked for.
func (s *authService) RegisterFieldAgent(ctx context.Context, username, password, fullName, email string) (*model.User, error) {
	return s.createUser(ctx, username, password, model.RoleFieldAgent, fullName, email, false)
}

func (s *authService) createUser(ctx context.Context, username, password string, role model.Role, fullName, email string, predefined bool) (*model.User, error) {
	if username == "" || password == "" {
		return nil, errors.ErrInvalidInput
	}
	if !model.ValidRole(role) {
		return nil, errors.ErrInvalidInput
	}

	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if fullName == "" {
		fullName = username
	}
	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		FullName:     fullName,
		Email:        email,
		IsActive:     true,
		IsPredefined: predefined,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	if username == "" || password == "" {
		return "", nil, errors.ErrInvalidInput
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, errors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, errors.ErrUserInactive
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	now := time.Now()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		// login still succeeds; last_login is best effort
		log.Printf("touch last_login for user %d: %v", user.ID, err)
	}
	user.LastLogin = &now

	return token, user, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return errors.ErrInvalidCredentials
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.tokenStore.BlacklistToken(ctx, token, ttl)
}

// CreateUser lets an admin provision manager or analyst accounts.
func (s *authService) CreateUser(ctx context.Context, actor model.Actor, username, password string, role model.Role, fullName, email string) (*model.User, error) {
	if actor.Role != model.RoleAdmin {
		return nil, errors.ErrPermissionDenied
	}
	if role != model.RoleManager && role != model.RoleAnalyst {
		return nil, errors.ErrInvalidInput
	}
	return s.createUser(ctx, username, password, role, fullName, email, true)
}

// SetUserActive activates or deactivates an account. Admin only.
func (s *authService) SetUserActive(ctx context.Context, actor model.Actor, userID uint, active bool) error {
	if actor.Role != model.RoleAdmin {
		return errors.ErrPermissionDenied
	}
	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("set user active: %w", err)
	}
	return nil
}

// GetUser returns a user record. Non-admin actors may only read themselves.
func (s *authService) GetUser(ctx context.Context, actor model.Actor, userID uint) (*model.User, error) {
	if actor.ID != userID && actor.Role != model.RoleAdmin {
		return nil, errors.ErrPermissionDenied
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// SeedPredefinedUsers creates the given accounts through the same validated
// creation path as normal registration, skipping any username that already
// exists. Safe to run at every boot.
func (s *authService) SeedPredefinedUsers(ctx context.Context, users []PredefinedUser) (int, error) {
	created := 0
	for _, u := range users {
		_, err := s.createUser(ctx, u.Username, u.Password, u.Role, u.FullName, u.Email, true)
		if err == errors.ErrUserAlreadyExists {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed user %s: %w", u.Username, err)
		}
		created++
	}
	return created, nil
}

// DefaultPredefinedUsers are the accounts expected to exist on a fresh
// install. Passwords can be overridden per deployment before seeding.
func DefaultPredefinedUsers() []PredefinedUser {
	return []PredefinedUser{
		{Username: "admin@heva", Password: "SecureAdmin123!", Role: model.RoleAdmin, FullName: "System Administrator", Email: "admin@heva.org"},
		{Username: "manager@heva", Password: "ManagerPass456!", Role: model.RoleManager, FullName: "HEVA Manager", Email: "manager@heva.org"},
		{Username: "analyst@heva", Password: "AnalystAccess789!", Role: model.RoleAnalyst, FullName: "Financial Analyst", Email: "analyst@heva.org"},
	}
}
