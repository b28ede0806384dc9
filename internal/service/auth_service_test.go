package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hevatrack/internal/auth"
	"hevatrack/internal/errors"
	"hevatrack/internal/model"
)

func TestAuthService_RegisterFieldAgent(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "agent@heva",
			password: "AgentPass123!",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "agent@heva").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:     "username already taken",
			username: "taken@heva",
			password: "AgentPass123!",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "taken@heva").Return(&model.User{Username: "taken@heva"}, nil)
			},
			expectedError: errors.ErrUserAlreadyExists,
		},
		{
			name:          "empty username rejected",
			username:      "",
			password:      "AgentPass123!",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret", time.Hour)
			svc := NewAuthService(mockRepo, jwtService, new(MockTokenStore))

			user, err := svc.RegisterFieldAgent(context.Background(), tt.username, tt.password, "Agent Name", "agent@heva.org")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				// Self-registration always yields a field agent.
				assert.Equal(t, model.RoleFieldAgent, user.Role)
				assert.True(t, user.IsActive)
				assert.False(t, user.IsPredefined)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("GoodPass123!"), bcryptCost)

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "manager@heva",
			password: "GoodPass123!",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "manager@heva").Return(&model.User{
					ID:           2,
					Username:     "manager@heva",
					PasswordHash: string(hash),
					Role:         model.RoleManager,
					IsActive:     true,
				}, nil)
				m.On("TouchLastLogin", mock.Anything, uint(2), mock.AnythingOfType("time.Time")).Return(nil)
			},
		},
		{
			name:     "unknown user",
			username: "nobody@heva",
			password: "GoodPass123!",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "nobody@heva").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "manager@heva",
			password: "WrongPass",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "manager@heva").Return(&model.User{
					ID:           2,
					Username:     "manager@heva",
					PasswordHash: string(hash),
					IsActive:     true,
				}, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "deactivated account",
			username: "manager@heva",
			password: "GoodPass123!",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "manager@heva").Return(&model.User{
					ID:           2,
					Username:     "manager@heva",
					PasswordHash: string(hash),
					IsActive:     false,
				}, nil)
			},
			expectedError: errors.ErrUserInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret", time.Hour)
			svc := NewAuthService(mockRepo, jwtService, new(MockTokenStore))

			token, user, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.NotNil(t, user.LastLogin)

				claims, err := jwtService.ValidateToken(token)
				assert.NoError(t, err)
				assert.Equal(t, user.ID, claims.UserID)
				assert.Equal(t, user.Role, claims.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	token, err := jwtService.GenerateToken(&model.User{ID: 2, Username: "manager@heva", Role: model.RoleManager})
	assert.NoError(t, err)

	mockStore := new(MockTokenStore)
	mockStore.On("BlacklistToken", mock.Anything, token, mock.AnythingOfType("time.Duration")).Return(nil)

	svc := NewAuthService(new(MockUserRepository), jwtService, mockStore)

	assert.NoError(t, svc.Logout(context.Background(), token))
	assert.ErrorIs(t, svc.Logout(context.Background(), "not-a-token"), errors.ErrInvalidCredentials)

	mockStore.AssertExpectations(t)
}

func TestAuthService_CreateUser(t *testing.T) {
	tests := []struct {
		name          string
		actor         model.Actor
		role          model.Role
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "admin creates manager",
			actor: adminActor,
			role:  model.RoleManager,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "new@heva").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:          "manager cannot create users",
			actor:         managerActor,
			role:          model.RoleAnalyst,
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrPermissionDenied,
		},
		{
			name:          "admin role not provisionable",
			actor:         adminActor,
			role:          model.RoleAdmin,
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret", time.Hour), new(MockTokenStore))
			user, err := svc.CreateUser(context.Background(), tt.actor, "new@heva", "NewPass123!", tt.role, "New User", "new@heva.org")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.role, user.Role)
				assert.True(t, user.IsPredefined)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_GetUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.User{ID: 10, Username: "agent@heva"}, nil)

	svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret", time.Hour), new(MockTokenStore))

	// Self read allowed.
	user, err := svc.GetUser(context.Background(), agentActor, 10)
	assert.NoError(t, err)
	assert.Equal(t, uint(10), user.ID)

	// Admin reads anyone.
	_, err = svc.GetUser(context.Background(), adminActor, 10)
	assert.NoError(t, err)

	// Other roles cannot read other users.
	_, err = svc.GetUser(context.Background(), managerActor, 10)
	assert.ErrorIs(t, err, errors.ErrPermissionDenied)
}

func TestAuthService_SeedPredefinedUsers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	// admin already exists; manager and analyst are created
	mockRepo.On("FindByUsername", mock.Anything, "admin@heva").Return(&model.User{Username: "admin@heva"}, nil)
	mockRepo.On("FindByUsername", mock.Anything, "manager@heva").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("FindByUsername", mock.Anything, "analyst@heva").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewAuthService(mockRepo, nil, nil)
	created, err := svc.SeedPredefinedUsers(context.Background(), DefaultPredefinedUsers())

	assert.NoError(t, err)
	assert.Equal(t, 2, created)
	mockRepo.AssertNumberOfCalls(t, "Create", 2)
}
