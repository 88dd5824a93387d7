package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tutorhub/internal/auth"
	apperrors "tutorhub/internal/errors"
	"tutorhub/internal/model"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		role          model.Role
		setupMock     func(*MockUserRepository)
		expectedError error
		checkUser     func(*testing.T, *model.User)
	}{
		{
			name:  "tutor registration creates exactly one tutor profile",
			email: "tutor@example.com",
			role:  model.RoleTutor,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "tutor@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			checkUser: func(t *testing.T, u *model.User) {
				assert.NotNil(t, u.TutorProfile)
				assert.Nil(t, u.StudentProfile)
			},
		},
		{
			name:  "student registration creates exactly one student profile",
			email: "student@example.com",
			role:  model.RoleStudent,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "student@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			checkUser: func(t *testing.T, u *model.User) {
				assert.Nil(t, u.TutorProfile)
				assert.NotNil(t, u.StudentProfile)
			},
		},
		{
			name:          "unknown role rejected",
			email:         "admin@example.com",
			role:          model.Role("admin"),
			setupMock:     func(m *MockUserRepository) {},
			expectedError: &apperrors.ValidationError{},
		},
		{
			name:  "duplicate email rejected",
			email: "existing@example.com",
			role:  model.RoleStudent,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@example.com").
					Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			tt.setupMock(userRepo)

			svc := NewAuthService(userRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
			user, err := svc.Register(context.Background(), tt.email, "someone", "password123", tt.role)

			if tt.expectedError == nil {
				assert.NoError(t, err)
				assert.Equal(t, tt.role, user.Role)
				assert.NotEqual(t, "password123", user.PasswordHash)
				tt.checkUser(t, user)
			} else {
				assert.Error(t, err)
				userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
			userRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	user := &model.User{
		ID:           1,
		Email:        "student@example.com",
		Role:         model.RoleStudent,
		PasswordHash: string(hash),
	}
	jwtService := auth.NewJWTService("test-secret")

	t.Run("successful login embeds role in claims", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenStore := new(MockTokenStore)
		userRepo.On("FindByEmail", mock.Anything, "student@example.com").Return(user, nil)
		tokenStore.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), uint(1), "student@example.com", model.RoleStudent, auth.RefreshTokenExpiry).Return(nil)

		svc := NewAuthService(userRepo, jwtService, tokenStore)
		access, refresh, loggedIn, err := svc.Login(context.Background(), "student@example.com", "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, user.ID, loggedIn.ID)

		claims, err := jwtService.ValidateToken(access)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
		assert.Equal(t, model.RoleStudent, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, "student@example.com").Return(user, nil)

		svc := NewAuthService(userRepo, jwtService, new(MockTokenStore))
		_, _, _, err := svc.Login(context.Background(), "student@example.com", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		svc := NewAuthService(userRepo, jwtService, new(MockTokenStore))
		_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "password123")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
