package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/bareera786/ai-trading-bot-sub001/internal/auth"
	apperrors "github.com/bareera786/ai-trading-bot-sub001/internal/errors"
	"github.com/bareera786/ai-trading-bot-sub001/internal/model"
)

func strptr(s string) *string { return &s }

func TestUserService_GetUser_NotFound(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewUserService(repo, auth.NewBcryptHasher(), nil)
	user, err := svc.GetUser(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Nil(t, user)
}

func TestUserService_GetUser_Found(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Username: "alice"}, nil)

	svc := NewUserService(repo, auth.NewBcryptHasher(), nil)
	user, err := svc.GetUser(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestUserService_UpdateUser(t *testing.T) {
	hasher := auth.NewBcryptHasher()

	tests := []struct {
		name          string
		update        UserUpdate
		setupMock     func(*MockUserRepository)
		expectedError error
		expectedRows  int64
	}{
		{
			name:   "email only",
			update: UserUpdate{Email: strptr("new@x.com")},
			setupMock: func(m *MockUserRepository) {
				m.On("Update", mock.Anything, uint(1), map[string]interface{}{"email": "new@x.com"}).Return(int64(1), nil)
			},
			expectedRows: 1,
		},
		{
			name:   "password is hashed before storage",
			update: UserUpdate{Password: strptr("newpw")},
			setupMock: func(m *MockUserRepository) {
				m.On("Update", mock.Anything, uint(1), mock.MatchedBy(func(fields map[string]interface{}) bool {
					hash, ok := fields["password_hash"].(string)
					return ok && hash != "newpw" && hasher.Verify("newpw", hash)
				})).Return(int64(1), nil)
			},
			expectedRows: 1,
		},
		{
			name:          "unknown role rejected",
			update:        UserUpdate{Role: strptr("SUPERUSER")},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrValidation,
		},
		{
			name:          "empty update rejected",
			update:        UserUpdate{},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrValidation,
		},
		{
			name:   "role change to admin",
			update: UserUpdate{Role: strptr(model.RoleAdmin)},
			setupMock: func(m *MockUserRepository) {
				m.On("Update", mock.Anything, uint(1), map[string]interface{}{"role": model.RoleAdmin}).Return(int64(1), nil)
			},
			expectedRows: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)

			svc := NewUserService(repo, hasher, nil)
			rows, err := svc.UpdateUser(context.Background(), 1, tt.update)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedRows, rows)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Delete", mock.Anything, uint(2)).Return(int64(1), nil)

	svc := NewUserService(repo, auth.NewBcryptHasher(), nil)
	rows, err := svc.DeleteUser(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	repo.AssertExpectations(t)
}
