package usecase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"devconnector-backend/internal/domain"
	"devconnector-backend/internal/usecase"
	"devconnector-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockProfileRepo) AddExperience(ctx context.Context, userID string, exp *domain.Experience) error {
	return m.Called(ctx, userID, exp).Error(0)
}

func (m *MockProfileRepo) RemoveExperience(ctx context.Context, userID, expID string) error {
	return m.Called(ctx, userID, expID).Error(0)
}

func (m *MockProfileRepo) AddEducation(ctx context.Context, userID string, edu *domain.Education) error {
	return m.Called(ctx, userID, edu).Error(0)
}

func (m *MockProfileRepo) RemoveEducation(ctx context.Context, userID, eduID string) error {
	return m.Called(ctx, userID, eduID).Error(0)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Verify(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func assertAppErrorCode(t *testing.T, err error, code int) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func strPtr(s string) *string { return &s }

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &domain.User{ID: "user-1", Email: "jane@example.com", Password: string(hash)}

	t.Run("Should return token for valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(MockTokenService)
		uc := usecase.NewAuthUsecase(userRepo, tokens)

		userRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil)
		tokens.On("Issue", "user-1").Return("signed-token", nil)

		// Email is lowercase-normalized before lookup
		token, err := uc.Login(context.Background(), "Jane@Example.COM", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
	})

	t.Run("Should fail with Unauthorized for unknown email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(MockTokenService)
		uc := usecase.NewAuthUsecase(userRepo, tokens)

		userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)

		_, err := uc.Login(context.Background(), "nobody@example.com", "secret123")
		assertAppErrorCode(t, err, http.StatusUnauthorized)
	})

	t.Run("Should fail with Unauthorized for wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(MockTokenService)
		uc := usecase.NewAuthUsecase(userRepo, tokens)

		userRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil)

		_, err := uc.Login(context.Background(), "jane@example.com", "wrong-password")
		assertAppErrorCode(t, err, http.StatusUnauthorized)
	})
}

func TestRegister(t *testing.T) {
	t.Run("Should hash password, derive avatar and issue token", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(MockTokenService)
		uc := usecase.NewUserUsecase(userRepo, tokens)

		var created *domain.User
		userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.User)
		})
		tokens.On("Issue", mock.AnythingOfType("string")).Return("signed-token", nil)

		token, err := uc.Register(context.Background(), "Jane Doe", "Jane@Example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)

		require.NotNil(t, created)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "jane@example.com", created.Email)
		assert.True(t, strings.HasPrefix(created.Avatar, "https://www.gravatar.com/avatar/"))
		// Only the hash is stored
		assert.NotEqual(t, "secret123", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))
	})

	t.Run("Should fail with Conflict for duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		tokens := new(MockTokenService)
		uc := usecase.NewUserUsecase(userRepo, tokens)

		userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(domain.ErrDuplicateEmail)

		_, err := uc.Register(context.Background(), "Jane Doe", "jane@example.com", "secret123")
		assertAppErrorCode(t, err, http.StatusConflict)
	})
}

func TestProfileUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create profile when none exists", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(profileRepo, new(MockUserRepo))

		stored := &domain.Profile{UserID: "user-1", Status: "Developer", Skills: []string{"go"}}

		profileRepo.On("GetByUserID", mock.Anything, "user-1").Return(nil, domain.ErrNotFound).Once()
		profileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Profile")).Return(nil).Run(func(args mock.Arguments) {
			p := args.Get(1).(*domain.Profile)
			assert.Equal(t, "user-1", p.UserID)
			assert.Equal(t, "Developer", p.Status)
			assert.Equal(t, []string{"go"}, p.Skills)
		}).Once()
		profileRepo.On("GetByUserID", mock.Anything, "user-1").Return(stored, nil).Once()

		patch := &domain.ProfilePatch{Status: strPtr("Developer"), Skills: []string{"go"}}
		result, err := uc.Upsert(ctx, "user-1", patch)
		require.NoError(t, err)
		assert.Equal(t, stored, result)
		profileRepo.AssertExpectations(t)
	})

	t.Run("Should merge patch into existing profile, retaining absent fields", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(profileRepo, new(MockUserRepo))

		existing := &domain.Profile{
			UserID:   "user-1",
			Company:  strPtr("Acme"),
			Location: strPtr("Berlin"),
			Status:   "Developer",
			Skills:   []string{"go"},
			Version:  3,
		}

		profileRepo.On("GetByUserID", mock.Anything, "user-1").Return(existing, nil).Once()
		profileRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Profile")).Return(nil).Run(func(args mock.Arguments) {
			p := args.Get(1).(*domain.Profile)
			assert.Equal(t, "Initech", *p.Company)
			assert.Equal(t, "Berlin", *p.Location) // absent field retained
			assert.Equal(t, int64(3), p.Version)   // compare-and-set against the read version
		}).Once()
		profileRepo.On("GetByUserID", mock.Anything, "user-1").Return(existing, nil).Once()

		_, err := uc.Upsert(ctx, "user-1", &domain.ProfilePatch{Company: strPtr("Initech")})
		require.NoError(t, err)
		profileRepo.AssertExpectations(t)
	})

	t.Run("Should re-read and retry after losing the version race", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(profileRepo, new(MockUserRepo))

		existing := &domain.Profile{UserID: "user-1", Status: "Developer", Version: 3}

		profileRepo.On("GetByUserID", mock.Anything, "user-1").Return(existing, nil).Once()
		profileRepo.On("Update", mock.Anything, mock.Anything).Return(domain.ErrVersionConflict).Once()
		profileRepo.On("GetByUserID", mock.Anything, "user-1").Return(existing, nil).Once()
		profileRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
		profileRepo.On("GetByUserID", mock.Anything, "user-1").Return(existing, nil).Once()

		_, err := uc.Upsert(ctx, "user-1", &domain.ProfilePatch{Status: strPtr("Lead")})
		require.NoError(t, err)
		profileRepo.AssertNumberOfCalls(t, "Update", 2)
	})

	t.Run("Should surface Conflict after exhausting retries", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(profileRepo, new(MockUserRepo))

		existing := &domain.Profile{UserID: "user-1", Status: "Developer", Version: 3}

		profileRepo.On("GetByUserID", mock.Anything, "user-1").Return(existing, nil)
		profileRepo.On("Update", mock.Anything, mock.Anything).Return(domain.ErrVersionConflict)

		_, err := uc.Upsert(ctx, "user-1", &domain.ProfilePatch{Status: strPtr("Lead")})
		assertAppErrorCode(t, err, http.StatusConflict)
	})
}

func TestExperience(t *testing.T) {
	ctx := context.Background()

	t.Run("Should fail with NotFound when no profile exists", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(profileRepo, new(MockUserRepo))

		profileRepo.On("GetByUserID", mock.Anything, "user-1").Return(nil, domain.ErrNotFound)

		_, err := uc.AddExperience(ctx, "user-1", domain.Experience{Title: "Engineer", Company: "Acme"})
		assertAppErrorCode(t, err, http.StatusNotFound)
	})

	t.Run("Should assign a fresh id and prepend the entry", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(profileRepo, new(MockUserRepo))

		stored := &domain.Profile{UserID: "user-1", Status: "Developer"}

		profileRepo.On("GetByUserID", mock.Anything, "user-1").Return(stored, nil)
		profileRepo.On("AddExperience", mock.Anything, "user-1", mock.AnythingOfType("*domain.Experience")).Return(nil).Run(func(args mock.Arguments) {
			exp := args.Get(2).(*domain.Experience)
			assert.NotEmpty(t, exp.ID)
			assert.Equal(t, "Engineer", exp.Title)
		})

		_, err := uc.AddExperience(ctx, "user-1", domain.Experience{Title: "Engineer", Company: "Acme"})
		require.NoError(t, err)
		profileRepo.AssertExpectations(t)
	})

	t.Run("Removing an unknown id is a no-op returning the profile unchanged", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(profileRepo, new(MockUserRepo))

		stored := &domain.Profile{
			UserID:     "user-1",
			Status:     "Developer",
			Experience: []domain.Experience{{ID: "exp-1", Title: "Engineer"}},
		}
		unknownID := uuid.NewString()

		profileRepo.On("GetByUserID", mock.Anything, "user-1").Return(stored, nil)
		profileRepo.On("RemoveExperience", mock.Anything, "user-1", unknownID).Return(nil)

		result, err := uc.RemoveExperience(ctx, "user-1", unknownID)
		require.NoError(t, err)
		require.Len(t, result.Experience, 1)
		assert.Equal(t, "exp-1", result.Experience[0].ID)
		profileRepo.AssertCalled(t, "RemoveExperience", mock.Anything, "user-1", unknownID)
	})

	t.Run("Removing a malformed id is a no-op that never reaches the store", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(profileRepo, new(MockUserRepo))

		stored := &domain.Profile{
			UserID:     "user-1",
			Status:     "Developer",
			Experience: []domain.Experience{{ID: "exp-1", Title: "Engineer"}},
		}

		profileRepo.On("GetByUserID", mock.Anything, "user-1").Return(stored, nil)

		result, err := uc.RemoveExperience(ctx, "user-1", "abc")
		require.NoError(t, err)
		require.Len(t, result.Experience, 1)
		profileRepo.AssertNotCalled(t, "RemoveExperience", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetProfileByUserID(t *testing.T) {
	t.Run("Should report a malformed user id as a missing profile", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(profileRepo, new(MockUserRepo))

		_, err := uc.GetByUserID(context.Background(), "abc")
		assertAppErrorCode(t, err, http.StatusNotFound)
		profileRepo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
	})
}

func TestDeleteOwner(t *testing.T) {
	t.Run("Should delete profile then user, even when no profile exists", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewProfileUsecase(profileRepo, userRepo)

		profileRepo.On("Delete", mock.Anything, "user-1").Return(nil)
		userRepo.On("Delete", mock.Anything, "user-1").Return(nil)

		err := uc.DeleteOwner(context.Background(), "user-1")
		require.NoError(t, err)
		profileRepo.AssertCalled(t, "Delete", mock.Anything, "user-1")
		userRepo.AssertCalled(t, "Delete", mock.Anything, "user-1")
	})
}
