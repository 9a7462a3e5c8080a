package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"devconnector-backend/internal/domain"
	"devconnector-backend/pkg/apperror"
	"devconnector-backend/pkg/gravatar"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type userUsecase struct {
	userRepo domain.UserRepository
	tokens   domain.TokenService
}

func NewUserUsecase(userRepo domain.UserRepository, tokens domain.TokenService) domain.UserUsecase {
	return &userUsecase{userRepo: userRepo, tokens: tokens}
}

func (u *userUsecase) Register(ctx context.Context, name, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.Internal(err)
	}

	now := time.Now()
	email = strings.ToLower(email)
	user := &domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  string(hash),
		Avatar:    gravatar.URL(email),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Uniqueness is enforced at the store level; no check-then-create race.
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return "", apperror.Conflict("User already exists")
		}
		return "", apperror.Internal(err)
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return token, nil
}
