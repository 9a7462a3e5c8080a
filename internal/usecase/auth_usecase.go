package usecase

import (
	"context"
	"errors"
	"strings"

	"devconnector-backend/internal/domain"
	"devconnector-backend/pkg/apperror"

	"golang.org/x/crypto/bcrypt"
)

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   domain.TokenService
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens domain.TokenService) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, tokens: tokens}
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same message for unknown email and wrong password, so the
			// endpoint cannot be used to enumerate accounts.
			return "", apperror.Unauthorized("Invalid credentials")
		}
		return "", apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperror.Unauthorized("Invalid credentials")
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return token, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}
