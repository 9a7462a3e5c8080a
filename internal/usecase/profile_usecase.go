package usecase

import (
	"context"
	"errors"

	"devconnector-backend/internal/domain"
	"devconnector-backend/pkg/apperror"

	"github.com/google/uuid"
)

// maxUpsertRetries bounds the read-merge-write loop when concurrent writers
// keep invalidating the version we read.
const maxUpsertRetries = 3

type profileUsecase struct {
	profileRepo domain.ProfileRepository
	userRepo    domain.UserRepository
}

func NewProfileUsecase(profileRepo domain.ProfileRepository, userRepo domain.UserRepository) domain.ProfileUsecase {
	return &profileUsecase{profileRepo: profileRepo, userRepo: userRepo}
}

// Upsert creates the user's profile from the patch, or merges the patch into
// the existing one. Fields absent from the patch keep their stored values.
// Updates are compare-and-set on the profile version; a lost race re-reads
// and retries.
func (u *profileUsecase) Upsert(ctx context.Context, userID string, patch *domain.ProfilePatch) (*domain.Profile, error) {
	for attempt := 0; attempt < maxUpsertRetries; attempt++ {
		existing, err := u.profileRepo.GetByUserID(ctx, userID)
		if errors.Is(err, domain.ErrNotFound) {
			profile := &domain.Profile{UserID: userID, Skills: []string{}}
			patch.Apply(profile)
			err = u.profileRepo.Create(ctx, profile)
			if errors.Is(err, domain.ErrVersionConflict) {
				continue // concurrent create won, retry as an update
			}
			if err != nil {
				return nil, apperror.Internal(err)
			}
			return u.getProfile(ctx, userID)
		}
		if err != nil {
			return nil, apperror.Internal(err)
		}

		patch.Apply(existing)
		err = u.profileRepo.Update(ctx, existing)
		if errors.Is(err, domain.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return u.getProfile(ctx, userID)
	}
	return nil, apperror.Conflict("Profile was modified concurrently, please retry")
}

func (u *profileUsecase) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	// Path-supplied ids are arbitrary strings; a non-UUID can never match a
	// profile, so it must not reach the store as a uuid comparison.
	if uuid.Validate(userID) != nil {
		return nil, apperror.NotFound("There is no profile for this user")
	}
	return u.getProfile(ctx, userID)
}

func (u *profileUsecase) List(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := u.profileRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return profiles, nil
}

// AddExperience prepends a new entry to the profile's experience list.
// A profile must exist before experience can be added.
func (u *profileUsecase) AddExperience(ctx context.Context, userID string, exp domain.Experience) (*domain.Profile, error) {
	if _, err := u.getProfile(ctx, userID); err != nil {
		return nil, err
	}
	exp.ID = uuid.NewString()
	if err := u.profileRepo.AddExperience(ctx, userID, &exp); err != nil {
		return nil, apperror.Internal(err)
	}
	return u.getProfile(ctx, userID)
}

// RemoveExperience removes the entry with the given id. Removing an unknown
// or malformed id is a no-op returning the profile unchanged.
func (u *profileUsecase) RemoveExperience(ctx context.Context, userID, expID string) (*domain.Profile, error) {
	profile, err := u.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if uuid.Validate(expID) != nil {
		// matches nothing, same outcome as an unknown id
		return profile, nil
	}
	if err := u.profileRepo.RemoveExperience(ctx, userID, expID); err != nil {
		return nil, apperror.Internal(err)
	}
	return u.getProfile(ctx, userID)
}

func (u *profileUsecase) AddEducation(ctx context.Context, userID string, edu domain.Education) (*domain.Profile, error) {
	if _, err := u.getProfile(ctx, userID); err != nil {
		return nil, err
	}
	edu.ID = uuid.NewString()
	if err := u.profileRepo.AddEducation(ctx, userID, &edu); err != nil {
		return nil, apperror.Internal(err)
	}
	return u.getProfile(ctx, userID)
}

func (u *profileUsecase) RemoveEducation(ctx context.Context, userID, eduID string) (*domain.Profile, error) {
	profile, err := u.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if uuid.Validate(eduID) != nil {
		return profile, nil
	}
	if err := u.profileRepo.RemoveEducation(ctx, userID, eduID); err != nil {
		return nil, apperror.Internal(err)
	}
	return u.getProfile(ctx, userID)
}

// DeleteOwner removes the profile and then the user. The two removals are not
// atomic: a crash in between leaves a user without a profile, which is an
// accepted degraded state.
func (u *profileUsecase) DeleteOwner(ctx context.Context, userID string) error {
	if err := u.profileRepo.Delete(ctx, userID); err != nil {
		return apperror.Internal(err)
	}
	if err := u.userRepo.Delete(ctx, userID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *profileUsecase) getProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("There is no profile for this user")
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}
