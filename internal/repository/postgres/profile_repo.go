package postgres

import (
	"context"
	"errors"
	"time"

	"devconnector-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	profile.Version = 1

	query := `
		INSERT INTO profiles (
			user_id, company, website, location, bio, status, github_username,
			skills, youtube, facebook, instagram, twitter, linkedin,
			version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		profile.UserID, profile.Company, profile.Website, profile.Location, profile.Bio,
		profile.Status, profile.GithubUsername, pq.Array(profile.Skills),
		profile.Social.Youtube, profile.Social.Facebook, profile.Social.Instagram,
		profile.Social.Twitter, profile.Social.Linkedin,
		profile.Version, profile.CreatedAt, profile.UpdatedAt,
	).Scan(&profile.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			// A concurrent create won the race. Callers re-read and retry
			// as an update.
			return domain.ErrVersionConflict
		}
		return err
	}
	return nil
}

// Update is a compare-and-set on the version column: it persists the profile
// only if no other writer has bumped the version since the caller read it.
func (r *profileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles SET
			company = $3, website = $4, location = $5, bio = $6, status = $7,
			github_username = $8, skills = $9, youtube = $10, facebook = $11,
			instagram = $12, twitter = $13, linkedin = $14,
			version = version + 1, updated_at = $15
		WHERE user_id = $1 AND version = $2
		RETURNING version`

	profile.UpdatedAt = time.Now()
	err := r.db.QueryRow(ctx, query,
		profile.UserID, profile.Version,
		profile.Company, profile.Website, profile.Location, profile.Bio, profile.Status,
		profile.GithubUsername, pq.Array(profile.Skills),
		profile.Social.Youtube, profile.Social.Facebook, profile.Social.Instagram,
		profile.Social.Twitter, profile.Social.Linkedin,
		profile.UpdatedAt,
	).Scan(&profile.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrVersionConflict
		}
		return err
	}
	return nil
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `
		SELECT p.id, p.user_id, p.company, p.website, p.location, p.bio, p.status,
		       p.github_username, p.skills, p.youtube, p.facebook, p.instagram,
		       p.twitter, p.linkedin, p.version, p.created_at, p.updated_at,
		       u.name, u.avatar
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1`

	profile, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if profile.Experience, err = r.listExperiences(ctx, userID); err != nil {
		return nil, err
	}
	if profile.Education, err = r.listEducations(ctx, userID); err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *profileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	query := `
		SELECT p.id, p.user_id, p.company, p.website, p.location, p.bio, p.status,
		       p.github_username, p.skills, p.youtube, p.facebook, p.instagram,
		       p.twitter, p.linkedin, p.version, p.created_at, p.updated_at,
		       u.name, u.avatar
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range profiles {
		userID := profiles[i].UserID
		if profiles[i].Experience, err = r.listExperiences(ctx, userID); err != nil {
			return nil, err
		}
		if profiles[i].Education, err = r.listEducations(ctx, userID); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

// Delete removes the profile and its entry rows. Each statement is
// independent; a failure in between leaves a partially-removed profile, which
// the next delete call cleans up.
func (r *profileRepo) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM experiences WHERE user_id = $1`, userID); err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM educations WHERE user_id = $1`, userID); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	return err
}

// AddExperience prepends the entry: the new row takes a position one below
// the current minimum, so ascending position order is most-recent-first.
func (r *profileRepo) AddExperience(ctx context.Context, userID string, exp *domain.Experience) error {
	query := `
		INSERT INTO experiences (id, user_id, title, company, location, from_date, to_date, current, description, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
			COALESCE((SELECT MIN(position) FROM experiences WHERE user_id = $2), 1) - 1)`
	_, err := r.db.Exec(ctx, query,
		exp.ID, userID, exp.Title, exp.Company, exp.Location,
		exp.From, exp.To, exp.Current, exp.Description,
	)
	return err
}

func (r *profileRepo) RemoveExperience(ctx context.Context, userID, expID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM experiences WHERE id = $1 AND user_id = $2`, expID, userID)
	return err
}

func (r *profileRepo) AddEducation(ctx context.Context, userID string, edu *domain.Education) error {
	query := `
		INSERT INTO educations (id, user_id, school, degree, field_of_study, from_date, to_date, current, description, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
			COALESCE((SELECT MIN(position) FROM educations WHERE user_id = $2), 1) - 1)`
	_, err := r.db.Exec(ctx, query,
		edu.ID, userID, edu.School, edu.Degree, edu.FieldOfStudy,
		edu.From, edu.To, edu.Current, edu.Description,
	)
	return err
}

func (r *profileRepo) RemoveEducation(ctx context.Context, userID, eduID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM educations WHERE id = $1 AND user_id = $2`, eduID, userID)
	return err
}

func (r *profileRepo) listExperiences(ctx context.Context, userID string) ([]domain.Experience, error) {
	query := `
		SELECT id, title, company, location, from_date, to_date, current, description
		FROM experiences
		WHERE user_id = $1
		ORDER BY position ASC, created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.Experience{}
	for rows.Next() {
		var e domain.Experience
		if err := rows.Scan(&e.ID, &e.Title, &e.Company, &e.Location, &e.From, &e.To, &e.Current, &e.Description); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *profileRepo) listEducations(ctx context.Context, userID string) ([]domain.Education, error) {
	query := `
		SELECT id, school, degree, field_of_study, from_date, to_date, current, description
		FROM educations
		WHERE user_id = $1
		ORDER BY position ASC, created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.Education{}
	for rows.Next() {
		var e domain.Education
		if err := rows.Scan(&e.ID, &e.School, &e.Degree, &e.FieldOfStudy, &e.From, &e.To, &e.Current, &e.Description); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	var user domain.PublicUser
	err := row.Scan(
		&p.ID, &p.UserID, &p.Company, &p.Website, &p.Location, &p.Bio, &p.Status,
		&p.GithubUsername, pq.Array(&p.Skills),
		&p.Social.Youtube, &p.Social.Facebook, &p.Social.Instagram,
		&p.Social.Twitter, &p.Social.Linkedin,
		&p.Version, &p.CreatedAt, &p.UpdatedAt,
		&user.Name, &user.Avatar,
	)
	if err != nil {
		return nil, err
	}
	user.ID = p.UserID
	p.User = &user
	return &p, nil
}
