package domain

import (
	"context"
	"strings"
	"time"
)

// SocialLinks groups the optional social profile URLs.
type SocialLinks struct {
	Youtube   *string `json:"youtube,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Linkedin  *string `json:"linkedin,omitempty"`
}

// Experience is a work history entry owned by a profile.
// Entries are kept most-recent-first.
type Experience struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    *string    `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description *string    `json:"description,omitempty"`
}

// Education is a schooling entry owned by a profile.
// Entries are kept most-recent-first.
type Education struct {
	ID           string     `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  *string    `json:"description,omitempty"`
}

// Profile is the one-per-user developer profile.
type Profile struct {
	ID             int64        `json:"id"`
	UserID         string       `json:"user_id"`
	Company        *string      `json:"company,omitempty"`
	Website        *string      `json:"website,omitempty"`
	Location       *string      `json:"location,omitempty"`
	Bio            *string      `json:"bio,omitempty"`
	Status         string       `json:"status"`
	GithubUsername *string      `json:"github_username,omitempty"`
	Skills         []string     `json:"skills"`
	Social         SocialLinks  `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Version        int64        `json:"-"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	// User carries the owner's public fields when joined in.
	User *PublicUser `json:"user,omitempty"`
}

// ProfilePatch is a sparse field set for profile upserts. Nil fields are
// "not supplied" and leave the stored value untouched.
type ProfilePatch struct {
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	Skills         []string
	Social         SocialLinks
}

// ParseSkills normalizes a comma-delimited skills string into an ordered list
// of trimmed tokens. Empty tokens are dropped.
func ParseSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

// Apply merges the patch into the profile. Only supplied fields overwrite;
// absent fields retain their prior values.
func (p *ProfilePatch) Apply(profile *Profile) {
	if p.Company != nil {
		profile.Company = p.Company
	}
	if p.Website != nil {
		profile.Website = p.Website
	}
	if p.Location != nil {
		profile.Location = p.Location
	}
	if p.Bio != nil {
		profile.Bio = p.Bio
	}
	if p.Status != nil {
		profile.Status = *p.Status
	}
	if p.GithubUsername != nil {
		profile.GithubUsername = p.GithubUsername
	}
	if p.Skills != nil {
		profile.Skills = p.Skills
	}
	if p.Social.Youtube != nil {
		profile.Social.Youtube = p.Social.Youtube
	}
	if p.Social.Facebook != nil {
		profile.Social.Facebook = p.Social.Facebook
	}
	if p.Social.Instagram != nil {
		profile.Social.Instagram = p.Social.Instagram
	}
	if p.Social.Twitter != nil {
		profile.Social.Twitter = p.Social.Twitter
	}
	if p.Social.Linkedin != nil {
		profile.Social.Linkedin = p.Social.Linkedin
	}
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	// Update persists the profile only if the stored version still matches
	// profile.Version. Returns ErrVersionConflict otherwise.
	Update(ctx context.Context, profile *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Delete(ctx context.Context, userID string) error
	AddExperience(ctx context.Context, userID string, exp *Experience) error
	// RemoveExperience deletes the entry by id. Unknown ids are a no-op.
	RemoveExperience(ctx context.Context, userID, expID string) error
	AddEducation(ctx context.Context, userID string, edu *Education) error
	// RemoveEducation deletes the entry by id. Unknown ids are a no-op.
	RemoveEducation(ctx context.Context, userID, eduID string) error
}

type ProfileUsecase interface {
	Upsert(ctx context.Context, userID string, patch *ProfilePatch) (*Profile, error)
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
	AddExperience(ctx context.Context, userID string, exp Experience) (*Profile, error)
	RemoveExperience(ctx context.Context, userID, expID string) (*Profile, error)
	AddEducation(ctx context.Context, userID string, edu Education) (*Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID string) (*Profile, error)
	// DeleteOwner removes the profile (if any) and then the owning user.
	DeleteOwner(ctx context.Context, userID string) error
}
