package domain

import "context"

// GithubRepo is the subset of repository fields surfaced from the GitHub API.
type GithubRepo struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	FullName    string  `json:"full_name"`
	HTMLURL     string  `json:"html_url"`
	Description *string `json:"description"`
	Stargazers  int     `json:"stargazers_count"`
	Watchers    int     `json:"watchers_count"`
	Forks       int     `json:"forks_count"`
	Private     bool    `json:"private"`
	CreatedAt   string  `json:"created_at"`
}

type GithubUsecase interface {
	// ListRepos returns the user's 5 most recent repositories.
	ListRepos(ctx context.Context, username string) ([]GithubRepo, error)
}
