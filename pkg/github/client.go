// Package github is a thin client for the GitHub repositories API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"devconnector-backend/internal/domain"
	"devconnector-backend/pkg/apperror"
)

const reposPerPage = 5

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient builds a client against the given API base URL. The token is
// optional; when set it is sent as a bearer credential to raise rate limits.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// ListRepos fetches the user's most recent repositories. A non-200 upstream
// response is reported as an upstream failure, never retried.
func (c *Client) ListRepos(ctx context.Context, username string) ([]domain.GithubRepo, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=%d&sort=created:asc",
		c.baseURL, url.PathEscape(username), reposPerPage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "devconnector-backend")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.Upstream("No Github profile found")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.Upstream("No Github profile found")
	}

	var repos []domain.GithubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, apperror.Internal(err)
	}
	return repos, nil
}
