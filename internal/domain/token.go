package domain

// TokenService issues and verifies signed, time-limited bearer tokens
// encoding a user identity claim.
type TokenService interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}
