package user

import "time"

type AccessToken string

type RefreshToken string

type TokenPair struct {
	Access  AccessToken
	Refresh RefreshToken
}

// TokenManager issues and verifies the signed tokens used for API
// authentication. Access tokens are short-lived and authorize requests,
// refresh tokens are long-lived and can only be exchanged for a new
// access token.
type TokenManager interface {
	IssueTokenPair(u User, at time.Time) (TokenPair, error)
	IssueAccessToken(u User, at time.Time) (AccessToken, error)
	ParseAccessToken(token AccessToken) (ID, error)
	ParseRefreshToken(token RefreshToken) (ID, error)
}
