package tokenmanager

import (
	"billstation/internal/core/domain/user"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TOKEN_TYPE_ACCESS  = "access"
	TOKEN_TYPE_REFRESH = "refresh"
)

type TokenClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
	UserID    int64  `json:"user_id"`
}

// JWT issues and validates stateless HS256 signed tokens. Access and
// refresh tokens differ only in lifetime and the token_type claim.
type JWT struct {
	secretKey       []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewJWT(secretKey string, accessTokenTTL, refreshTokenTTL time.Duration) *JWT {
	return &JWT{
		secretKey:       []byte(secretKey),
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

func (m *JWT) IssueTokenPair(u user.User, at time.Time) (user.TokenPair, error) {
	access, err := m.issue(u, at, TOKEN_TYPE_ACCESS, m.accessTokenTTL)
	if err != nil {
		return user.TokenPair{}, err
	}
	refresh, err := m.issue(u, at, TOKEN_TYPE_REFRESH, m.refreshTokenTTL)
	if err != nil {
		return user.TokenPair{}, err
	}
	return user.TokenPair{
		Access:  user.AccessToken(access),
		Refresh: user.RefreshToken(refresh),
	}, nil
}

func (m *JWT) IssueAccessToken(u user.User, at time.Time) (user.AccessToken, error) {
	access, err := m.issue(u, at, TOKEN_TYPE_ACCESS, m.accessTokenTTL)
	if err != nil {
		return user.AccessToken(""), err
	}
	return user.AccessToken(access), nil
}

func (m *JWT) ParseAccessToken(token user.AccessToken) (user.ID, error) {
	return m.parse(string(token), TOKEN_TYPE_ACCESS)
}

func (m *JWT) ParseRefreshToken(token user.RefreshToken) (user.ID, error) {
	return m.parse(string(token), TOKEN_TYPE_REFRESH)
}

func (m *JWT) issue(u user.User, at time.Time, tokenType string, ttl time.Duration) (string, error) {
	at = at.Truncate(time.Second)
	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				IssuedAt:  jwt.NewNumericDate(at),
				ExpiresAt: jwt.NewNumericDate(at.Add(ttl)),
			},
			TokenType: tokenType,
			UserID:    int64(u.ID),
		},
	)
	signedToken, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("could not sign %s token: %w", tokenType, err)
	}
	return signedToken, nil
}

func (m *JWT) parse(rawToken string, tokenType string) (user.ID, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(
		rawToken,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return m.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return 0, fmt.Errorf("could not parse %s token: %w", tokenType, err)
	}
	if claims.TokenType != tokenType {
		return 0, fmt.Errorf("unexpected token type %q", claims.TokenType)
	}
	return user.ID(claims.UserID), nil
}
