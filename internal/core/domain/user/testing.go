package user

import (
	c "billstation/internal/core/domain/common"
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"sync"
	"time"
)

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		maxID = u.ID
	}
	u = User{
		ID:           maxID + 1,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		FullName:     input.FullName,
		IsActive:     true,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordHash = password
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetLastLoginAt(ctx context.Context, id ID, at time.Time) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].LastLoginAt = c.NewOptional(at, true)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeTokenManager struct {
	AccessToken  AccessToken
	RefreshToken RefreshToken
	UserID       ID
	ReturnError  bool
}

func NewFakeTokenManager(accessToken string, refreshToken string, userID ID) *FakeTokenManager {
	return &FakeTokenManager{
		AccessToken:  AccessToken(accessToken),
		RefreshToken: RefreshToken(refreshToken),
		UserID:       userID,
	}
}

func (m *FakeTokenManager) IssueTokenPair(u User, at time.Time) (TokenPair, error) {
	if m.ReturnError {
		return TokenPair{}, fmt.Errorf("could not issue token pair for user %d", u.ID)
	}
	return TokenPair{Access: m.AccessToken, Refresh: m.RefreshToken}, nil
}

func (m *FakeTokenManager) IssueAccessToken(u User, at time.Time) (AccessToken, error) {
	if m.ReturnError {
		return AccessToken(""), fmt.Errorf("could not issue access token for user %d", u.ID)
	}
	return m.AccessToken, nil
}

func (m *FakeTokenManager) ParseAccessToken(token AccessToken) (ID, error) {
	if token != m.AccessToken {
		return ID(0), ErrInvalidAccessToken
	}
	return m.UserID, nil
}

func (m *FakeTokenManager) ParseRefreshToken(token RefreshToken) (ID, error) {
	if token != m.RefreshToken {
		return ID(0), ErrInvalidRefreshToken
	}
	return m.UserID, nil
}

type fakeResetTokenEntry struct {
	userID    ID
	expiresAt time.Time
}

// FakePasswordResetter keeps issued tokens in memory. It upholds the
// same guarantees as the Redis implementation: tokens are single-use,
// expire after TokenTTL, and issuing a new token for a user invalidates
// the previous one.
type FakePasswordResetter struct {
	TokenTTL    time.Duration
	Now         func() time.Time
	ReturnError bool

	lock    sync.Mutex
	tokens  map[PasswordResetToken]fakeResetTokenEntry
	byUser  map[ID]PasswordResetToken
	counter int
}

func NewFakePasswordResetter(tokenTTL time.Duration, now func() time.Time) *FakePasswordResetter {
	return &FakePasswordResetter{
		TokenTTL: tokenTTL,
		Now:      now,
		tokens:   make(map[PasswordResetToken]fakeResetTokenEntry),
		byUser:   make(map[ID]PasswordResetToken),
	}
}

func (r *FakePasswordResetter) IssueToken(ctx context.Context, userID ID) (PasswordResetToken, error) {
	if r.ReturnError {
		return PasswordResetToken(""), fmt.Errorf("could not issue password reset token for user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if oldToken, ok := r.byUser[userID]; ok {
		delete(r.tokens, oldToken)
	}
	r.counter++
	token := PasswordResetToken(fmt.Sprintf("fake-reset-token-%d-%d", userID, r.counter))
	r.tokens[token] = fakeResetTokenEntry{userID: userID, expiresAt: r.Now().Add(r.TokenTTL)}
	r.byUser[userID] = token
	return token, nil
}

func (r *FakePasswordResetter) ConsumeToken(ctx context.Context, token PasswordResetToken) (ID, error) {
	if r.ReturnError {
		return ID(0), fmt.Errorf("could not consume password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	entry, ok := r.tokens[token]
	if !ok {
		return ID(0), ErrInvalidPasswordResetToken
	}
	delete(r.tokens, token)
	if r.byUser[entry.userID] == token {
		delete(r.byUser, entry.userID)
	}
	if r.Now().After(entry.expiresAt) {
		return ID(0), ErrInvalidPasswordResetToken
	}
	return entry.userID, nil
}

type FakePasswordResetTokenSender struct {
	Sent        []PasswordResetToken
	SentTo      []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetTokenSender() *FakePasswordResetTokenSender {
	return &FakePasswordResetTokenSender{}
}

func (s *FakePasswordResetTokenSender) SendPasswordResetToken(
	ctx context.Context,
	u User,
	token PasswordResetToken,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset token")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, token)
	s.SentTo = append(s.SentTo, u)
	return nil
}

func (s *FakePasswordResetTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

func (s *FakePasswordResetTokenSender) LastSentTo() User {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.SentTo)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.SentTo[l-1]
}
