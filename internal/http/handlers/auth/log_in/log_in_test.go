package login

import (
	c "billstation/internal/core/domain/common"
	ratelimiter "billstation/internal/core/domain/rate_limiter"
	"billstation/internal/core/domain/user"
	service "billstation/internal/core/services/log_in"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.User = user.User{ID: user.ID(1), Email: input.Email, IsActive: true}
	result.Tokens = user.TokenPair{
		Access:  user.AccessToken("test-access-token"),
		Refresh: user.RefreshToken("test-refresh-token"),
	}
	return result, nil
}

func TestLogInHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			id:             "valid input",
			body:           `{"email": "test@test.test", "password": "test-password"}`,
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				Email:    c.NewEmail("test@test.test"),
				Password: user.RawPassword("test-password"),
			},
		},
		{
			id:             "invalid json",
			body:           `{"email": `,
			expectedStatus: http.StatusBadRequest,
			expectedInput:  nil,
		},
		{
			id:             "email is required",
			body:           `{"password": "test-password"}`,
			expectedStatus: http.StatusBadRequest,
			expectedInput:  nil,
		},
		{
			id:             "invalid email",
			body:           `{"email": "not-an-email", "password": "test-password"}`,
			expectedStatus: http.StatusBadRequest,
			expectedInput:  nil,
		},
		{
			id:             "password is required",
			body:           `{"email": "test@test.test"}`,
			expectedStatus: http.StatusBadRequest,
			expectedInput:  nil,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			req, err := http.NewRequest("POST", "/auth/login", strings.NewReader(testcase.body))
			if err != nil {
				t.Fatal(err)
			}

			service := &stubService{}
			rr := httptest.NewRecorder()
			handler := New(service)
			handler.ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			assert.Equal(t, testcase.expectedInput, service.input)
		})
	}
}

func TestLogInHandlerResponseBody(t *testing.T) {
	req, err := http.NewRequest(
		"POST",
		"/auth/login",
		strings.NewReader(`{"email": "test@test.test", "password": "test-password"}`),
	)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	New(&stubService{}).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := Result{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "test-access-token", body.Access)
	assert.Equal(t, "test-refresh-token", body.Refresh)
}

func TestLogInHandlerServiceErrors(t *testing.T) {
	cases := []struct {
		id             string
		err            error
		expectedStatus int
	}{
		{
			id:             "invalid credentials",
			err:            user.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			id:             "user is not active",
			err:            user.ErrUserIsNotActive,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			id:             "rate limit exceeded",
			err:            ratelimiter.ErrRateLimitExceeded,
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			id:             "internal error",
			err:            context.DeadlineExceeded,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			req, err := http.NewRequest(
				"POST",
				"/auth/login",
				strings.NewReader(`{"email": "test@test.test", "password": "test-password"}`),
			)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			New(&stubService{err: testcase.err}).ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
		})
	}
}
