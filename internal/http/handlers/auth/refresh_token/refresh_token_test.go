package refreshtoken

import (
	"billstation/internal/core/domain/user"
	service "billstation/internal/core/services/refresh_token"
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
	result.AccessToken = user.AccessToken("test-access-token")
	return result, nil
}

func TestRefreshTokenHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			id:             "valid input",
			body:           `{"refresh": "test-refresh-token"}`,
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{RefreshToken: user.RefreshToken("test-refresh-token")},
		},
		{
			id:             "invalid json",
			body:           `{"refresh": `,
			expectedStatus: http.StatusBadRequest,
			expectedInput:  nil,
		},
		{
			id:             "refresh token is required",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedInput:  nil,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			req, err := http.NewRequest("POST", "/auth/token/refresh", strings.NewReader(testcase.body))
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

func TestRefreshTokenHandlerResponseBody(t *testing.T) {
	req, err := http.NewRequest(
		"POST",
		"/auth/token/refresh",
		strings.NewReader(`{"refresh": "test-refresh-token"}`),
	)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	New(&stubService{}).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := Result{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "test-access-token", body.Access)
}

func TestRefreshTokenHandlerServiceErrors(t *testing.T) {
	cases := []struct {
		id             string
		err            error
		expectedStatus int
	}{
		{
			id:             "invalid refresh token",
			err:            user.ErrInvalidRefreshToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			id:             "user is not active",
			err:            user.ErrUserIsNotActive,
			expectedStatus: http.StatusUnauthorized,
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
				"/auth/token/refresh",
				strings.NewReader(`{"refresh": "test-refresh-token"}`),
			)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			New(&stubService{err: testcase.err}).ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
		})
	}
}
