package getprofile

import (
	c "billstation/internal/core/domain/common"
	"billstation/internal/core/domain/user"
	service "billstation/internal/core/services/get_profile"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	err error
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	result.User = user.User{
		ID:        user.ID(42),
		Email:     c.NewEmail("test@test.test"),
		FullName:  user.FullName("Jane Doe"),
		IsActive:  true,
		CreatedAt: time.Date(2020, 1, 15, 10, 30, 0, 0, time.UTC),
	}
	return result, nil
}

func TestGetProfileHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/profile", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	New(&stubService{}).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := struct {
		ID       int64  `json:"id"`
		Email    string `json:"email"`
		FullName string `json:"full_name"`
	}{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.ID)
	assert.Equal(t, "test@test.test", body.Email)
	assert.Equal(t, "Jane Doe", body.FullName)
}

func TestGetProfileHandlerServiceErrors(t *testing.T) {
	cases := []struct {
		id             string
		err            error
		expectedStatus int
	}{
		{
			id:             "invalid access token",
			err:            user.ErrInvalidAccessToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			id:             "user does not exist",
			err:            user.ErrUserDoesNotExist,
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
			req, err := http.NewRequest("GET", "/profile", nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			New(&stubService{err: testcase.err}).ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
		})
	}
}
