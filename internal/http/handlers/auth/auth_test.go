package auth

import (
	"billstation/internal/core/domain/user"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseToken(t *testing.T) {
	cases := []struct {
		id            string
		header        string
		expectedToken user.AccessToken
		expectedOk    bool
	}{
		{
			id:            "valid bearer token",
			header:        "Bearer test-access-token",
			expectedToken: user.AccessToken("test-access-token"),
			expectedOk:    true,
		},
		{
			id:         "no header",
			header:     "",
			expectedOk: false,
		},
		{
			id:         "no bearer prefix",
			header:     "test-access-token",
			expectedOk: false,
		},
		{
			id:         "wrong scheme",
			header:     "Basic dGVzdDp0ZXN0",
			expectedOk: false,
		},
		{
			id:         "token is too long",
			header:     "Bearer " + strings.Repeat("a", AUTH_TOKEN_MAX_LEN+1),
			expectedOk: false,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			req, err := http.NewRequest("GET", "/profile", nil)
			if err != nil {
				t.Fatal(err)
			}
			if testcase.header != "" {
				req.Header.Set("Authorization", testcase.header)
			}

			token, ok := ParseToken(req)

			assert.Equal(t, testcase.expectedOk, ok)
			assert.Equal(t, testcase.expectedToken, token)
		})
	}
}
