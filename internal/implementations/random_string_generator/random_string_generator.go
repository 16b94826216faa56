package randomstringgenerator

import (
	"billstation/internal/core/domain/user"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const PASSWORD_RESET_TOKEN_BYTES = 24

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GeneratePasswordResetToken returns a URL-safe token with
// PASSWORD_RESET_TOKEN_BYTES bytes of entropy. Panics if the system
// source of randomness is unavailable.
func (g *Generator) GeneratePasswordResetToken() user.PasswordResetToken {
	b := make([]byte, PASSWORD_RESET_TOKEN_BYTES)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("could not read random bytes: %v", err))
	}
	return user.PasswordResetToken(base64.RawURLEncoding.EncodeToString(b))
}
