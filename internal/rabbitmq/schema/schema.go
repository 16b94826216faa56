package schema

import (
	"encoding/json"
)

type PasswordResetEmail struct {
	UserID int64
	Token  string
}

func (m *PasswordResetEmail) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *PasswordResetEmail) Unmarshal(data []byte) error {
	return json.Unmarshal(data, m)
}
