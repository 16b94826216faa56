package user

import "context"

type PasswordResetToken string

// PasswordResetter owns the mapping password reset token -> user ID.
// A token is single-use and time-bound: ConsumeToken must atomically
// remove it, so that under concurrent calls with the same token exactly
// one caller gets the user ID and the rest get
// ErrInvalidPasswordResetToken. An expired, already consumed, or unknown
// token is indistinguishable to the caller.
type PasswordResetter interface {
	IssueToken(ctx context.Context, userID ID) (PasswordResetToken, error)
	ConsumeToken(ctx context.Context, token PasswordResetToken) (ID, error)
}

type PasswordResetTokenGenerator interface {
	GeneratePasswordResetToken() PasswordResetToken
}

type PasswordResetTokenSender interface {
	SendPasswordResetToken(ctx context.Context, u User, token PasswordResetToken) error
}
