package services

import (
	"billstation/internal/app/deps"
	drl "billstation/internal/core/domain/rate_limiter"
	"billstation/internal/core/services"
	"billstation/internal/core/services/auth"
	changepassword "billstation/internal/core/services/change_password"
	getprofile "billstation/internal/core/services/get_profile"
	login "billstation/internal/core/services/log_in"
	ratelimiting "billstation/internal/core/services/rate_limiting"
	refreshtoken "billstation/internal/core/services/refresh_token"
	resetpassword "billstation/internal/core/services/reset_password"
	sendpasswordresetemail "billstation/internal/core/services/send_password_reset_email"
	sendpasswordresettoken "billstation/internal/core/services/send_password_reset_token"
	signup "billstation/internal/core/services/sign_up"
)

type Services struct {
	SignUp                 services.Service[signup.Input, signup.Result]
	LogIn                  services.Service[login.Input, login.Result]
	RefreshToken           services.Service[refreshtoken.Input, refreshtoken.Result]
	GetProfile             services.Service[getprofile.Input, getprofile.Result]
	ChangePassword         services.Service[changepassword.Input, changepassword.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
	SendPasswordResetEmail services.Service[sendpasswordresetemail.Input, sendpasswordresetemail.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUp = signup.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.Now,
	)
	s.LogIn = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		login.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
			deps.TokenManager,
			deps.Now,
		),
	)
	s.RefreshToken = refreshtoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.TokenManager,
		deps.Now,
	)
	s.GetProfile = auth.WithAuthentication(
		deps.TokenManager,
		deps.UserRepository,
		getprofile.New(),
	)
	s.ChangePassword = auth.WithAuthentication(
		deps.TokenManager,
		deps.UserRepository,
		changepassword.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
		),
	)
	s.SendPasswordResetToken = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		sendpasswordresettoken.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordResetter,
			deps.PasswordResetTokenSender,
		),
	)
	s.ResetPassword = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Minute, Value: 5},
		resetpassword.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordResetter,
			deps.PasswordHasher,
		),
	)
	s.SendPasswordResetEmail = sendpasswordresetemail.New(
		deps.Logger,
		deps.UserRepository,
		deps.EmailSender,
	)

	return s
}
