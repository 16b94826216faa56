package app

import (
	"billstation/internal/app/deps"
	"billstation/internal/app/services"
	"billstation/internal/http/handlers/auth"
	login "billstation/internal/http/handlers/auth/log_in"
	refreshtoken "billstation/internal/http/handlers/auth/refresh_token"
	register "billstation/internal/http/handlers/auth/register"
	resetpassword "billstation/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "billstation/internal/http/handlers/auth/send_password_reset_token"
	"billstation/internal/http/handlers/health"
	changepassword "billstation/internal/http/handlers/profile/change_password"
	getprofile "billstation/internal/http/handlers/profile/get_profile"
	"fmt"
	"net/http"

	_ "billstation/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/register", register.New(s.SignUp))
	authRouter.Method(http.MethodPost, "/login", login.New(s.LogIn))
	authRouter.Method(http.MethodPost, "/token/refresh", refreshtoken.New(s.RefreshToken))
	authRouter.Method(
		http.MethodPost,
		"/forgot-password",
		sendpasswordresettoken.New(s.SendPasswordResetToken, isTestMode),
	)
	authRouter.Method(http.MethodPost, "/reset-password", resetpassword.New(s.ResetPassword))

	profileRouter := chi.NewRouter()
	profileRouter.Use(auth.SetAuthTokenToContext)
	profileRouter.Method(http.MethodGet, "/", getprofile.New(s.GetProfile))
	profileRouter.Method(http.MethodPut, "/password", changepassword.New(s.ChangePassword))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)
	router.Mount("/profile", profileRouter)
	router.Method(http.MethodGet, "/health", health.New())

	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(false),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
		httpSwagger.PersistAuthorization(true),
	))

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
