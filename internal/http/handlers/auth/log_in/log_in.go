package login

import (
	c "billstation/internal/core/domain/common"
	e "billstation/internal/core/domain/errors"
	ratelimiter "billstation/internal/core/domain/rate_limiter"
	"billstation/internal/core/domain/user"
	"billstation/internal/core/services"
	login "billstation/internal/core/services/log_in"
	"billstation/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[login.Input, login.Result]
}

func New(
	service services.Service[login.Input, login.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Required, validation.Length(0, 256)),
	)
}

type Result struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// @Tags Auth
// @Summary Log in with email and password
// @Accept json
// @Produce json
// @Param body body Input true "Credentials"
// @Success 200 {object} Result
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		login.Input{Email: c.NewEmail(input.Email), Password: user.RawPassword(input.Password)},
	)
	if errors.Is(err, ratelimiter.ErrRateLimitExceeded) {
		response.RenderRateLimitExceeded(rw)
		return
	}
	// Inactive accounts are reported as invalid credentials so the
	// response does not reveal whether the email is registered.
	if errors.Is(err, user.ErrInvalidCredentials) || errors.Is(err, user.ErrUserIsNotActive) {
		response.RenderError(rw, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(
		rw,
		Result{Access: string(result.Tokens.Access), Refresh: string(result.Tokens.Refresh)},
		http.StatusOK,
	)
}
