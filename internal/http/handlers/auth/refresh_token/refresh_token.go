package refreshtoken

import (
	e "billstation/internal/core/domain/errors"
	"billstation/internal/core/domain/user"
	"billstation/internal/core/services"
	refreshtoken "billstation/internal/core/services/refresh_token"
	"billstation/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[refreshtoken.Input, refreshtoken.Result]
}

func New(
	service services.Service[refreshtoken.Input, refreshtoken.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Refresh string `json:"refresh"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Refresh, validation.Required, validation.Length(0, 1024)),
	)
}

type Result struct {
	Access string `json:"access"`
}

// @Tags Auth
// @Summary Exchange a refresh token for a new access token
// @Accept json
// @Produce json
// @Param body body Input true "Refresh token"
// @Success 200 {object} Result
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/token/refresh [post]
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
		refreshtoken.Input{RefreshToken: user.RefreshToken(input.Refresh)},
	)
	if errors.Is(err, user.ErrInvalidRefreshToken) {
		response.RenderError(rw, "invalid refresh token", http.StatusUnauthorized)
		return
	}
	if errors.Is(err, user.ErrUserIsNotActive) {
		response.RenderError(rw, "user is not active", http.StatusUnauthorized)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, Result{Access: string(result.AccessToken)}, http.StatusOK)
}
