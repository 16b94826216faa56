package getprofile

import (
	e "billstation/internal/core/domain/errors"
	"billstation/internal/core/domain/user"
	"billstation/internal/core/services"
	service "billstation/internal/core/services/get_profile"
	"billstation/internal/http/handlers/response"
	"errors"
	"net/http"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

// @Tags Profile
// @Summary Get the authenticated user's profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.User
// @Failure 401 {object} map[string]interface{}
// @Router /profile [get]
func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(
		r.Context(),
		service.Input{},
	)
	if errors.Is(err, user.ErrInvalidAccessToken) ||
		errors.Is(err, user.ErrUserDoesNotExist) ||
		errors.Is(err, user.ErrUserIsNotActive) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User)
	response.Render(rw, u, http.StatusOK)
}
