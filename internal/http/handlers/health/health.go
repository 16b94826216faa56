package health

import (
	"billstation/internal/http/handlers/response"
	"net/http"
)

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

type Result struct {
	Status string `json:"status"`
}

// @Tags Health
// @Summary Liveness check
// @Produce json
// @Success 200 {object} Result
// @Router /health [get]
func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	response.Render(rw, Result{Status: "ok"}, http.StatusOK)
}
