package metahandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pieceledger/internal/domain/employee"
	"pieceledger/internal/domain/work"
	"pieceledger/internal/transport/http/api"
)

// Handler serves the static master data the forms bind to.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/meta", func(r chi.Router) {
		r.Get("/fabricTypes", func(w http.ResponseWriter, _ *http.Request) {
			api.Success(w, employee.FabricTypes())
		})
		r.Get("/workTypes", func(w http.ResponseWriter, _ *http.Request) {
			api.Success(w, work.WorkTypes())
		})
		r.Get("/shifts", func(w http.ResponseWriter, _ *http.Request) {
			api.Success(w, work.Shifts())
		})
	})
}
