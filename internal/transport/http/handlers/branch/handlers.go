package branchhandler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pieceledger/internal/domain/branch"
	"pieceledger/internal/transport/http/api"
	"pieceledger/internal/transport/http/middleware"
)

type Handler struct {
	Store *branch.Store
}

func NewHandler(store *branch.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/branch", func(r chi.Router) {
		r.Get("/getAllBranches", h.handleList)
	})
}

// handleList never fails: a broken branch store degrades to the cached
// or static list so the rest of the UI keeps working.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	branches, live := h.Store.ListResilient(r.Context())
	if !live {
		slog.Warn("branch store unavailable, serving fallback list",
			"requestId", middleware.GetRequestID(r.Context()))
	}
	api.Success(w, branches)
}
