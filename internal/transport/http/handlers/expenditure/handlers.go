package expenditurehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pieceledger/internal/domain/expenditure"
	"pieceledger/internal/transport/http/api"
	"pieceledger/internal/transport/http/middleware"
)

type Handler struct {
	Store *expenditure.Store
}

func NewHandler(db *pgxpool.Pool) *Handler {
	return &Handler{Store: expenditure.NewStore(db)}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/expenditure", func(r chi.Router) {
		r.Get("/getAllExpenditure", h.handleList)
		r.Post("/save", h.handleSave)
		r.Delete("/delete", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	expenditures, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_failed", "failed to list expenditures", middleware.GetRequestID(r.Context()))
		return
	}
	if expenditures == nil {
		expenditures = []expenditure.Expenditure{}
	}
	api.Success(w, expenditures)
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var payload expenditure.Expenditure
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	saved, err := h.Store.Save(r.Context(), payload)
	if err != nil {
		failExpenditure(w, r, err)
		return
	}
	api.Success(w, saved)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := expenditure.ID{Date: q.Get("date"), ExpenseType: q.Get("expenseType")}

	if err := h.Store.Delete(r.Context(), id); err != nil {
		failExpenditure(w, r, err)
		return
	}
	api.NoContent(w)
}

func failExpenditure(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, expenditure.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "expenditure not found", requestID)
	case errors.Is(err, expenditure.ErrIncompleteKey), errors.Is(err, expenditure.ErrNegativeAmount):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "storage_failed", "expenditure operation failed", requestID)
	}
}
