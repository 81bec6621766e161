package workhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pieceledger/internal/domain/work"
	"pieceledger/internal/transport/http/api"
	"pieceledger/internal/transport/http/middleware"
	"pieceledger/internal/transport/http/shared"
)

type Handler struct {
	Store *work.Store
	// now is swappable so the quick ranges are testable.
	now func() time.Time
}

func NewHandler(db *pgxpool.Pool) *Handler {
	return &Handler{Store: work.NewStore(db), now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/work", func(r chi.Router) {
		r.Get("/getAllWork", h.handleList)
		r.Post("/saveWork", h.handleSave)
		r.Delete("/deleteWork", h.handleDelete)
	})
}

// resolveRange turns the query into an inclusive date range: either a
// quick range keyword or explicit from/to bounds, both optional.
func (h *Handler) resolveRange(q map[string][]string) (work.DateRange, error) {
	get := func(key string) string {
		if values := q[key]; len(values) > 0 {
			return strings.TrimSpace(values[0])
		}
		return ""
	}

	switch get("range") {
	case "":
	case "week":
		return work.ThisWeek(h.now()), nil
	case "month":
		return work.ThisMonth(h.now()), nil
	case "year":
		return work.ThisYear(h.now()), nil
	default:
		return work.DateRange{}, errors.New("range must be week, month or year")
	}

	from, err := shared.ParseOptionalDate(get("from"))
	if err != nil {
		return work.DateRange{}, errors.New("from must be a valid date")
	}
	to, err := shared.ParseOptionalDate(get("to"))
	if err != nil {
		return work.DateRange{}, errors.New("to must be a valid date")
	}
	return work.DateRange{From: from, To: to}, nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	branchID := strings.TrimSpace(r.URL.Query().Get("branchId"))
	if branchID == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "branchId is required", middleware.GetRequestID(r.Context()))
		return
	}

	dateRange, err := h.resolveRange(r.URL.Query())
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	entries, err := h.Store.List(r.Context(), branchID, dateRange)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_failed", "failed to list work entries", middleware.GetRequestID(r.Context()))
		return
	}
	if entries == nil {
		entries = []work.Entry{}
	}
	api.Success(w, entries)
}

type savePayload struct {
	BranchID     string  `json:"branchId"`
	EmployeeName string  `json:"employeeName"`
	WorkType     string  `json:"employeeType"`
	Shift        string  `json:"shift"`
	FabricMeters float64 `json:"fabricMeters"`
	Date         string  `json:"date"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var payload savePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("branchId", payload.BranchID)
	v.Required("employeeName", payload.EmployeeName)
	v.Required("employeeType", payload.WorkType)
	v.NonNegative("fabricMeters", payload.FabricMeters)
	workDate, _ := v.Date("date", payload.Date)
	if v.HasIssues() {
		api.Fail(w, http.StatusBadRequest, "validation_error", v.Summary(), middleware.GetRequestID(r.Context()))
		return
	}

	saved, err := h.Store.Add(r.Context(), work.Entry{
		BranchID:     payload.BranchID,
		EmployeeName: strings.TrimSpace(payload.EmployeeName),
		WorkType:     payload.WorkType,
		Shift:        payload.Shift,
		FabricMeters: payload.FabricMeters,
		WorkDate:     workDate,
	})
	if err != nil {
		if errors.Is(err, work.ErrNegativeMeters) {
			api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "storage_failed", "failed to save work entry", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, saved)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "id is required", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, work.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "work entry not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "storage_failed", "failed to delete work entry", middleware.GetRequestID(r.Context()))
		return
	}
	api.NoContent(w)
}
