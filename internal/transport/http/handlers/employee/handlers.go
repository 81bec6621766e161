package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pieceledger/internal/domain/employee"
	"pieceledger/internal/transport/http/api"
	"pieceledger/internal/transport/http/middleware"
	"pieceledger/internal/transport/http/shared"
)

type Handler struct {
	Store *employee.Store
}

func NewHandler(db *pgxpool.Pool) *Handler {
	return &Handler{Store: employee.NewStore(db)}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/emp", func(r chi.Router) {
		r.Get("/getAllEmployees", h.handleList)
		r.Post("/saveEmp", h.handleSave)
		r.Patch("/updateEmp/{id}", h.handleUpdate)
		r.Patch("/advancePaid", h.handleAdvancePaid)
		r.Delete("/deleteEmp", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	branchID := strings.TrimSpace(r.URL.Query().Get("branchId"))
	if branchID == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "branchId is required", middleware.GetRequestID(r.Context()))
		return
	}

	employees, err := h.Store.List(r.Context(), branchID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	if employees == nil {
		employees = []employee.Employee{}
	}
	api.Success(w, employees)
}

// handleSave creates an employee from query-encoded fields; the
// submitting form posts no body.
func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	v := shared.NewValidator()
	v.Required("name", q.Get("name"))
	v.Required("branchId", q.Get("branchId"))
	v.Required("salaryType", q.Get("salaryType"))
	v.Enum("salaryType", q.Get("salaryType"), employee.SalaryTypeWeekly, employee.SalaryTypeMonthly)

	rate := parseFloat(q.Get("rate"), v, "rate")
	monthlySalary := parseFloat(q.Get("salary"), v, "salary")
	advanceTaken := parseFloat(q.Get("advanceTaken"), v, "advanceTaken")
	v.NonNegative("rate", rate)
	v.NonNegative("salary", monthlySalary)
	v.NonNegative("advanceTaken", advanceTaken)

	if v.HasIssues() {
		api.Fail(w, http.StatusBadRequest, "validation_error", v.Summary(), middleware.GetRequestID(r.Context()))
		return
	}

	bonusEligible, _ := strconv.ParseBool(q.Get("isBonused"))
	saved, err := h.Store.Create(r.Context(), employee.Employee{
		BranchID:      q.Get("branchId"),
		Name:          strings.TrimSpace(q.Get("name")),
		SalaryType:    q.Get("salaryType"),
		RatePerMeter:  rate,
		MonthlySalary: monthlySalary,
		BonusEligible: bonusEligible,
		FabricType:    q.Get("fabricType"),
		AdvanceTaken:  advanceTaken,
	})
	if err != nil {
		failEmployee(w, r, err, "failed to save employee")
		return
	}
	api.Created(w, saved)
}

type updatePayload struct {
	Name          *string  `json:"name"`
	SalaryType    *string  `json:"salaryType"`
	RatePerMeter  *float64 `json:"rate"`
	MonthlySalary *float64 `json:"salary"`
	BonusEligible *bool    `json:"isBonused"`
	FabricType    *string  `json:"fabricType"`
	AdvanceTaken  *float64 `json:"advanceTaken"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload updatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	current, err := h.Store.Get(r.Context(), id)
	if err != nil {
		failEmployee(w, r, err, "failed to load employee")
		return
	}

	if payload.Name != nil {
		current.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.SalaryType != nil {
		current.SalaryType = *payload.SalaryType
	}
	if payload.RatePerMeter != nil {
		current.RatePerMeter = *payload.RatePerMeter
	}
	if payload.MonthlySalary != nil {
		current.MonthlySalary = *payload.MonthlySalary
	}
	if payload.BonusEligible != nil {
		current.BonusEligible = *payload.BonusEligible
	}
	if payload.FabricType != nil {
		current.FabricType = *payload.FabricType
	}
	if payload.AdvanceTaken != nil {
		// A fresh advance resets both balances, same as hire time.
		current.AdvanceTaken = *payload.AdvanceTaken
		current.AdvanceRemaining = *payload.AdvanceTaken
	}

	updated, err := h.Store.Update(r.Context(), id, current)
	if err != nil {
		failEmployee(w, r, err, "failed to update employee")
		return
	}
	api.Success(w, updated)
}

func (h *Handler) handleAdvancePaid(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := strings.TrimSpace(q.Get("id"))
	if id == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "id is required", middleware.GetRequestID(r.Context()))
		return
	}
	amount, err := strconv.ParseFloat(q.Get("advancePaid"), 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "advancePaid must be a number", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Store.DeductAdvance(r.Context(), id, amount)
	if err != nil {
		failEmployee(w, r, err, "failed to record advance deduction")
		return
	}
	api.Success(w, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "id is required", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Store.Delete(r.Context(), id); err != nil {
		failEmployee(w, r, err, "failed to delete employee")
		return
	}
	api.NoContent(w)
}

func parseFloat(raw string, v *shared.Validator, field string) float64 {
	if strings.TrimSpace(raw) == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		v.Add(field, "must be a number")
		return 0
	}
	return parsed
}

func failEmployee(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
	case errors.Is(err, employee.ErrAdvanceExceedsRemaining):
		api.Fail(w, http.StatusUnprocessableEntity, "advance_exceeds_remaining", "cannot deduct more than the remaining advance", requestID)
	case errors.Is(err, employee.ErrNegativeAmount), errors.Is(err, employee.ErrInvalidSalaryType):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "storage_failed", fallback, requestID)
	}
}
