package salaryhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pieceledger/internal/domain/employee"
	"pieceledger/internal/domain/salary"
	"pieceledger/internal/transport/http/api"
	"pieceledger/internal/transport/http/middleware"
	"pieceledger/internal/transport/http/shared"
)

type Handler struct {
	Ledger    *salary.Store
	Employees *employee.Store
	Calc      salary.Calculator
}

func NewHandler(db *pgxpool.Pool, calc salary.Calculator) *Handler {
	return &Handler{
		Ledger:    salary.NewStore(db),
		Employees: employee.NewStore(db),
		Calc:      calc,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/salary", func(r chi.Router) {
		r.Get("/getAllSalary", h.handleHistory)
		r.Post("/saveSalary", h.handleSave)
		r.Put("/updateSalary/{id}", h.handleUpdate)
		r.Get("/yearToDate", h.handleYearToDate)
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	branchID := strings.TrimSpace(r.URL.Query().Get("branchId"))
	if branchID == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "branchId is required", middleware.GetRequestID(r.Context()))
		return
	}

	payouts, err := h.Ledger.History(r.Context(), branchID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_failed", "failed to list salary history", middleware.GetRequestID(r.Context()))
		return
	}
	if payouts == nil {
		payouts = []salary.Payout{}
	}
	api.Success(w, payouts)
}

// savePayload carries the payout form. The server recomputes every
// derived figure; client-side numbers are inputs, not trusted results.
type savePayload struct {
	EmployeeID      string              `json:"employeeId"`
	BranchID        string              `json:"branchId"`
	Kind            salary.Kind         `json:"type"`
	MeterDetails    []salary.DailyMeter `json:"meterDetails"`
	RatePerMeter    float64             `json:"ratePerMeter"`
	Salary          float64             `json:"salary"`
	LeaveDays       int                 `json:"leaveDays"`
	LeavePerDay     float64             `json:"leaveDeductionPerDay"`
	AdvanceDeducted float64             `json:"advanceDeductedThisTime"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var payload savePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID)
	v.Required("branchId", payload.BranchID)
	v.Enum("type", string(payload.Kind), string(salary.KindWeekly), string(salary.KindMonthly))
	v.Required("type", string(payload.Kind))
	v.NonNegative("advanceDeductedThisTime", payload.AdvanceDeducted)
	if v.HasIssues() {
		api.Fail(w, http.StatusBadRequest, "validation_error", v.Summary(), middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Employees.Get(r.Context(), payload.EmployeeID)
	if err != nil {
		failSalary(w, r, err)
		return
	}

	// Reject before computing anything worth persisting.
	if err := employee.CheckDeduction(emp.AdvanceRemaining, payload.AdvanceDeducted); err != nil {
		failSalary(w, r, err)
		return
	}

	payout := salary.Payout{
		BranchID:        payload.BranchID,
		EmployeeID:      payload.EmployeeID,
		Kind:            payload.Kind,
		AdvanceDeducted: payload.AdvanceDeducted,
	}

	switch payload.Kind {
	case salary.KindWeekly:
		result, err := h.Calc.ComputeWeekly(payload.MeterDetails, payload.RatePerMeter, payload.AdvanceDeducted, emp.BonusEligible)
		if err != nil {
			failSalary(w, r, err)
			return
		}
		payout.Weekly = &salary.WeeklyDetails{
			MeterDetails: payload.MeterDetails,
			RatePerMeter: payload.RatePerMeter,
			TotalMeters:  result.TotalMeters,
			BaseSalary:   result.BaseSalary,
		}
		payout.Bonus = result.Bonus
		payout.LeaveDeductionTotal = result.LeaveDeductionTotal
		payout.FinalPay = result.FinalPay
	case salary.KindMonthly:
		result, err := h.Calc.ComputeMonthly(payload.Salary, payload.LeaveDays, payload.LeavePerDay, payload.AdvanceDeducted, emp.BonusEligible)
		if err != nil {
			failSalary(w, r, err)
			return
		}
		payout.Monthly = &salary.MonthlyDetails{
			Salary:               payload.Salary,
			LeaveDays:            payload.LeaveDays,
			LeaveDeductionPerDay: payload.LeavePerDay,
		}
		payout.Bonus = result.Bonus
		payout.LeaveDeductionTotal = result.LeaveDeductionTotal
		payout.FinalPay = result.FinalPay
	default:
		api.Fail(w, http.StatusBadRequest, "validation_error", "type must be weekly or monthly", middleware.GetRequestID(r.Context()))
		return
	}

	recorded, err := h.Ledger.RecordPayout(r.Context(), payout)
	if err != nil {
		failSalary(w, r, err)
		return
	}
	api.Created(w, recorded)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payout salary.Payout
	if err := json.NewDecoder(r.Body).Decode(&payout); err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	replaced, err := h.Ledger.Replace(r.Context(), id, payout)
	if err != nil {
		failSalary(w, r, err)
		return
	}
	api.Success(w, replaced)
}

func (h *Handler) handleYearToDate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	employeeID := strings.TrimSpace(q.Get("employeeId"))
	if employeeID == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "employeeId is required", middleware.GetRequestID(r.Context()))
		return
	}
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "year must be a number", middleware.GetRequestID(r.Context()))
		return
	}

	total, err := h.Ledger.YearToDate(r.Context(), employeeID, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_failed", "failed to sum year-to-date pay", middleware.GetRequestID(r.Context()))
		return
	}

	emp, err := h.Employees.Get(r.Context(), employeeID)
	if err != nil {
		failSalary(w, r, err)
		return
	}

	response := map[string]any{
		"employeeId":    employeeID,
		"year":          year,
		"yearToDatePay": total,
		"bonusEligible": emp.BonusEligible,
	}
	// Year-end projection applies to non-bonused employees only.
	if !emp.BonusEligible {
		response["projectedYearEndBonus"] = h.Calc.ProjectedYearEndBonus(total)
	}
	api.Success(w, response)
}

func failSalary(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
	case errors.Is(err, salary.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "payout not found", requestID)
	case errors.Is(err, employee.ErrAdvanceExceedsRemaining):
		api.Fail(w, http.StatusUnprocessableEntity, "advance_exceeds_remaining", "cannot deduct more than the remaining advance", requestID)
	case errors.Is(err, salary.ErrLeaveDayHasMeters),
		errors.Is(err, salary.ErrNegativeInput),
		errors.Is(err, salary.ErrUnknownKind),
		errors.Is(err, salary.ErrMissingDetails),
		errors.Is(err, employee.ErrNegativeAmount):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "storage_failed", "salary operation failed", requestID)
	}
}
