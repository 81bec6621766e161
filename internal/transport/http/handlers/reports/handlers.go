package reportshandler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pieceledger/internal/domain/branch"
	"pieceledger/internal/domain/employee"
	"pieceledger/internal/domain/reports"
	"pieceledger/internal/domain/salary"
	"pieceledger/internal/domain/work"
	"pieceledger/internal/transport/http/api"
	"pieceledger/internal/transport/http/middleware"
	"pieceledger/internal/transport/http/shared"
)

type Handler struct {
	Employees *employee.Store
	Work      *work.Store
	Ledger    *salary.Store
	Branches  *branch.Store
	Calc      salary.Calculator
}

func NewHandler(db *pgxpool.Pool, branches *branch.Store, calc salary.Calculator) *Handler {
	return &Handler{
		Employees: employee.NewStore(db),
		Work:      work.NewStore(db),
		Ledger:    salary.NewStore(db),
		Branches:  branches,
		Calc:      calc,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/summary", h.handleSummary)
		r.Get("/salary.pdf", h.handleSalaryPDF)
		r.Get("/work.xlsx", h.handleWorkXLSX)
	})
}

func (h *Handler) branchName(r *http.Request, branchID string) string {
	branches, _ := h.Branches.ListResilient(r.Context())
	for _, b := range branches {
		if b.ID == branchID {
			return b.Name
		}
	}
	return branchID
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	branchID := strings.TrimSpace(r.URL.Query().Get("branchId"))
	if branchID == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "branchId is required", middleware.GetRequestID(r.Context()))
		return
	}

	employees, err := h.Employees.List(r.Context(), branchID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_failed", "failed to load employees", middleware.GetRequestID(r.Context()))
		return
	}

	now := time.Now()
	ytd, err := h.yearToDateByEmployee(r, employees, now.Year())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_failed", "failed to sum year-to-date pay", middleware.GetRequestID(r.Context()))
		return
	}

	payouts, err := h.Ledger.History(r.Context(), branchID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_failed", "failed to load payout history", middleware.GetRequestID(r.Context()))
		return
	}
	weeklyPay, monthlyPay, err := reports.PayoutTotals(payouts)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to total payouts", middleware.GetRequestID(r.Context()))
		return
	}

	summary := reports.Summarize(employees, ytd, h.Calc)
	api.Success(w, map[string]any{
		"branchId":              branchID,
		"records":               summary.Records,
		"totalAdvanceTaken":     summary.TotalAdvanceTaken,
		"totalAdvanceRemaining": summary.TotalAdvanceRemaining,
		"projectedYearEndBonus": summary.ProjectedYearEndBonus,
		"weeklyPayTotal":        weeklyPay,
		"monthlyPayTotal":       monthlyPay,
	})
}

func (h *Handler) yearToDateByEmployee(r *http.Request, employees []employee.Employee, year int) (map[string]float64, error) {
	ytd := make(map[string]float64, len(employees))
	for _, e := range employees {
		if e.BonusEligible {
			continue
		}
		total, err := h.Ledger.YearToDate(r.Context(), e.ID, year)
		if err != nil {
			return nil, err
		}
		ytd[e.ID] = total
	}
	return ytd, nil
}

func (h *Handler) handleSalaryPDF(w http.ResponseWriter, r *http.Request) {
	branchID := strings.TrimSpace(r.URL.Query().Get("branchId"))
	if branchID == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "branchId is required", middleware.GetRequestID(r.Context()))
		return
	}

	employees, err := h.Employees.List(r.Context(), branchID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_failed", "failed to load employees", middleware.GetRequestID(r.Context()))
		return
	}

	now := time.Now()
	ytd, err := h.yearToDateByEmployee(r, employees, now.Year())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_failed", "failed to sum year-to-date pay", middleware.GetRequestID(r.Context()))
		return
	}

	pdfBytes, err := reports.SalaryReportPDF(h.branchName(r, branchID), employees, ytd, h.Calc, now)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render salary report", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=Salary_Report_%d.pdf", now.Unix()))
	_, _ = w.Write(pdfBytes)
}

func (h *Handler) handleWorkXLSX(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	branchID := strings.TrimSpace(q.Get("branchId"))
	if branchID == "" {
		api.Fail(w, http.StatusBadRequest, "validation_error", "branchId is required", middleware.GetRequestID(r.Context()))
		return
	}

	from, err := shared.ParseOptionalDate(q.Get("from"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "from must be a valid date", middleware.GetRequestID(r.Context()))
		return
	}
	to, err := shared.ParseOptionalDate(q.Get("to"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "validation_error", "to must be a valid date", middleware.GetRequestID(r.Context()))
		return
	}

	entries, err := h.Work.List(r.Context(), branchID, work.DateRange{From: from, To: to})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "storage_failed", "failed to load work entries", middleware.GetRequestID(r.Context()))
		return
	}

	xlsxBytes, err := reports.WorkLedgerXLSX(entries)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render work ledger", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=Work_Ledger_%d.xlsx", time.Now().Unix()))
	_, _ = w.Write(xlsxBytes)
}
