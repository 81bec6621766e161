package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"pieceledger/internal/app/server"
	"pieceledger/internal/domain/branch"
	"pieceledger/internal/domain/employee"
	"pieceledger/internal/domain/expenditure"
	"pieceledger/internal/domain/salary"
	"pieceledger/internal/domain/work"
	"pieceledger/internal/platform/config"
)

func newTestApp(t *testing.T) *server.App {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := config.Config{
		Addr:                  ":0",
		DatabaseURL:           dbURL,
		Environment:           "test",
		BonusRatePercent:      16.66,
		RunMigrations:         true,
		MigrationsDir:         "../../../../migrations",
		RunSeed:               true,
		MaxBodyBytes:          1048576,
		RateLimitPerMinute:    1000,
		CORSAllowedOrigins:    []string{"*"},
		BranchRefreshInterval: time.Hour,
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	app, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func TestPayoutJourney(t *testing.T) {
	app := newTestApp(t)

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	branches := listBranches(t, client, ts.URL)
	if len(branches) < 5 {
		t.Fatalf("expected at least 5 seeded branches, got %d", len(branches))
	}

	// Seeded rows and the static fallback list must agree on identity,
	// or branch-scoped queries break whenever the list degrades.
	seeded := make(map[string]bool, len(branches))
	for _, b := range branches {
		seeded[b.ID] = true
	}
	for _, fb := range branch.Fallback() {
		if !seeded[fb.ID] {
			t.Fatalf("seeded branches missing fallback id %s (%s)", fb.ID, fb.Code)
		}
	}
	branchID := branches[0].ID

	weaverName := fmt.Sprintf("Journey Weaver %d", time.Now().UnixNano())
	weaver := createEmployee(t, client, ts.URL, url.Values{
		"name":         {weaverName},
		"branchId":     {branchID},
		"salaryType":   {employee.SalaryTypeWeekly},
		"rate":         {"20"},
		"salary":       {"0"},
		"isBonused":    {"true"},
		"fabricType":   {"Cotton"},
		"advanceTaken": {"500"},
	})
	if weaver.AdvanceRemaining != 500 {
		t.Fatalf("expected new employee to owe the full advance, got %v", weaver.AdvanceRemaining)
	}

	// Deducting more than the remaining advance must be rejected and
	// must not touch the employee row.
	status, _ := postJSON(t, client, ts.URL+"/salary/saveSalary", map[string]any{
		"employeeId":              weaver.ID,
		"branchId":                branchID,
		"type":                    "weekly",
		"meterDetails":            []map[string]any{{"date": "2025-03-10", "meter": 4}},
		"ratePerMeter":            20,
		"advanceDeductedThisTime": 600,
	})
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for over-deduction, got %d", status)
	}
	if got := findEmployee(t, client, ts.URL, branchID, weaver.ID).AdvanceRemaining; got != 500 {
		t.Fatalf("rejected payout must not change advance, got %v", got)
	}

	status, body := postJSON(t, client, ts.URL+"/salary/saveSalary", map[string]any{
		"employeeId": weaver.ID,
		"branchId":   branchID,
		"type":       "weekly",
		"meterDetails": []map[string]any{
			{"date": "2025-03-10", "meter": 4},
			{"date": "2025-03-11", "meter": 6},
		},
		"ratePerMeter":            20,
		"advanceDeductedThisTime": 50,
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 for payout, got %d: %s", status, body)
	}
	var payout salary.Payout
	if err := json.Unmarshal(body, &payout); err != nil {
		t.Fatalf("failed to decode payout: %v", err)
	}
	if payout.Weekly == nil || payout.Weekly.BaseSalary != 200 {
		t.Fatalf("expected base salary 200, got %+v", payout.Weekly)
	}
	if payout.Bonus != 33.32 {
		t.Fatalf("expected bonus 33.32, got %v", payout.Bonus)
	}
	if payout.FinalPay != 183.32 {
		t.Fatalf("expected final pay 183.32, got %v", payout.FinalPay)
	}
	if payout.AdvanceRemaining != 450 {
		t.Fatalf("expected advance remaining 450, got %v", payout.AdvanceRemaining)
	}

	// The advance decrement and the ledger row commit together.
	if got := findEmployee(t, client, ts.URL, branchID, weaver.ID).AdvanceRemaining; got != 450 {
		t.Fatalf("expected employee advance 450 after payout, got %v", got)
	}
	history := listPayouts(t, client, ts.URL, branchID)
	found := false
	for _, p := range history {
		if p.ID == payout.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("expected recorded payout in branch history")
	}
}

func TestMonthlyPayoutAndProjection(t *testing.T) {
	app := newTestApp(t)

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	branchID := listBranches(t, client, ts.URL)[0].ID
	tailorName := fmt.Sprintf("Journey Tailor %d", time.Now().UnixNano())
	tailor := createEmployee(t, client, ts.URL, url.Values{
		"name":         {tailorName},
		"branchId":     {branchID},
		"salaryType":   {employee.SalaryTypeMonthly},
		"rate":         {"0"},
		"salary":       {"10000"},
		"isBonused":    {"false"},
		"fabricType":   {"Denim"},
		"advanceTaken": {"1000"},
	})

	status, body := postJSON(t, client, ts.URL+"/salary/saveSalary", map[string]any{
		"employeeId":              tailor.ID,
		"branchId":                branchID,
		"type":                    "monthly",
		"salary":                  10000,
		"leaveDays":               2,
		"leaveDeductionPerDay":    300,
		"advanceDeductedThisTime": 500,
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 for payout, got %d: %s", status, body)
	}
	var payout salary.Payout
	if err := json.Unmarshal(body, &payout); err != nil {
		t.Fatalf("failed to decode payout: %v", err)
	}
	if payout.Bonus != 0 {
		t.Fatalf("non-bonused employee must get no immediate bonus, got %v", payout.Bonus)
	}
	if payout.LeaveDeductionTotal != 600 {
		t.Fatalf("expected leave deduction 600, got %v", payout.LeaveDeductionTotal)
	}
	if payout.FinalPay != 8900 {
		t.Fatalf("expected final pay 8900, got %v", payout.FinalPay)
	}

	year := time.Now().Year()
	var ytd struct {
		YearToDatePay         float64  `json:"yearToDatePay"`
		BonusEligible         bool     `json:"bonusEligible"`
		ProjectedYearEndBonus *float64 `json:"projectedYearEndBonus"`
	}
	getJSON(t, client, fmt.Sprintf("%s/salary/yearToDate?employeeId=%s&year=%d", ts.URL, tailor.ID, year), &ytd)
	if ytd.YearToDatePay != 8900 {
		t.Fatalf("expected year-to-date pay 8900, got %v", ytd.YearToDatePay)
	}
	if ytd.ProjectedYearEndBonus == nil {
		t.Fatal("expected a projected year-end bonus for a non-bonused employee")
	}
	want := salary.NewCalculator(16.66).ProjectedYearEndBonus(8900)
	if *ytd.ProjectedYearEndBonus != want {
		t.Fatalf("expected projection %v, got %v", want, *ytd.ProjectedYearEndBonus)
	}
}

func TestExpenditureOverwriteAndWorkRange(t *testing.T) {
	app := newTestApp(t)

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	expenseType := fmt.Sprintf("Electricity-%d", time.Now().UnixNano())
	key := map[string]any{"date": "2025-03-01", "expenseType": expenseType}

	status, _ := postJSON(t, client, ts.URL+"/expenditure/save", map[string]any{
		"id": key, "amount": 120, "note": "first reading",
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200 saving expenditure, got %d", status)
	}
	status, _ = postJSON(t, client, ts.URL+"/expenditure/save", map[string]any{
		"id": key, "amount": 250, "note": "corrected reading",
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200 overwriting expenditure, got %d", status)
	}

	var expenditures []expenditure.Expenditure
	getJSON(t, client, ts.URL+"/expenditure/getAllExpenditure", &expenditures)
	matches := 0
	var last expenditure.Expenditure
	for _, e := range expenditures {
		if e.ID.ExpenseType == expenseType && e.ID.Date == "2025-03-01" {
			matches++
			last = e
		}
	}
	if matches != 1 {
		t.Fatalf("expected exactly one row per (date, type) key, got %d", matches)
	}
	if last.Amount != 250 {
		t.Fatalf("expected overwrite to win, got amount %v", last.Amount)
	}

	deleteTarget := ts.URL + "/expenditure/delete?date=2025-03-01&expenseType=" + url.QueryEscape(expenseType)
	if status := doDelete(t, client, deleteTarget); status != http.StatusNoContent {
		t.Fatalf("expected 204 deleting expenditure, got %d", status)
	}

	branchID := listBranches(t, client, ts.URL)[0].ID
	workerName := fmt.Sprintf("Journey Worker %d", time.Now().UnixNano())
	status, workBody := postJSON(t, client, ts.URL+"/work/saveWork", map[string]any{
		"branchId":     branchID,
		"employeeName": workerName,
		"employeeType": "Weaving",
		"shift":        "Morning",
		"fabricMeters": 12.5,
		"date":         "2025-03-10",
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201 saving work entry, got %d", status)
	}
	var entry work.Entry
	if err := json.Unmarshal(workBody, &entry); err != nil {
		t.Fatalf("failed to decode work entry: %v", err)
	}

	var entries []work.Entry
	getJSON(t, client, ts.URL+"/work/getAllWork?branchId="+branchID+"&from=2025-03-10&to=2025-03-10", &entries)
	found := false
	for _, e := range entries {
		if e.EmployeeName == workerName {
			found = true
		}
	}
	if !found {
		t.Fatal("expected work entry inside the inclusive day range")
	}

	getJSON(t, client, ts.URL+"/work/getAllWork?branchId="+branchID+"&from=2025-03-11&to=2025-03-12", &entries)
	for _, e := range entries {
		if e.EmployeeName == workerName {
			t.Fatal("work entry leaked outside the requested range")
		}
	}

	if status := doDelete(t, client, ts.URL+"/work/deleteWork?id="+entry.ID); status != http.StatusNoContent {
		t.Fatalf("expected 204 deleting work entry, got %d", status)
	}
	if status := doDelete(t, client, ts.URL+"/work/deleteWork?id="+entry.ID); status != http.StatusNotFound {
		t.Fatalf("expected 404 deleting the entry twice, got %d", status)
	}
	getJSON(t, client, ts.URL+"/work/getAllWork?branchId="+branchID+"&from=2025-03-10&to=2025-03-10", &entries)
	for _, e := range entries {
		if e.ID == entry.ID {
			t.Fatal("deleted work entry still listed")
		}
	}
}

func doDelete(t *testing.T, client *http.Client, target string) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodDelete, target, nil)
	if err != nil {
		t.Fatalf("failed to build delete request: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("delete request to %s failed: %v", target, err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func listBranches(t *testing.T, client *http.Client, baseURL string) []branch.Branch {
	t.Helper()
	var branches []branch.Branch
	getJSON(t, client, baseURL+"/branch/getAllBranches", &branches)
	return branches
}

func createEmployee(t *testing.T, client *http.Client, baseURL string, form url.Values) employee.Employee {
	t.Helper()
	resp, err := client.Post(baseURL+"/emp/saveEmp?"+form.Encode(), "application/json", nil)
	if err != nil {
		t.Fatalf("save employee request failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 creating employee, got %d: %s", resp.StatusCode, body)
	}
	var emp employee.Employee
	if err := json.Unmarshal(body, &emp); err != nil {
		t.Fatalf("failed to decode employee: %v", err)
	}
	return emp
}

func findEmployee(t *testing.T, client *http.Client, baseURL, branchID, id string) employee.Employee {
	t.Helper()
	var employees []employee.Employee
	getJSON(t, client, baseURL+"/emp/getAllEmployees?branchId="+branchID, &employees)
	for _, e := range employees {
		if e.ID == id {
			return e
		}
	}
	t.Fatalf("employee %s not found in branch %s", id, branchID)
	return employee.Employee{}
}

func listPayouts(t *testing.T, client *http.Client, baseURL, branchID string) []salary.Payout {
	t.Helper()
	var payouts []salary.Payout
	getJSON(t, client, baseURL+"/salary/getAllSalary?branchId="+branchID, &payouts)
	return payouts
}

func postJSON(t *testing.T, client *http.Client, target string, payload any) (int, []byte) {
	t.Helper()
	encoded, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to encode payload: %v", err)
	}
	resp, err := client.Post(target, "application/json", bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("request to %s failed: %v", target, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}

func getJSON(t *testing.T, client *http.Client, target string, out any) {
	t.Helper()
	resp, err := client.Get(target)
	if err != nil {
		t.Fatalf("request to %s failed: %v", target, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from %s, got %d: %s", target, resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		t.Fatalf("failed to decode response from %s: %v", target, err)
	}
}
