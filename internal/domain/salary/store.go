package salary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pieceledger/internal/domain/employee"
)

var ErrNotFound = errors.New("payout not found")

// Store records payouts and the matching advance decrement in one
// transaction. The two writes used to be independent fire-and-forget
// calls; either both land or neither does.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func detailsJSON(p Payout) ([]byte, error) {
	switch p.Kind {
	case KindWeekly:
		return json.Marshal(p.Weekly)
	case KindMonthly:
		return json.Marshal(p.Monthly)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, p.Kind)
	}
}

func decodeDetails(p *Payout, raw []byte) error {
	switch p.Kind {
	case KindWeekly:
		p.Weekly = &WeeklyDetails{}
		return json.Unmarshal(raw, p.Weekly)
	case KindMonthly:
		p.Monthly = &MonthlyDetails{}
		return json.Unmarshal(raw, p.Monthly)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, p.Kind)
	}
}

// RecordPayout validates the advance guard against the employee row,
// then appends the payout and decrements the remaining advance inside
// a single transaction.
func (s *Store) RecordPayout(ctx context.Context, p Payout) (Payout, error) {
	if err := p.Validate(); err != nil {
		return Payout{}, err
	}

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Payout{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var remaining, taken float64
	err = tx.QueryRow(ctx, `
    SELECT advance_remaining, advance_taken
    FROM employees
    WHERE id = $1
    FOR UPDATE
  `, p.EmployeeID).Scan(&remaining, &taken)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payout{}, employee.ErrNotFound
	}
	if err != nil {
		return Payout{}, err
	}

	if err := employee.CheckDeduction(remaining, p.AdvanceDeducted); err != nil {
		return Payout{}, err
	}

	// Snapshot the balances as of this payout.
	p.AdvanceTaken = taken
	p.AdvanceRemaining = remaining - p.AdvanceDeducted

	if _, err := tx.Exec(ctx, `
    UPDATE employees
    SET advance_remaining = advance_remaining - $2
    WHERE id = $1
  `, p.EmployeeID, p.AdvanceDeducted); err != nil {
		return Payout{}, err
	}

	details, err := detailsJSON(p)
	if err != nil {
		return Payout{}, err
	}

	err = tx.QueryRow(ctx, `
    INSERT INTO salary_payouts (branch_id, employee_id, payout_kind, details_json,
                                bonus, leave_deduction_total, advance_taken,
                                advance_deducted, advance_remaining, final_pay)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id, created_at
  `, p.BranchID, p.EmployeeID, string(p.Kind), details,
		p.Bonus, p.LeaveDeductionTotal, p.AdvanceTaken,
		p.AdvanceDeducted, p.AdvanceRemaining, p.FinalPay).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return Payout{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Payout{}, err
	}
	return p, nil
}

// Replace is the explicit edit flow: it swaps the stored record by
// identity without touching advance balances.
func (s *Store) Replace(ctx context.Context, id string, p Payout) (Payout, error) {
	if err := p.Validate(); err != nil {
		return Payout{}, err
	}
	details, err := detailsJSON(p)
	if err != nil {
		return Payout{}, err
	}

	row := s.DB.QueryRow(ctx, `
    UPDATE salary_payouts
    SET payout_kind = $2, details_json = $3, bonus = $4, leave_deduction_total = $5,
        advance_taken = $6, advance_deducted = $7, advance_remaining = $8, final_pay = $9
    WHERE id = $1
    RETURNING id, branch_id, employee_id, created_at
  `, id, string(p.Kind), details, p.Bonus, p.LeaveDeductionTotal,
		p.AdvanceTaken, p.AdvanceDeducted, p.AdvanceRemaining, p.FinalPay)

	err = row.Scan(&p.ID, &p.BranchID, &p.EmployeeID, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payout{}, ErrNotFound
	}
	if err != nil {
		return Payout{}, err
	}
	return p, nil
}

// History returns the branch's payouts ordered by creation time.
func (s *Store) History(ctx context.Context, branchID string) ([]Payout, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, branch_id, employee_id, payout_kind, details_json,
           bonus, leave_deduction_total, advance_taken,
           advance_deducted, advance_remaining, final_pay, created_at
    FROM salary_payouts
    WHERE branch_id = $1
    ORDER BY created_at
  `, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payouts []Payout
	for rows.Next() {
		var p Payout
		var kind string
		var raw []byte
		if err := rows.Scan(&p.ID, &p.BranchID, &p.EmployeeID, &kind, &raw,
			&p.Bonus, &p.LeaveDeductionTotal, &p.AdvanceTaken,
			&p.AdvanceDeducted, &p.AdvanceRemaining, &p.FinalPay, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Kind = Kind(kind)
		if err := decodeDetails(&p, raw); err != nil {
			return nil, err
		}
		payouts = append(payouts, p)
	}
	return payouts, rows.Err()
}

// YearToDate sums final pay over payouts created in the calendar year.
func (s *Store) YearToDate(ctx context.Context, employeeID string, year int) (float64, error) {
	var total float64
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(final_pay), 0)
    FROM salary_payouts
    WHERE employee_id = $1
      AND EXTRACT(YEAR FROM created_at) = $2
  `, employeeID, year).Scan(&total)
	return total, err
}
