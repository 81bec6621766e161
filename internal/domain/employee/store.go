package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("employee not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
  id, branch_id, name, salary_type, rate_per_meter, monthly_salary,
  bonus_eligible, fabric_type, advance_taken, advance_remaining, created_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(
		&e.ID, &e.BranchID, &e.Name, &e.SalaryType, &e.RatePerMeter, &e.MonthlySalary,
		&e.BonusEligible, &e.FabricType, &e.AdvanceTaken, &e.AdvanceRemaining, &e.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return e, err
}

func (s *Store) List(ctx context.Context, branchID string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE branch_id = $1
    ORDER BY created_at DESC
  `, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, id))
}

// Create inserts a new employee. The remaining advance starts equal to
// the advance taken at hire time.
func (s *Store) Create(ctx context.Context, e Employee) (Employee, error) {
	e.AdvanceRemaining = e.AdvanceTaken
	if err := Validate(e); err != nil {
		return Employee{}, err
	}
	return scanEmployee(s.DB.QueryRow(ctx, `
    INSERT INTO employees (branch_id, name, salary_type, rate_per_meter, monthly_salary,
                           bonus_eligible, fabric_type, advance_taken, advance_remaining)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8)
    RETURNING `+employeeColumns+`
  `, e.BranchID, e.Name, e.SalaryType, e.RatePerMeter, e.MonthlySalary,
		e.BonusEligible, e.FabricType, e.AdvanceTaken))
}

func (s *Store) Update(ctx context.Context, id string, e Employee) (Employee, error) {
	if err := Validate(e); err != nil {
		return Employee{}, err
	}
	return scanEmployee(s.DB.QueryRow(ctx, `
    UPDATE employees
    SET name = $2, salary_type = $3, rate_per_meter = $4, monthly_salary = $5,
        bonus_eligible = $6, fabric_type = $7, advance_taken = $8, advance_remaining = $9
    WHERE id = $1
    RETURNING `+employeeColumns+`
  `, id, e.Name, e.SalaryType, e.RatePerMeter, e.MonthlySalary,
		e.BonusEligible, e.FabricType, e.AdvanceTaken, e.AdvanceRemaining))
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeductAdvance decrements the remaining advance, guarded in SQL so a
// racing payout can never push the balance below zero. It only ever
// decrements; issuing a fresh advance goes through Update.
func (s *Store) DeductAdvance(ctx context.Context, id string, amount float64) (Employee, error) {
	if amount < 0 {
		return Employee{}, ErrNegativeAmount
	}
	updated, err := scanEmployee(s.DB.QueryRow(ctx, `
    UPDATE employees
    SET advance_remaining = advance_remaining - $2
    WHERE id = $1 AND advance_remaining >= $2
    RETURNING `+employeeColumns+`
  `, id, amount))
	if errors.Is(err, ErrNotFound) {
		// Distinguish a missing row from a guard rejection.
		if _, getErr := s.Get(ctx, id); getErr == nil {
			return Employee{}, ErrAdvanceExceedsRemaining
		}
		return Employee{}, ErrNotFound
	}
	return updated, err
}
