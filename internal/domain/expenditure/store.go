package expenditure

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("expenditure not found")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrIncompleteKey  = errors.New("date and expense type are required")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Save upserts on the (date, expenseType) key: a second submission for
// the same key overwrites the amount and note rather than duplicating.
func (s *Store) Save(ctx context.Context, e Expenditure) (Expenditure, error) {
	if strings.TrimSpace(e.ID.Date) == "" || strings.TrimSpace(e.ID.ExpenseType) == "" {
		return Expenditure{}, ErrIncompleteKey
	}
	if _, err := e.ID.ParseDate(); err != nil {
		return Expenditure{}, ErrIncompleteKey
	}
	if e.Amount < 0 {
		return Expenditure{}, ErrNegativeAmount
	}

	row := s.DB.QueryRow(ctx, `
    INSERT INTO expenditures (expense_date, expense_type, amount, note)
    VALUES ($1,$2,$3,$4)
    ON CONFLICT (expense_date, expense_type)
    DO UPDATE SET amount = EXCLUDED.amount, note = EXCLUDED.note
    RETURNING to_char(expense_date, 'YYYY-MM-DD'), expense_type, amount, note, created_at
  `, e.ID.Date, e.ID.ExpenseType, e.Amount, e.Note)

	var saved Expenditure
	err := row.Scan(&saved.ID.Date, &saved.ID.ExpenseType, &saved.Amount, &saved.Note, &saved.CreatedAt)
	return saved, err
}

func (s *Store) List(ctx context.Context) ([]Expenditure, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT to_char(expense_date, 'YYYY-MM-DD'), expense_type, amount, note, created_at
    FROM expenditures
    ORDER BY expense_date DESC, expense_type
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenditures []Expenditure
	for rows.Next() {
		var e Expenditure
		if err := rows.Scan(&e.ID.Date, &e.ID.ExpenseType, &e.Amount, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		expenditures = append(expenditures, e)
	}
	return expenditures, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id ID) error {
	if strings.TrimSpace(id.Date) == "" || strings.TrimSpace(id.ExpenseType) == "" {
		return ErrIncompleteKey
	}
	if _, err := id.ParseDate(); err != nil {
		return ErrIncompleteKey
	}
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM expenditures
    WHERE expense_date = $1 AND expense_type = $2
  `, id.Date, id.ExpenseType)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
