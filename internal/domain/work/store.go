package work

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNegativeMeters = errors.New("fabric meters must not be negative")
	ErrNotFound       = errors.New("work entry not found")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Add(ctx context.Context, entry Entry) (Entry, error) {
	if entry.FabricMeters < 0 {
		return Entry{}, ErrNegativeMeters
	}
	row := s.DB.QueryRow(ctx, `
    INSERT INTO work_entries (branch_id, employee_name, work_type, shift, fabric_meters, work_date)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id, branch_id, employee_name, work_type, shift, fabric_meters, work_date, created_at
  `, entry.BranchID, entry.EmployeeName, entry.WorkType, entry.Shift, entry.FabricMeters, entry.WorkDate)

	var saved Entry
	err := row.Scan(&saved.ID, &saved.BranchID, &saved.EmployeeName, &saved.WorkType,
		&saved.Shift, &saved.FabricMeters, &saved.WorkDate, &saved.CreatedAt)
	return saved, err
}

// List returns the branch's entries newest first, optionally narrowed
// by an inclusive date range pushed down into SQL.
func (s *Store) List(ctx context.Context, branchID string, r DateRange) ([]Entry, error) {
	query := `
    SELECT id, branch_id, employee_name, work_type, shift, fabric_meters, work_date, created_at
    FROM work_entries
    WHERE branch_id = $1`
	args := []any{branchID}

	if r.From != nil {
		args = append(args, startOfDay(*r.From))
		query += ` AND work_date >= $` + strconv.Itoa(len(args))
	}
	if r.To != nil {
		args = append(args, endOfDay(*r.To))
		query += ` AND work_date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY work_date DESC, created_at DESC`

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.BranchID, &e.EmployeeName, &e.WorkType,
			&e.Shift, &e.FabricMeters, &e.WorkDate, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM work_entries WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
