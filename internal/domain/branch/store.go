package branch

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool

	mu       sync.RWMutex
	lastGood []Branch
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context) ([]Branch, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, code, location, created_at
    FROM branches
    ORDER BY code
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []Branch
	for rows.Next() {
		var b Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Code, &b.Location, &b.CreatedAt); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(branches) > 0 {
		s.mu.Lock()
		s.lastGood = branches
		s.mu.Unlock()
	}
	return branches, nil
}

// ListResilient never fails: it serves the live list when the store
// answers, the last successful read when it does not, and the static
// fallback set before any read has succeeded. Keeps the front-end
// usable while the branch store is down.
func (s *Store) ListResilient(ctx context.Context) ([]Branch, bool) {
	branches, err := s.List(ctx)
	if err == nil && len(branches) > 0 {
		return branches, true
	}

	s.mu.RLock()
	cached := s.lastGood
	s.mu.RUnlock()
	if len(cached) > 0 {
		return cached, false
	}
	return Fallback(), false
}

// Refresh warms the last-good cache; used by the background job.
func (s *Store) Refresh(ctx context.Context) error {
	_, err := s.List(ctx)
	return err
}
