package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pieceledger/internal/domain/branch"
)

// Seed inserts the default branch set so a fresh install matches the
// fallback list the API serves when the store is unreachable.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	for _, b := range branch.Fallback() {
		if err := ensureBranch(ctx, pool, b); err != nil {
			return err
		}
	}
	return nil
}

func ensureBranch(ctx context.Context, pool *pgxpool.Pool, b branch.Branch) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM branches WHERE code = $1", b.Code).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	// The explicit id keeps seeded rows on the same deterministic IDs
	// branch.Fallback() serves, so fallback-scoped queries keep working.
	_, err := pool.Exec(ctx, `
    INSERT INTO branches (id, name, code, location)
    VALUES ($1, $2, $3, $4)
  `, b.ID, b.Name, b.Code, b.Location)
	return err
}
