package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yourorg/ui-prompt-relay/internal/relay"
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

type Generation struct {
	ID         string     `json:"id"`
	RequestID  string     `json:"request_id,omitempty"`
	Prompt     string     `json:"prompt"`
	Outcome    relay.Kind `json:"outcome"`
	Status     int        `json:"status"`
	ContentLen int        `json:"content_len"`
	DurationMS int64      `json:"duration_ms"`
	CreatedAt  time.Time  `json:"created_at"`
}

type GenerationsRepo struct{ pool *pgxpool.Pool }

// Record implements relay.Recorder.
func (r *GenerationsRepo) Record(ctx context.Context, g relay.Generation) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO generations(id, request_id, prompt, outcome, status, content_len, duration_ms)
VALUES($1,$2,$3,$4,$5,$6,$7)
`, uuid.New(), g.RequestID, g.Prompt, string(g.Kind), g.Status, g.ContentLen, g.Duration.Milliseconds())
	return err
}

func (r *GenerationsRepo) Recent(ctx context.Context, limit int) ([]Generation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id::text, request_id, prompt, outcome, status, content_len, duration_ms, created_at
FROM generations
ORDER BY created_at DESC
LIMIT $1
`, ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, scanGeneration)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Generation{}
	}
	return out, nil
}

func (r *GenerationsRepo) Get(ctx context.Context, id string) (Generation, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return Generation{}, ErrNotFound
	}
	rows, err := r.pool.Query(ctx, `
SELECT id::text, request_id, prompt, outcome, status, content_len, duration_ms, created_at
FROM generations
WHERE id=$1
`, uid)
	if err != nil {
		return Generation{}, err
	}
	g, err := pgx.CollectExactlyOneRow(rows, scanGeneration)
	if errors.Is(err, pgx.ErrNoRows) {
		return Generation{}, ErrNotFound
	}
	return g, err
}

func scanGeneration(row pgx.CollectableRow) (Generation, error) {
	var g Generation
	var outcome string
	err := row.Scan(&g.ID, &g.RequestID, &g.Prompt, &outcome, &g.Status, &g.ContentLen, &g.DurationMS, &g.CreatedAt)
	g.Outcome = relay.Kind(outcome)
	return g, err
}

// ClampLimit maps a caller-supplied limit into [1, MaxRecentLimit],
// using DefaultRecentLimit for non-positive values.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultRecentLimit
	case limit > MaxRecentLimit:
		return MaxRecentLimit
	default:
		return limit
	}
}
