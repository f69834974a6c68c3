package reflection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/moneo-bot/internal/validate"
)

var (
	ErrNotFound   = errors.New("reflection: item not found")
	ErrNotPending = errors.New("reflection: item already resolved")
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

type CreateInput struct {
	UserID      int64   `validate:"required,gt=0"`
	Name        string  `validate:"required"`
	Cost        float64 `validate:"required,gt=0"`
	DurationMin int     `validate:"required,gt=0"`
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (*Item, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("reflection: %w", err)
	}
	now := time.Now()
	endAt := now.Add(time.Duration(in.DurationMin) * time.Minute)

	row := r.pool.QueryRow(ctx, `
		INSERT INTO reflections (user_id, name, cost, start_at, duration_min, end_at, status)
		VALUES ($1,$2,$3,$4,$5,$6,'pending')
		RETURNING id, created_at
	`, in.UserID, in.Name, in.Cost, now, in.DurationMin, endAt)

	it := Item{
		UserID:      in.UserID,
		Name:        in.Name,
		Cost:        in.Cost,
		StartAt:     now,
		DurationMin: in.DurationMin,
		EndAt:       endAt,
		Status:      StatusPending,
	}
	if err := row.Scan(&it.ID, &it.CreatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

// ListPending — ожидающие решения, ближайшие к дедлайну сверху.
func (r *Repo) ListPending(ctx context.Context, userID int64) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, name, cost, start_at, duration_min, end_at, status, created_at
		FROM reflections
		WHERE user_id=$1 AND status='pending'
		ORDER BY end_at, id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

// ExpiredItem — просроченный pending вместе с чатом владельца.
type ExpiredItem struct {
	Item
	ChatID int64
}

// ListExpired — по всем пользователям: pending с истёкшим end_at,
// по одному (самому раннему) на пользователя.
func (r *Repo) ListExpired(ctx context.Context, now time.Time) ([]ExpiredItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT ON (i.user_id)
		       i.id, i.user_id, i.name, i.cost, i.start_at, i.duration_min, i.end_at, i.status, i.created_at,
		       u.telegram_id
		FROM reflections i
		JOIN users u ON u.id = i.user_id
		WHERE i.status='pending' AND i.end_at < $1
		ORDER BY i.user_id, i.end_at, i.id
	`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExpiredItem
	for rows.Next() {
		var e ExpiredItem
		var status string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.Cost, &e.StartAt, &e.DurationMin, &e.EndAt, &status, &e.CreatedAt, &e.ChatID); err != nil {
			return nil, err
		}
		e.Status = Status(status)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Resolve — единственный переход состояния; повторный вызов вернёт ErrNotPending.
func (r *Repo) Resolve(ctx context.Context, id int64, decision Status) error {
	if decision != StatusPurchased && decision != StatusSkipped {
		return fmt.Errorf("reflection: invalid decision %q", decision)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE reflections SET status=$2 WHERE id=$1 AND status='pending'
	`, id, string(decision))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var status string
	err = r.pool.QueryRow(ctx, `SELECT status FROM reflections WHERE id=$1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrNotPending
}

func scanItems(rows pgx.Rows) ([]Item, error) {
	var out []Item
	for rows.Next() {
		var it Item
		var status string
		if err := rows.Scan(&it.ID, &it.UserID, &it.Name, &it.Cost, &it.StartAt, &it.DurationMin, &it.EndAt, &status, &it.CreatedAt); err != nil {
			return nil, err
		}
		it.Status = Status(status)
		out = append(out, it)
	}
	return out, rows.Err()
}
