package subscriptions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/moneo-bot/internal/validate"
)

var ErrNotFound = errors.New("subscriptions: not found")

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

type CreateInput struct {
	UserID       int64        `validate:"required,gt=0"`
	Name         string       `validate:"required"`
	Cost         float64      `validate:"required,gt=0"`
	BillingCycle BillingCycle `validate:"required,oneof=monthly six_months yearly"`
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (*Subscription, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("subscriptions: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO subscriptions (user_id, name, cost, billing_cycle, active)
		VALUES ($1,$2,$3,$4,true)
		RETURNING id, user_id, name, cost, billing_cycle, active, created_at, updated_at
	`, in.UserID, in.Name, in.Cost, string(in.BillingCycle))
	return scanSubscription(row)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Subscription, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, name, cost, billing_cycle, active, created_at, updated_at
		FROM subscriptions WHERE id=$1
	`, id)
	s, err := scanSubscription(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

// ListByUser — все подписки пользователя, включая отключённые.
func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]Subscription, error) {
	return r.list(ctx, `
		SELECT id, user_id, name, cost, billing_cycle, active, created_at, updated_at
		FROM subscriptions WHERE user_id=$1 ORDER BY created_at, id
	`, userID)
}

func (r *Repo) ListActiveByUser(ctx context.Context, userID int64) ([]Subscription, error) {
	return r.list(ctx, `
		SELECT id, user_id, name, cost, billing_cycle, active, created_at, updated_at
		FROM subscriptions WHERE user_id=$1 AND active ORDER BY created_at, id
	`, userID)
}

// SetActive переключает флаг и возвращает свежую запись.
func (r *Repo) SetActive(ctx context.Context, id int64, active bool) (*Subscription, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE subscriptions SET active=$2, updated_at=now()
		WHERE id=$1
		RETURNING id, user_id, name, cost, billing_cycle, active, created_at, updated_at
	`, id, active)
	s, err := scanSubscription(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

func (r *Repo) list(ctx context.Context, q string, args ...any) ([]Subscription, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Subscription
	for rows.Next() {
		var s Subscription
		var cycle string
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.Cost, &cycle, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.BillingCycle = BillingCycle(cycle)
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSubscription(row pgx.Row) (*Subscription, error) {
	var s Subscription
	var cycle string
	if err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Cost, &cycle, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.BillingCycle = BillingCycle(cycle)
	return &s, nil
}
