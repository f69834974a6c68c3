package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/moneo-bot/internal/validate"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

type CreateInput struct {
	UserID      int64   `validate:"required,gt=0"`
	Type        Type    `validate:"required,oneof=income expense"`
	Amount      float64 `validate:"required,gt=0"`
	Category    string  `validate:"required"`
	Date        time.Time
	Description string
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (*Transaction, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("ledger: %w", err)
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (user_id, type, amount, category, date, description)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at
	`, in.UserID, string(in.Type), in.Amount, in.Category, in.Date, in.Description)

	t := Transaction{
		UserID:      in.UserID,
		Type:        in.Type,
		Amount:      in.Amount,
		Category:    in.Category,
		Date:        in.Date,
		Description: in.Description,
	}
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByUser — все операции пользователя, свежие сверху.
func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]Transaction, error) {
	const q = `SELECT id, user_id, type, amount, category, date, description, subscription_id, created_at
	           FROM transactions
	           WHERE user_id=$1
	           ORDER BY date DESC, id DESC`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListByUserRange — операции за полуинтервал [from, to).
func (r *Repo) ListByUserRange(ctx context.Context, userID int64, from, to time.Time) ([]Transaction, error) {
	const q = `SELECT id, user_id, type, amount, category, date, description, subscription_id, created_at
	           FROM transactions
	           WHERE user_id=$1 AND date >= $2 AND date < $3
	           ORDER BY date DESC, id DESC`
	rows, err := r.pool.Query(ctx, q, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// UpsertSubscriptionCharge вставляет списание за месяц даты, если его ещё нет.
// Возвращает true, если строка реально добавлена.
func (r *Repo) UpsertSubscriptionCharge(ctx context.Context, c SubscriptionCharge) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO transactions (user_id, type, amount, category, date, description, subscription_id)
		VALUES ($1,'expense',$2,$3,$4,$5,$6)
		ON CONFLICT (user_id, subscription_id, date_trunc('month', date::timestamp))
			WHERE subscription_id IS NOT NULL
		DO NOTHING
	`, c.UserID, c.Amount, CategorySubscriptions, c.Date, c.Description(), c.SubscriptionID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ReverseSubscriptionCharge удаляет списание подписки за текущий месяц.
// Прошлые месяцы не трогаем: компенсация действует только внутри месяца отключения.
func (r *Repo) ReverseSubscriptionCharge(ctx context.Context, userID, subscriptionID int64, now time.Time) (bool, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM transactions
		WHERE user_id=$1 AND subscription_id=$2 AND date >= $3 AND date < $4
	`, userID, subscriptionID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanTransactions(rows pgx.Rows) ([]Transaction, error) {
	var out []Transaction
	for rows.Next() {
		var t Transaction
		var typ string
		if err := rows.Scan(&t.ID, &t.UserID, &typ, &t.Amount, &t.Category, &t.Date, &t.Description, &t.SubscriptionID, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Type = Type(typ)
		out = append(out, t)
	}
	return out, rows.Err()
}
