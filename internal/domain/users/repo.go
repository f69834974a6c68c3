package users

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) GetByTelegramID(ctx context.Context, tgID int64) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, telegram_id, username, created_at, updated_at
		FROM users WHERE telegram_id = $1
	`, tgID)

	var u User
	if err := row.Scan(&u.ID, &u.TelegramID, &u.Username, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// UpsertByTelegram создаёт пользователя при первом /start, дальше только обновляет username.
func (r *Repo) UpsertByTelegram(ctx context.Context, tgID int64, username string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (telegram_id, username)
		VALUES ($1,$2)
		ON CONFLICT (telegram_id)
		DO UPDATE SET username = EXCLUDED.username, updated_at = now()
		RETURNING id, telegram_id, username, created_at, updated_at
	`, tgID, username)

	var u User
	if err := row.Scan(&u.ID, &u.TelegramID, &u.Username, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
