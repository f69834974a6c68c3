package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/moneo-bot/internal/validate"
)

var ErrNotFound = errors.New("profile: not found")

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) GetByUserID(ctx context.Context, userID int64) (*Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT user_id, monthly_income, primary_goal, financial_situation, knowledge_score, updated_at
		FROM user_profiles WHERE user_id = $1
	`, userID)

	var p Profile
	if err := row.Scan(&p.UserID, &p.MonthlyIncome, &p.PrimaryGoal, &p.FinancialSituation, &p.KnowledgeScore, &p.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

type UpsertInput struct {
	UserID             int64   `validate:"required,gt=0"`
	MonthlyIncome      float64 `validate:"gte=0"`
	PrimaryGoal        string
	FinancialSituation string
	KnowledgeScore     int `validate:"gte=0,lte=2"`
}

func (r *Repo) Upsert(ctx context.Context, in UpsertInput) (*Profile, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO user_profiles (user_id, monthly_income, primary_goal, financial_situation, knowledge_score)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (user_id) DO UPDATE SET
			monthly_income      = EXCLUDED.monthly_income,
			primary_goal        = EXCLUDED.primary_goal,
			financial_situation = EXCLUDED.financial_situation,
			knowledge_score     = EXCLUDED.knowledge_score,
			updated_at          = now()
		RETURNING user_id, monthly_income, primary_goal, financial_situation, knowledge_score, updated_at
	`, in.UserID, in.MonthlyIncome, in.PrimaryGoal, in.FinancialSituation, in.KnowledgeScore)

	var p Profile
	if err := row.Scan(&p.UserID, &p.MonthlyIncome, &p.PrimaryGoal, &p.FinancialSituation, &p.KnowledgeScore, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateIncome меняет только заявленный месячный доход.
func (r *Repo) UpdateIncome(ctx context.Context, userID int64, income float64) error {
	if income < 0 {
		return fmt.Errorf("profile: income must be non-negative")
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE user_profiles SET monthly_income=$2, updated_at=now() WHERE user_id=$1
	`, userID, income)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
