package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Spok95/moneo-bot/internal/domain/ledger"
	"github.com/Spok95/moneo-bot/internal/domain/profile"
	"github.com/Spok95/moneo-bot/internal/domain/reconcile"
	"github.com/Spok95/moneo-bot/internal/infra/metrics"
)

// Service собирает отчёт: сперва реконсиляция подписок, затем леджер за
// текущий месяц и доход из анкеты.
type Service struct {
	log      *slog.Logger
	profiles *profile.Repo
	ledger   *ledger.Repo
	rec      *reconcile.Reconciler
	now      func() time.Time
}

func NewService(log *slog.Logger, profiles *profile.Repo, ledgerRepo *ledger.Repo, rec *reconcile.Reconciler) *Service {
	return &Service{log: log, profiles: profiles, ledger: ledgerRepo, rec: rec, now: time.Now}
}

func (s *Service) Report(ctx context.Context, userID int64) (Report, error) {
	failures, err := s.rec.Reconcile(ctx, userID)
	if err != nil {
		return Report{}, err
	}
	for _, f := range failures {
		s.log.Warn("report built over partial reconcile", "user_id", userID, "subscription", f.Name, "err", f.Err)
	}

	prof, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return Report{}, fmt.Errorf("budget: load profile: %w", err)
	}
	income := 0.0
	if prof != nil {
		income = prof.MonthlyIncome
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	txs, err := s.ledger.ListByUserRange(ctx, userID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return Report{}, fmt.Errorf("budget: load ledger: %w", err)
	}

	metrics.ReportsBuilt.Inc()
	return BuildReport(income, txs, now), nil
}

// Period — отчётный период сводки.
type Period string

const (
	PeriodThisMonth Period = "this_month"
	PeriodLastMonth Period = "last_month"
	PeriodAll       Period = "all"
)

// Summary — сводка по записанным операциям; тоже после реконсиляции.
func (s *Service) Summary(ctx context.Context, userID int64, period Period) (Summary, error) {
	failures, err := s.rec.Reconcile(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	for _, f := range failures {
		s.log.Warn("summary built over partial reconcile", "user_id", userID, "subscription", f.Name, "err", f.Err)
	}

	var txs []ledger.Transaction
	now := s.now()
	switch period {
	case PeriodThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		txs, err = s.ledger.ListByUserRange(ctx, userID, start, start.AddDate(0, 1, 0))
	case PeriodLastMonth:
		end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		txs, err = s.ledger.ListByUserRange(ctx, userID, end.AddDate(0, -1, 0), end)
	default:
		txs, err = s.ledger.ListByUser(ctx, userID)
	}
	if err != nil {
		return Summary{}, fmt.Errorf("budget: load ledger: %w", err)
	}
	return Summarize(txs), nil
}
