package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Spok95/moneo-bot/internal/domain/ledger"
	"github.com/Spok95/moneo-bot/internal/domain/subscriptions"
	"github.com/Spok95/moneo-bot/internal/infra/metrics"
)

// SubscriptionSource — активные подписки пользователя.
type SubscriptionSource interface {
	ListActiveByUser(ctx context.Context, userID int64) ([]subscriptions.Subscription, error)
}

// ChargeLedger — идемпотентная запись и откат синтетических списаний.
type ChargeLedger interface {
	UpsertSubscriptionCharge(ctx context.Context, c ledger.SubscriptionCharge) (bool, error)
	ReverseSubscriptionCharge(ctx context.Context, userID, subscriptionID int64, now time.Time) (bool, error)
}

// Failure — сбой по одной подписке; остальные подписки он не блокирует.
type Failure struct {
	SubscriptionID int64
	Name           string
	Err            error
}

// Reconciler гарантирует ровно одно списание за календарный месяц
// на каждую активную подписку. Повторный вызов в том же месяце — no-op.
type Reconciler struct {
	subs    SubscriptionSource
	charges ChargeLedger
	log     *slog.Logger
	now     func() time.Time
}

func New(subs SubscriptionSource, charges ChargeLedger, log *slog.Logger) *Reconciler {
	return &Reconciler{subs: subs, charges: charges, log: log, now: time.Now}
}

// Reconcile проходит по активным подпискам и доставляет недостающие
// списания текущего месяца. Частичный успех допустим: сбои возвращаются
// списком, ошибка — только если не удалось получить сами подписки.
func (r *Reconciler) Reconcile(ctx context.Context, userID int64) ([]Failure, error) {
	subs, err := r.subs.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reconcile: list subscriptions: %w", err)
	}
	metrics.ReconcileRuns.Inc()

	var failures []Failure
	for _, s := range subs {
		if err := r.EnsureCharge(ctx, s); err != nil {
			failures = append(failures, Failure{SubscriptionID: s.ID, Name: s.Name, Err: err})
			r.log.Error("reconcile: charge failed", "user_id", userID, "subscription_id", s.ID, "err", err)
		}
	}
	return failures, nil
}

// EnsureCharge доставляет списание текущего месяца для одной подписки.
// Используется и при реактивации выключенной подписки.
func (r *Reconciler) EnsureCharge(ctx context.Context, s subscriptions.Subscription) error {
	inserted, err := r.charges.UpsertSubscriptionCharge(ctx, ledger.SubscriptionCharge{
		UserID:         s.UserID,
		SubscriptionID: s.ID,
		Name:           s.Name,
		Amount:         s.MonthlyCost(),
		Date:           r.now(),
	})
	if err != nil {
		return err
	}
	if inserted {
		metrics.SubscriptionCharges.Inc()
		r.log.Info("subscription charge added",
			"user_id", s.UserID, "subscription_id", s.ID, "amount", s.MonthlyCost())
	}
	return nil
}

// Reverse снимает списание текущего месяца при отключении подписки.
// Компенсация действует только в месяце отключения, историю не трогаем.
func (r *Reconciler) Reverse(ctx context.Context, userID, subscriptionID int64) error {
	removed, err := r.charges.ReverseSubscriptionCharge(ctx, userID, subscriptionID, r.now())
	if err != nil {
		return fmt.Errorf("reconcile: reverse charge: %w", err)
	}
	if removed {
		metrics.SubscriptionReversals.Inc()
		r.log.Info("subscription charge reversed", "user_id", userID, "subscription_id", subscriptionID)
	}
	return nil
}
