package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReconcileRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moneo_reconcile_runs_total",
		Help: "Сколько раз запускалась реконсиляция подписок.",
	})
	SubscriptionCharges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moneo_subscription_charges_total",
		Help: "Добавленные синтетические списания по подпискам.",
	})
	SubscriptionReversals = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moneo_subscription_reversals_total",
		Help: "Снятые списания при отключении подписки в том же месяце.",
	})
	ReportsBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moneo_budget_reports_total",
		Help: "Построенные бюджетные отчёты.",
	})
	ReflectNotifications = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moneo_reflect_notifications_total",
		Help: "Отправленные запросы решения по отложенным покупкам.",
	})
)
