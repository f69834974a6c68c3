package ledger

import "time"

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// CategorySubscriptions — категория синтетических списаний по подпискам.
const CategorySubscriptions = "Subscriptions"

const subscriptionDescPrefix = "Subscription: "

type Transaction struct {
	ID             int64
	UserID         int64
	Type           Type
	Amount         float64
	Category       string
	Date           time.Time
	Description    string
	SubscriptionID *int64
	CreatedAt      time.Time
}

// Synthetic — запись создана реконсиляцией, а не пользователем.
func (t Transaction) Synthetic() bool { return t.SubscriptionID != nil }

// SubscriptionCharge — ежемесячное списание по активной подписке.
// Ключ идемпотентности: (user_id, subscription_id, месяц даты).
type SubscriptionCharge struct {
	UserID         int64
	SubscriptionID int64
	Name           string
	Amount         float64
	Date           time.Time
}

func (c SubscriptionCharge) Description() string {
	return subscriptionDescPrefix + c.Name
}
