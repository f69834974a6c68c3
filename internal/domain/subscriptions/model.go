package subscriptions

import (
	"math"
	"time"
)

type BillingCycle string

const (
	CycleMonthly   BillingCycle = "monthly"
	CycleSixMonths BillingCycle = "six_months"
	CycleYearly    BillingCycle = "yearly"
)

type Subscription struct {
	ID           int64
	UserID       int64
	Name         string
	Cost         float64
	BillingCycle BillingCycle
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MonthlyCost — стоимость, приведённая к месяцу, с округлением до целого.
func (s Subscription) MonthlyCost() float64 {
	switch s.BillingCycle {
	case CycleSixMonths:
		return math.Round(s.Cost / 6)
	case CycleYearly:
		return math.Round(s.Cost / 12)
	default:
		return math.Round(s.Cost)
	}
}
