package reflection

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPurchased Status = "purchased"
	StatusSkipped   Status = "skipped"
)

// Item — отложенная покупка на «периоде охлаждения».
// Статус меняется ровно один раз: pending -> purchased | skipped.
type Item struct {
	ID          int64
	UserID      int64
	Name        string
	Cost        float64
	StartAt     time.Time
	DurationMin int
	EndAt       time.Time
	Status      Status
	CreatedAt   time.Time
}

// Expired — период ожидания истёк, пора принимать решение.
func (i Item) Expired(now time.Time) bool { return now.After(i.EndAt) }

// Remaining — сколько осталось ждать; не уходит в минус.
func (i Item) Remaining(now time.Time) time.Duration {
	d := i.EndAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// FormatRemaining — ЧЧ:ММ:СС для обратного отсчёта в сообщении.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "00:00:00"
	}
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
