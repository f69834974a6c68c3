package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/moneo-bot/internal/domain/budget"
)

func statusIcon(s budget.Status) string {
	switch s {
	case budget.StatusOK, budget.StatusOnTrack:
		return "✅"
	case budget.StatusWarning:
		return "⚠️"
	case budget.StatusExceeded, budget.StatusBehind:
		return "🔴"
	default:
		return "•"
	}
}

func (b *Bot) showReport(ctx context.Context, chatID, userID int64) {
	rep, err := b.budget.Report(ctx, userID)
	if err != nil {
		b.log.Error("build report failed", "user_id", userID, "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Не удалось построить отчёт, попробуйте позже."))
		return
	}

	var sb strings.Builder
	sb.WriteString("Бюджет за текущий месяц\n")
	sb.WriteString(fmt.Sprintf("Доход: %s · Потрачено: %s · Остаток: %s\n\n",
		fmtMoney(rep.Income), fmtMoney(rep.TotalSpent), fmtMoney(rep.NetSavings)))

	writeBucket := func(bk budget.Bucket) {
		sb.WriteString(fmt.Sprintf("%s %s: %s из %s (%.0f%%)\n",
			statusIcon(bk.Status), bk.Label, fmtMoney(bk.Spent), fmtMoney(bk.Limit), bk.Percent))
	}
	writeBucket(rep.Essentials)
	writeBucket(rep.Lifestyle)
	writeBucket(rep.Savings)

	if len(rep.Alerts) > 0 {
		sb.WriteString("\n")
		for _, a := range rep.Alerts {
			sb.WriteString("❗ " + a + "\n")
		}
	}
	if rep.InvestmentAdvice != "" {
		sb.WriteString("\n💡 " + rep.InvestmentAdvice + "\n")
	}

	if len(rep.ByCategory) > 0 {
		sb.WriteString("\nПо категориям:\n")
		for _, c := range rep.ByCategory {
			sb.WriteString(fmt.Sprintf("· %s — %s\n", categoryLabel(c.Category), fmtMoney(c.Amount)))
		}
	}

	b.send(tgbotapi.NewMessage(chatID, sb.String()))
}

func (b *Bot) showSummary(ctx context.Context, cb *tgbotapi.CallbackQuery, userID int64, period string) {
	chatID := cb.Message.Chat.ID

	sum, err := b.budget.Summary(ctx, userID, budget.Period(period))
	if err != nil {
		b.log.Error("build summary failed", "user_id", userID, "err", err)
		_ = b.answerCallback(cb, "Хранилище недоступно", true)
		return
	}

	title := map[string]string{
		"this_month": "этот месяц",
		"last_month": "прошлый месяц",
		"all":        "всё время",
	}[period]

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Сводка за %s\n", title))
	sb.WriteString(fmt.Sprintf("Доход: %s · Расход: %s · Операций: %d\n",
		fmtMoney(sum.Income), fmtMoney(sum.Expense), sum.TxCount))

	if len(sum.Breakdown) > 0 {
		sb.WriteString("\nРасходы по категориям:\n")
		for _, st := range sum.Breakdown {
			sb.WriteString(fmt.Sprintf("· %s — %s (%d)\n", categoryLabel(st.Category), fmtMoney(st.Total), st.Count))
		}
	}

	b.editTextAndClear(chatID, cb.Message.MessageID, sb.String())
	_ = b.answerCallback(cb, "", false)
}
