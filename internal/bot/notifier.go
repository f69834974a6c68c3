package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/moneo-bot/internal/dialog"
	"github.com/Spok95/moneo-bot/internal/infra/metrics"
)

// RunReflectWatcher опрашивает просроченные отложенные покупки и
// предлагает решение. На чат одновременно висит не больше одного
// вопроса; следующий элемент уйдёт после ответа на текущий.
func (b *Bot) RunReflectWatcher(ctx context.Context, pollInterval time.Duration) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.notifyExpired(ctx)
		}
	}
}

func (b *Bot) notifyExpired(ctx context.Context) {
	expired, err := b.reflections.ListExpired(ctx, b.now())
	if err != nil {
		b.log.Error("list expired reflections failed", "err", err)
		return
	}

	for _, e := range expired {
		st, err := b.states.Get(ctx, e.ChatID)
		if err != nil {
			b.log.Error("load dialog state failed", "chat_id", e.ChatID, "err", err)
			continue
		}
		// Чат уже решает (или занят другим диалогом) — не перебиваем.
		if st.State != dialog.StateIdle {
			continue
		}

		b.stopCountdown(e.ChatID)
		m := tgbotapi.NewMessage(e.ChatID, fmt.Sprintf(
			"⏰ Время вышло!\n\n«%s» за %s ждала %d мин. Всё ещё хочется?",
			e.Name, fmtMoney(e.Cost), e.DurationMin))
		m.ReplyMarkup = decideKeyboard(e.ID)
		// Состояние выставляем только после доставки клавиатуры, иначе
		// чат застрянет в refl_decide без кнопок и вотчер его пропустит.
		if _, err := b.api.Send(m); err != nil {
			b.log.Error("send decide prompt failed", "chat_id", e.ChatID, "err", err)
			continue
		}
		if err := b.states.Set(ctx, e.ChatID, dialog.StateReflDecide, dialog.Payload{"item_id": e.ID}); err != nil {
			b.log.Error("set decide state failed", "chat_id", e.ChatID, "err", err)
			continue
		}
		metrics.ReflectNotifications.Inc()
	}
}
