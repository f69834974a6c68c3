package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/moneo-bot/internal/dialog"
	"github.com/Spok95/moneo-bot/internal/domain/reflection"
)

func (b *Bot) showReflections(ctx context.Context, chatID, userID int64) {
	items, err := b.reflections.ListPending(ctx, userID)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Не удалось загрузить отложенные покупки."))
		return
	}

	m := tgbotapi.NewMessage(chatID, renderReflections(items, b.now()))
	m.ReplyMarkup = reflectListKeyboard(items)
	b.send(m)
}

func renderReflections(items []reflection.Item, now time.Time) string {
	if len(items) == 0 {
		return "Отложенных покупок нет.\n\nДобавьте вещь, которую хочется купить, и срок ожидания — я напомню, когда придёт время решать."
	}
	var sb strings.Builder
	sb.WriteString("Период охлаждения:\n")
	for _, it := range items {
		left := "⏰ пора решать!"
		if !it.Expired(now) {
			left = "⏳ " + reflection.FormatRemaining(it.Remaining(now))
		}
		sb.WriteString(fmt.Sprintf("· %s (%s) — %s\n", it.Name, fmtMoney(it.Cost), left))
	}
	return sb.String()
}

func (b *Bot) handleReflectionInput(ctx context.Context, msg *tgbotapi.Message, userID int64, st *dialog.Item) {
	chatID := msg.Chat.ID

	switch st.State {
	case dialog.StateReflName:
		name := strings.TrimSpace(msg.Text)
		if name == "" {
			b.send(tgbotapi.NewMessage(chatID, "Название не может быть пустым."))
			return
		}
		_ = b.states.Set(ctx, chatID, dialog.StateReflCost, dialog.Payload{"name": name})
		m := tgbotapi.NewMessage(chatID, "Сколько это стоит?")
		m.ReplyMarkup = navCancelKeyboard()
		b.send(m)

	case dialog.StateReflCost:
		cost, err := parseAmount(msg.Text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()+". Попробуйте ещё раз:"))
			return
		}
		p := st.Payload
		p["cost"] = cost
		_ = b.states.Set(ctx, chatID, dialog.StateReflDuration, p)
		m := tgbotapi.NewMessage(chatID, "Сколько минут подождать перед решением? Например 30, 60 или 1440 (сутки):")
		m.ReplyMarkup = navCancelKeyboard()
		b.send(m)

	case dialog.StateReflDuration:
		minutes, err := parseMinutes(msg.Text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()+". Попробуйте ещё раз:"))
			return
		}
		name, _ := dialog.GetString(st.Payload, "name")
		cost, _ := dialog.GetFloat(st.Payload, "cost")

		it, err := b.reflections.Create(ctx, reflection.CreateInput{
			UserID:      userID,
			Name:        name,
			Cost:        cost,
			DurationMin: minutes,
		})
		if err != nil {
			b.log.Error("create reflection failed", "user_id", userID, "err", err)
			b.send(tgbotapi.NewMessage(chatID, "Не удалось сохранить."))
			return
		}
		_ = b.states.Reset(ctx, chatID)

		b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
			"«%s» на паузе до %s. Напомню, когда время выйдет.",
			it.Name, it.EndAt.Format("02.01 15:04"))))
		b.showReflections(ctx, chatID, userID)
	}
}

func (b *Bot) resolveReflection(ctx context.Context, cb *tgbotapi.CallbackQuery, itemID int64, decision reflection.Status) {
	chatID := cb.Message.Chat.ID

	err := b.reflections.Resolve(ctx, itemID, decision)
	switch {
	case errors.Is(err, reflection.ErrNotFound):
		_ = b.answerCallback(cb, "Элемент не найден", true)
		return
	case errors.Is(err, reflection.ErrNotPending):
		_ = b.answerCallback(cb, "Решение уже принято", true)
		b.editTextAndClear(chatID, cb.Message.MessageID, "Решение по этой покупке уже принято.")
		return
	case err != nil:
		_ = b.answerCallback(cb, "Хранилище недоступно", true)
		return
	}

	b.stopCountdown(chatID)
	// Освобождаем чат: следующий просроченный элемент подберёт вотчер.
	st, _ := b.states.Get(ctx, chatID)
	if st.State == dialog.StateReflDecide {
		_ = b.states.Reset(ctx, chatID)
	}

	text := "Покупка записана за вами. Решение осознанное — это главное."
	if decision == reflection.StatusSkipped {
		text = "Отлично, импульс переждали — деньги остались при вас!"
	}
	b.editTextAndClear(chatID, cb.Message.MessageID, text)
	_ = b.answerCallback(cb, "", false)
}

// startCountdown запускает посекундное обновление списка ожидающих
// покупок в одном сообщении. Один отсчёт на чат; предыдущий гасим.
func (b *Bot) startCountdown(ctx context.Context, chatID, userID int64, messageID int) {
	b.stopCountdown(chatID)

	cctx, cancel := context.WithCancel(ctx)
	cd := &countdown{cancel: cancel}
	b.countdownMu.Lock()
	b.countdowns[chatID] = cd
	b.countdownMu.Unlock()

	go func() {
		defer b.releaseCountdown(chatID, cd)
		ticker := time.NewTicker(b.tick)
		defer ticker.Stop()

		for {
			select {
			case <-cctx.Done():
				return
			case <-ticker.C:
				items, err := b.reflections.ListPending(cctx, userID)
				if err != nil {
					return
				}
				allExpired := true
				for _, it := range items {
					if !it.Expired(b.now()) {
						allExpired = false
					}
				}
				edit := tgbotapi.NewEditMessageTextAndMarkup(
					chatID, messageID, renderReflections(items, b.now()), reflectListKeyboard(items))
				if _, err := b.api.Send(edit); err != nil {
					// Сообщение удалили или текст не изменился — отсчёт больше не нужен.
					return
				}
				if len(items) == 0 || allExpired {
					return
				}
			}
		}
	}()
}

// releaseCountdown снимает регистрацию завершившегося отсчёта.
// Если чат уже занял более свежий отсчёт, его запись не трогаем.
func (b *Bot) releaseCountdown(chatID int64, cd *countdown) {
	cd.cancel()
	b.countdownMu.Lock()
	defer b.countdownMu.Unlock()
	if b.countdowns[chatID] == cd {
		delete(b.countdowns, chatID)
	}
}

func (b *Bot) stopCountdown(chatID int64) {
	b.countdownMu.Lock()
	defer b.countdownMu.Unlock()
	if cd, ok := b.countdowns[chatID]; ok {
		cd.cancel()
		delete(b.countdowns, chatID)
	}
}

func (b *Bot) stopAllCountdowns() {
	b.countdownMu.Lock()
	defer b.countdownMu.Unlock()
	for id, cd := range b.countdowns {
		cd.cancel()
		delete(b.countdowns, id)
	}
}
