package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/moneo-bot/internal/dialog"
	"github.com/Spok95/moneo-bot/internal/domain/subscriptions"
)

func (b *Bot) showSubscriptions(ctx context.Context, chatID, userID int64) {
	subs, err := b.subs.ListByUser(ctx, userID)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Не удалось загрузить подписки."))
		return
	}

	text := "Подписок пока нет."
	if len(subs) > 0 {
		var monthly float64
		for _, s := range subs {
			if s.Active {
				monthly += s.MonthlyCost()
			}
		}
		text = fmt.Sprintf("Ваши подписки (нажмите, чтобы включить/выключить).\nАктивные: %s в месяц.", fmtMoney(monthly))
	}

	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = subsListKeyboard(subs)
	b.send(m)
}

func (b *Bot) handleSubscriptionInput(ctx context.Context, msg *tgbotapi.Message, st *dialog.Item) {
	chatID := msg.Chat.ID

	switch st.State {
	case dialog.StateSubName:
		name := strings.TrimSpace(msg.Text)
		if name == "" {
			b.send(tgbotapi.NewMessage(chatID, "Название не может быть пустым."))
			return
		}
		_ = b.states.Set(ctx, chatID, dialog.StateSubCost, dialog.Payload{"name": name})
		m := tgbotapi.NewMessage(chatID, "Стоимость за период оплаты:")
		m.ReplyMarkup = navCancelKeyboard()
		b.send(m)

	case dialog.StateSubCost:
		cost, err := parseAmount(msg.Text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()+". Попробуйте ещё раз:"))
			return
		}
		p := st.Payload
		p["cost"] = cost
		_ = b.states.Set(ctx, chatID, dialog.StateSubCycle, p)
		m := tgbotapi.NewMessage(chatID, "Как часто списывается оплата?")
		m.ReplyMarkup = cycleKeyboard()
		b.send(m)
	}
}

func (b *Bot) handleSubscriptionCycle(ctx context.Context, cb *tgbotapi.CallbackQuery, userID int64, cycle string) {
	chatID := cb.Message.Chat.ID
	st, _ := b.states.Get(ctx, chatID)
	if st.State != dialog.StateSubCycle {
		_ = b.answerCallback(cb, "", false)
		return
	}

	name, _ := dialog.GetString(st.Payload, "name")
	cost, _ := dialog.GetFloat(st.Payload, "cost")

	sub, err := b.subs.Create(ctx, subscriptions.CreateInput{
		UserID:       userID,
		Name:         name,
		Cost:         cost,
		BillingCycle: subscriptions.BillingCycle(cycle),
	})
	if err != nil {
		b.log.Error("create subscription failed", "user_id", userID, "err", err)
		b.editTextAndClear(chatID, cb.Message.MessageID, "Не удалось сохранить подписку.")
		_ = b.answerCallback(cb, "", false)
		return
	}
	_ = b.states.Reset(ctx, chatID)

	// Как и при реактивации: сразу доставляем списание текущего месяца.
	if err := b.rec.EnsureCharge(ctx, *sub); err != nil {
		b.log.Error("initial subscription charge failed", "subscription_id", sub.ID, "err", err)
	}

	b.editTextAndClear(chatID, cb.Message.MessageID,
		fmt.Sprintf("Подписка «%s» добавлена: %s в месяц.", sub.Name, fmtMoney(sub.MonthlyCost())))
	_ = b.answerCallback(cb, "", false)
	b.showSubscriptions(ctx, chatID, userID)
}

// toggleSubscription переключает подписку и сразу правит леджер:
// выключение снимает списание текущего месяца, включение возвращает его.
func (b *Bot) toggleSubscription(ctx context.Context, cb *tgbotapi.CallbackQuery, userID, subID int64) {
	chatID := cb.Message.Chat.ID

	sub, err := b.subs.GetByID(ctx, subID)
	if err != nil {
		if errors.Is(err, subscriptions.ErrNotFound) {
			_ = b.answerCallback(cb, "Подписка не найдена", true)
			return
		}
		_ = b.answerCallback(cb, "Хранилище недоступно", true)
		return
	}
	if sub.UserID != userID {
		_ = b.answerCallback(cb, "Подписка не найдена", true)
		return
	}

	sub, err = b.subs.SetActive(ctx, subID, !sub.Active)
	if err != nil {
		_ = b.answerCallback(cb, "Не удалось переключить", true)
		return
	}

	if sub.Active {
		if err := b.rec.EnsureCharge(ctx, *sub); err != nil {
			b.log.Error("reactivation charge failed", "subscription_id", sub.ID, "err", err)
		}
		_ = b.answerCallback(cb, "Подписка включена", false)
	} else {
		if err := b.rec.Reverse(ctx, userID, sub.ID); err != nil {
			b.log.Error("reverse charge failed", "subscription_id", sub.ID, "err", err)
		}
		_ = b.answerCallback(cb, "Подписка выключена, списание месяца снято", false)
	}

	// Перерисуем список на месте.
	subs, err := b.subs.ListByUser(ctx, userID)
	if err != nil {
		return
	}
	kb := subsListKeyboard(subs)
	b.send(tgbotapi.NewEditMessageReplyMarkup(chatID, cb.Message.MessageID, kb))
}
