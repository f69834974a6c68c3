package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/moneo-bot/internal/dialog"
	"github.com/Spok95/moneo-bot/internal/domain/ledger"
)

func (b *Bot) startAddTransaction(ctx context.Context, chatID int64) {
	_ = b.states.Set(ctx, chatID, dialog.StateTxType, dialog.Payload{})
	m := tgbotapi.NewMessage(chatID, "Что записываем?")
	m.ReplyMarkup = txTypeKeyboard()
	b.send(m)
}

func (b *Bot) handleTransactionCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, userID int64) {
	chatID := cb.Message.Chat.ID
	st, _ := b.states.Get(ctx, chatID)
	data := cb.Data

	switch {
	case strings.HasPrefix(data, "tx:type:"):
		if st.State != dialog.StateTxType {
			_ = b.answerCallback(cb, "", false)
			return
		}
		txType := strings.TrimPrefix(data, "tx:type:")
		_ = b.states.Set(ctx, chatID, dialog.StateTxCategory, dialog.Payload{"type": txType})

		kb := categoryKeyboard(txType)
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID, "Категория:", kb))
		_ = b.answerCallback(cb, "", false)

	case strings.HasPrefix(data, "tx:cat:"):
		if st.State != dialog.StateTxCategory {
			_ = b.answerCallback(cb, "", false)
			return
		}
		cat := strings.TrimPrefix(data, "tx:cat:")
		txType, _ := dialog.GetString(st.Payload, "type")
		_ = b.states.Set(ctx, chatID, dialog.StateTxAmount, dialog.Payload{"type": txType, "category": cat})
		b.editTextAndClear(chatID, cb.Message.MessageID, "Категория: "+categoryLabel(cat))

		m := tgbotapi.NewMessage(chatID, "Сумма:")
		m.ReplyMarkup = navCancelKeyboard()
		b.send(m)
		_ = b.answerCallback(cb, "", false)

	case data == "tx:skipdesc":
		if st.State != dialog.StateTxDesc {
			_ = b.answerCallback(cb, "", false)
			return
		}
		b.saveTransaction(ctx, chatID, userID, st.Payload, "")
		b.editTextAndClear(chatID, cb.Message.MessageID, "Без комментария")
		_ = b.answerCallback(cb, "", false)
	}
}

func (b *Bot) handleTransactionInput(ctx context.Context, msg *tgbotapi.Message, userID int64, st *dialog.Item) {
	chatID := msg.Chat.ID

	switch st.State {
	case dialog.StateTxAmount:
		amount, err := parseAmount(msg.Text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()+". Попробуйте ещё раз:"))
			return
		}
		p := st.Payload
		p["amount"] = amount
		_ = b.states.Set(ctx, chatID, dialog.StateTxDesc, p)

		m := tgbotapi.NewMessage(chatID, "Комментарий (необязательно):")
		m.ReplyMarkup = skipDescKeyboard()
		b.send(m)

	case dialog.StateTxDesc:
		b.saveTransaction(ctx, chatID, userID, st.Payload, strings.TrimSpace(msg.Text))
	}
}

func (b *Bot) saveTransaction(ctx context.Context, chatID, userID int64, p dialog.Payload, desc string) {
	txType, _ := dialog.GetString(p, "type")
	category, _ := dialog.GetString(p, "category")
	amount, _ := dialog.GetFloat(p, "amount")

	t, err := b.ledger.Create(ctx, ledger.CreateInput{
		UserID:      userID,
		Type:        ledger.Type(txType),
		Amount:      amount,
		Category:    category,
		Date:        b.now(),
		Description: desc,
	})
	if err != nil {
		b.log.Error("create transaction failed", "user_id", userID, "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Не удалось сохранить операцию."))
		return
	}
	_ = b.states.Reset(ctx, chatID)

	sign := "−"
	if t.Type == ledger.TypeIncome {
		sign = "+"
	}
	b.send(tgbotapi.NewMessage(chatID,
		fmt.Sprintf("Записано: %s%s, %s", sign, fmtMoney(t.Amount), categoryLabel(t.Category))))
}

const historyLimit = 15

// showHistory — реконсиляция, затем свежие операции сверху.
func (b *Bot) showHistory(ctx context.Context, chatID, userID int64) {
	if failures, err := b.rec.Reconcile(ctx, userID); err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Хранилище недоступно, попробуйте позже."))
		return
	} else if len(failures) > 0 {
		b.send(tgbotapi.NewMessage(chatID,
			fmt.Sprintf("Часть подписок не удалось сверить (%d), список может быть неполным.", len(failures))))
	}

	txs, err := b.ledger.ListByUser(ctx, userID)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Не удалось загрузить историю."))
		return
	}
	if len(txs) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "Операций пока нет — начните с кнопки «Операция»."))
		return
	}

	var sb strings.Builder
	sb.WriteString("Последние операции:\n")
	for i, t := range txs {
		if i == historyLimit {
			sb.WriteString(fmt.Sprintf("… и ещё %d\n", len(txs)-historyLimit))
			break
		}
		sign := "−"
		if t.Type == ledger.TypeIncome {
			sign = "+"
		}
		line := fmt.Sprintf("%s  %s%s  %s", t.Date.Format("02.01"), sign, fmtMoney(t.Amount), categoryLabel(t.Category))
		if t.Synthetic() {
			line += " 🔁"
		}
		if t.Description != "" {
			line += " · " + t.Description
		}
		sb.WriteString(line + "\n")
	}
	b.send(tgbotapi.NewMessage(chatID, sb.String()))
}
