package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/moneo-bot/internal/dialog"
	"github.com/Spok95/moneo-bot/internal/domain/reflection"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	tgID := msg.From.ID

	switch msg.Command() {
	case "start":
		u, err := b.users.UpsertByTelegram(ctx, tgID, msg.From.UserName)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Ошибка: не удалось сохранить профиль"))
			return
		}

		prof, err := b.profiles.GetByUserID(ctx, u.ID)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Ошибка: не удалось прочитать анкету"))
			return
		}
		if prof == nil {
			b.startOnboarding(ctx, chatID)
			return
		}

		m := tgbotapi.NewMessage(chatID, "С возвращением! Кнопки снизу — отчёт, операции, подписки и отложенные покупки.")
		m.ReplyMarkup = mainReplyKeyboard()
		b.send(m)
		return

	case "help":
		b.send(tgbotapi.NewMessage(chatID,
			"Я помогаю вести бюджет по правилу 50-30-20.\n\n"+
				"Кнопки снизу:\n"+
				"«Отчёт» — здоровье бюджета за месяц\n"+
				"«Операция» — записать доход или расход\n"+
				"«История» — последние операции\n"+
				"«Подписки» — регулярные списания\n"+
				"«Отложенные» — период охлаждения перед покупкой\n"+
				"«Сводка» — итоги за период\n"+
				"«Доход» — изменить месячный доход\n"+
				"«Выгрузка» — операции месяца в Excel"))
		return

	default:
		b.send(tgbotapi.NewMessage(chatID, "Не знаю такую команду. Наберите /help"))
		return
	}
}

func (b *Bot) handleStateMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	tgID := msg.From.ID

	u := b.currentUser(ctx, tgID)
	if u == nil {
		b.send(tgbotapi.NewMessage(chatID, "Начните с команды /start"))
		return
	}

	// Нижняя панель
	switch msg.Text {
	case btnReport:
		b.showReport(ctx, chatID, u.ID)
		return
	case btnAddTx:
		b.startAddTransaction(ctx, chatID)
		return
	case btnHistory:
		b.showHistory(ctx, chatID, u.ID)
		return
	case btnSubs:
		b.showSubscriptions(ctx, chatID, u.ID)
		return
	case btnReflect:
		b.showReflections(ctx, chatID, u.ID)
		return
	case btnSummary:
		m := tgbotapi.NewMessage(chatID, "Сводка за какой период?")
		m.ReplyMarkup = summaryKeyboard()
		b.send(m)
		return
	case btnIncome:
		_ = b.states.Set(ctx, chatID, dialog.StateIncomeAmount, dialog.Payload{})
		m := tgbotapi.NewMessage(chatID, "Введите новый месячный доход:")
		m.ReplyMarkup = navCancelKeyboard()
		b.send(m)
		return
	case btnExport:
		b.exportMonth(ctx, chatID, u.ID)
		return
	}

	// Диалоги (текстовые вводы)
	st, _ := b.states.Get(ctx, chatID)
	switch st.State {
	case dialog.StateOnbIncome, dialog.StateOnbGoal,
		dialog.StateOnbQuizFund, dialog.StateOnbQuizCredit, dialog.StateOnbSituation:
		b.handleOnboardingInput(ctx, msg, u.ID, st)
	case dialog.StateTxAmount, dialog.StateTxDesc:
		b.handleTransactionInput(ctx, msg, u.ID, st)
	case dialog.StateSubName, dialog.StateSubCost:
		b.handleSubscriptionInput(ctx, msg, st)
	case dialog.StateReflName, dialog.StateReflCost, dialog.StateReflDuration:
		b.handleReflectionInput(ctx, msg, u.ID, st)
	case dialog.StateReflDecide:
		// Текст вместо кнопки: повторяем клавиатуру решения.
		if id, ok := dialog.GetInt64(st.Payload, "item_id"); ok {
			m := tgbotapi.NewMessage(chatID, "Сначала решите по отложенной покупке:")
			m.ReplyMarkup = decideKeyboard(id)
			b.send(m)
		}
	case dialog.StateIncomeAmount:
		b.handleIncomeInput(ctx, msg, u.ID)
	default:
		b.send(tgbotapi.NewMessage(chatID, "Воспользуйтесь кнопками снизу или /help"))
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	tgID := cb.From.ID
	data := cb.Data

	u := b.currentUser(ctx, tgID)
	if u == nil {
		_ = b.answerCallback(cb, "Начните с /start", true)
		return
	}

	switch {
	case data == "nav:cancel":
		_ = b.states.Reset(ctx, chatID)
		b.stopCountdown(chatID)
		b.editTextAndClear(chatID, cb.Message.MessageID, "Отменено.")
		_ = b.answerCallback(cb, "", false)

	case strings.HasPrefix(data, "tx:"):
		b.handleTransactionCallback(ctx, cb, u.ID)

	case strings.HasPrefix(data, "onb:"):
		b.handleOnboardingCallback(ctx, cb, u.ID)

	case data == "sub:add":
		_ = b.states.Set(ctx, chatID, dialog.StateSubName, dialog.Payload{})
		m := tgbotapi.NewMessage(chatID, "Название подписки (например, Netflix):")
		m.ReplyMarkup = navCancelKeyboard()
		b.send(m)
		_ = b.answerCallback(cb, "", false)

	case strings.HasPrefix(data, "sub:cycle:"):
		b.handleSubscriptionCycle(ctx, cb, u.ID, strings.TrimPrefix(data, "sub:cycle:"))

	case strings.HasPrefix(data, "sub:toggle:"):
		id, err := strconv.ParseInt(strings.TrimPrefix(data, "sub:toggle:"), 10, 64)
		if err != nil {
			_ = b.answerCallback(cb, "Некорректная подписка", true)
			return
		}
		b.toggleSubscription(ctx, cb, u.ID, id)

	case data == "refl:add":
		_ = b.states.Set(ctx, chatID, dialog.StateReflName, dialog.Payload{})
		m := tgbotapi.NewMessage(chatID, "Что хочется купить?")
		m.ReplyMarkup = navCancelKeyboard()
		b.send(m)
		_ = b.answerCallback(cb, "", false)

	case data == "refl:watch":
		b.startCountdown(ctx, chatID, u.ID, cb.Message.MessageID)
		_ = b.answerCallback(cb, "Обновляю отсчёт", false)

	case strings.HasPrefix(data, "refl:buy:"), strings.HasPrefix(data, "refl:skip:"):
		decision := reflection.StatusPurchased
		idStr := strings.TrimPrefix(data, "refl:buy:")
		if strings.HasPrefix(data, "refl:skip:") {
			decision = reflection.StatusSkipped
			idStr = strings.TrimPrefix(data, "refl:skip:")
		}
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			_ = b.answerCallback(cb, "Некорректный элемент", true)
			return
		}
		b.resolveReflection(ctx, cb, id, decision)

	case strings.HasPrefix(data, "sum:"):
		b.showSummary(ctx, cb, u.ID, strings.TrimPrefix(data, "sum:"))

	default:
		_ = b.answerCallback(cb, "", false)
	}
}
