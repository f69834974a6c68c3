package bot

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/moneo-bot/internal/dialog"
	"github.com/Spok95/moneo-bot/internal/domain/profile"
)

// Онбординг: доход -> главная цель -> две проверки знаний -> ситуация.
// Доход из анкеты — единственный источник для лимитов 50-30-20;
// счёт за проверку знаний (0-2) сохраняется в профиле.

func (b *Bot) startOnboarding(ctx context.Context, chatID int64) {
	_ = b.states.Set(ctx, chatID, dialog.StateOnbIncome, dialog.Payload{})
	m := tgbotapi.NewMessage(chatID,
		"Привет! Я Монео — помощник по бюджету.\n\n"+
			"Пара вопросов для начала. Какой у вас месячный доход?")
	m.ReplyMarkup = navCancelKeyboard()
	b.send(m)
}

func (b *Bot) handleOnboardingInput(ctx context.Context, msg *tgbotapi.Message, userID int64, st *dialog.Item) {
	chatID := msg.Chat.ID

	switch st.State {
	case dialog.StateOnbIncome:
		income, err := parseAmount(msg.Text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Не получилось разобрать сумму. Пример: 50000"))
			return
		}
		_ = b.states.Set(ctx, chatID, dialog.StateOnbGoal, dialog.Payload{"income": income})
		m := tgbotapi.NewMessage(chatID, "Главная финансовая цель?")
		m.ReplyMarkup = onbGoalKeyboard()
		b.send(m)

	case dialog.StateOnbSituation:
		// Свободный ответ про текущую ситуацию; завершает анкету.
		goal, _ := dialog.GetString(st.Payload, "goal")
		income, _ := dialog.GetFloat(st.Payload, "income")
		score, _ := dialog.GetInt64(st.Payload, "score")
		b.finishOnboarding(ctx, chatID, userID, income, goal, strings.TrimSpace(msg.Text), int(score))
	}
}

func (b *Bot) handleOnboardingCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, userID int64) {
	chatID := cb.Message.Chat.ID
	st, _ := b.states.Get(ctx, chatID)
	data := cb.Data

	switch {
	case st.State == dialog.StateOnbGoal && strings.HasPrefix(data, "onb:goal:"):
		goal := strings.TrimPrefix(data, "onb:goal:")
		income, _ := dialog.GetFloat(st.Payload, "income")
		_ = b.states.Set(ctx, chatID, dialog.StateOnbQuizFund,
			dialog.Payload{"income": income, "goal": goal, "score": 0})
		b.editTextAndClear(chatID, cb.Message.MessageID, "Цель: "+goalLabel(goal))

		m := tgbotapi.NewMessage(chatID,
			"Проверка знаний 1/2. Сколько месяцев расходов должна покрывать финансовая подушка?")
		m.ReplyMarkup = quizFundKeyboard()
		b.send(m)

	case st.State == dialog.StateOnbQuizFund && strings.HasPrefix(data, "onb:quiz1:"):
		p := st.Payload
		if strings.TrimPrefix(data, "onb:quiz1:") == quizFundCorrect {
			p["score"] = 1
		}
		_ = b.states.Set(ctx, chatID, dialog.StateOnbQuizCredit, p)
		b.editTextAndClear(chatID, cb.Message.MessageID, "Принято.")

		m := tgbotapi.NewMessage(chatID,
			"Проверка знаний 2/2. Что сильнее всего влияет на кредитный рейтинг?")
		m.ReplyMarkup = quizCreditKeyboard()
		b.send(m)

	case st.State == dialog.StateOnbQuizCredit && strings.HasPrefix(data, "onb:quiz2:"):
		p := st.Payload
		if strings.TrimPrefix(data, "onb:quiz2:") == quizCreditCorrect {
			score, _ := dialog.GetInt64(p, "score")
			p["score"] = score + 1
		}
		_ = b.states.Set(ctx, chatID, dialog.StateOnbSituation, p)
		b.editTextAndClear(chatID, cb.Message.MessageID, "Принято.")

		m := tgbotapi.NewMessage(chatID, "Опишите в двух словах текущую финансовую ситуацию:")
		m.ReplyMarkup = navCancelKeyboard()
		b.send(m)
	}
	_ = b.answerCallback(cb, "", false)
}

func (b *Bot) finishOnboarding(ctx context.Context, chatID, userID int64, income float64, goal, situation string, knowledge int) {
	_, err := b.profiles.Upsert(ctx, profile.UpsertInput{
		UserID:             userID,
		MonthlyIncome:      income,
		PrimaryGoal:        goal,
		FinancialSituation: situation,
		KnowledgeScore:     knowledge,
	})
	if err != nil {
		b.log.Error("onboarding upsert failed", "user_id", userID, "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Не удалось сохранить анкету, попробуйте ещё раз: /start"))
		return
	}
	_ = b.states.Reset(ctx, chatID)

	m := tgbotapi.NewMessage(chatID,
		"Готово! Лимиты посчитаю по правилу 50-30-20 от дохода "+fmtMoney(income)+".\n"+
			"Кнопки снизу — отчёт, операции, подписки и отложенные покупки.")
	m.ReplyMarkup = mainReplyKeyboard()
	b.send(m)
}

func (b *Bot) handleIncomeInput(ctx context.Context, msg *tgbotapi.Message, userID int64) {
	chatID := msg.Chat.ID

	income, err := parseAmount(msg.Text)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, err.Error()+". Попробуйте ещё раз:"))
		return
	}

	if err := b.profiles.UpdateIncome(ctx, userID, income); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			b.send(tgbotapi.NewMessage(chatID, "Анкеты ещё нет — начните с /start"))
			return
		}
		b.log.Error("update income failed", "user_id", userID, "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Не удалось сохранить доход."))
		return
	}
	_ = b.states.Reset(ctx, chatID)

	b.send(tgbotapi.NewMessage(chatID,
		"Доход обновлён: "+fmtMoney(income)+". Лимиты пересчитаются в следующем отчёте."))
}

func onbGoalKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Накопить подушку", "onb:goal:emergency_fund"),
			tgbotapi.NewInlineKeyboardButtonData("Закрыть долги", "onb:goal:pay_debt"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Инвестировать", "onb:goal:invest"),
			tgbotapi.NewInlineKeyboardButtonData("Контроль трат", "onb:goal:control"),
		),
		navCancelKeyboard().InlineKeyboard[0],
	)
}

// Ключи верных ответов проверки знаний.
const (
	quizFundCorrect   = "3_6"
	quizCreditCorrect = "history"
)

func quizFundKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("1 месяц и меньше", "onb:quiz1:1"),
			tgbotapi.NewInlineKeyboardButtonData("3-6 месяцев", "onb:quiz1:3_6"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("6-12 месяцев", "onb:quiz1:6_12"),
			tgbotapi.NewInlineKeyboardButtonData("Больше года", "onb:quiz1:12p"),
		),
	)
}

func quizCreditKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("История платежей", "onb:quiz2:history"),
			tgbotapi.NewInlineKeyboardButtonData("Число кредиток", "onb:quiz2:cards"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Типы кредитов", "onb:quiz2:types"),
			tgbotapi.NewInlineKeyboardButtonData("Свежие запросы", "onb:quiz2:inquiries"),
		),
	)
}

func goalLabel(goal string) string {
	switch goal {
	case "emergency_fund":
		return "накопить подушку"
	case "pay_debt":
		return "закрыть долги"
	case "invest":
		return "инвестировать"
	case "control":
		return "контроль трат"
	default:
		return goal
	}
}
