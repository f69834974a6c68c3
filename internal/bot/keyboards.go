package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/moneo-bot/internal/domain/reflection"
	"github.com/Spok95/moneo-bot/internal/domain/subscriptions"
)

const (
	btnReport        = "📊 Отчёт"
	btnAddTx         = "➕ Операция"
	btnHistory       = "📜 История"
	btnSubs          = "🔁 Подписки"
	btnReflect       = "🧘 Отложенные"
	btnSummary       = "🧾 Сводка"
	btnIncome        = "💰 Доход"
	btnExport        = "📤 Выгрузка"
)

// Категории храним английскими ключами (от них зависит раскладка 50-30-20),
// пользователю показываем русские подписи.
var categoryLabels = map[string]string{
	"Rent":          "Жильё",
	"Food":          "Еда",
	"Travel":        "Транспорт",
	"Utilities":     "Коммуналка",
	"Education":     "Образование",
	"Health":        "Здоровье",
	"Shopping":      "Покупки",
	"Entertainment": "Развлечения",
	"Subscriptions": "Подписки",
	"Other":         "Другое",
	"Salary":        "Зарплата",
	"Freelance":     "Подработка",
	"Gift":          "Подарок",
}

func categoryLabel(key string) string {
	if l, ok := categoryLabels[key]; ok {
		return l
	}
	return key
}

var expenseCategories = []string{
	"Rent", "Food", "Travel", "Utilities", "Education", "Health",
	"Shopping", "Entertainment", "Other",
}

var incomeCategories = []string{"Salary", "Freelance", "Gift", "Other"}

func mainReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton(btnReport), tgbotapi.NewKeyboardButton(btnAddTx)},
			{tgbotapi.NewKeyboardButton(btnHistory), tgbotapi.NewKeyboardButton(btnSubs)},
			{tgbotapi.NewKeyboardButton(btnReflect), tgbotapi.NewKeyboardButton(btnSummary)},
			{tgbotapi.NewKeyboardButton(btnIncome), tgbotapi.NewKeyboardButton(btnExport)},
		},
	}
}

func navCancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Отменить", "nav:cancel"),
		),
	)
}

func txTypeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📉 Расход", "tx:type:expense"),
			tgbotapi.NewInlineKeyboardButtonData("📈 Доход", "tx:type:income"),
		),
		navCancelKeyboard().InlineKeyboard[0],
	)
}

func categoryKeyboard(txType string) tgbotapi.InlineKeyboardMarkup {
	cats := expenseCategories
	if txType == "income" {
		cats = incomeCategories
	}
	rows := [][]tgbotapi.InlineKeyboardButton{}
	row := []tgbotapi.InlineKeyboardButton{}
	for _, c := range cats {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(categoryLabel(c), "tx:cat:"+c))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, navCancelKeyboard().InlineKeyboard[0])
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func skipDescKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Без комментария", "tx:skipdesc"),
		),
		navCancelKeyboard().InlineKeyboard[0],
	)
}

func cycleKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Ежемесячно", "sub:cycle:monthly"),
			tgbotapi.NewInlineKeyboardButtonData("Раз в полгода", "sub:cycle:six_months"),
			tgbotapi.NewInlineKeyboardButtonData("Раз в год", "sub:cycle:yearly"),
		),
		navCancelKeyboard().InlineKeyboard[0],
	)
}

func subsListKeyboard(subs []subscriptions.Subscription) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, s := range subs {
		title := fmt.Sprintf("%s %s — ₽%.0f/мес", badge(s.Active), s.Name, s.MonthlyCost())
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(title, fmt.Sprintf("sub:toggle:%d", s.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("➕ Добавить подписку", "sub:add"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func reflectListKeyboard(items []reflection.Item) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Добавить", "refl:add"),
		),
	}
	if len(items) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏱ Следить за отсчётом", "refl:watch"),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func decideKeyboard(itemID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 Купил(а)", fmt.Sprintf("refl:buy:%d", itemID)),
			tgbotapi.NewInlineKeyboardButtonData("👍 Пропускаю", fmt.Sprintf("refl:skip:%d", itemID)),
		),
	)
}

func summaryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Этот месяц", "sum:this_month"),
			tgbotapi.NewInlineKeyboardButtonData("Прошлый месяц", "sum:last_month"),
			tgbotapi.NewInlineKeyboardButtonData("Всё время", "sum:all"),
		),
	)
}

// Бейдж активности
func badge(b bool) string {
	if b {
		return "🟢"
	}
	return "🚫"
}
