package bot

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

/*** HELPERS ***/

// parseAmount принимает «1 200,50», «1200.50», «₽500» и т.п.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₽")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("не похоже на сумму: %q", s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("сумма должна быть больше нуля")
	}
	return v, nil
}

// parseMinutes — целое число минут ожидания, строго положительное.
func parseMinutes(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("введите целое число минут")
	}
	if n <= 0 {
		return 0, fmt.Errorf("минуты должны быть больше нуля")
	}
	return n, nil
}

func (b *Bot) editTextAndClear(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, messageID, text,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	)
	b.send(edit)
}

func fmtMoney(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("₽%.0f", v)
	}
	return fmt.Sprintf("₽%.2f", v)
}
