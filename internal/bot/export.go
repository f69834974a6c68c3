package bot

import (
	"bytes"
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"

	"github.com/Spok95/moneo-bot/internal/domain/budget"
	"github.com/Spok95/moneo-bot/internal/domain/ledger"
)

// exportMonth — операции текущего месяца и сводка 50-30-20 одним xlsx-файлом.
func (b *Bot) exportMonth(ctx context.Context, chatID, userID int64) {
	now := b.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	txs, err := b.ledger.ListByUserRange(ctx, userID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Не удалось загрузить операции."))
		return
	}
	if len(txs) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "За этот месяц операций нет, выгружать нечего."))
		return
	}

	rep, err := b.budget.Report(ctx, userID)
	if err != nil {
		b.log.Error("build report for export failed", "user_id", userID, "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Не удалось построить сводку."))
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, "Операции"); err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Ошибка формирования файла."))
		return
	}
	sheet = "Операции"

	header := []interface{}{"Дата", "Тип", "Категория", "Сумма", "Комментарий"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Ошибка формирования файла (заголовок)."))
		return
	}

	row := 2
	for _, t := range txs {
		txType := "расход"
		if t.Type == ledger.TypeIncome {
			txType = "доход"
		}
		excelRow := []interface{}{
			t.Date.Format("02.01.2006"),
			txType,
			categoryLabel(t.Category),
			t.Amount,
			t.Description,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Ошибка формирования файла (ячейки)."))
			return
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Ошибка формирования файла (строки)."))
			return
		}
		row++
	}

	if err := writeSummarySheet(f, rep); err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Ошибка формирования файла (сводка)."))
		return
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Ошибка записи файла."))
		return
	}

	fileName := fmt.Sprintf("moneo_%s.xlsx", now.Format("2006_01"))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fileName,
		Bytes: buf.Bytes(),
	})
	doc.Caption = fmt.Sprintf("Операции за %s и сводка 50-30-20.", now.Format("01.2006"))
	b.send(doc)
}

func writeSummarySheet(f *excelize.File, rep budget.Report) error {
	const sheet = "Сводка"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Корзина", "Потрачено", "Лимит", "Процент", "Статус"},
		{rep.Essentials.Label, rep.Essentials.Spent, rep.Essentials.Limit, rep.Essentials.Percent, string(rep.Essentials.Status)},
		{rep.Lifestyle.Label, rep.Lifestyle.Spent, rep.Lifestyle.Limit, rep.Lifestyle.Percent, string(rep.Lifestyle.Status)},
		{rep.Savings.Label, rep.Savings.Spent, rep.Savings.Limit, rep.Savings.Percent, string(rep.Savings.Status)},
		{},
		{"Доход", rep.Income},
		{"Потрачено всего", rep.TotalSpent},
		{"Остаток", rep.NetSavings},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
