package budget

import (
	"fmt"
	"sort"
	"time"

	"github.com/Spok95/moneo-bot/internal/domain/ledger"
)

type Status string

const (
	StatusOK       Status = "ok"
	StatusWarning  Status = "warning"
	StatusExceeded Status = "exceeded"
	StatusOnTrack  Status = "on_track"
	StatusBehind   Status = "behind"
)

// Доли правила 50-30-20 от заявленного месячного дохода.
const (
	shareEssentials = 0.50
	shareLifestyle  = 0.30
	shareSavings    = 0.20
)

// warningRatio — порог «жёлтого» статуса, включительно.
const warningRatio = 0.85

// essentialsSet — закрытый список базовых категорий; всё прочее,
// включая неизвестные категории, попадает в «Лайфстайл».
var essentialsSet = map[string]struct{}{
	"Rent":       {},
	"Food":       {},
	"Travel":     {},
	"Utilities":  {},
	"Education":  {},
	"Health":     {},
	"Essentials": {},
}

// IsEssential сообщает, относится ли категория расхода к базовым.
func IsEssential(category string) bool {
	_, ok := essentialsSet[category]
	return ok
}

type Bucket struct {
	Label   string
	Limit   float64
	Spent   float64
	Status  Status
	Percent float64
}

type CategorySpend struct {
	Category string
	Amount   float64
}

type Report struct {
	Income     float64
	TotalSpent float64
	NetSavings float64

	Essentials Bucket
	Lifestyle  Bucket
	Savings    Bucket

	Alerts           []string
	InvestmentAdvice string // пусто — совета нет
	ByCategory       []CategorySpend
}

// BuildReport строит бюджетный отчёт за месяц now по правилу 50-30-20.
// income — заявленный месячный доход из анкеты, не сумма income-операций.
func BuildReport(income float64, txs []ledger.Transaction, now time.Time) Report {
	spentEssentials := 0.0
	spentLifestyle := 0.0
	byCategory := map[string]float64{}

	for _, t := range txs {
		if t.Type != ledger.TypeExpense {
			continue
		}
		if t.Date.Month() != now.Month() || t.Date.Year() != now.Year() {
			continue
		}
		byCategory[t.Category] += t.Amount
		if IsEssential(t.Category) {
			spentEssentials += t.Amount
		} else {
			spentLifestyle += t.Amount
		}
	}

	limitEssentials := income * shareEssentials
	limitLifestyle := income * shareLifestyle
	goalSavings := income * shareSavings

	totalSpent := spentEssentials + spentLifestyle
	netSavings := income - totalSpent

	rep := Report{
		Income:     income,
		TotalSpent: totalSpent,
		NetSavings: netSavings,
		Essentials: Bucket{
			Label:   "Базовые (50%)",
			Limit:   limitEssentials,
			Spent:   spentEssentials,
			Status:  spendStatus(spentEssentials, limitEssentials),
			Percent: spendPercent(spentEssentials, limitEssentials),
		},
		Lifestyle: Bucket{
			Label:   "Лайфстайл (30%)",
			Limit:   limitLifestyle,
			Spent:   spentLifestyle,
			Status:  spendStatus(spentLifestyle, limitLifestyle),
			Percent: spendPercent(spentLifestyle, limitLifestyle),
		},
		Savings: Bucket{
			Label:   "Сбережения (20%)",
			Limit:   goalSavings,
			Spent:   netSavings,
			Status:  savingsStatus(netSavings, goalSavings),
			Percent: savingsPercent(netSavings, goalSavings),
		},
	}

	if spentEssentials > limitEssentials {
		rep.Alerts = append(rep.Alerts,
			fmt.Sprintf("Базовые траты превышены на ₽%.0f — это съедает ваши сбережения.", spentEssentials-limitEssentials))
	}
	if spentLifestyle > limitLifestyle {
		rep.Alerts = append(rep.Alerts,
			fmt.Sprintf("Лайфстайл превышен на ₽%.0f — сократите покупки или подписки.", spentLifestyle-limitLifestyle))
	}
	if netSavings < goalSavings {
		rep.Alerts = append(rep.Alerts,
			fmt.Sprintf("До цели по сбережениям ₽%.0f не хватает ₽%.0f.", goalSavings, goalSavings-netSavings))
	}

	rep.InvestmentAdvice = adviceFor(netSavings)

	for cat, sum := range byCategory {
		rep.ByCategory = append(rep.ByCategory, CategorySpend{Category: cat, Amount: sum})
	}
	sort.Slice(rep.ByCategory, func(i, j int) bool {
		if rep.ByCategory[i].Amount != rep.ByCategory[j].Amount {
			return rep.ByCategory[i].Amount > rep.ByCategory[j].Amount
		}
		return rep.ByCategory[i].Category < rep.ByCategory[j].Category
	})

	return rep
}

func spendStatus(spent, limit float64) Status {
	switch {
	case spent > limit:
		return StatusExceeded
	case spent >= limit*warningRatio && spent > 0:
		return StatusWarning
	default:
		return StatusOK
	}
}

func savingsStatus(net, goal float64) Status {
	if net >= goal {
		return StatusOnTrack
	}
	return StatusBehind
}

// spendPercent — min(spent/limit*100, 100); нулевой лимит при ненулевых
// тратах трактуем как полностью выбранный.
func spendPercent(spent, limit float64) float64 {
	if limit <= 0 {
		if spent > 0 {
			return 100
		}
		return 0
	}
	p := spent / limit * 100
	if p > 100 {
		return 100
	}
	return p
}

// savingsPercent зажат с обеих сторон: сбережения могут быть отрицательными.
func savingsPercent(net, goal float64) float64 {
	if goal <= 0 {
		if net >= 0 {
			return 100
		}
		return 0
	}
	p := net / goal * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// adviceFor — лестница инвестиционных советов: показываем только верхнюю
// достигнутую ступень, ниже ₽100 совета нет.
func adviceFor(netSavings float64) string {
	switch {
	case netSavings > 2000:
		return "Отличные сбережения! С ₽2000+ стоит подумать об индексных фондах или небольшом регулярном взносе."
	case netSavings > 1500:
		return "Свыше ₽1500 лежит без дела — не отдавайте их инфляции, посмотрите на ликвидные фонды."
	case netSavings > 1000:
		return "Хороший рубеж! ₽1000 пройдена — держите эту сумму как подушку безопасности."
	case netSavings > 500:
		return "Хорошее начало! Уже ₽500+, следующая цель — ₽1000."
	case netSavings > 100:
		return "Большой путь начинается с малого: первые ₽100 отложены."
	default:
		return ""
	}
}
