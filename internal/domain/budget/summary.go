package budget

import (
	"sort"

	"github.com/Spok95/moneo-bot/internal/domain/ledger"
)

type CategoryStat struct {
	Category string
	Total    float64
	Count    int
}

// Summary — сводка за период по фактически записанным операциям.
// В отличие от Report, доход здесь — сумма income-операций.
type Summary struct {
	Income    float64
	Expense   float64
	TxCount   int
	Breakdown []CategoryStat
}

func Summarize(txs []ledger.Transaction) Summary {
	s := Summary{TxCount: len(txs)}
	stats := map[string]*CategoryStat{}

	for _, t := range txs {
		switch t.Type {
		case ledger.TypeIncome:
			s.Income += t.Amount
		case ledger.TypeExpense:
			s.Expense += t.Amount
			st, ok := stats[t.Category]
			if !ok {
				st = &CategoryStat{Category: t.Category}
				stats[t.Category] = st
			}
			st.Total += t.Amount
			st.Count++
		}
	}

	for _, st := range stats {
		s.Breakdown = append(s.Breakdown, *st)
	}
	sort.Slice(s.Breakdown, func(i, j int) bool {
		if s.Breakdown[i].Total != s.Breakdown[j].Total {
			return s.Breakdown[i].Total > s.Breakdown[j].Total
		}
		return s.Breakdown[i].Category < s.Breakdown[j].Category
	})
	return s
}
