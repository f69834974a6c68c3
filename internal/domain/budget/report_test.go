package budget

import (
	"strings"
	"testing"
	"time"

	"github.com/Spok95/moneo-bot/internal/domain/ledger"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func expense(category string, amount float64, date time.Time) ledger.Transaction {
	return ledger.Transaction{Type: ledger.TypeExpense, Category: category, Amount: amount, Date: date}
}

func TestBucketingTotality(t *testing.T) {
	essentials := []string{"Rent", "Food", "Travel", "Utilities", "Education", "Health", "Essentials"}
	for _, c := range essentials {
		if !IsEssential(c) {
			t.Errorf("category %q must be essential", c)
		}
	}
	lifestyle := []string{"Shopping", "Entertainment", "Subscriptions", "Other", "Lifestyle", "Кофе", "completely-unknown", ""}
	for _, c := range lifestyle {
		if IsEssential(c) {
			t.Errorf("category %q must fall through to lifestyle", c)
		}
	}
}

func TestUnknownCategoryNotDropped(t *testing.T) {
	rep := BuildReport(10000, []ledger.Transaction{
		expense("something-new", 300, testNow),
	}, testNow)

	if rep.Lifestyle.Spent != 300 {
		t.Fatalf("unknown category must land in lifestyle, got %v", rep.Lifestyle.Spent)
	}
	if rep.TotalSpent != 300 {
		t.Fatalf("TotalSpent = %v, want 300", rep.TotalSpent)
	}
	if len(rep.ByCategory) != 1 || rep.ByCategory[0].Category != "something-new" {
		t.Fatalf("breakdown must keep raw category, got %+v", rep.ByCategory)
	}
}

func TestStatusBoundaries(t *testing.T) {
	// Лимит базовых = 1000 при доходе 2000.
	tests := []struct {
		name  string
		spent float64
		want  Status
	}{
		{"well under", 500, StatusOK},
		{"just below warning", 849, StatusOK},
		{"exactly at 0.85", 850, StatusWarning},
		{"between warning and limit", 999, StatusWarning},
		{"exactly at limit", 1000, StatusWarning},
		{"over limit", 1000.01, StatusExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := BuildReport(2000, []ledger.Transaction{expense("Rent", tt.spent, testNow)}, testNow)
			if rep.Essentials.Status != tt.want {
				t.Errorf("spent %v: status = %s, want %s", tt.spent, rep.Essentials.Status, tt.want)
			}
		})
	}
}

func TestZeroIncome(t *testing.T) {
	rep := BuildReport(0, []ledger.Transaction{expense("Food", 50, testNow)}, testNow)

	if rep.Essentials.Status != StatusExceeded {
		t.Errorf("zero limit with spend must read exceeded, got %s", rep.Essentials.Status)
	}
	if rep.Essentials.Percent != 100 {
		t.Errorf("zero limit with spend: percent = %v, want 100", rep.Essentials.Percent)
	}
	if rep.Lifestyle.Status != StatusOK || rep.Lifestyle.Percent != 0 {
		t.Errorf("zero limit without spend must stay ok/0%%, got %s/%v", rep.Lifestyle.Status, rep.Lifestyle.Percent)
	}
	if rep.Savings.Status != StatusBehind {
		t.Errorf("negative net savings vs zero goal: status = %s, want behind", rep.Savings.Status)
	}
	if rep.Savings.Percent != 0 {
		t.Errorf("negative net savings: percent = %v, want 0", rep.Savings.Percent)
	}
}

func TestSavingsPercentClampedBothSides(t *testing.T) {
	// Доход 1000, цель 200.
	over := BuildReport(1000, nil, testNow)
	if over.Savings.Percent != 100 {
		t.Errorf("net above goal: percent = %v, want 100", over.Savings.Percent)
	}

	// Траты больше дохода — сбережения отрицательные.
	under := BuildReport(1000, []ledger.Transaction{expense("Rent", 1500, testNow)}, testNow)
	if under.NetSavings != -500 {
		t.Fatalf("NetSavings = %v, want -500", under.NetSavings)
	}
	if under.Savings.Percent != 0 {
		t.Errorf("negative net: percent = %v, want 0", under.Savings.Percent)
	}
}

func TestEssentialsExceededScenario(t *testing.T) {
	// Сценарий из требований: доход 50000, базовые траты 26000.
	rep := BuildReport(50000, []ledger.Transaction{expense("Rent", 26000, testNow)}, testNow)

	if rep.Essentials.Spent != 26000 {
		t.Errorf("Spent = %v, want 26000", rep.Essentials.Spent)
	}
	if rep.Essentials.Limit != 25000 {
		t.Errorf("Limit = %v, want 25000", rep.Essentials.Limit)
	}
	if rep.Essentials.Status != StatusExceeded {
		t.Errorf("Status = %s, want exceeded", rep.Essentials.Status)
	}

	found := false
	for _, a := range rep.Alerts {
		if strings.Contains(a, "Базовые") && strings.Contains(a, "1000") {
			found = true
		}
	}
	if !found {
		t.Errorf("alerts must mention essentials overage of 1000, got %v", rep.Alerts)
	}
}

func TestAlertsIndependentlyTriggerable(t *testing.T) {
	// Доход 1000: лимиты 500/300, цель 200. Переберём все три алерта разом.
	rep := BuildReport(1000, []ledger.Transaction{
		expense("Rent", 600, testNow),
		expense("Shopping", 400, testNow),
	}, testNow)

	if len(rep.Alerts) != 3 {
		t.Fatalf("want 3 alerts, got %d: %v", len(rep.Alerts), rep.Alerts)
	}

	clean := BuildReport(1000, nil, testNow)
	if len(clean.Alerts) != 0 {
		t.Fatalf("no spend must produce no alerts, got %v", clean.Alerts)
	}
}

func TestAdviceLadder(t *testing.T) {
	tests := []struct {
		net  float64
		want string // подстрока ступени; пусто — совета нет
	}{
		{50, ""},
		{150, "₽100"},
		{600, "₽500"},
		{1100, "₽1000 пройдена"},
		{1600, "₽1500"},
		{2100, "₽2000"},
	}
	for _, tt := range tests {
		got := adviceFor(tt.net)
		if tt.want == "" {
			if got != "" {
				t.Errorf("net %v: want no advice, got %q", tt.net, got)
			}
			continue
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("net %v: advice %q must mention %q", tt.net, got, tt.want)
		}
	}
}

func TestAdviceLadderViaReport(t *testing.T) {
	// Чистые сбережения 9800 — верхняя ступень, ровно один совет.
	rep := BuildReport(10000, []ledger.Transaction{expense("Subscriptions", 200, testNow)}, testNow)
	if rep.NetSavings != 9800 {
		t.Fatalf("NetSavings = %v, want 9800", rep.NetSavings)
	}
	if !strings.Contains(rep.InvestmentAdvice, "₽2000") {
		t.Errorf("advice must be the top rung, got %q", rep.InvestmentAdvice)
	}
}

func TestOtherMonthsIgnored(t *testing.T) {
	prevMonth := testNow.AddDate(0, -1, 0)
	sameMonthLastYear := testNow.AddDate(-1, 0, 0)
	rep := BuildReport(10000, []ledger.Transaction{
		expense("Rent", 100, testNow),
		expense("Rent", 9999, prevMonth),
		expense("Rent", 9999, sameMonthLastYear),
	}, testNow)

	if rep.TotalSpent != 100 {
		t.Errorf("only current calendar month counts, TotalSpent = %v, want 100", rep.TotalSpent)
	}
}

func TestIncomeTransactionsDoNotChangeLimits(t *testing.T) {
	rep := BuildReport(1000, []ledger.Transaction{
		{Type: ledger.TypeIncome, Category: "Salary", Amount: 99999, Date: testNow},
		expense("Food", 100, testNow),
	}, testNow)

	if rep.Income != 1000 {
		t.Errorf("declared income only: Income = %v, want 1000", rep.Income)
	}
	if rep.NetSavings != 900 {
		t.Errorf("NetSavings = %v, want 900", rep.NetSavings)
	}
}

func TestSummarize(t *testing.T) {
	txs := []ledger.Transaction{
		{Type: ledger.TypeIncome, Category: "Salary", Amount: 500, Date: testNow},
		expense("Food", 120, testNow),
		expense("Food", 80, testNow),
		expense("Shopping", 300, testNow),
	}
	s := Summarize(txs)

	if s.Income != 500 || s.Expense != 500 || s.TxCount != 4 {
		t.Fatalf("summary totals = %+v", s)
	}
	if len(s.Breakdown) != 2 {
		t.Fatalf("breakdown len = %d, want 2", len(s.Breakdown))
	}
	if s.Breakdown[0].Category != "Shopping" || s.Breakdown[0].Total != 300 {
		t.Errorf("breakdown must be sorted by total desc, got %+v", s.Breakdown)
	}
	if s.Breakdown[1].Category != "Food" || s.Breakdown[1].Count != 2 {
		t.Errorf("food stat wrong: %+v", s.Breakdown[1])
	}
}
