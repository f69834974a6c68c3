package profile

import "time"

// Profile — анкета онбординга. MonthlyIncome — единственный источник
// дохода для бюджетного отчёта, разовые income-операции на него не влияют.
type Profile struct {
	UserID             int64
	MonthlyIncome      float64
	PrimaryGoal        string
	FinancialSituation string
	KnowledgeScore     int
	UpdatedAt          time.Time
}
