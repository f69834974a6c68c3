package subscriptions

import "testing"

func TestMonthlyCost(t *testing.T) {
	tests := []struct {
		name  string
		cost  float64
		cycle BillingCycle
		want  float64
	}{
		{"monthly as-is", 200, CycleMonthly, 200},
		{"six months divided", 1200, CycleSixMonths, 200},
		{"six months rounded", 1000, CycleSixMonths, 167},
		{"yearly divided", 1200, CycleYearly, 100},
		{"yearly rounded", 999, CycleYearly, 83},
		{"monthly fraction rounded", 199.5, CycleMonthly, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Subscription{Cost: tt.cost, BillingCycle: tt.cycle}
			if got := s.MonthlyCost(); got != tt.want {
				t.Errorf("MonthlyCost() = %v, want %v", got, tt.want)
			}
		})
	}
}
