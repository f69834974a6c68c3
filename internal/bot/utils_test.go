package bot

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"200", 200, false},
		{" 1 200,50 ", 1200.50, false},
		{"1200.50", 1200.50, false},
		{"₽500", 500, false},
		{"0", 0, true},
		{"-10", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAmount(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"15", 15, false},
		{" 1 ", 1, false},
		{"1440", 1440, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"1.5", 0, true},
		{"час", 0, true},
	}
	for _, tt := range tests {
		got, err := parseMinutes(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseMinutes(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseMinutes(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFmtMoney(t *testing.T) {
	if got := fmtMoney(200); got != "₽200" {
		t.Errorf("fmtMoney(200) = %q", got)
	}
	if got := fmtMoney(166.67); got != "₽166.67" {
		t.Errorf("fmtMoney(166.67) = %q", got)
	}
}
