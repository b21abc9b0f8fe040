package cli

import "testing"

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-2500, "-2,500"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{50, "+50"},
		{1500, "+1,500"},
		{-500, "-500"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := FormatSigned(tt.in); got != tt.want {
			t.Errorf("FormatSigned(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		calories, goal int
		want           string
	}{
		{1650, 2000, "350 deficit"},
		{2000, 2000, "0 deficit"},
		{3250, 2000, "1,250 surplus"},
	}
	for _, tt := range tests {
		if got := FormatBalance(tt.calories, tt.goal); got != tt.want {
			t.Errorf("FormatBalance(%d, %d) = %q, want %q", tt.calories, tt.goal, got, tt.want)
		}
	}
}

func TestFormatCaloriesAndLbs(t *testing.T) {
	if got := FormatCalories(1850); got != "1,850 kcal" {
		t.Errorf("FormatCalories(1850) = %q", got)
	}
	if got := FormatLbs(1.04); got != "1.0 lbs/wk" {
		t.Errorf("FormatLbs(1.04) = %q", got)
	}
	if got := FormatPercent(82.4); got != "82%" {
		t.Errorf("FormatPercent(82.4) = %q", got)
	}
}
