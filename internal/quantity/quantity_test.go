package quantity

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"2500", 2500},
		{" 120 ", 120},
		{"-50", -50},
		{"250+180", 430},
		{"2*95", 190},
		{"(100 + 50) * 2", 300},
		{"12.6", 13},
		{"1000/3", 333},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "banana + 1", `"100"`, "true", "1/0"} {
		if _, err := Parse(in); !errors.Is(err, ErrNotNumeric) {
			t.Errorf("Parse(%q) err = %v, want ErrNotNumeric", in, err)
		}
	}
}

func TestParse_OutOfRange(t *testing.T) {
	if _, err := Parse("99999999"); err == nil {
		t.Fatal("Parse(99999999) succeeded, want range error")
	}
	if _, err := Parse("5000*5000"); err == nil {
		t.Fatal("Parse(5000*5000) succeeded, want range error")
	}
}
