// utils/utils_test.go
package utils

import (
	"strings"
	"testing"
	"time"
)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+14155550100", true},
		{"+44 20 7183 8750", true},
		{"(415) 555-0100", true},
		{"91234567", true},
		{"+0123456", false},
		{"not-a-phone", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			if got := ValidatePhone(tt.phone); got != tt.want {
				t.Errorf("ValidatePhone(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"same day", time.Date(2025, 1, 15, 9, 0, 0, 0, loc), time.Date(2025, 1, 15, 23, 0, 0, 0, loc), 0},
		{"next day across times", time.Date(2025, 1, 15, 23, 0, 0, 0, loc), time.Date(2025, 1, 16, 1, 0, 0, 0, loc), 1},
		{"a week", time.Date(2025, 1, 1, 0, 0, 0, 0, loc), time.Date(2025, 1, 8, 0, 0, 0, 0, loc), 7},
		{"negative when reversed", time.Date(2025, 1, 8, 0, 0, 0, 0, loc), time.Date(2025, 1, 1, 0, 0, 0, 0, loc), -7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.start, tt.end); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBeginningOfMonth(t *testing.T) {
	got := BeginningOfMonth(time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC))
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("BeginningOfMonth() = %v, want %v", got, want)
	}
}

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(6)
	if len(s) != 6 {
		t.Fatalf("length = %d, want 6", len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune(randomAlphabet, r) {
			t.Errorf("unexpected character %q", r)
		}
	}
}

func TestGenerateInvoiceNumber(t *testing.T) {
	at := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	num := GenerateInvoiceNumber(at)
	if !strings.HasPrefix(num, "INV-20250115-") {
		t.Errorf("invoice number %q missing date prefix", num)
	}
	if len(num) != len("INV-20250115-")+6 {
		t.Errorf("invoice number %q has wrong suffix length", num)
	}
}
