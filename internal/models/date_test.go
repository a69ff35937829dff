package models

import (
	"testing"
	"time"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		day  string
		want string
	}{
		{"2024-03-18", "2024-03-18"}, // Monday
		{"2024-03-20", "2024-03-18"}, // Wednesday
		{"2024-03-24", "2024-03-18"}, // Sunday belongs to the week that started Monday
		{"2024-03-25", "2024-03-25"},
		{"2024-01-03", "2024-01-01"},
		{"2023-12-31", "2023-12-25"},
	}

	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			d, err := ParseDate(tt.day, time.UTC)
			if err != nil {
				t.Fatalf("ParseDate failed: %v", err)
			}
			if got := FormatDate(WeekStart(d)); got != tt.want {
				t.Errorf("WeekStart(%s) = %s, want %s", tt.day, got, tt.want)
			}
		})
	}
}

func TestWorkweek(t *testing.T) {
	d, _ := ParseDate("2024-03-20", time.UTC)
	got := Workweek(d)
	want := []string{"2024-03-18", "2024-03-19", "2024-03-20", "2024-03-21", "2024-03-22"}
	if len(got) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("day %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "20.03.2024", "2024-3-20", "2024-02-30"} {
		if _, err := ParseDate(s, time.UTC); err == nil {
			t.Errorf("ParseDate(%q): expected error", s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []Status{StatusAbsent, StatusPresent, StatusPresentWithDog} {
		got, err := ParseStatus(string(s))
		if err != nil || got != s {
			t.Errorf("ParseStatus(%q) = %q, %v", s, got, err)
		}
	}
	if _, err := ParseStatus("on_vacation"); err == nil {
		t.Error("expected error for unknown status")
	}
	if !StatusPresentWithDog.Active() || !StatusPresent.Active() || StatusAbsent.Active() {
		t.Error("Active() mismatch")
	}
}
