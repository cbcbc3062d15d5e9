package helpers

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "08:00", want: 8 * 60},
		{in: "8:00", want: 8 * 60},
		{in: "08:00:00", want: 8 * 60},
		{in: "08:00:00.0000000", want: 8 * 60},
		{in: " 19:30 ", want: 19*60 + 30},
		{in: "23:59", want: 23*60 + 59},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q): expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got.Minutes != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %d minutes, want %d", tc.in, got.Minutes, tc.want)
		}
	}
}

func TestTimeOfDayContains(t *testing.T) {
	slot := NewTimeOfDay(9, 30)

	if !slot.Contains(NewTimeOfDay(9, 30), time.Hour) {
		t.Error("slot start should be contained")
	}
	if !slot.Contains(NewTimeOfDay(10, 29), time.Hour) {
		t.Error("last minute of the slot should be contained")
	}
	if slot.Contains(NewTimeOfDay(10, 30), time.Hour) {
		t.Error("slot end is exclusive")
	}
	if slot.Contains(NewTimeOfDay(9, 29), time.Hour) {
		t.Error("minute before the slot should not be contained")
	}
}

func TestTimeOfDayString(t *testing.T) {
	if got := NewTimeOfDay(8, 0).String(); got != "08:00" {
		t.Errorf("String() = %q, want 08:00", got)
	}
	if got := NewTimeOfDay(16, 30).String(); got != "16:30" {
		t.Errorf("String() = %q, want 16:30", got)
	}
}

func TestTimeOfDayFromTime(t *testing.T) {
	ts := time.Date(2025, 6, 18, 13, 30, 45, 0, time.UTC)
	got := TimeOfDayFromTime(ts)
	if got.Minutes != 13*60+30 {
		t.Errorf("TimeOfDayFromTime = %d minutes, want %d", got.Minutes, 13*60+30)
	}
}
