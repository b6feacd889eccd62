package timeslot

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		hour    int
		minute  int
		wantErr bool
	}{
		{"09:00", 9, 0, false},
		{"00:00", 0, 0, false},
		{"23:59", 23, 59, false},
		{"12:30", 12, 30, false},
		{"9:00", 0, 0, true},
		{"24:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"12-30", 0, 0, true},
		{"ab:cd", 0, 0, true},
		{"", 0, 0, true},
		{"12:3", 0, 0, true},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q): expected error", tc.in)
			} else if !errors.Is(err, ErrInvalidTime) {
				t.Errorf("ParseTimeOfDay(%q): expected ErrInvalidTime, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got.Hour != tc.hour || got.Minute != tc.minute {
			t.Errorf("ParseTimeOfDay(%q) = %v, want %02d:%02d", tc.in, got, tc.hour, tc.minute)
		}
	}
}

func TestMinutesRoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m++ {
		tod, err := FromMinutes(m)
		if err != nil {
			t.Fatalf("FromMinutes(%d): unexpected error: %v", m, err)
		}
		if tod.Minutes() != m {
			t.Fatalf("round trip failed: %d -> %v -> %d", m, tod, tod.Minutes())
		}
	}
}

func TestFromMinutes_OutOfRange(t *testing.T) {
	for _, m := range []int{-1, MinutesPerDay, MinutesPerDay + 30} {
		if _, err := FromMinutes(m); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("FromMinutes(%d): expected ErrOutOfRange, got %v", m, err)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	tod := TimeOfDay{Hour: 9, Minute: 5}
	if tod.String() != "09:05" {
		t.Errorf("expected 09:05, got %s", tod.String())
	}
}

func TestTimeOfDayJSON(t *testing.T) {
	b, err := json.Marshal(TimeOfDay{Hour: 14, Minute: 30})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `"14:30"` {
		t.Errorf("expected \"14:30\", got %s", b)
	}

	var tod TimeOfDay
	if err := json.Unmarshal([]byte(`"08:15"`), &tod); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tod.Hour != 8 || tod.Minute != 15 {
		t.Errorf("expected 08:15, got %v", tod)
	}
	if err := json.Unmarshal([]byte(`"8:15"`), &tod); err == nil {
		t.Error("expected error for single-digit hour")
	}
}

func TestWeekday(t *testing.T) {
	// 2026-08-31 is a Monday, 2026-09-06 a Sunday.
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		got := Weekday(monday.AddDate(0, 0, i))
		if got != i {
			t.Errorf("Weekday(%v) = %d, want %d", monday.AddDate(0, 0, i), got, i)
		}
	}
}
