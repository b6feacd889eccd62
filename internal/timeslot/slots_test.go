package timeslot

import (
	"errors"
	"testing"
)

func mustInterval(t *testing.T, start, end int) Interval {
	t.Helper()
	i, err := NewInterval(start, end)
	if err != nil {
		t.Fatalf("NewInterval(%d,%d): %v", start, end, err)
	}
	return i
}

func TestSlots_HappyPath(t *testing.T) {
	working := mustInterval(t, 540, 1020) // 09:00-17:00
	slots, err := Slots(working, 60, 30, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
	if slots[0].String() != "09:00" {
		t.Errorf("first slot: expected 09:00, got %s", slots[0])
	}
	if slots[len(slots)-1].String() != "16:00" {
		t.Errorf("last slot: expected 16:00, got %s", slots[len(slots)-1])
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].Minutes() <= slots[i-1].Minutes() {
			t.Fatalf("slots not ascending at %d: %s after %s", i, slots[i], slots[i-1])
		}
	}
}

func TestSlots_BreakCarveOut(t *testing.T) {
	working := mustInterval(t, 540, 1020)
	lunch := mustInterval(t, 720, 780) // 12:00-13:00
	slots, err := Slots(working, 60, 30, []Interval{lunch})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range slots {
		span := Interval{Start: s.Minutes(), End: s.Minutes() + 60}
		if span.Overlaps(lunch) {
			t.Errorf("slot %s overlaps the break", s)
		}
	}
	// 11:30, 12:00 and 12:30 starts all collide with a 60-minute duration.
	for _, banned := range []string{"11:30", "12:00", "12:30"} {
		for _, s := range slots {
			if s.String() == banned {
				t.Errorf("slot %s should be carved out", banned)
			}
		}
	}
}

func TestSlots_ContainmentAndConflictExclusion(t *testing.T) {
	working := mustInterval(t, 540, 1020)
	occupied := []Interval{
		mustInterval(t, 600, 660),
		mustInterval(t, 840, 930),
	}
	slots, err := Slots(working, 45, 15, occupied)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range slots {
		span := Interval{Start: s.Minutes(), End: s.Minutes() + 45}
		if !working.Contains(span) {
			t.Errorf("slot %s escapes working hours", s)
		}
		for _, o := range occupied {
			if span.Overlaps(o) {
				t.Errorf("slot %s overlaps occupied %v", s, o)
			}
		}
	}
}

func TestSlots_AdjacentBookingAllowed(t *testing.T) {
	working := mustInterval(t, 540, 660)
	booked := mustInterval(t, 540, 600)
	slots, err := Slots(working, 60, 30, []Interval{booked})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 1 || slots[0].String() != "10:00" {
		t.Fatalf("expected single slot 10:00 back-to-back with booking, got %v", slots)
	}
}

func TestSlots_DurationExceedsWindow(t *testing.T) {
	working := mustInterval(t, 540, 570)
	slots, err := Slots(working, 60, 30, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots, got %v", slots)
	}
}

func TestSlots_InvalidInputs(t *testing.T) {
	working := mustInterval(t, 540, 1020)
	if _, err := Slots(working, 0, 30, nil); !errors.Is(err, ErrInvalidStep) {
		t.Errorf("expected ErrInvalidStep for zero duration, got %v", err)
	}
	if _, err := Slots(working, 30, 0, nil); !errors.Is(err, ErrInvalidStep) {
		t.Errorf("expected ErrInvalidStep for zero step, got %v", err)
	}
	if _, err := Slots(working, 30, -15, nil); !errors.Is(err, ErrInvalidStep) {
		t.Errorf("expected ErrInvalidStep for negative step, got %v", err)
	}
	// oversized durations would overflow start+duration in the scan
	if _, err := Slots(working, MinutesPerDay+1, 30, nil); !errors.Is(err, ErrInvalidStep) {
		t.Errorf("expected ErrInvalidStep for oversized duration, got %v", err)
	}
	if _, err := Slots(working, 1<<60, 30, nil); !errors.Is(err, ErrInvalidStep) {
		t.Errorf("expected ErrInvalidStep for huge duration, got %v", err)
	}
}
