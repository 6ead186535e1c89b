package clock

import (
	"testing"
	"time"
)

func TestSystemNowProgresses(t *testing.T) {
	c := System()
	a := c.Now()
	b := c.Now()
	if b.Before(a) {
		t.Errorf("system clock went backwards: %v then %v", a, b)
	}
}

func TestManualAdvance(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewManual(start)

	if got := m.Now(); !got.Equal(start) {
		t.Fatalf("expected %v, got %v", start, got)
	}

	m.Advance(30 * time.Second)
	if got := m.Now(); !got.Equal(start.Add(30 * time.Second)) {
		t.Errorf("expected %v, got %v", start.Add(30*time.Second), got)
	}
}

func TestManualAdvanceNegativeIgnored(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewManual(start)

	m.Advance(-time.Minute)
	if got := m.Now(); !got.Equal(start) {
		t.Errorf("negative advance moved the clock: %v", got)
	}
}

func TestManualSet(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	target := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	m.Set(target)
	if got := m.Now(); !got.Equal(target) {
		t.Errorf("expected %v, got %v", target, got)
	}
}
