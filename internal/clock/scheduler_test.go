package clock

import (
	"testing"
	"time"
)

func TestManual_RunsDueTasksInOrder(t *testing.T) {
	m := NewManual(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	var order []string

	m.AfterFunc(2*time.Second, func() { order = append(order, "second") })
	m.AfterFunc(1*time.Second, func() {
		order = append(order, "first")
		m.AfterFunc(500*time.Millisecond, func() { order = append(order, "nested") })
	})
	m.AfterFunc(5*time.Second, func() { order = append(order, "late") })

	m.Advance(2 * time.Second)

	want := []string{"first", "nested", "second"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
	if m.Pending() != 1 {
		t.Errorf("expected 1 pending task, got %d", m.Pending())
	}
}

func TestManual_StopCancels(t *testing.T) {
	m := NewManual(time.Time{})
	ran := false
	timer := m.AfterFunc(time.Second, func() { ran = true })

	if !timer.Stop() {
		t.Fatal("expected Stop to report cancellation")
	}
	if timer.Stop() {
		t.Error("expected second Stop to report false")
	}

	m.Advance(time.Minute)
	if ran {
		t.Error("expected stopped task not to run")
	}
}

func TestManual_NowAdvances(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManual(start)
	var at time.Time
	m.AfterFunc(3*time.Second, func() { at = m.Now() })

	m.Advance(10 * time.Second)

	if !at.Equal(start.Add(3 * time.Second)) {
		t.Errorf("expected task to observe %v, got %v", start.Add(3*time.Second), at)
	}
	if !m.Now().Equal(start.Add(10 * time.Second)) {
		t.Errorf("expected clock at %v, got %v", start.Add(10*time.Second), m.Now())
	}
}
