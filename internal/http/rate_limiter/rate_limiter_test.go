package rate_limiter

import (
	"testing"
	"time"
)

func TestGetVisitor_SameLimiterPerIP(t *testing.T) {
	v := NewVisitors(1, 3)

	a := v.GetVisitor("10.0.0.1")
	if a != v.GetVisitor("10.0.0.1") {
		t.Error("expected the same limiter for the same ip")
	}
	if a == v.GetVisitor("10.0.0.2") {
		t.Error("expected separate limiters per ip")
	}
	if v.Len() != 2 {
		t.Errorf("expected 2 visitors, got %d", v.Len())
	}
}

func TestGetVisitor_Burst(t *testing.T) {
	v := NewVisitors(1, 3)
	l := v.GetVisitor("10.0.0.1")

	for i := 0; i < 3; i++ {
		if !l.Allow() {
			t.Fatalf("expected request %d within burst to pass", i+1)
		}
	}
	if l.Allow() {
		t.Error("expected the 4th request to be limited")
	}
}

func TestForget(t *testing.T) {
	v := NewVisitors(1, 1)
	current := time.Date(2025, 11, 7, 16, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return current }

	v.GetVisitor("old")
	current = current.Add(10 * time.Minute)
	v.GetVisitor("new")

	if n := v.Forget(5 * time.Minute); n != 1 {
		t.Errorf("expected 1 visitor forgotten, got %d", n)
	}
	if v.Len() != 1 {
		t.Errorf("expected 1 visitor left, got %d", v.Len())
	}

	v.CleanupAllVisitors()
	if v.Len() != 0 {
		t.Errorf("expected no visitors, got %d", v.Len())
	}
}
