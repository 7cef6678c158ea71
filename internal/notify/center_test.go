package notify

import (
	"testing"
	"time"

	"github.com/rogerio-castellano/sourcing-desk/internal/clock"
)

func newTestCenter() (*Center, *clock.Manual) {
	m := clock.NewManual(time.Date(2025, 11, 7, 12, 0, 0, 0, time.UTC))
	return NewCenter(m, DefaultToastDuration), m
}

func TestShow_AutoDismissesAfterDuration(t *testing.T) {
	c, m := newTestCenter()
	c.Show(KindSuccess, "saved")

	m.Advance(3 * time.Second)
	if _, ok := c.Toast(); !ok {
		t.Fatal("expected toast to still be visible after 3s")
	}

	m.Advance(time.Second)
	if _, ok := c.Toast(); ok {
		t.Error("expected toast to be dismissed after 4s")
	}
}

func TestShow_NewToastResetsTimer(t *testing.T) {
	c, m := newTestCenter()
	c.Show(KindInfo, "refreshing")
	m.Advance(3 * time.Second)

	c.Show(KindSuccess, "synced")
	if m.Pending() != 1 {
		t.Fatalf("expected exactly one pending timer, got %d", m.Pending())
	}

	m.Advance(2 * time.Second)
	toast, ok := c.Toast()
	if !ok {
		t.Fatal("expected replacement toast to survive the old deadline")
	}
	if toast.Message != "synced" || toast.Kind != KindSuccess {
		t.Errorf("expected success 'synced', got %+v", toast)
	}

	m.Advance(2 * time.Second)
	if _, ok := c.Toast(); ok {
		t.Error("expected replacement toast to be dismissed 4s after it was shown")
	}
}

func TestClose_CancelsTimer(t *testing.T) {
	c, m := newTestCenter()
	c.Show(KindInfo, "hello")
	c.Close()

	if m.Pending() != 0 {
		t.Fatalf("expected no pending timers after Close, got %d", m.Pending())
	}

	c.Show(KindInfo, "after close")
	if m.Pending() != 0 {
		t.Errorf("expected Show after Close not to schedule, got %d", m.Pending())
	}
}

func TestClose_IgnoresLateExpiry(t *testing.T) {
	c, _ := newTestCenter()
	c.Show(KindError, "could not confirm")
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	c.Close()
	c.expire(gen)

	if toast, ok := c.Toast(); !ok || toast.Message != "could not confirm" {
		t.Errorf("expected the toast to survive a timer firing after Close, got %+v, %v", toast, ok)
	}
}

func TestBannerAndLoading(t *testing.T) {
	c, _ := newTestCenter()
	var last Status
	calls := 0
	c.OnChange(func(s Status) {
		last = s
		calls++
	})

	c.SetLoading(true)
	c.SetBanner("offline")

	if !c.Loading() || c.Banner() != "offline" {
		t.Errorf("expected loading with banner, got loading=%v banner=%q", c.Loading(), c.Banner())
	}
	if calls != 2 || !last.Loading || last.Banner != "offline" {
		t.Errorf("expected 2 change callbacks ending in loading+banner, got %d %+v", calls, last)
	}

	c.SetBanner("")
	if c.Banner() != "" {
		t.Errorf("expected banner cleared, got %q", c.Banner())
	}
}

func TestDismiss(t *testing.T) {
	c, m := newTestCenter()
	c.Show(KindError, "failed")
	c.Dismiss()

	if _, ok := c.Toast(); ok {
		t.Error("expected toast dismissed")
	}
	if m.Pending() != 0 {
		t.Errorf("expected timer stopped, got %d pending", m.Pending())
	}
}
