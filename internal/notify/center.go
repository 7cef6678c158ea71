package notify

import (
	"sync"
	"time"

	"github.com/rogerio-castellano/sourcing-desk/internal/clock"
)

// DefaultToastDuration is how long a toast stays up before it clears itself.
const DefaultToastDuration = 4 * time.Second

type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Toast struct {
	Kind    Kind   `json:"type"`
	Message string `json:"message"`
}

// Status is what the presentation layer needs to draw notifications.
type Status struct {
	Toast   *Toast
	Banner  string
	Loading bool
}

// Center holds at most one transient toast, a persistent error banner and the
// dashboard loading flag.
type Center struct {
	mu       sync.Mutex
	sched    clock.Scheduler
	duration time.Duration

	toast   *Toast
	timer   clock.Timer
	gen     uint64
	banner  string
	loading bool
	closed  bool

	onChange func(Status)
}

func NewCenter(sched clock.Scheduler, duration time.Duration) *Center {
	if sched == nil {
		sched = clock.Real{}
	}
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	return &Center{sched: sched, duration: duration}
}

// OnChange registers a callback invoked after every change, outside the lock.
func (c *Center) OnChange(f func(Status)) {
	c.mu.Lock()
	c.onChange = f
	c.mu.Unlock()
}

// Show replaces the current toast and restarts the dismiss timer.
func (c *Center) Show(kind Kind, message string) {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	gen := c.gen
	c.toast = &Toast{Kind: kind, Message: message}
	if !c.closed {
		c.timer = c.sched.AfterFunc(c.duration, func() { c.expire(gen) })
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Center) expire(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.gen || c.toast == nil {
		c.mu.Unlock()
		return
	}
	c.toast = nil
	c.timer = nil
	c.mu.Unlock()
	c.notify()
}

func (c *Center) Dismiss() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	c.toast = nil
	c.mu.Unlock()
	c.notify()
}

func (c *Center) Toast() (Toast, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.toast == nil {
		return Toast{}, false
	}
	return *c.toast, true
}

// SetBanner sets the inline error banner; an empty message clears it.
func (c *Center) SetBanner(message string) {
	c.mu.Lock()
	c.banner = message
	c.mu.Unlock()
	c.notify()
}

func (c *Center) Banner() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.banner
}

func (c *Center) SetLoading(loading bool) {
	c.mu.Lock()
	c.loading = loading
	c.mu.Unlock()
	c.notify()
}

func (c *Center) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Center) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

func (c *Center) statusLocked() Status {
	s := Status{Banner: c.banner, Loading: c.loading}
	if c.toast != nil {
		t := *c.toast
		s.Toast = &t
	}
	return s
}

// Close stops the dismiss timer. Toasts shown afterwards stay until replaced.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.closed = true
}

func (c *Center) notify() {
	c.mu.Lock()
	f := c.onChange
	s := c.statusLocked()
	c.mu.Unlock()
	if f != nil {
		f(s)
	}
}
