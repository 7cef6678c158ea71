// Package app wires the intake wizard to the dashboard: submitting the survey
// synthesizes offers, seeds the dashboard and switches phase after short delays.
package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/rogerio-castellano/sourcing-desk/internal/clock"
	"github.com/rogerio-castellano/sourcing-desk/internal/dashboard"
	"github.com/rogerio-castellano/sourcing-desk/internal/notify"
	"github.com/rogerio-castellano/sourcing-desk/internal/survey"
	"github.com/rogerio-castellano/sourcing-desk/internal/synth"
)

type Phase string

const (
	PhaseSurvey    Phase = "survey"
	PhaseDashboard Phase = "dashboard"
)

const (
	DefaultSubmitDelay     = time.Second
	DefaultTransitionDelay = 1500 * time.Millisecond
)

type Options struct {
	Scheduler       clock.Scheduler
	SubmitDelay     time.Duration
	TransitionDelay time.Duration
}

type App struct {
	wizard *survey.Wizard
	synth  *synth.Synthesizer
	dash   *dashboard.Synchronizer
	notes  *notify.Center
	sched  clock.Scheduler

	submitDelay     time.Duration
	transitionDelay time.Duration

	mu      sync.Mutex
	phase   Phase
	submits uint64
	timers  []clock.Timer
	closed  bool
	entered chan struct{}
}

func New(w *survey.Wizard, s *synth.Synthesizer, d *dashboard.Synchronizer, notes *notify.Center, opts Options) *App {
	if opts.Scheduler == nil {
		opts.Scheduler = clock.Real{}
	}
	if opts.SubmitDelay <= 0 {
		opts.SubmitDelay = DefaultSubmitDelay
	}
	if opts.TransitionDelay <= 0 {
		opts.TransitionDelay = DefaultTransitionDelay
	}
	return &App{
		wizard:          w,
		synth:           s,
		dash:            d,
		notes:           notes,
		sched:           opts.Scheduler,
		submitDelay:     opts.SubmitDelay,
		transitionDelay: opts.TransitionDelay,
		phase:           PhaseSurvey,
		entered:         make(chan struct{}),
	}
}

func (a *App) Wizard() *survey.Wizard { return a.wizard }

func (a *App) Dashboard() *dashboard.Synchronizer { return a.dash }

func (a *App) Notifications() *notify.Center { return a.notes }

func (a *App) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

// Entered is closed once the app switches to the dashboard phase.
func (a *App) Entered() <-chan struct{} {
	return a.entered
}

// Submit starts processing the survey. The dashboard is seeded after the
// submit delay and shown after a further transition delay.
func (a *App) Submit(ctx context.Context) bool {
	a.mu.Lock()
	if a.closed || a.phase != PhaseSurvey {
		a.mu.Unlock()
		return false
	}
	a.mu.Unlock()

	if !a.wizard.BeginSubmit() {
		return false
	}

	a.mu.Lock()
	a.submits++
	gen := a.submits
	a.mu.Unlock()

	a.schedule(a.submitDelay, func() { a.process(ctx, gen) })
	return true
}

// process finishes submission gen. Work left over from an earlier submission
// is dropped.
func (a *App) process(ctx context.Context, gen uint64) {
	a.mu.Lock()
	stale := a.closed || gen != a.submits
	a.mu.Unlock()
	if stale {
		return
	}

	// Navigating away resets the submission; the pending work is then dropped.
	if a.wizard.State().Submission.Status != survey.SubmissionLoading {
		log.Printf("submission abandoned before processing")
		return
	}

	snap := a.synth.Submission(a.wizard.Items())
	a.dash.Seed(snap)
	a.wizard.CompleteSubmit()

	a.schedule(a.transitionDelay, func() { a.enterDashboard(ctx) })
}

// GoToDashboard switches phase right away once the submission has succeeded.
func (a *App) GoToDashboard(ctx context.Context) bool {
	if a.wizard.State().Submission.Status != survey.SubmissionSuccess {
		return false
	}
	return a.enterDashboard(ctx)
}

func (a *App) enterDashboard(ctx context.Context) bool {
	a.mu.Lock()
	if a.closed || a.phase == PhaseDashboard {
		a.mu.Unlock()
		return false
	}
	a.phase = PhaseDashboard
	close(a.entered)
	a.mu.Unlock()

	a.dash.SetView(dashboard.ViewProducts)
	if err := a.dash.EnsureLoaded(ctx); err != nil {
		log.Printf("dashboard loaded from fallback: %v", err)
	}
	return true
}

func (a *App) schedule(d time.Duration, f func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.timers = append(a.timers, a.sched.AfterFunc(d, f))
}

// Close cancels pending submission work and the toast timer.
func (a *App) Close() {
	a.mu.Lock()
	a.closed = true
	timers := a.timers
	a.timers = nil
	a.mu.Unlock()

	for _, t := range timers {
		t.Stop()
	}
	if a.notes != nil {
		a.notes.Close()
	}
}
