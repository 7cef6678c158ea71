package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rogerio-castellano/sourcing-desk/internal/clock"
	"github.com/rogerio-castellano/sourcing-desk/internal/dashboard"
	"github.com/rogerio-castellano/sourcing-desk/internal/models"
	"github.com/rogerio-castellano/sourcing-desk/internal/notify"
	"github.com/rogerio-castellano/sourcing-desk/internal/survey"
	"github.com/rogerio-castellano/sourcing-desk/internal/synth"
)

var start = time.Date(2025, 11, 7, 16, 0, 0, 0, time.UTC)

type offlineRemote struct {
	fetches int
}

func (r *offlineRemote) FetchSnapshot(context.Context) (models.DashboardSnapshot, error) {
	r.fetches++
	return models.DashboardSnapshot{}, errors.New("offline")
}

func (r *offlineRemote) ConfirmOffer(context.Context, string, string) error {
	return errors.New("offline")
}

func newTestApp(t *testing.T) (*App, *clock.Manual, *offlineRemote) {
	t.Helper()
	sched := clock.NewManual(start)
	notes := notify.NewCenter(sched, 0)
	remote := &offlineRemote{}

	n := 0
	wizard := survey.NewWizard(func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	})
	a := New(wizard, synth.NewSeeded(1, sched.Now), dashboard.NewSynchronizer(remote, notes, dashboard.Options{}), notes,
		Options{Scheduler: sched})
	t.Cleanup(a.Close)
	return a, sched, remote
}

func fillToReview(t *testing.T, w *survey.Wizard) {
	t.Helper()
	w.SetProfileField(survey.FieldStoreName, "Uptown Market")
	w.SetProfileField(survey.FieldContactName, "Jordan Lee")
	w.SetProfileField(survey.FieldContactEmail, "jordan@uptown.example")
	if !w.Next() {
		t.Fatalf("expected to leave the profile step, errors: %v", w.Errors())
	}

	id := w.FirstItemID()
	if w.CanAdvance() {
		t.Fatal("expected an empty item to block the inventory step")
	}
	w.SetItemField(id, survey.FieldProductName, "Apples")
	w.SetItemField(id, survey.FieldQuantity, "100")
	if !w.CanAdvance() {
		t.Fatalf("expected the inventory step to be complete, errors: %v", w.Errors())
	}
	w.Next()

	w.SetBudgetField(survey.FieldTotalBudget, "5000")
	if !w.Next() {
		t.Fatalf("expected to reach review, errors: %v", w.Errors())
	}
	if w.Step() != survey.StepReview {
		t.Fatalf("expected review step, got %d", w.Step())
	}
}

func TestSubmit_EndToEnd(t *testing.T) {
	a, sched, remote := newTestApp(t)
	fillToReview(t, a.Wizard())

	if !a.Submit(context.Background()) {
		t.Fatal("expected submit to start")
	}
	if got := a.Wizard().State().Submission.Status; got != survey.SubmissionLoading {
		t.Fatalf("expected loading, got %s", got)
	}
	if a.Submit(context.Background()) {
		t.Error("expected a second submit to be refused while loading")
	}

	sched.Advance(999 * time.Millisecond)
	if len(a.Dashboard().Snapshot().Products) != 0 {
		t.Fatal("expected nothing seeded before the submit delay")
	}

	sched.Advance(time.Millisecond)
	if got := a.Wizard().State().Submission.Status; got != survey.SubmissionSuccess {
		t.Fatalf("expected success after the submit delay, got %s", got)
	}
	if a.Phase() != PhaseSurvey {
		t.Fatal("expected to stay on the survey until the transition delay")
	}

	sched.Advance(1500 * time.Millisecond)
	if a.Phase() != PhaseDashboard {
		t.Fatalf("expected dashboard phase, got %s", a.Phase())
	}
	select {
	case <-a.Entered():
	default:
		t.Error("expected Entered to be closed")
	}

	snap := a.Dashboard().Snapshot()
	if len(snap.Products) != 1 || snap.Products[0].Name != "Apples" {
		t.Fatalf("expected one Apples product, got %+v", snap.Products)
	}
	offers := snap.Products[0].Offers
	if len(offers) < 3 || len(offers) > 4 {
		t.Errorf("expected 3 or 4 offers, got %d", len(offers))
	}
	for i := 1; i < len(offers); i++ {
		if *offers[i-1].PricePerUnit > *offers[i].PricePerUnit {
			t.Errorf("expected ascending prices, got %v then %v", *offers[i-1].PricePerUnit, *offers[i].PricePerUnit)
		}
	}
	if remote.fetches != 0 {
		t.Errorf("expected seeded data to avoid a fetch, got %d", remote.fetches)
	}
	if st := a.Dashboard().State(); st.View != dashboard.ViewProducts || st.SelectedProductID != snap.Products[0].ID {
		t.Errorf("unexpected dashboard state %+v", st)
	}
}

func TestGoToDashboard_SkipsTransitionDelay(t *testing.T) {
	a, sched, _ := newTestApp(t)
	fillToReview(t, a.Wizard())

	if a.GoToDashboard(context.Background()) {
		t.Fatal("expected GoToDashboard to wait for a successful submission")
	}

	a.Submit(context.Background())
	sched.Advance(time.Second)

	if !a.GoToDashboard(context.Background()) {
		t.Fatal("expected immediate transition")
	}
	if a.Phase() != PhaseDashboard {
		t.Fatalf("expected dashboard phase, got %s", a.Phase())
	}

	sched.Advance(2 * time.Second)
	if a.Phase() != PhaseDashboard {
		t.Error("expected the pending transition to be harmless")
	}
}

func TestSubmit_RefusedOutsideReview(t *testing.T) {
	a, sched, _ := newTestApp(t)

	if a.Submit(context.Background()) {
		t.Fatal("expected submit to be refused on the first step")
	}
	if sched.Pending() != 0 {
		t.Errorf("expected no scheduled work, got %d", sched.Pending())
	}
}

func TestSubmit_AbandonedWhenUserNavigatesBack(t *testing.T) {
	a, sched, _ := newTestApp(t)
	fillToReview(t, a.Wizard())

	a.Submit(context.Background())
	a.Wizard().Back()
	sched.Advance(5 * time.Second)

	if a.Phase() != PhaseSurvey {
		t.Error("expected to stay on the survey")
	}
	if len(a.Dashboard().Snapshot().Products) != 0 {
		t.Error("expected nothing seeded")
	}
}

func TestSubmit_ResubmitKeepsFullDelay(t *testing.T) {
	a, sched, _ := newTestApp(t)
	w := a.Wizard()
	fillToReview(t, w)

	a.Submit(context.Background())
	sched.Advance(900 * time.Millisecond)
	w.Back()
	w.Next()
	if !a.Submit(context.Background()) {
		t.Fatal("expected the second submit to start")
	}

	sched.Advance(100 * time.Millisecond)
	if got := w.State().Submission.Status; got != survey.SubmissionLoading {
		t.Fatalf("expected loading 100ms after resubmitting, got %s", got)
	}
	if len(a.Dashboard().Snapshot().Products) != 0 {
		t.Fatal("expected nothing seeded before the second submit delay")
	}

	sched.Advance(900 * time.Millisecond)
	if got := w.State().Submission.Status; got != survey.SubmissionSuccess {
		t.Fatalf("expected success a full delay after resubmitting, got %s", got)
	}
	if got := len(a.Dashboard().Snapshot().Products); got != 1 {
		t.Errorf("expected one product, got %d", got)
	}
}

func TestClose_CancelsPendingSubmission(t *testing.T) {
	a, sched, _ := newTestApp(t)
	fillToReview(t, a.Wizard())

	a.Submit(context.Background())
	a.Close()
	sched.Advance(5 * time.Second)

	if a.Phase() != PhaseSurvey {
		t.Error("expected no phase change after Close")
	}
	if sched.Pending() != 0 {
		t.Errorf("expected no pending tasks, got %d", sched.Pending())
	}
	if a.Submit(context.Background()) {
		t.Error("expected submit to be refused after Close")
	}
}

func TestDashboardFallbackScenario(t *testing.T) {
	a, _, _ := newTestApp(t)
	d := a.Dashboard()

	if err := d.EnsureLoaded(context.Background()); err == nil {
		t.Fatal("expected the offline fetch to fail")
	}
	if got := len(d.Snapshot().Products); got != 3 {
		t.Fatalf("expected 3 fallback products, got %d", got)
	}
	if a.Notifications().Banner() == "" {
		t.Error("expected an error banner")
	}

	if out := d.Confirm(context.Background(), "product-organic-apples", "offer-green-growers"); out != dashboard.OutcomeOffline {
		t.Fatalf("expected offline outcome, got %s", out)
	}
	p, _ := d.Snapshot().FindProduct("product-organic-apples")
	if p.Status != models.ProductConfirmed || p.ConfirmedOfferID == nil || *p.ConfirmedOfferID != "offer-green-growers" {
		t.Errorf("unexpected product %+v", p)
	}
}
