package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rogerio-castellano/sourcing-desk/internal/dashboard"
	handler "github.com/rogerio-castellano/sourcing-desk/internal/http/handlers"
	"github.com/rogerio-castellano/sourcing-desk/internal/messaging"
	"github.com/rogerio-castellano/sourcing-desk/internal/repo"
)

var (
	snapshotRepo *repo.InMemorySnapshotRepository
	published    *recordingPublisher
	fixedNow     = time.Date(2025, 11, 7, 16, 0, 0, 0, time.UTC)
)

type recordingPublisher struct {
	events []*messaging.ConfirmationEvent
}

func (p *recordingPublisher) PublishConfirmation(_ context.Context, e *messaging.ConfirmationEvent) error {
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func init() {
	setupTestRepos()
}

func setupTestRepos() {
	snapshotRepo = repo.NewInMemorySnapshotRepository()
	handler.SetSnapshotRepo(snapshotRepo)

	published = &recordingPublisher{}
	handler.SetPublisher(published)
	handler.SetClock(func() time.Time { return fixedNow })
}

func seedFallback() {
	snapshotRepo.Save(context.Background(), dashboard.MustStaticFallback().Snapshot(context.Background()))
}

func clearDashboard() {
	snapshotRepo.Clear()
	published.events = nil
}

func confirmOffer(r http.Handler, productID, offerID string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(handler.ConfirmOfferRequest{OfferID: offerID})
	req := httptest.NewRequest(http.MethodPost, "/api/inventory/"+productID+"/confirm", bytes.NewReader(body))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func putDashboard(r http.Handler, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPut, "/api/dashboard", bytes.NewReader(body))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
