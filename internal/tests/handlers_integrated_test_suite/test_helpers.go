package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/rogerio-castellano/sourcing-desk/internal/dashboard"
	"github.com/rogerio-castellano/sourcing-desk/internal/db"
	handler "github.com/rogerio-castellano/sourcing-desk/internal/http/handlers"
	"github.com/rogerio-castellano/sourcing-desk/internal/repo"
)

var (
	snapshotRepo *repo.PostgresSnapshotRepository
	database     *sql.DB
)

// setupTestRepos connects to SOURCING_DB_DSN. It returns false when no
// database is configured so the suite can be skipped.
func setupTestRepos() bool {
	dsn := os.Getenv("SOURCING_DB_DSN")
	if dsn == "" {
		return false
	}

	var err error
	database, err = db.Connect(context.Background(), dsn, 5)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}

	snapshotRepo = repo.NewPostgresSnapshotRepository(database)
	if err := snapshotRepo.EnsureSchema(context.Background()); err != nil {
		log.Fatal("❌ Could not create schema:", err)
	}
	handler.SetSnapshotRepo(snapshotRepo)
	return true
}

func seedFallback() {
	if err := snapshotRepo.Save(context.Background(), dashboard.MustStaticFallback().Snapshot(context.Background())); err != nil {
		fmt.Println(fmt.Errorf("failed to seed dashboard: %w", err))
	}
}

func clearDashboard() {
	if err := snapshotRepo.Clear(context.Background()); err != nil {
		fmt.Println(fmt.Errorf("failed to clear dashboard: %w", err))
	}
}

func confirmOffer(r http.Handler, productID, offerID string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(handler.ConfirmOfferRequest{OfferID: offerID})
	req := httptest.NewRequest(http.MethodPost, "/api/inventory/"+productID+"/confirm", bytes.NewReader(body))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
