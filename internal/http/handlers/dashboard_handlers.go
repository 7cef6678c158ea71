package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/sourcing-desk/internal/messaging"
	"github.com/rogerio-castellano/sourcing-desk/internal/models"
	"github.com/rogerio-castellano/sourcing-desk/internal/repo"
)

const msgNoDashboard = "No supplier data has been published yet."

// GetDashboardHandler returns the stored dashboard snapshot.
// @Summary Get dashboard
// @Description Returns every product under negotiation with its supplier offers, and the supplier inbox
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.DashboardSnapshot
// @Failure 503 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/dashboard [get]
func GetDashboardHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := snapshotRepo.Load(r.Context())
	if errors.Is(err, repo.ErrSnapshotNotFound) {
		writeMessage(w, http.StatusServiceUnavailable, msgNoDashboard)
		return
	}
	if err != nil {
		log.Printf("load dashboard: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Could not load supplier data.")
		return
	}
	if err := writeJSON(w, http.StatusOK, snap); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// PutDashboardHandler replaces the dashboard, typically with a freshly
// synthesized intake submission.
// @Summary Replace dashboard
// @Description Stores a new dashboard snapshot
// @Tags dashboard
// @Accept json
// @Param dashboard body models.DashboardSnapshot true "Dashboard to store"
// @Success 204
// @Failure 400 {object} ValidationErrorsResponse
// @Failure 500 {object} MessageResponse
// @Router /api/dashboard [put]
func PutDashboardHandler(w http.ResponseWriter, r *http.Request) {
	var snap models.DashboardSnapshot
	if err := readJSON(w, r, &snap); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid input")
		return
	}

	if errs := validateSnapshot(snap); len(errs) > 0 {
		if err := writeJSON(w, http.StatusBadRequest, ValidationErrorsResponse{Message: "invalid dashboard", Errors: errs}); err != nil {
			log.Printf("Failed to write JSON response: %v", err)
		}
		return
	}

	if err := snapshotRepo.Save(r.Context(), snap); err != nil {
		log.Printf("save dashboard: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Could not store supplier data.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ConfirmOfferHandler records the chosen supplier for a product.
// @Summary Confirm offer
// @Description Marks an offer as the confirmed supplier of a product; the previously confirmed offer becomes outbid
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param confirmation body ConfirmOfferRequest true "Offer to confirm"
// @Success 200 {object} ConfirmOfferResponse
// @Failure 400 {object} ValidationErrorsResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/inventory/{id}/confirm [post]
func ConfirmOfferHandler(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	var req ConfirmOfferRequest
	if err := readJSON(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid input")
		return
	}
	if errs := validateConfirm(productID, req); len(errs) > 0 {
		if err := writeJSON(w, http.StatusBadRequest, ValidationErrorsResponse{Message: "invalid confirmation", Errors: errs}); err != nil {
			log.Printf("Failed to write JSON response: %v", err)
		}
		return
	}

	product, err := snapshotRepo.ConfirmOffer(r.Context(), productID, req.OfferID)
	switch {
	case errors.Is(err, models.ErrProductNotFound):
		writeMessage(w, http.StatusNotFound, "Product not found.")
		return
	case errors.Is(err, models.ErrOfferNotFound):
		writeMessage(w, http.StatusNotFound, "Offer not found.")
		return
	case err != nil:
		log.Printf("confirm %s/%s: %v", productID, req.OfferID, err)
		writeMessage(w, http.StatusInternalServerError, "Could not confirm the offer.")
		return
	}

	offer, _ := product.FindOffer(req.OfferID)
	event := messaging.NewConfirmationEvent(product.ID, product.Name, offer.ID, offer.SupplierName, offer.PricePerUnit, now())
	if err := publisher.PublishConfirmation(r.Context(), event); err != nil {
		// Events are best effort; the confirmation is already stored.
		log.Printf("publish confirmation %s: %v", event.ID, err)
	}

	resp := ConfirmOfferResponse{
		Message: fmt.Sprintf("%s has been marked as confirmed.", product.Name),
		Product: product,
	}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// GetDashboardMetricsHandler returns the headline counts for the dashboard.
// @Summary Dashboard metrics
// @Description Returns product, confirmation, offer and unread thread counts
// @Tags metrics
// @Produce json
// @Success 200 {object} models.Summary
// @Failure 500 {object} MessageResponse
// @Router /api/dashboard/metrics [get]
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := snapshotRepo.Load(r.Context())
	if errors.Is(err, repo.ErrSnapshotNotFound) {
		snap = models.DashboardSnapshot{}
	} else if err != nil {
		log.Printf("load dashboard: %v", err)
		writeMessage(w, http.StatusInternalServerError, "failed to fetch metrics")
		return
	}
	if err := writeJSON(w, http.StatusOK, snap.Summary()); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"}); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
