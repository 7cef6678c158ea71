package handlers

import "github.com/rogerio-castellano/sourcing-desk/internal/models"

type ConfirmOfferRequest struct {
	OfferID string `json:"offerId"`
}

type ConfirmOfferResponse struct {
	Message string         `json:"message"`
	Product models.Product `json:"product"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ValidationErrorsResponse struct {
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
