package handlers

import (
	"fmt"
	"strings"

	"github.com/rogerio-castellano/sourcing-desk/internal/models"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateConfirm(productID string, req ConfirmOfferRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(productID) == "" {
		errs = append(errs, ValidationError{Field: "productId", Description: "Product id is required"})
	}
	if strings.TrimSpace(req.OfferID) == "" {
		errs = append(errs, ValidationError{Field: "offerId", Description: "Offer id is required"})
	}
	return errs
}

func validateSnapshot(s models.DashboardSnapshot) []ValidationError {
	errs := []ValidationError{}
	if len(s.Products) == 0 {
		errs = append(errs, ValidationError{Field: "products", Description: "At least one product is required"})
	}
	if err := s.Validate(); err != nil {
		errs = append(errs, ValidationError{Field: "products", Description: err.Error()})
	}
	for _, t := range s.Inbox {
		if t.RelatedProductID != "" && !s.HasProduct(t.RelatedProductID) {
			errs = append(errs, ValidationError{
				Field:       "inbox",
				Description: fmt.Sprintf("Thread %s references unknown product %s", t.ID, t.RelatedProductID),
			})
		}
	}
	return errs
}
