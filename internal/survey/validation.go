package survey

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rogerio-castellano/sourcing-desk/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldError names a required field that blocks the current step.
type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func StoreProfileValid(p models.StoreProfile) bool {
	return len(validateProfile(p)) == 0
}

func InventoryValid(items []models.InventoryItem) bool {
	return len(validateInventory(items)) == 0
}

func BudgetValid(b models.BudgetDetails) bool {
	return len(validateBudget(b)) == 0
}

// ItemValid reports whether a single line has a name and a positive quantity.
func ItemValid(item models.InventoryItem) bool {
	if strings.TrimSpace(item.ProductName) == "" {
		return false
	}
	_, ok := models.PositiveNumber(item.Quantity)
	return ok
}

// CanAdvance reports whether the wizard may leave its current step.
func CanAdvance(s State) bool {
	switch s.Step {
	case StepProfile:
		return StoreProfileValid(s.Profile)
	case StepInventory:
		return InventoryValid(s.Items)
	case StepBudget:
		return BudgetValid(s.Budget)
	default:
		return true
	}
}

// CanAdvanceStep reports whether step could be left with the answers in s.
func CanAdvanceStep(step Step, s State) bool {
	s.Step = step
	return CanAdvance(s)
}

// ValidateStep lists what is missing on the current step. It is empty exactly
// when CanAdvance is true.
func ValidateStep(s State) []FieldError {
	switch s.Step {
	case StepProfile:
		return validateProfile(s.Profile)
	case StepInventory:
		return validateInventory(s.Items)
	case StepBudget:
		return validateBudget(s.Budget)
	default:
		return nil
	}
}

func validateProfile(p models.StoreProfile) []FieldError {
	var errs []FieldError
	if strings.TrimSpace(p.StoreName) == "" {
		errs = append(errs, FieldError{Field: FieldStoreName, Description: "Store name is required"})
	}
	if strings.TrimSpace(p.ContactName) == "" {
		errs = append(errs, FieldError{Field: FieldContactName, Description: "Primary contact is required"})
	}
	switch {
	case strings.TrimSpace(p.ContactEmail) == "":
		errs = append(errs, FieldError{Field: FieldContactEmail, Description: "Contact email is required"})
	case !emailPattern.MatchString(p.ContactEmail):
		errs = append(errs, FieldError{Field: FieldContactEmail, Description: "Contact email must look like name@example.com"})
	}
	return errs
}

func validateInventory(items []models.InventoryItem) []FieldError {
	if len(items) == 0 {
		return []FieldError{{Field: "items", Description: "At least one product is required"}}
	}
	var errs []FieldError
	for i, item := range items {
		if strings.TrimSpace(item.ProductName) == "" {
			errs = append(errs, FieldError{
				Field:       fmt.Sprintf("items[%d].%s", i, FieldProductName),
				Description: "Product name is required",
			})
		}
		if _, ok := models.PositiveNumber(item.Quantity); !ok {
			errs = append(errs, FieldError{
				Field:       fmt.Sprintf("items[%d].%s", i, FieldQuantity),
				Description: "Quantity must be greater than zero",
			})
		}
	}
	return errs
}

func validateBudget(b models.BudgetDetails) []FieldError {
	if _, ok := models.PositiveNumber(b.TotalBudget); !ok {
		return []FieldError{{Field: FieldTotalBudget, Description: "Total budget must be greater than zero"}}
	}
	return nil
}
