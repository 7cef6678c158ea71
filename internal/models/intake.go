package models

import (
	"math"
	"strconv"
	"strings"
)

type Unit string

const (
	UnitUnits   Unit = "units"
	UnitCases   Unit = "cases"
	UnitPallets Unit = "pallets"
	UnitLbs     Unit = "lbs"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitUnits, UnitCases, UnitPallets, UnitLbs:
		return true
	}
	return false
}

// StoreProfile is the first step of the intake survey.
type StoreProfile struct {
	StoreName    string `json:"storeName" yaml:"storeName"`
	Location     string `json:"location" yaml:"location"`
	ContactName  string `json:"contactName" yaml:"contactName"`
	ContactEmail string `json:"contactEmail" yaml:"contactEmail"`
	PhoneNumber  string `json:"phoneNumber" yaml:"phoneNumber"`
}

// InventoryItem is one restock line. Quantity and TargetPrice hold raw form input.
type InventoryItem struct {
	ID          string `json:"id" yaml:"id"`
	ProductName string `json:"productName" yaml:"productName"`
	Quantity    string `json:"quantity" yaml:"quantity"`
	Unit        Unit   `json:"unit" yaml:"unit"`
	TargetPrice string `json:"targetPrice" yaml:"targetPrice"`
	Notes       string `json:"notes" yaml:"notes"`
}

// NewInventoryItem returns an empty item with the default unit.
func NewInventoryItem(id string) InventoryItem {
	return InventoryItem{ID: id, Unit: UnitUnits}
}

type BudgetDetails struct {
	TotalBudget      string `json:"totalBudget" yaml:"totalBudget"`
	PreferredVendors string `json:"preferredVendors" yaml:"preferredVendors"`
	DeliveryTimeline string `json:"deliveryTimeline" yaml:"deliveryTimeline"`
	MustHaves        string `json:"mustHaves" yaml:"mustHaves"`
}

// ParseNumber reads a numeric form field. Blank input reads as zero and
// non-finite values are rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// PositiveNumber reports whether s parses to a finite number greater than zero.
func PositiveNumber(s string) (float64, bool) {
	f, ok := ParseNumber(s)
	if !ok || f <= 0 {
		return 0, false
	}
	return f, true
}
