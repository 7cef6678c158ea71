package survey

import (
	"slices"

	"github.com/rogerio-castellano/sourcing-desk/internal/models"
)

type Step int

const (
	StepProfile Step = iota
	StepInventory
	StepBudget
	StepReview
)

// StepInfo describes a wizard step for the stepper.
type StepInfo struct {
	Step        Step
	Title       string
	Description string
}

var Steps = []StepInfo{
	{StepProfile, "Store Profile", "Tell us about your store so suppliers know who they are working with."},
	{StepInventory, "Inventory Needs", "List the products and quantities you are hoping to restock."},
	{StepBudget, "Budget & Priorities", "Share your budget target and any special instructions for our sourcing agents."},
	{StepReview, "Review & Submit", "Double-check the details before we connect you with suppliers."},
}

func (s Step) String() string {
	if s < StepProfile || s > StepReview {
		return "Unknown"
	}
	return Steps[s].Title
}

type SubmissionStatus string

const (
	SubmissionIdle    SubmissionStatus = "idle"
	SubmissionLoading SubmissionStatus = "loading"
	SubmissionSuccess SubmissionStatus = "success"
	SubmissionError   SubmissionStatus = "error"
)

const (
	MessageProcessing = "Processing your request…"
	MessageProcessed  = "Your request has been processed! Review supplier offers below."
)

type Submission struct {
	Status  SubmissionStatus `json:"status"`
	Message string           `json:"message"`
}

// Field names accepted by the field-change actions.
const (
	FieldStoreName    = "storeName"
	FieldLocation     = "location"
	FieldContactName  = "contactName"
	FieldContactEmail = "contactEmail"
	FieldPhoneNumber  = "phoneNumber"

	FieldProductName = "productName"
	FieldQuantity    = "quantity"
	FieldUnit        = "unit"
	FieldTargetPrice = "targetPrice"
	FieldNotes       = "notes"

	FieldTotalBudget      = "totalBudget"
	FieldPreferredVendors = "preferredVendors"
	FieldDeliveryTimeline = "deliveryTimeline"
	FieldMustHaves        = "mustHaves"
)

// State is the whole intake form plus the wizard position.
type State struct {
	Step       Step                   `json:"step"`
	Profile    models.StoreProfile    `json:"profile"`
	Items      []models.InventoryItem `json:"items"`
	Budget     models.BudgetDetails   `json:"budget"`
	Submission Submission             `json:"submission"`

	// RetiredIDs holds the ids of removed items. They are never handed out again.
	RetiredIDs []string `json:"retiredIds,omitempty"`
}

// NewState starts at the profile step with one empty inventory line.
func NewState(firstItemID string) State {
	return State{
		Step:       StepProfile,
		Items:      []models.InventoryItem{models.NewInventoryItem(firstItemID)},
		Submission: Submission{Status: SubmissionIdle},
	}
}

func (s State) Clone() State {
	items := make([]models.InventoryItem, len(s.Items))
	copy(items, s.Items)
	s.Items = items
	s.RetiredIDs = slices.Clone(s.RetiredIDs)
	return s
}

// Action is a discrete event the reducer understands.
type Action interface {
	actionName() string
}

type (
	GoToStep            struct{ Step Step }
	Next                struct{}
	Back                struct{}
	ProfileFieldChanged struct{ Field, Value string }
	ItemFieldChanged    struct{ ID, Field, Value string }
	ItemAdded           struct{ ID string }
	ItemRemoved         struct{ ID string }
	BudgetFieldChanged  struct{ Field, Value string }
	SubmitStarted       struct{}
	SubmitSucceeded     struct{}
)

func (GoToStep) actionName() string            { return "GoToStep" }
func (Next) actionName() string                { return "Next" }
func (Back) actionName() string                { return "Back" }
func (ProfileFieldChanged) actionName() string { return "ProfileFieldChanged" }
func (ItemFieldChanged) actionName() string    { return "ItemFieldChanged" }
func (ItemAdded) actionName() string           { return "ItemAdded" }
func (ItemRemoved) actionName() string         { return "ItemRemoved" }
func (BudgetFieldChanged) actionName() string  { return "BudgetFieldChanged" }
func (SubmitStarted) actionName() string       { return "SubmitStarted" }
func (SubmitSucceeded) actionName() string     { return "SubmitSucceeded" }

// Name returns the action's type name, for logs.
func Name(a Action) string {
	return a.actionName()
}

// Reduce applies a to s and returns the next state. Refused actions return s
// unchanged. s is never modified.
func Reduce(s State, a Action) State {
	next, _ := apply(s, a)
	return next
}

// Replay folds actions over a fresh state seeded with the first item id.
func Replay(firstItemID string, actions []Action) State {
	s := NewState(firstItemID)
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

func apply(s State, a Action) (State, bool) {
	switch a := a.(type) {
	case GoToStep:
		if a.Step < StepProfile || a.Step > s.Step {
			return s, false
		}
		return changeStep(s, a.Step), true

	case Next:
		if s.Step >= StepReview || !CanAdvance(s) {
			return s, false
		}
		return changeStep(s, s.Step+1), true

	case Back:
		if s.Step <= StepProfile {
			return s, false
		}
		return changeStep(s, s.Step-1), true

	case ProfileFieldChanged:
		p := s.Profile
		if !setProfileField(&p, a.Field, a.Value) {
			return s, false
		}
		s.Profile = p
		return s, true

	case ItemFieldChanged:
		s = s.Clone()
		for i := range s.Items {
			if s.Items[i].ID == a.ID {
				if !setItemField(&s.Items[i], a.Field, a.Value) {
					return s, false
				}
				return s, true
			}
		}
		return s, false

	case ItemAdded:
		if a.ID == "" || hasItem(s.Items, a.ID) || slices.Contains(s.RetiredIDs, a.ID) {
			return s, false
		}
		s = s.Clone()
		s.Items = append(s.Items, models.NewInventoryItem(a.ID))
		return s, true

	case ItemRemoved:
		if len(s.Items) <= 1 || !hasItem(s.Items, a.ID) {
			return s, false
		}
		items := make([]models.InventoryItem, 0, len(s.Items)-1)
		for _, item := range s.Items {
			if item.ID != a.ID {
				items = append(items, item)
			}
		}
		s.Items = items
		s.RetiredIDs = append(slices.Clone(s.RetiredIDs), a.ID)
		return s, true

	case BudgetFieldChanged:
		b := s.Budget
		if !setBudgetField(&b, a.Field, a.Value) {
			return s, false
		}
		s.Budget = b
		return s, true

	case SubmitStarted:
		if s.Step != StepReview || s.Submission.Status == SubmissionLoading || s.Submission.Status == SubmissionSuccess {
			return s, false
		}
		s.Submission = Submission{Status: SubmissionLoading, Message: MessageProcessing}
		return s, true

	case SubmitSucceeded:
		if s.Submission.Status != SubmissionLoading {
			return s, false
		}
		s.Submission = Submission{Status: SubmissionSuccess, Message: MessageProcessed}
		return s, true
	}
	return s, false
}

func changeStep(s State, step Step) State {
	s.Step = step
	s.Submission = Submission{Status: SubmissionIdle}
	return s
}

func hasItem(items []models.InventoryItem, id string) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}

func setProfileField(p *models.StoreProfile, field, value string) bool {
	switch field {
	case FieldStoreName:
		p.StoreName = value
	case FieldLocation:
		p.Location = value
	case FieldContactName:
		p.ContactName = value
	case FieldContactEmail:
		p.ContactEmail = value
	case FieldPhoneNumber:
		p.PhoneNumber = value
	default:
		return false
	}
	return true
}

func setItemField(item *models.InventoryItem, field, value string) bool {
	switch field {
	case FieldProductName:
		item.ProductName = value
	case FieldQuantity:
		item.Quantity = value
	case FieldUnit:
		u := models.Unit(value)
		if !u.Valid() {
			return false
		}
		item.Unit = u
	case FieldTargetPrice:
		item.TargetPrice = value
	case FieldNotes:
		item.Notes = value
	default:
		return false
	}
	return true
}

func setBudgetField(b *models.BudgetDetails, field, value string) bool {
	switch field {
	case FieldTotalBudget:
		b.TotalBudget = value
	case FieldPreferredVendors:
		b.PreferredVendors = value
	case FieldDeliveryTimeline:
		b.DeliveryTimeline = value
	case FieldMustHaves:
		b.MustHaves = value
	default:
		return false
	}
	return true
}
