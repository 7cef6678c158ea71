package survey

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/sourcing-desk/internal/models"
)

// IDGenerator hands out inventory item ids. Ids must never repeat.
type IDGenerator func() string

// Wizard is the stateful face of the survey reducer. Every applied action is
// journaled so a session can be replayed.
type Wizard struct {
	mu      sync.Mutex
	newID   IDGenerator
	firstID string
	state   State
	journal []Action
}

func NewWizard(newID IDGenerator) *Wizard {
	if newID == nil {
		newID = uuid.NewString
	}
	first := newID()
	return &Wizard{
		newID:   newID,
		firstID: first,
		state:   NewState(first),
	}
}

// Dispatch applies a and reports whether it changed anything.
func (w *Wizard) Dispatch(a Action) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, ok := apply(w.state, a)
	if !ok {
		return false
	}
	w.state = next
	w.journal = append(w.journal, a)
	return true
}

func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Clone()
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Step
}

func (w *Wizard) Items() []models.InventoryItem {
	return w.State().Items
}

func (w *Wizard) CanAdvance() bool {
	return CanAdvance(w.State())
}

func (w *Wizard) Errors() []FieldError {
	return ValidateStep(w.State())
}

func (w *Wizard) Next() bool {
	return w.Dispatch(Next{})
}

func (w *Wizard) Back() bool {
	return w.Dispatch(Back{})
}

func (w *Wizard) GoToStep(step Step) bool {
	return w.Dispatch(GoToStep{Step: step})
}

func (w *Wizard) SetProfileField(field, value string) bool {
	return w.Dispatch(ProfileFieldChanged{Field: field, Value: value})
}

func (w *Wizard) SetItemField(id, field, value string) bool {
	return w.Dispatch(ItemFieldChanged{ID: id, Field: field, Value: value})
}

func (w *Wizard) SetBudgetField(field, value string) bool {
	return w.Dispatch(BudgetFieldChanged{Field: field, Value: value})
}

const maxIDAttempts = 16

// AddItem appends an empty line and returns its id. It returns "" only when the
// generator keeps producing ids that are empty or already taken.
func (w *Wizard) AddItem() string {
	for i := 0; i < maxIDAttempts; i++ {
		id := w.newID()
		if w.Dispatch(ItemAdded{ID: id}) {
			return id
		}
	}
	return ""
}

func (w *Wizard) RemoveItem(id string) bool {
	return w.Dispatch(ItemRemoved{ID: id})
}

// BeginSubmit moves the submission to loading. Only allowed on the review step.
func (w *Wizard) BeginSubmit() bool {
	return w.Dispatch(SubmitStarted{})
}

func (w *Wizard) CompleteSubmit() bool {
	return w.Dispatch(SubmitSucceeded{})
}

// Actions returns the journal of applied actions.
func (w *Wizard) Actions() []Action {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Action, len(w.journal))
	copy(out, w.journal)
	return out
}

// FirstItemID is the id the wizard seeded its first line with, for Replay.
func (w *Wizard) FirstItemID() string {
	return w.firstID
}
