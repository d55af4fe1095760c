// Package orders holds the order lifecycle: status transitions, order
// id generation, and assembly of the order aggregate at submission.
package orders

import (
	"errors"
	"strings"

	"designflow-backend/internal/models"
)

var (
	ErrInvalidTransition     = errors.New("status transition not allowed")
	ErrRevisionNotesRequired = errors.New("revision notes must not be empty")
	ErrOrderNotCancellable   = errors.New("order can no longer be cancelled")
	ErrNotAwaitingApproval   = errors.New("order has no draft awaiting approval")
)

// Actor identifies who is driving a transition. Clients are restricted
// to the approve/revise/cancel verbs; admins move orders freely between
// any non-terminal statuses.
type Actor string

const (
	ActorClient Actor = "client"
	ActorAdmin  Actor = "admin"
)

// IsTerminal reports whether no further transitions are allowed.
func IsTerminal(s models.Status) bool {
	return s == models.StatusCompleted || s == models.StatusCancelled
}

// CanCancel reports whether a client may still cancel. The window closes
// once payment is requested.
func CanCancel(s models.Status) bool {
	switch s {
	case models.StatusPending, models.StatusReviewing, models.StatusInProgress,
		models.StatusDraftSent, models.StatusRevision:
		return true
	}
	return false
}

// Transition validates a status change for the given actor. Revision
// requests must carry notes telling the designer what to change.
func Transition(actor Actor, from, to models.Status, notes string) error {
	if !to.Valid() {
		return ErrInvalidTransition
	}
	if from == to {
		return nil
	}
	if IsTerminal(from) {
		return ErrInvalidTransition
	}

	if actor == ActorAdmin {
		return nil
	}

	switch to {
	case models.StatusCancelled:
		if !CanCancel(from) {
			return ErrOrderNotCancellable
		}
		return nil
	case models.StatusWaitingPayment:
		// Client approval of the delivered draft.
		if from != models.StatusDraftSent {
			return ErrNotAwaitingApproval
		}
		return nil
	case models.StatusRevision:
		if from != models.StatusDraftSent {
			return ErrNotAwaitingApproval
		}
		if strings.TrimSpace(notes) == "" {
			return ErrRevisionNotesRequired
		}
		return nil
	}
	return ErrInvalidTransition
}

// SuggestStatusForDraft returns the status an admin is prompted to move
// an order to after uploading a draft. The move is a suggestion only;
// saving the order still decides.
func SuggestStatusForDraft(current models.Status) models.Status {
	if current == models.StatusDraftSent || IsTerminal(current) {
		return current
	}
	return models.StatusDraftSent
}

// ShouldNotify reports whether a client notification fires for a save.
// Exactly one notification per save, and only when the status moved.
func ShouldNotify(old, new models.Status) bool {
	return old != new
}
