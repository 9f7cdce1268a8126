package inventory

import (
	"errors"

	"github.com/jhoicas/lumina-inventario/internal/domain"
)

// State estado de una solicitud de movimiento.
//
//	Idle -> Validating -> (Rejected | Mutating) -> (Persisted | Aborted) -> RecordingHistory -> (Complete | PartialFailure)
type State string

const (
	StateIdle             State = "idle"
	StateValidating       State = "validating"
	StateRejected         State = "rejected"
	StateMutating         State = "mutating"
	StatePersisted        State = "persisted"
	StateAborted          State = "aborted"
	StateRecordingHistory State = "recording_history"
	StateComplete         State = "complete"
	StatePartialFailure   State = "partial_failure"
)

// Terminal indica si s es un estado final.
func (s State) Terminal() bool {
	switch s {
	case StateRejected, StateAborted, StateComplete, StatePartialFailure:
		return true
	}
	return false
}

// TerminalState estado final que corresponde al error devuelto por Record.
func TerminalState(err error) State {
	switch {
	case err == nil:
		return StateComplete
	case errors.Is(err, domain.ErrPartialFailure):
		return StatePartialFailure
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInsufficientStock):
		return StateRejected
	default:
		return StateAborted
	}
}
