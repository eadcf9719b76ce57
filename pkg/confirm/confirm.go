// Package confirm implements the two-step destructive action used by list
// rows and the meal form: a toggle opens a "Delete item?" prompt which is then
// confirmed or cancelled.
package confirm

// State is the position of a Toggle.
type State int

const (
	Idle State = iota
	AwaitingConfirmation
)

func (s State) String() string {
	switch s {
	case AwaitingConfirmation:
		return "awaiting-confirmation"
	default:
		return "idle"
	}
}

// Toggle is the confirm-before-delete state machine. The zero value is Idle.
// A Toggle is never reset by data refreshes; only a new instance starts over.
// It is not safe for concurrent use.
type Toggle struct {
	state State
}

// State reports the current state.
func (t *Toggle) State() State {
	if t == nil {
		return Idle
	}
	return t.state
}

// Awaiting reports whether a confirmation is pending.
func (t *Toggle) Awaiting() bool {
	return t.State() == AwaitingConfirmation
}

// Flip moves Idle to AwaitingConfirmation and back.
func (t *Toggle) Flip() State {
	if t.state == AwaitingConfirmation {
		t.state = Idle
	} else {
		t.state = AwaitingConfirmation
	}
	return t.state
}

// Confirm returns to Idle and reports whether a confirmation was pending. The
// caller fires the destructive action only when it returns true.
func (t *Toggle) Confirm() bool {
	if t.state != AwaitingConfirmation {
		return false
	}
	t.state = Idle
	return true
}

// Cancel returns to Idle without side effects.
func (t *Toggle) Cancel() {
	t.state = Idle
}
