package lifecycle

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tradeboard/internal/client/models"
)

// ErrTerminalState is returned for any event on a redacted or deleted listing.
var ErrTerminalState = errors.New("listing can no longer change")

type Event int

const (
	EventEdit Event = iota
	EventDelete
	EventModerate
)

func (e Event) String() string {
	switch e {
	case EventEdit:
		return "edit"
	case EventDelete:
		return "delete"
	case EventModerate:
		return "moderate"
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// Next is the transition table. Editing keeps a listing active.
func Next(s models.State, e Event) (models.State, error) {
	if s != models.StateActive {
		return s, fmt.Errorf("%w: %s on %s listing", ErrTerminalState, e, s)
	}
	switch e {
	case EventEdit:
		return models.StateActive, nil
	case EventDelete:
		return models.StateHardDeleted, nil
	case EventModerate:
		return models.StateRedacted, nil
	}
	return s, fmt.Errorf("unknown event %d", int(e))
}
