package core

import "sync"

// Action is a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, Up, W, left click - flap
	ActionRestart        // R - restart after death
	ActionPause          // P, Esc - pause/unpause
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one simulation tick, in arrival order.
// Each physical trigger appears once; a frame may contain the same action twice
// if the player pressed twice within one tick.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set appends an action to the frame.
func (f *InputFrame) Set(a Action) {
	f.Actions = append(f.Actions, a)
}

// Has reports whether the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Count returns how many times the action was triggered this frame.
func (f InputFrame) Count(a Action) int {
	n := 0
	for _, got := range f.Actions {
		if got == a {
			n++
		}
	}
	return n
}

// Inbox collects input edges between ticks. Producers (the terminal event loop)
// Push; the simulation Drains exactly once per tick at a fixed point.
type Inbox struct {
	mu      sync.Mutex
	pending []Action
}

// NewInbox creates an empty inbox.
func NewInbox() *Inbox {
	return &Inbox{pending: make([]Action, 0, 4)}
}

// Push records one input edge. ActionNone is dropped.
func (in *Inbox) Push(a Action) {
	if a == ActionNone {
		return
	}
	in.mu.Lock()
	in.pending = append(in.pending, a)
	in.mu.Unlock()
}

// Drain returns everything pushed since the previous drain, oldest first.
func (in *Inbox) Drain() InputFrame {
	in.mu.Lock()
	defer in.mu.Unlock()

	if len(in.pending) == 0 {
		return InputFrame{}
	}
	frame := InputFrame{Actions: make([]Action, len(in.pending))}
	copy(frame.Actions, in.pending)
	in.pending = in.pending[:0]
	return frame
}
