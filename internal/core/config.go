package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the externally visible status of a game after a tick.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
	Phase    string // Session phase name ("ready", "running", "dead")
}

// EventKind classifies what happened during a tick.
type EventKind int

const (
	EventStart   EventKind = iota + 1 // Session left Ready
	EventFlap                         // Flyer flapped
	EventScore                        // A gate was passed
	EventDeath                        // Fatal collision, session is over
	EventRestart                      // Session went back to Ready
	EventSpawn                        // A gate entered the world
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventFlap:
		return "flap"
	case EventScore:
		return "score"
	case EventDeath:
		return "death"
	case EventRestart:
		return "restart"
	case EventSpawn:
		return "spawn"
	default:
		return "unknown"
	}
}

// Event is a discrete signal raised by a tick, in the order it happened.
type Event struct {
	Kind  EventKind
	Tick  uint64
	Score int // Score after the event
}

// StepResult is returned after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the result carries an event of the given kind.
func (r StepResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
