package core

// Action represents a semantic input intent, abstracted from physical key presses.
// Hosts translate keys, clicks or pilot decisions into actions.
type Action int

const (
	ActionNone    Action = iota
	ActionFlap           // Space, W, Up, left click - upward impulse
	ActionPause          // P - pause/unpause
	ActionRestart        // R or a click on the restart button
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlap:
		return "Flap"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Point is a pointer position in world units.
type Point struct {
	X, Y float64
}

// InputFrame collects the actions observed between two ticks.
// An action is either observed or not; repeated presses are not counted.
type InputFrame struct {
	Actions map[Action]bool

	// Pointer is the world position of the click that produced ActionRestart,
	// or nil when the restart came from a dedicated key.
	Pointer *Point
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as observed for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// SetPointer marks an action as observed together with a pointer position.
func (f *InputFrame) SetPointer(a Action, p Point) {
	f.Set(a)
	f.Pointer = &p
}

// Has returns true if the given action was observed this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was observed.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = nil
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if f.Pointer != nil {
		p := *f.Pointer
		clone.Pointer = &p
	}
	return clone
}
