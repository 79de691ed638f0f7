package core

// Action is a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, Up arrow
	ActionDown            // S, Down arrow
	ActionLeft            // A, Left arrow
	ActionRight           // D, Right arrow
	ActionBomb            // Space
	ActionDetonate        // E, fires remote-controlled bombs
	ActionConfirm         // Enter
	ActionBack            // B, Escape
	ActionRestart         // R after game over
	ActionQuit            // Q, Ctrl+C
	ActionPause           // P
)

var actionNames = [...]string{
	ActionNone:     "None",
	ActionUp:       "Up",
	ActionDown:     "Down",
	ActionLeft:     "Left",
	ActionRight:    "Right",
	ActionBomb:     "Bomb",
	ActionDetonate: "Detonate",
	ActionConfirm:  "Confirm",
	ActionBack:     "Back",
	ActionRestart:  "Restart",
	ActionQuit:     "Quit",
	ActionPause:    "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Direction returns the movement action in the frame, if any.
// When several are set the first of Up, Down, Left, Right wins.
func (f InputFrame) Direction() (Action, bool) {
	for _, a := range [...]Action{ActionUp, ActionDown, ActionLeft, ActionRight} {
		if f.Has(a) {
			return a, true
		}
	}
	return ActionNone, false
}
