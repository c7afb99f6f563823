// Package input maps keyboard events to viewer actions. Event polling lives
// in the window package; this package holds no SDL state.
package input

// Action is something the viewer does in response to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggleRotation
	ActionRefresh
	ActionScreenshot
	ActionMoveForward
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
)

var actionNames = [...]string{
	ActionNone:           "none",
	ActionQuit:           "quit",
	ActionToggleRotation: "toggle-rotation",
	ActionRefresh:        "refresh",
	ActionScreenshot:     "screenshot",
	ActionMoveForward:    "move-forward",
	ActionMoveBackward:   "move-backward",
	ActionMoveLeft:       "move-left",
	ActionMoveRight:      "move-right",
	ActionMoveUp:         "move-up",
	ActionMoveDown:       "move-down",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Repeats reports whether the action fires again on keyboard auto-repeat.
func (a Action) Repeats() bool {
	return a >= ActionMoveForward && a <= ActionMoveDown
}

// Key is a physical key, numbered like SDL scancodes.
type Key uint32

// Keys used by the default bindings.
const (
	KeyA      Key = 4
	KeyD      Key = 7
	KeyR      Key = 21
	KeyS      Key = 22
	KeyU      Key = 24
	KeyW      Key = 26
	KeyEscape Key = 41
	KeyF12    Key = 69
	KeyDown   Key = 81
	KeyUp     Key = 82
)

// Keymap binds keys to actions.
type Keymap map[Key]Action

// DefaultKeymap returns the standard bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		KeyW:      ActionMoveForward,
		KeyS:      ActionMoveBackward,
		KeyA:      ActionMoveLeft,
		KeyD:      ActionMoveRight,
		KeyUp:     ActionMoveUp,
		KeyDown:   ActionMoveDown,
		KeyR:      ActionToggleRotation,
		KeyU:      ActionRefresh,
		KeyEscape: ActionQuit,
		KeyF12:    ActionScreenshot,
	}
}

// State accumulates input between frames.
type State struct {
	keymap    Keymap
	held      map[Action]bool
	triggered []Action
	quit      bool

	resized       bool
	width, height int
}

// New creates an input state with the given bindings.
func New(keymap Keymap) *State {
	if keymap == nil {
		keymap = DefaultKeymap()
	}
	return &State{
		keymap:    keymap,
		held:      make(map[Action]bool),
		triggered: make([]Action, 0, 8),
	}
}

// KeyDown records a key press. Camera moves fire on every auto-repeat;
// other actions fire once per physical press.
func (s *State) KeyDown(k Key, repeat bool) {
	a, ok := s.keymap[k]
	if !ok {
		return
	}
	if repeat && !a.Repeats() {
		return
	}
	s.held[a] = true
	if a == ActionQuit {
		s.quit = true
	}
	s.triggered = append(s.triggered, a)
}

// KeyUp records a key release.
func (s *State) KeyUp(k Key) {
	if a, ok := s.keymap[k]; ok {
		delete(s.held, a)
	}
}

// RequestQuit records a window close.
func (s *State) RequestQuit() {
	s.quit = true
}

// Resize records a new drawable size.
func (s *State) Resize(width, height int) {
	s.resized = true
	s.width, s.height = width, height
}

// QuitRequested reports whether Escape was pressed or the window closed.
func (s *State) QuitRequested() bool {
	return s.quit
}

// Held reports whether a key bound to a is down.
func (s *State) Held(a Action) bool {
	return s.held[a]
}

// Triggered returns the actions fired since the last call, in order.
func (s *State) Triggered() []Action {
	out := append([]Action(nil), s.triggered...)
	s.triggered = s.triggered[:0]
	return out
}

// TakeResize returns the latest size once after each Resize.
func (s *State) TakeResize() (width, height int, ok bool) {
	if !s.resized {
		return 0, 0, false
	}
	s.resized = false
	return s.width, s.height, true
}
