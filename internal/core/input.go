package core

// PointerPhase is the stage of a single-pointer gesture.
// A gesture is always delivered as Down, Move*, then Up or Cancel.
type PointerPhase int

const (
	PointerDown PointerPhase = iota
	PointerMove
	PointerUp
	PointerCancel
)

// String returns a human-readable name for the phase.
func (p PointerPhase) String() string {
	switch p {
	case PointerDown:
		return "Down"
	case PointerMove:
		return "Move"
	case PointerUp:
		return "Up"
	case PointerCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// PointerEvent is a pointer sample in board space.
type PointerEvent struct {
	Phase PointerPhase
	At    Point
}

// Action represents a semantic key action, abstracted from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionConfirm        // Enter, Space - start the game from the title screen
	ActionRestart        // R - play again after the last round
	ActionMute           // M - toggle audio
	ActionHelp           // ? - toggle full help
	ActionBack           // Esc, B - return to the title screen
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionMute:
		return "Mute"
	case ActionHelp:
		return "Help"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
