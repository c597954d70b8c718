package lifecycle

// State is the lifecycle state of a Component.
type State int

const (
	Idle State = iota
	Starting
	Started
	Failed
	Stopping
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Starting:
		return "starting"
	case Started:
		return "started"
	case Failed:
		return "failed"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Transition describes a single state change of a Component.
type Transition struct {
	Component string
	From      State
	To        State
	Err       error
}
