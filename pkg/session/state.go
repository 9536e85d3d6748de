package session

import (
	"fmt"
	"strings"
)

type Phase uint8

const (
	PhaseIdle = Phase(iota)
	PhaseStarting
	PhaseRunning
	PhaseStopping
	PhaseFailed
)

func (this Phase) String() string {
	switch this {
	case PhaseIdle:
		return "idle"
	case PhaseStarting:
		return "starting"
	case PhaseRunning:
		return "running"
	case PhaseStopping:
		return "stopping"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("illegal-phase-%d", this)
	}
}

type State struct {
	Phase   Phase
	Message string
}

func (this State) Display() string {
	switch this.Phase {
	case PhaseIdle:
		if this.Message == "" {
			return "Idle"
		}
		return this.Message
	case PhaseStarting:
		return "Starting..."
	case PhaseRunning:
		if this.Message == "" {
			return "Running"
		}
		return this.Message
	case PhaseStopping:
		return "Stopping..."
	case PhaseFailed:
		return "Error: " + this.Message
	default:
		return this.Phase.String()
	}
}

func (this State) String() string {
	return this.Display()
}

// Activity is what we believe about the remote job.
type Activity uint8

const (
	ActivityInactive = Activity(iota)
	ActivityActive
	// ActivityUnknown is entered after a failed stop: the job may or may not
	// still be running.
	ActivityUnknown
)

func (this *Activity) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "inactive", "off", "false":
		*this = ActivityInactive
		return nil
	case "active", "on", "true":
		*this = ActivityActive
		return nil
	case "unknown":
		*this = ActivityUnknown
		return nil
	default:
		return fmt.Errorf("illegal-activity: %s", plain)
	}
}

func (this Activity) String() string {
	switch this {
	case ActivityInactive:
		return "inactive"
	case ActivityActive:
		return "active"
	case ActivityUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("illegal-activity-%d", this)
	}
}

type Operation uint8

const (
	OperationStart = Operation(iota)
	OperationStop
)

func (this Operation) String() string {
	switch this {
	case OperationStart:
		return "start"
	case OperationStop:
		return "stop"
	default:
		return fmt.Sprintf("illegal-operation-%d", this)
	}
}

func (this Operation) Path() string {
	return "/" + this.String()
}

func (this Operation) Title() string {
	switch this {
	case OperationStop:
		return "Stop Transcription"
	default:
		return "Start Transcription"
	}
}

func (this Operation) DefaultFailureMessage() string {
	return fmt.Sprintf("Failed to %v process", this)
}

type Snapshot struct {
	State    State
	Activity Activity
	Busy     bool
}

// NextOperation is what the single action control would trigger.
func (this Snapshot) NextOperation() Operation {
	if this.Activity == ActivityInactive {
		return OperationStart
	}
	return OperationStop
}

func (this Snapshot) String() string {
	return fmt.Sprintf("%v (%v, busy=%v)", this.State.Phase, this.Activity, this.Busy)
}
