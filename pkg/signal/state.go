package signal

import (
	"fmt"
	"strings"

	"github.com/blaubaer/transcriber/pkg/session"
)

type State uint8

const (
	StateOff     = State(0)
	StateOn      = State(1)
	StateUnknown = State(2)
)

var (
	AllStates = States{
		StateOff,
		StateOn,
		StateUnknown,
	}
)

func StateOf(activity session.Activity) State {
	switch activity {
	case session.ActivityActive:
		return StateOn
	case session.ActivityInactive:
		return StateOff
	default:
		return StateUnknown
	}
}

func (this *State) Set(plain string) error {
	switch strings.TrimSpace(strings.ToLower(plain)) {
	case "off", "0", "false", "no":
		*this = StateOff
		return nil
	case "on", "1", "true", "yes":
		*this = StateOn
		return nil
	case "unknown", "unavailable":
		*this = StateUnknown
		return nil
	default:
		return fmt.Errorf("illegal-signal-state: %s", plain)
	}
}

func (this State) String() string {
	v, err := this.MarshalText()
	if err != nil {
		return fmt.Sprintf("illegal-signal-state-%d", this)
	}
	return string(v)
}

func (this State) MarshalText() (text []byte, err error) {
	switch this {
	case StateOff:
		return []byte("off"), nil
	case StateOn:
		return []byte("on"), nil
	case StateUnknown:
		return []byte("unknown"), nil
	default:
		return nil, fmt.Errorf("illegal signal state: %d", this)
	}
}

func (this *State) UnmarshalText(text []byte) error {
	return this.Set(string(text))
}

type States []State

func (this States) Strings() []string {
	result := make([]string, len(this))
	for i, v := range this {
		result[i] = v.String()
	}
	return result
}

func (this States) String() string {
	return strings.Join(this.Strings(), ",")
}
