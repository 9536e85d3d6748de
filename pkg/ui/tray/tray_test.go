package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blaubaer/transcriber/pkg/session"
)

func TestPresentationOf(t *testing.T) {
	cases := []struct {
		name     string
		given    session.Snapshot
		expected presentation
	}{{
		name:     "idle",
		given:    session.Snapshot{},
		expected: presentation{false, "Status: Idle", "Start Transcription", true},
	}, {
		name:     "starting",
		given:    session.Snapshot{State: session.State{Phase: session.PhaseStarting}, Busy: true},
		expected: presentation{false, "Status: Starting...", "Start Transcription", false},
	}, {
		name:     "running",
		given:    session.Snapshot{State: session.State{Phase: session.PhaseRunning, Message: "Started"}, Activity: session.ActivityActive},
		expected: presentation{true, "Status: Started", "Stop Transcription", true},
	}, {
		name:     "stop failed",
		given:    session.Snapshot{State: session.State{Phase: session.PhaseFailed, Message: "Bot gone"}, Activity: session.ActivityUnknown},
		expected: presentation{true, "Status: Error: Bot gone", "Stop Transcription", true},
	}}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, presentationOf(c.given))
		})
	}
}

func TestIcons(t *testing.T) {
	assert.NotEmpty(t, iconIdle)
	assert.NotEmpty(t, iconRunning)
	assert.NotEqual(t, iconIdle, iconRunning)
}
