package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaubaer/transcriber/pkg/common"
	"github.com/blaubaer/transcriber/pkg/session"
	"github.com/blaubaer/transcriber/pkg/signal"
)

type fakeRemote struct {
	startMessage string
	stopMessage  string
}

func (this *fakeRemote) Start(context.Context, session.Config) (string, error) {
	return this.startMessage, nil
}

func (this *fakeRemote) Stop(context.Context) (string, error) {
	return this.stopMessage, nil
}

type signalCall struct {
	method string
	state  signal.State
}

type fakeSignal struct {
	calls []signalCall
	mutex sync.Mutex
}

func (this *fakeSignal) record(method string, state signal.State) {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.calls = append(this.calls, signalCall{method, state})
}

func (this *fakeSignal) recorded() []signalCall {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return append([]signalCall(nil), this.calls...)
}

func (this *fakeSignal) Ensure(ctx signal.Context) error {
	this.record("ensure", ctx.State())
	return nil
}

func (this *fakeSignal) Update() error {
	this.record("update", signal.StateUnknown)
	return nil
}

func (this *fakeSignal) Dispose() error {
	return nil
}

func (this *fakeSignal) GetType() signal.Type {
	return signal.TypeNone
}

func TestConfiguration_saveAndLoad(t *testing.T) {
	given := NewConfiguration()
	given.Remote.Server = "https://transcribe.example.org"
	given.Remote.Timeout = 10 * time.Second
	given.Signal.Type = signal.TypeHue
	given.Signal.Hue.Name = common.MustNewPattern("^Studio")
	given.Session = session.Config{Monitors: "all", Speakers: 2, BotId: "secret-bot"}

	var buf bytes.Buffer
	require.NoError(t, given.saveTo(&buf))
	assert.NotContains(t, buf.String(), "secret-bot")
	assert.Contains(t, buf.String(), "timeout: 10s")
	assert.Contains(t, buf.String(), "type: hue")

	actual := NewConfiguration()
	require.NoError(t, actual.loadFrom(strings.NewReader(buf.String())))
	assert.Equal(t, "https://transcribe.example.org", actual.Remote.Server)
	assert.Equal(t, 10*time.Second, actual.Remote.Timeout)
	assert.Equal(t, signal.TypeHue, actual.Signal.Type)
	assert.Equal(t, "^Studio", actual.Signal.Hue.Name.String())
	assert.Equal(t, session.Config{}, actual.Session)
}

func TestConfiguration_loadRejectsUnknownFields(t *testing.T) {
	actual := NewConfiguration()
	assert.Error(t, actual.loadFrom(strings.NewReader("serverr: foo\n")))
}

func TestConfiguration_loadEmpty(t *testing.T) {
	actual := NewConfiguration()
	require.NoError(t, actual.loadFrom(strings.NewReader("")))
	assert.Equal(t, NewConfiguration().Remote, actual.Remote)
}

func TestMergeFlags(t *testing.T) {
	dst := NewConfiguration()
	dst.Remote.Server = "https://from-file"
	dst.RefreshInterval = time.Minute

	var fromFlags Configuration
	fromFlags.Remote.Server = "https://from-flags"
	fromFlags.Signal.Hue.Name = common.MustNewPattern("^Desk")
	fromFlags.Session.BotId = "bot"

	require.NoError(t, mergeFlags(&dst, fromFlags))
	assert.Equal(t, "https://from-flags", dst.Remote.Server)
	assert.Equal(t, time.Minute, dst.RefreshInterval)
	assert.Equal(t, 60*time.Second, dst.Remote.Timeout)
	assert.Equal(t, "^Desk", dst.Signal.Hue.Name.String())
	assert.Equal(t, "bot", dst.Session.BotId)
}

func TestMergeFlags_keepsPatternIfFlagAbsent(t *testing.T) {
	dst := NewConfiguration()

	require.NoError(t, mergeFlags(&dst, Configuration{}))
	assert.Equal(t, "^OnAir", dst.Signal.Hue.Name.String())
}

func newTestApp(t testing.TB, remote session.Remote, customizers ...func(*App)) *App {
	instance := NewApp()
	instance.ConfigurationFile = filepath.Join(t.TempDir(), "configuration.yml")
	instance.Remote = remote
	instance.configFromFlags.Session = session.Config{Monitors: "1", Speakers: 1, BotId: "pre-filled"}
	for _, customizer := range customizers {
		customizer(instance)
	}
	require.NoError(t, instance.Initialize())
	t.Cleanup(func() { _ = instance.Dispose() })
	return instance
}

func TestApp_Initialize_savesConfiguration(t *testing.T) {
	instance := newTestApp(t, &fakeRemote{})

	b, err := os.ReadFile(instance.ConfigurationFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "transcribe-python.ohanapal.bot")
	assert.NotContains(t, string(b), "pre-filled")
	assert.Equal(t, "pre-filled", instance.SessionConfig().BotId)
}

func TestApp_Toggle(t *testing.T) {
	instance := newTestApp(t, &fakeRemote{startMessage: "Started", stopMessage: "Stopped"})
	conf := session.Config{Monitors: "all", Speakers: 3, BotId: "bot"}

	require.NoError(t, instance.Toggle(context.Background(), conf))
	assert.Equal(t, "Started", instance.Snapshot().State.Display())
	assert.Equal(t, conf, instance.SessionConfig())

	require.NoError(t, instance.Toggle(context.Background(), session.Config{}))
	assert.Equal(t, "Stopped", instance.Snapshot().State.Display())
	assert.Equal(t, session.ActivityInactive, instance.Snapshot().Activity)
	assert.Equal(t, conf, instance.SessionConfig())
}

func TestApp_onChange_keepsLatest(t *testing.T) {
	instance := newTestApp(t, &fakeRemote{})

	instance.onChange(session.Snapshot{State: session.State{Phase: session.PhaseStarting}})
	instance.onChange(session.Snapshot{State: session.State{Phase: session.PhaseRunning}})

	actual := <-instance.changes
	assert.Equal(t, session.PhaseRunning, actual.State.Phase)
	assert.Empty(t, instance.changes)
}

func TestApp_Run_stopsWithContext(t *testing.T) {
	instance := newTestApp(t, &fakeRemote{startMessage: "Started"})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- instance.Run(ctx)
	}()

	require.NoError(t, instance.Start(context.Background(), session.Config{Monitors: "all", Speakers: 1, BotId: "b"}))
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func runInBackground(t testing.TB, instance *App) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, instance.Run(ctx))
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestApp_Run_ensuresSignalOnStartAndChange(t *testing.T) {
	fake := &fakeSignal{}
	instance := newTestApp(t, &fakeRemote{startMessage: "Started"}, func(a *App) {
		a.Signal.Signal = fake
	})
	runInBackground(t, instance)

	require.Eventually(t, func() bool {
		return len(fake.recorded()) >= 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, signalCall{"ensure", signal.StateOff}, fake.recorded()[0])

	require.NoError(t, instance.Start(context.Background(), session.Config{Monitors: "all", Speakers: 1, BotId: "b"}))

	assert.Eventually(t, func() bool {
		calls := fake.recorded()
		return calls[len(calls)-1] == signalCall{"ensure", signal.StateOn}
	}, 5*time.Second, 10*time.Millisecond)
}

func TestApp_Run_refreshesSignalPeriodically(t *testing.T) {
	fake := &fakeSignal{}
	instance := newTestApp(t, &fakeRemote{}, func(a *App) {
		a.Signal.Signal = fake
		a.configFromFlags.RefreshInterval = 20 * time.Millisecond
	})
	runInBackground(t, instance)

	assert.Eventually(t, func() bool {
		calls := fake.recorded()
		for i := 0; i+1 < len(calls); i++ {
			if calls[i].method == "update" && calls[i+1] == (signalCall{"ensure", signal.StateOff}) {
				return true
			}
		}
		return false
	}, 5*time.Second, 10*time.Millisecond)
}
