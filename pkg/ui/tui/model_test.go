package tui

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaubaer/transcriber/pkg/common"
	"github.com/blaubaer/transcriber/pkg/session"
)

type fakeController struct {
	snapshot  session.Snapshot
	toggled   []session.Config
	listeners []session.Listener
	mutex     sync.Mutex
}

func (this *fakeController) Toggle(_ context.Context, conf session.Config) error {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.toggled = append(this.toggled, conf)
	if this.snapshot.NextOperation() == session.OperationStart {
		this.snapshot = session.Snapshot{State: session.State{Phase: session.PhaseRunning, Message: "Started"}, Activity: session.ActivityActive}
	} else {
		this.snapshot = session.Snapshot{State: session.State{Phase: session.PhaseIdle, Message: "Stopped"}, Activity: session.ActivityInactive}
	}
	return nil
}

func (this *fakeController) Snapshot() session.Snapshot {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return this.snapshot
}

func (this *fakeController) OnChange(l session.Listener) {
	this.listeners = append(this.listeners, l)
}

func newTestModel(t testing.TB, initial session.Config) (Model, *fakeController) {
	controller := &fakeController{}
	m := NewModel(context.Background(), controller, initial, false, nil)
	require.Len(t, controller.listeners, 1)
	return m, controller
}

func update(t testing.TB, m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	result, ok := next.(Model)
	require.True(t, ok)
	return result, cmd
}

func press(t testing.TB, m Model, k tea.KeyType) (Model, tea.Cmd) {
	return update(t, m, tea.KeyMsg{Type: k})
}

func typeText(t testing.TB, m Model, text string) Model {
	for _, r := range text {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_prefilled(t *testing.T) {
	m, _ := newTestModel(t, session.Config{Monitors: "all", BotId: "bot"})

	assert.Equal(t, session.Config{Monitors: "all", Speakers: 1, BotId: "bot"}, m.Config())
	assert.Contains(t, m.View(), "Start Transcription")
	assert.Contains(t, m.View(), "Status:")
	assert.Contains(t, m.View(), "Idle")
	assert.Contains(t, m.View(), "Eg. 1, 2, 3 or 'all'")
}

func TestModel_typingAndFocus(t *testing.T) {
	m, _ := newTestModel(t, session.Config{})

	m = typeText(t, m, "1, 2")
	m, _ = press(t, m, tea.KeyTab)
	m, _ = press(t, m, tea.KeyBackspace)
	m = typeText(t, m, "3")
	m, _ = press(t, m, tea.KeyTab)
	m = typeText(t, m, "bot-7")

	assert.Equal(t, session.Config{Monitors: "1, 2", Speakers: 3, BotId: "bot-7"}, m.Config())

	m, _ = press(t, m, tea.KeyShiftTab)
	assert.Equal(t, fieldSpeakers, m.focused)
	m, _ = press(t, m, tea.KeyTab)
	m, _ = press(t, m, tea.KeyTab)
	assert.Equal(t, fieldMonitors, m.focused)
}

func TestModel_actionWithInvalidConfig(t *testing.T) {
	m, controller := newTestModel(t, session.Config{Monitors: "all"})

	m, cmd := press(t, m, tea.KeyEnter)

	assert.Nil(t, cmd)
	assert.Empty(t, controller.toggled)
	assert.False(t, m.Busy())
	require.NotNil(t, m.notice)
	assert.Equal(t, []string{"botId"}, m.notice.Fields)
	assert.Contains(t, m.View(), session.ValidationNotice)
	assert.Contains(t, m.View(), session.ValidationDescription)
	assert.Equal(t, session.PhaseIdle, m.snapshot.State.Phase)
}

func TestModel_actionStartsAndStops(t *testing.T) {
	conf := session.Config{Monitors: "all", Speakers: 2, BotId: "bot"}
	m, controller := newTestModel(t, conf)

	m, cmd := press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.True(t, m.Busy())

	m, cmd2 := press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd2, "action must be ignored while busy")

	m, _ = update(t, m, cmd())
	assert.False(t, m.Busy())
	assert.Equal(t, []session.Config{conf}, controller.toggled)
	assert.Contains(t, m.View(), "Started")
	assert.Contains(t, m.View(), "Stop Transcription")

	m, cmd = press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Len(t, controller.toggled, 2)
	assert.Contains(t, m.View(), "Stopped")
	assert.Contains(t, m.View(), "Start Transcription")
}

func TestModel_stopDoesNotRequireValidConfig(t *testing.T) {
	m, controller := newTestModel(t, session.Config{})
	controller.snapshot = session.Snapshot{State: session.State{Phase: session.PhaseFailed, Message: "oops"}, Activity: session.ActivityUnknown}
	m, _ = update(t, m, snapshotMsg(controller.snapshot))

	m, cmd := press(t, m, tea.KeyEnter)

	require.NotNil(t, cmd)
	assert.Nil(t, m.notice)
	m, _ = update(t, m, cmd())
	assert.Equal(t, session.ActivityInactive, m.snapshot.Activity)
}

func TestModel_snapshotFromListener(t *testing.T) {
	m, controller := newTestModel(t, session.Config{})

	controller.listeners[0](session.Snapshot{State: session.State{Phase: session.PhaseStarting}, Busy: true})
	controller.listeners[0](session.Snapshot{State: session.State{Phase: session.PhaseRunning, Message: "Go"}, Activity: session.ActivityActive})

	m, cmd := update(t, m, waitForSnapshot(m.changes)())
	assert.NotNil(t, cmd)
	assert.Equal(t, "Go", m.snapshot.State.Display())
	assert.False(t, m.Busy())
}

func TestModel_themeToggleKeepsSession(t *testing.T) {
	m, controller := newTestModel(t, session.Config{Monitors: "all", Speakers: 2, BotId: "bot"})
	before := m.snapshot
	conf := m.Config()

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})

	assert.Nil(t, cmd)
	assert.True(t, m.Dark())
	assert.Equal(t, before, m.snapshot)
	assert.Equal(t, conf, m.Config())
	assert.Empty(t, controller.toggled)
	assert.Contains(t, m.View(), "☀")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.False(t, m.Dark())
}

func TestModel_logPane(t *testing.T) {
	logs := common.NewLogBuffer(10, 100)
	m := NewModel(context.Background(), &fakeController{}, session.Config{}, false, logs)

	_, _ = logs.Write([]byte("hello from the log\n"))
	assert.NotContains(t, m.View(), "hello from the log")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Contains(t, m.View(), "hello from the log")

	_, cmd := update(t, m, waitForLogLine(m.logLines)())
	assert.NotNil(t, cmd)
}

func TestModel_quit(t *testing.T) {
	m, _ := newTestModel(t, session.Config{})

	_, cmd := press(t, m, tea.KeyEsc)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestThemeFor(t *testing.T) {
	light, dark := ThemeFor(false), ThemeFor(true)

	assert.False(t, light.Dark)
	assert.True(t, dark.Dark)
	assert.NotEqual(t, light.Title.GetForeground(), dark.Title.GetForeground())
	assert.Equal(t, ThemeFor(true).Title.GetForeground(), dark.Title.GetForeground())
}
