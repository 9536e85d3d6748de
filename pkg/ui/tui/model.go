package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/echocat/slf4g"

	"github.com/blaubaer/transcriber/pkg/common"
	"github.com/blaubaer/transcriber/pkg/session"
)

const (
	formWidth    = 44
	logPaneLines = 10
)

const (
	fieldMonitors = iota
	fieldSpeakers
	fieldBotId
	numberOfFields
)

// Controller is what the form needs of the session.
type Controller interface {
	Toggle(ctx context.Context, conf session.Config) error
	Snapshot() session.Snapshot
	OnChange(session.Listener)
}

type snapshotMsg session.Snapshot

type logLineMsg struct{}

type actionDoneMsg struct {
	err      error
	snapshot session.Snapshot
}

type field struct {
	label string
	hint  string
	input textinput.Model
}

type Model struct {
	ctx        context.Context
	controller Controller

	fields  []field
	focused int

	snapshot session.Snapshot
	pending  bool
	notice   *session.ValidationError

	theme    Theme
	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	logs     *common.LogBuffer
	showLogs bool

	changes  chan session.Snapshot
	logLines chan struct{}
}

// NewModel registers itself as listener at the given controller. logs can be
// nil if the log output is not captured.
func NewModel(ctx context.Context, controller Controller, initial session.Config, dark bool, logs *common.LogBuffer) Model {
	m := Model{
		ctx:        ctx,
		controller: controller,
		snapshot:   controller.Snapshot(),
		theme:      ThemeFor(dark),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		logs:       logs,
		changes:    make(chan session.Snapshot, 1),
		logLines:   make(chan struct{}, 1),
	}

	speakers := initial.Speakers
	if speakers < 1 {
		speakers = 1
	}
	m.fields = []field{
		fieldMonitors: {
			label: "Monitors",
			hint:  "Eg. 1, 2, 3 or 'all'",
			input: newInput("Enter monitor numbers or 'all'", initial.Monitors),
		},
		fieldSpeakers: {
			label: "Number of Speakers",
			hint:  "How many speakers are there?",
			input: newInput("", strconv.Itoa(speakers)),
		},
		fieldBotId: {
			label: "Bot ID",
			hint:  "Enter Bot ID from Argobots that you want to train",
			input: newInput("Enter Bot ID", initial.BotId),
		},
	}
	m.fields[fieldSpeakers].input.CharLimit = 4
	m.fields[fieldSpeakers].input.Validate = validateSpeakers
	m.fields[fieldMonitors].input.Focus()
	m.applyTheme()

	controller.OnChange(m.onChange)
	if logs != nil {
		logs.OnNewLine = m.onNewLogLine
	}

	return m
}

func newInput(placeholder, value string) textinput.Model {
	result := textinput.New()
	result.Prompt = "› "
	result.Placeholder = placeholder
	result.Width = formWidth - 6
	result.SetValue(value)
	return result
}

func validateSpeakers(v string) error {
	if v == "" {
		return nil
	}
	if n, err := strconv.Atoi(v); err != nil || n < 1 {
		return fmt.Errorf("must be a number of at least 1")
	}
	return nil
}

// onChange is called by the controller, never from within Update.
func (this Model) onChange(s session.Snapshot) {
	for {
		select {
		case this.changes <- s:
			return
		default:
		}
		select {
		case <-this.changes:
		default:
		}
	}
}

func (this Model) onNewLogLine(string) {
	select {
	case this.logLines <- struct{}{}:
	default:
	}
}

func waitForSnapshot(changes <-chan session.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-changes)
	}
}

func waitForLogLine(lines <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-lines
		return logLineMsg{}
	}
}

func (this Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		this.spinner.Tick,
		waitForSnapshot(this.changes),
	}
	if this.logs != nil {
		cmds = append(cmds, waitForLogLine(this.logLines))
	}
	return tea.Batch(cmds...)
}

// Config is the session configuration as currently entered.
func (this Model) Config() session.Config {
	speakers, _ := strconv.Atoi(strings.TrimSpace(this.fields[fieldSpeakers].input.Value()))
	return session.Config{
		Monitors: this.fields[fieldMonitors].input.Value(),
		Speakers: speakers,
		BotId:    this.fields[fieldBotId].input.Value(),
	}
}

func (this Model) Busy() bool {
	return this.pending || this.snapshot.Busy
}

func (this Model) Dark() bool {
	return this.theme.Dark
}

func (this Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		this.snapshot = session.Snapshot(msg)
		return this, waitForSnapshot(this.changes)

	case actionDoneMsg:
		this.pending = false
		this.snapshot = msg.snapshot
		if v, ok := common.AsError[*session.ValidationError](msg.err); ok {
			this.notice = v
		}
		return this, nil

	case logLineMsg:
		return this, waitForLogLine(this.logLines)

	case spinner.TickMsg:
		var cmd tea.Cmd
		this.spinner, cmd = this.spinner.Update(msg)
		return this, cmd

	case tea.WindowSizeMsg:
		this.help.Width = msg.Width
		return this, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, this.keys.Quit):
			return this, tea.Quit
		case key.Matches(msg, this.keys.Action):
			return this.triggerAction()
		case key.Matches(msg, this.keys.Theme):
			this.theme = ThemeFor(!this.theme.Dark)
			this.applyTheme()
			return this, nil
		case key.Matches(msg, this.keys.Logs):
			this.showLogs = !this.showLogs
			return this, nil
		case key.Matches(msg, this.keys.Next):
			cmd := this.focus((this.focused + 1) % numberOfFields)
			return this, cmd
		case key.Matches(msg, this.keys.Prev):
			cmd := this.focus((this.focused + numberOfFields - 1) % numberOfFields)
			return this, cmd
		}
	}

	var cmd tea.Cmd
	this.fields[this.focused].input, cmd = this.fields[this.focused].input.Update(msg)
	return this, cmd
}

func (this *Model) focus(i int) tea.Cmd {
	this.fields[this.focused].input.Blur()
	this.focused = i
	return this.fields[i].input.Focus()
}

// triggerAction performs the single action of the form in the background.
// While a request is in flight it does nothing.
func (this Model) triggerAction() (tea.Model, tea.Cmd) {
	if this.Busy() {
		return this, nil
	}

	conf := this.Config()
	if this.snapshot.NextOperation() == session.OperationStart {
		if err := conf.Validate(); err != nil {
			this.notice, _ = common.AsError[*session.ValidationError](err)
			return this, nil
		}
	}
	this.notice = nil
	this.pending = true

	ctx, controller := this.ctx, this.controller
	return this, func() tea.Msg {
		err := controller.Toggle(ctx, conf)
		if err != nil && !errors.Is(err, session.ErrBusy) {
			log.WithError(err).
				Debug("Action failed.")
		}
		return actionDoneMsg{err, controller.Snapshot()}
	}
}

func (this *Model) applyTheme() {
	for i := range this.fields {
		in := &this.fields[i].input
		in.PromptStyle = this.theme.Prompt
		in.TextStyle = this.theme.Text
		in.PlaceholderStyle = this.theme.Placeholder
	}
	this.spinner.Style = this.theme.StatusValue
}

func (this Model) View() string {
	t := this.theme
	var b strings.Builder

	icon := "☾"
	if t.Dark {
		icon = "☀"
	}
	title := t.Title.Render("AI Transcriber")
	gap := formWidth - lipgloss.Width(title) - lipgloss.Width(icon)
	b.WriteString(title + strings.Repeat(" ", max(gap, 1)) + t.ThemeIcon.Render(icon) + "\n\n")

	for i, f := range this.fields {
		b.WriteString(t.Label.Render(f.label) + "  " + t.Hint.Render(f.hint) + "\n")
		style := t.Input
		if i == this.focused {
			style = t.InputFocus
		}
		b.WriteString(style.Render(f.input.View()) + "\n")
	}
	b.WriteString("\n")

	op := this.snapshot.NextOperation()
	label := op.Title()
	button := t.StartButton
	if op == session.OperationStop {
		button = t.StopButton
	}
	if this.Busy() {
		button = t.DisabledButton
		label = this.spinner.View() + " " + label
	}
	b.WriteString(button.Render(label) + "\n\n")

	b.WriteString(t.StatusLabel.Render("Status:") + " " + t.StatusValue.Render(this.snapshot.State.Display()))

	if n := this.notice; n != nil {
		b.WriteString("\n\n" + t.Notice.Render(n.Error()) + "\n" + t.NoticeDetails.Render(session.ValidationDescription))
	}

	view := t.Frame.Render(b.String()) + "\n" + this.help.View(this.keys)

	if this.showLogs && this.logs != nil {
		view += "\n" + t.Logs.Render(strings.Join(this.logs.Tail(logPaneLines), "\n"))
	}
	return view
}
