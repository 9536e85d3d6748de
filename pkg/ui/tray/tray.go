package tray

import (
	"context"
	"errors"

	log "github.com/echocat/slf4g"
	"github.com/getlantern/systray"

	"github.com/blaubaer/transcriber/pkg/common"
	"github.com/blaubaer/transcriber/pkg/session"
)

type Controller interface {
	Toggle(ctx context.Context, conf session.Config) error
	Snapshot() session.Snapshot
	OnChange(session.Listener)
	SessionConfig() session.Config
}

// presentation is everything the tray shows for one snapshot.
type presentation struct {
	running       bool
	status        string
	action        string
	actionEnabled bool
}

func presentationOf(s session.Snapshot) presentation {
	return presentation{
		running:       s.Activity != session.ActivityInactive,
		status:        "Status: " + s.State.Display(),
		action:        s.NextOperation().Title(),
		actionEnabled: !s.Busy,
	}
}

type menu struct {
	status *systray.MenuItem
	action *systray.MenuItem
	exit   *systray.MenuItem
}

func (this *menu) apply(p presentation) {
	if p.running {
		systray.SetIcon(iconRunning)
	} else {
		systray.SetIcon(iconIdle)
	}
	systray.SetTooltip("AI Transcriber - " + p.status)
	this.status.SetTitle(p.status)
	this.action.SetTitle(p.action)
	if p.actionEnabled {
		this.action.Enable()
	} else {
		this.action.Disable()
	}
}

// Run shows the tray icon until exit was clicked or ctx is done. It has to be
// called from the main goroutine.
func Run(ctx context.Context, controller Controller) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	systray.Run(func() {
		systray.SetIcon(iconIdle)
		systray.SetTitle("AI Transcriber")

		m := &menu{}
		m.status = systray.AddMenuItem("", "Current status of the transcription.")
		m.status.Disable()
		m.action = systray.AddMenuItem("", "Starts or stops the transcription.")
		systray.AddSeparator()
		m.exit = systray.AddMenuItem("Exit", "Exit the transcriber")

		m.apply(presentationOf(controller.Snapshot()))
		controller.OnChange(func(s session.Snapshot) {
			m.apply(presentationOf(s))
		})

		go func() {
			for {
				select {
				case <-m.action.ClickedCh:
					go toggle(ctx, controller, m)
				case <-m.exit.ClickedCh:
					log.Info("Exit clicked. Going down...")
					cancel()
				case <-ctx.Done():
					systray.Quit()
					return
				}
			}
		}()
	}, nil)

	return nil
}

func toggle(ctx context.Context, controller Controller, m *menu) {
	err := controller.Toggle(ctx, controller.SessionConfig())
	if v, ok := common.AsError[*session.ValidationError](err); ok {
		log.With("details", v.Details()).
			Warn("Cannot start transcription. Provide --monitors, --speakers and --botId.")
		m.status.SetTitle(v.Error())
		return
	}
	if err != nil && !errors.Is(err, session.ErrBusy) {
		log.WithError(err).
			Debug("Action failed.")
	}
}
