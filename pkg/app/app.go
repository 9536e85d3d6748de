package app

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	log "github.com/echocat/slf4g"

	"github.com/blaubaer/transcriber/pkg/common"
	"github.com/blaubaer/transcriber/pkg/remote"
	"github.com/blaubaer/transcriber/pkg/session"
	"github.com/blaubaer/transcriber/pkg/signal"
	"github.com/blaubaer/transcriber/pkg/signal/facade"
)

func NewApp() *App {
	return &App{}
}

// App wires configuration, the session controller and the signal together.
// All frontends (terminal form, tray, one-shot commands) work through it.
type App struct {
	Signal            facade.Facade
	ConfigurationFile string

	// Remote overrides the HTTP client of the transcription service if set.
	Remote session.Remote

	controller *session.Controller
	lastConfig atomic.Pointer[session.Config]
	changes    chan session.Snapshot

	configFromFlags Configuration
	config          Configuration
}

func (this *App) SetupConfiguration(using common.FlagHolder) {
	this.configFromFlags.SetupConfiguration(using)

	using.Flag("configuration", "Defines the file from which the configuration should be loaded and/or stored to.").
		Short('c').
		Envar("TR_CONFIGURATION").
		StringVar(&this.ConfigurationFile)
}

func (this *App) Initialize() (rErr error) {
	success := false
	defer func() {
		if !success {
			if err := this.Dispose(); err != nil && rErr == nil {
				rErr = err
			}
		}
	}()

	this.config = NewConfiguration()
	if err := this.config.loadFromFile(this.configurationFile(), true); err != nil {
		return err
	}
	if err := mergeFlags(&this.config, this.configFromFlags); err != nil {
		return err
	}

	if err := this.Signal.Initialize(&this.config.Signal, this.alwaysSaveConf); err != nil {
		return err
	}

	r := this.Remote
	if r == nil {
		r = remote.NewClient(&this.config.Remote)
	}
	this.changes = make(chan session.Snapshot, 1)
	this.controller = session.NewController(r)
	this.controller.OnChange(this.onChange)

	if err := this.saveConf(false); err != nil {
		return err
	}

	log.With("server", this.config.Remote.Server).
		With("signal", this.config.Signal.Type).
		Debug("Initialized.")

	success = true
	return nil
}

// SessionConfig is the configuration the form should be pre-filled with.
func (this *App) SessionConfig() session.Config {
	if v := this.lastConfig.Load(); v != nil {
		return *v
	}
	return this.config.Session
}

func (this *App) Dark() bool {
	return this.config.Dark
}

func (this *App) Snapshot() session.Snapshot {
	return this.controller.Snapshot()
}

func (this *App) OnChange(l session.Listener) {
	this.controller.OnChange(l)
}

func (this *App) Start(ctx context.Context, conf session.Config) error {
	if conf.IsValid() {
		this.lastConfig.Store(&conf)
	}
	return this.controller.Start(ctx, conf)
}

func (this *App) Stop(ctx context.Context) error {
	return this.controller.Stop(ctx)
}

func (this *App) Toggle(ctx context.Context, conf session.Config) error {
	if conf.IsValid() {
		this.lastConfig.Store(&conf)
	}
	return this.controller.Toggle(ctx, conf)
}

func (this *App) onChange(s session.Snapshot) {
	for {
		select {
		case this.changes <- s:
			return
		default:
		}
		// Only the latest snapshot is of interest.
		select {
		case <-this.changes:
		default:
		}
	}
}

// Run keeps the signal in sync with the session until ctx is done.
func (this *App) Run(ctx context.Context) error {
	last := this.controller.Snapshot()
	if err := this.EnsureSignal(last); err != nil {
		log.WithError(err).
			Warn("Cannot ensure initial signal state.")
	}

	for {
		var refresh <-chan time.Time
		if v := this.config.RefreshInterval; v > 0 {
			refresh = time.After(v)
		}

		select {
		case <-ctx.Done():
			log.Debug("Signal loop interrupted.")
			return nil
		case last = <-this.changes:
		case <-refresh:
			log.With("interval", this.config.RefreshInterval).
				Debug("Refreshing signal...")
			if err := this.Signal.Update(); err != nil {
				log.WithError(err).
					Warn("Cannot update signal.")
				continue
			}
		}

		if err := this.EnsureSignal(last); err != nil {
			log.WithError(err).
				Warn("Cannot ensure signal state.")
		}
	}
}

func (this *App) EnsureSignal(s session.Snapshot) error {
	return this.Signal.Ensure(signal.NewContext(s, this.SessionConfig()))
}

func (this *App) alwaysSaveConf() error {
	return this.saveConf(true)
}

func (this *App) configurationFile() string {
	if v := this.ConfigurationFile; v != "" {
		return v
	}
	return defaultConfigurationFile()
}

func (this *App) saveConf(always bool) error {
	if this.config.PreventAutoSave {
		log.Debug("Automatically save of configuration disabled.")
		return nil
	}

	fn := this.configurationFile()
	if !always {
		_, err := os.Stat(fn)
		if os.IsNotExist(err) {
			log.With("file", fn).Info("Configuration absent.")
		} else if err != nil {
			return err
		} else {
			return nil
		}
	}

	if err := this.config.saveToFile(fn); err != nil {
		return err
	}

	log.With("file", fn).Info("Configuration saved.")

	return nil
}

func (this *App) Dispose() error {
	return this.Signal.Dispose()
}
