package app

import (
	"time"

	"github.com/blaubaer/transcriber/pkg/common"
	"github.com/blaubaer/transcriber/pkg/remote"
	"github.com/blaubaer/transcriber/pkg/session"
	"github.com/blaubaer/transcriber/pkg/signal/facade"
)

func NewConfiguration() Configuration {
	return Configuration{
		Remote:          remote.NewConfiguration(),
		Signal:          facade.NewConfiguration(),
		RefreshInterval: 5 * time.Minute,
	}
}

type Configuration struct {
	PreventAutoSave bool `yaml:"preventAutoSave"`

	Remote remote.Configuration `yaml:"remote,omitempty"`
	Signal facade.Configuration `yaml:"signal,omitempty"`

	RefreshInterval time.Duration `yaml:"refreshInterval,omitempty"`

	// Only pre-fills the form, never saved.
	Session session.Config `yaml:"-"`
	Dark    bool           `yaml:"-"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("preventAutoSave", "If provided configuration will NOT automatically be saved upon changes.").
		Envar("TR_PREVENT_AUTO_SAVE").
		BoolVar(&this.PreventAutoSave)
	using.Flag("refreshInterval", "How often the signal is refreshed even without changes.").
		Envar("TR_REFRESH_INTERVAL").
		DurationVar(&this.RefreshInterval)
	using.Flag("dark", "Start with the dark theme.").
		Envar("TR_DARK").
		BoolVar(&this.Dark)

	this.Remote.SetupConfiguration(using)
	this.Signal.SetupConfiguration(using)
	this.Session.SetupConfiguration(using)
}
