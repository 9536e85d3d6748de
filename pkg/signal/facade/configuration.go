package facade

import (
	"github.com/blaubaer/transcriber/pkg/common"
	"github.com/blaubaer/transcriber/pkg/signal"
	"github.com/blaubaer/transcriber/pkg/signal/homeassistant"
	"github.com/blaubaer/transcriber/pkg/signal/hue"
)

func NewConfiguration() Configuration {
	return Configuration{
		Type:          signal.TypeDefault,
		Hue:           hue.NewConfiguration(),
		HomeAssistant: homeassistant.NewConfiguration(),
	}
}

type Configuration struct {
	Type          signal.Type                 `yaml:"type"`
	Hue           hue.Configuration           `yaml:"hue,omitempty"`
	HomeAssistant homeassistant.Configuration `yaml:"homeAssistant,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("signal", "Where to signal that a transcription is running. All possible values: "+signal.AllTypes.String()).
		Envar("TR_SIGNAL").
		SetValue(&this.Type)

	this.Hue.SetupConfiguration(using)
	this.HomeAssistant.SetupConfiguration(using)
}
