package hue

import "github.com/blaubaer/transcriber/pkg/common"

func NewConfiguration() Configuration {
	return Configuration{
		Name: common.MustNewPattern("^OnAir"),

		Brightness: 254,
		Hue:        65535,
		Saturation: 254,
	}
}

type Configuration struct {
	Pair   bool   `yaml:"pair,omitempty"`
	Bridge string `yaml:"bridge,omitempty"`
	User   string `yaml:"user,omitempty"`

	Name  common.Pattern `yaml:"target"`
	Kinds Kinds          `yaml:"kinds,omitempty"`

	Brightness uint8  `yaml:"brightness"`
	Hue        uint16 `yaml:"hue"`
	Saturation uint8  `yaml:"saturation"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("signal.hue.pair", "If true this application will pair again with the bridge. This happens implicitly if it was never paired before.").
		Envar("TR_SIGNAL_HUE_PAIR").
		BoolVar(&this.Pair)
	using.Flag("signal.hue.bridge", "Usually the bridge is discovered automatically. Specify one explicitly if there are more than one.").
		Envar("TR_SIGNAL_HUE_BRIDGE").
		StringVar(&this.Bridge)
	using.Flag("signal.hue.user", "Usually this is set while pairing and persisted. If set, this one is used and not persisted.").
		Envar("TR_SIGNAL_HUE_USER").
		StringVar(&this.User)
	using.Flag("signal.hue.name", "Name as regex of the lights/groups which should be switched on while a transcription is running.").
		Envar("TR_SIGNAL_HUE_NAME").
		SetValue(&this.Name)
	using.Flag("signal.hue.kind", "Kind(s) of what should be handled. Possible values: "+AllKinds.String()).
		Envar("TR_SIGNAL_HUE_KIND").
		SetValue(&this.Kinds)

	using.Flag("signal.hue.brightness", "Brightness from 1 (the minimum the light is capable of) to 254 (the maximum).").
		Envar("TR_SIGNAL_HUE_BRIGHTNESS").
		Uint8Var(&this.Brightness)
	using.Flag("signal.hue.hue", "Hue value, wrapping between 0 and 65535. Both 0 and 65535 are red, 25500 is green and 46920 is blue.").
		Envar("TR_SIGNAL_HUE_HUE").
		Uint16Var(&this.Hue)
	using.Flag("signal.hue.saturation", "Saturation from 0 (white) to 254 (most saturated).").
		Envar("TR_SIGNAL_HUE_SATURATION").
		Uint8Var(&this.Saturation)
}
