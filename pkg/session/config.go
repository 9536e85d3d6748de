package session

import (
	"github.com/blaubaer/transcriber/pkg/common"
)

// Config is what the user fills in before a transcription job can be started.
// It lives in memory only.
type Config struct {
	Monitors string `json:"selectedMonitors"`
	Speakers int    `json:"speakers"`
	BotId    string `json:"botId"`
}

func (this *Config) SetupConfiguration(using common.FlagHolder) {
	using.Flag("monitors", "Monitors which should be transcribed. Eg. 1, 2, 3 or 'all'.").
		Envar("TR_MONITORS").
		StringVar(&this.Monitors)
	using.Flag("speakers", "How many speakers are there?").
		Envar("TR_SPEAKERS").
		IntVar(&this.Speakers)
	using.Flag("botId", "Bot ID from Argobots that you want to train.").
		Envar("TR_BOT_ID").
		StringVar(&this.BotId)
}

func (this Config) Validate() error {
	var fields []string
	if this.Monitors == "" {
		fields = append(fields, "monitors")
	}
	if this.Speakers < 1 {
		fields = append(fields, "speakers")
	}
	if this.BotId == "" {
		fields = append(fields, "botId")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (this Config) IsValid() bool {
	return this.Validate() == nil
}

// RequestMissing prompts for every field which is not valid yet.
func (this *Config) RequestMissing(using common.Prompter) error {
	if err := using.RequestString(&this.Monitors, "monitors (eg. 1, 2, 3 or 'all')", false, false); err != nil {
		return err
	}
	if err := using.RequestPositiveInt(&this.Speakers, "number of speakers"); err != nil {
		return err
	}
	if err := using.RequestString(&this.BotId, "bot ID", false, false); err != nil {
		return err
	}
	return nil
}
