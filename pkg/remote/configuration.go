package remote

import (
	"time"

	"github.com/blaubaer/transcriber/pkg/common"
)

const DefaultServer = "https://transcribe-python.ohanapal.bot"

func NewConfiguration() Configuration {
	return Configuration{
		DefaultServer,
		60 * time.Second,
	}
}

type Configuration struct {
	Server  string        `yaml:"server,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("server", "Base URL of the transcription service.").
		Envar("TR_SERVER").
		StringVar(&this.Server)
	using.Flag("timeout", "Maximum duration of one request to the transcription service. 0 means no limit.").
		Envar("TR_TIMEOUT").
		DurationVar(&this.Timeout)
}
