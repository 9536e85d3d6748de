package homeassistant

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/blaubaer/transcriber/pkg/common"
)

func NewConfiguration() Configuration {
	return Configuration{
		EntityId:         fmt.Sprintf("input_boolean.%s_transcription", computerId),
		DeadZoneInterval: time.Second * 60,
	}
}

var forbiddenObjectIdChars = regexp.MustCompile("[^a-z0-9_]")

func normalizeObjectId(id string) string {
	id = strings.ToLower(id)
	id = strings.TrimSpace(id)
	return forbiddenObjectIdChars.ReplaceAllString(id, "_")
}

var computerId = func() string {
	if result, err := os.Hostname(); err == nil && result != "" {
		return normalizeObjectId(result)
	}

	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Errorf("cannot generate entity id: %v", err))
	}
	return hex.EncodeToString(buf)
}()

type Configuration struct {
	Server   string `yaml:"server,omitempty"`
	Token    string `yaml:"token,omitempty"`
	EntityId string `yaml:"entityId"`

	DeadZoneInterval time.Duration `yaml:"deadZoneInterval,omitempty"`
}

func (this *Configuration) SetupConfiguration(using common.FlagHolder) {
	using.Flag("signal.homeassistant.server", "URL of the Home Assistant instance.").
		Envar("TR_SIGNAL_HOMEASSISTANT_SERVER").
		StringVar(&this.Server)
	using.Flag("signal.homeassistant.token", "Long lived access token of the Home Assistant instance.").
		Envar("TR_SIGNAL_HOMEASSISTANT_TOKEN").
		StringVar(&this.Token)
	using.Flag("signal.homeassistant.entityId", "Entity which reflects whether a transcription is running.").
		Envar("TR_SIGNAL_HOMEASSISTANT_ENTITY_ID").
		StringVar(&this.EntityId)
	using.Flag("signal.homeassistant.deadZoneInterval", "How long the last written state is trusted before Home Assistant is asked again.").
		Envar("TR_SIGNAL_HOMEASSISTANT_DEAD_ZONE_INTERVAL").
		DurationVar(&this.DeadZoneInterval)
}
