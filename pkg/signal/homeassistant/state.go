package homeassistant

import (
	"time"

	"github.com/blaubaer/transcriber/pkg/signal"
)

type stateGetResponse struct {
	EntityId    string         `json:"entity_id"`
	State       signal.State   `json:"state"`
	Attributes  map[string]any `json:"attributes"`
	LastChanged time.Time      `json:"last_changed"`
	LastUpdated time.Time      `json:"last_updated"`
}

func (this *stateGetResponse) job() job {
	result := job{state: this.State}
	if a := this.Attributes; a != nil {
		result.status, _ = a[attrStatus].(string)
		result.botId, _ = a[attrBotId].(string)
		result.monitors, _ = a[attrMonitors].(string)
		if v, ok := a[attrSpeakers].(float64); ok {
			result.speakers = int(v)
		}
	}
	return result
}

type statePostRequest struct {
	State      signal.State   `json:"state"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

func (this *statePostRequest) setJob(v job) {
	if this.Attributes == nil {
		this.Attributes = make(map[string]any)
	}
	this.Attributes[attrStatus] = v.status
	this.Attributes[attrBotId] = v.botId
	this.Attributes[attrMonitors] = v.monitors
	this.Attributes[attrSpeakers] = v.speakers
}

const (
	attrStatus   = "status"
	attrBotId    = "bot_id"
	attrMonitors = "monitors"
	attrSpeakers = "speakers"
)

// job is what is mirrored into the entity.
type job struct {
	timestamp time.Time
	state     signal.State
	status    string
	botId     string
	monitors  string
	speakers  int
}

func jobOf(ctx signal.Context) job {
	conf := ctx.Config()
	return job{
		timestamp: time.Now(),
		state:     ctx.State(),
		status:    ctx.Snapshot().State.Display(),
		botId:     conf.BotId,
		monitors:  conf.Monitors,
		speakers:  conf.Speakers,
	}
}

func (this *job) isEqualTo(o *job) bool {
	return this.state == o.state &&
		this.status == o.status &&
		this.botId == o.botId &&
		this.monitors == o.monitors &&
		this.speakers == o.speakers
}
