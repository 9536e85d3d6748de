package signal

import (
	"github.com/blaubaer/transcriber/pkg/session"
)

type Context interface {
	State() State
	Snapshot() session.Snapshot
	Config() session.Config
}

func NewContext(snapshot session.Snapshot, conf session.Config) Context {
	return &snapshotContext{snapshot, conf}
}

type snapshotContext struct {
	snapshot session.Snapshot
	conf     session.Config
}

func (this *snapshotContext) State() State {
	return StateOf(this.snapshot.Activity)
}

func (this *snapshotContext) Snapshot() session.Snapshot {
	return this.snapshot
}

func (this *snapshotContext) Config() session.Config {
	return this.conf
}
