package session

import (
	"context"
	"sync"

	log "github.com/echocat/slf4g"
)

// Remote is the transcription service. Both methods return the human-readable
// message of the service on success.
type Remote interface {
	Start(context.Context, Config) (string, error)
	Stop(context.Context) (string, error)
}

type Listener func(Snapshot)

func NewController(remote Remote) *Controller {
	return &Controller{Remote: remote}
}

// Controller drives the start/stop lifecycle of one transcription job. Only one
// request can be in flight at a time.
type Controller struct {
	Remote Remote

	snapshot  Snapshot
	listeners []Listener
	mutex     sync.Mutex

	// Serializes listener calls so they observe transitions in order. Always
	// acquired before mutex, never while holding it.
	notifyMutex sync.Mutex
}

func (this *Controller) Snapshot() Snapshot {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return this.snapshot
}

func (this *Controller) OnChange(l Listener) {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.listeners = append(this.listeners, l)
}

func (this *Controller) Start(ctx context.Context, conf Config) error {
	if err := conf.Validate(); err != nil {
		log.With("config", conf).
			Debug("Refused to start with incomplete configuration.")
		return err
	}

	previous, ok := this.begin(PhaseStarting)
	if !ok {
		return ErrBusy
	}

	log.With("monitors", conf.Monitors).
		With("speakers", conf.Speakers).
		With("botId", conf.BotId).
		Info("Starting transcription...")

	msg, err := this.Remote.Start(ctx, conf)
	if err != nil {
		this.finish(State{PhaseFailed, failureText(OperationStart, err)}, previous.Activity)
		log.WithError(err).
			Warn("Cannot start transcription.")
		return err
	}

	this.finish(State{PhaseRunning, msg}, ActivityActive)
	log.With("status", msg).
		Info("Transcription started.")
	return nil
}

func (this *Controller) Stop(ctx context.Context) error {
	if _, ok := this.begin(PhaseStopping); !ok {
		return ErrBusy
	}

	log.Info("Stopping transcription...")

	msg, err := this.Remote.Stop(ctx)
	if err != nil {
		this.finish(State{PhaseFailed, failureText(OperationStop, err)}, ActivityUnknown)
		log.WithError(err).
			Warn("Cannot stop transcription. It is unknown whether it is still running.")
		return err
	}

	this.finish(State{PhaseIdle, msg}, ActivityInactive)
	log.With("status", msg).
		Info("Transcription stopped.")
	return nil
}

// Toggle triggers whatever the single action control currently stands for.
func (this *Controller) Toggle(ctx context.Context, conf Config) error {
	switch this.Snapshot().NextOperation() {
	case OperationStop:
		return this.Stop(ctx)
	default:
		return this.Start(ctx, conf)
	}
}

// begin returns the snapshot from before the operation.
func (this *Controller) begin(phase Phase) (Snapshot, bool) {
	this.notifyMutex.Lock()
	this.mutex.Lock()
	previous := this.snapshot
	if previous.Busy {
		this.mutex.Unlock()
		this.notifyMutex.Unlock()
		log.With("phase", phase).
			Debug("Another operation is still in progress. Ignoring...")
		return previous, false
	}
	this.snapshot.State = State{Phase: phase}
	this.snapshot.Busy = true
	snapshot, listeners := this.snapshot, this.listeners
	this.mutex.Unlock()

	this.notify(snapshot, listeners)
	return previous, true
}

func (this *Controller) finish(state State, activity Activity) {
	this.notifyMutex.Lock()
	this.mutex.Lock()
	this.snapshot = Snapshot{
		State:    state,
		Activity: activity,
		Busy:     false,
	}
	snapshot, listeners := this.snapshot, this.listeners
	this.mutex.Unlock()

	this.notify(snapshot, listeners)
}

// notify expects notifyMutex to be held and releases it.
func (this *Controller) notify(snapshot Snapshot, listeners []Listener) {
	defer this.notifyMutex.Unlock()
	for _, l := range listeners {
		l(snapshot)
	}
}

func failureText(op Operation, err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return op.DefaultFailureMessage()
}
