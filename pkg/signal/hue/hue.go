package hue

import (
	"fmt"
	"sync"
	"time"

	"github.com/amimof/huego"
	log "github.com/echocat/slf4g"

	"github.com/blaubaer/transcriber/pkg/credentials"
	"github.com/blaubaer/transcriber/pkg/signal"
)

const appName = "github.com/blaubaer/transcriber"

// Hue switches lights and/or groups on while a transcription is running.
type Hue struct {
	conf         *Configuration
	saveConfFunc func() error

	targets     []target
	credentials credentials.Credentials
	mutex       sync.Mutex
}

// target is either a light or a group; both are switched the same way.
type target struct {
	kind  Kind
	id    int
	name  string
	state *huego.State
}

func (this target) String() string {
	return fmt.Sprintf("%v %q#%d", this.kind, this.name, this.id)
}

func (this *Hue) Initialize(conf *Configuration, saveConfFunc func() error) error {
	this.conf = conf
	this.saveConfFunc = saveConfFunc

	v, err := this.resolveCredentials()
	if err != nil {
		return err
	}
	this.credentials = v

	return this.Update()
}

func (this *Hue) Update() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	bridge, err := this.bridge()
	if err != nil {
		return err
	}

	var targets []target
	if this.conf.Kinds.Has(KindLight) {
		candidates, err := bridge.GetLights()
		if err != nil {
			return fmt.Errorf("cannot discover lights of bridge %s: %w", bridge.Host, err)
		}
		for _, candidate := range candidates {
			targets = this.appendIfMatches(targets, KindLight, candidate.ID, candidate.Name, candidate.State)
		}
	}
	if this.conf.Kinds.Has(KindGroup) {
		candidates, err := bridge.GetGroups()
		if err != nil {
			return fmt.Errorf("cannot discover groups of bridge %s: %w", bridge.Host, err)
		}
		for _, candidate := range candidates {
			targets = this.appendIfMatches(targets, KindGroup, candidate.ID, candidate.Name, candidate.State)
		}
	}

	if len(targets) == 0 {
		log.With("bridge", bridge.Host).
			With("name", this.conf.Name).
			Warn("No lights or groups match. Nothing will be signaled.")
	}

	this.targets = targets
	return nil
}

func (this *Hue) appendIfMatches(to []target, kind Kind, id int, name string, state *huego.State) []target {
	if !this.conf.Name.MatchString(name) {
		return to
	}
	if state == nil {
		state = &huego.State{}
	}
	return append(to, target{kind, id, name, state})
}

func (this *Hue) Ensure(ctx signal.Context) error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	state := ctx.State()
	if state == signal.StateUnknown {
		log.Debug("State of transcription is unknown. Hue lights are left as they are.")
		return nil
	}

	bridge, err := this.bridge()
	if err != nil {
		return err
	}
	for i, t := range this.targets {
		newState, err := this.targetStateFor(state, t)
		if err != nil {
			return err
		}
		if newState == nil {
			continue
		}
		switch t.kind {
		case KindGroup:
			_, err = bridge.SetGroupState(t.id, *newState)
		default:
			_, err = bridge.SetLightState(t.id, *newState)
		}
		if err != nil {
			return fmt.Errorf("cannot switch to hue state %v for %v: %w", state, t, err)
		}
		this.targets[i].state = newState
	}
	return nil
}

// targetStateFor returns nil if the target is already in the required state.
func (this *Hue) targetStateFor(state signal.State, t target) (*huego.State, error) {
	current := t.state
	switch state {
	case signal.StateOn:
		if !current.On || current.Bri != this.conf.Brightness || current.Hue != this.conf.Hue || current.Sat != this.conf.Saturation {
			return &huego.State{
				On:  true,
				Bri: this.conf.Brightness,
				Hue: this.conf.Hue,
				Sat: this.conf.Saturation,
			}, nil
		}
	case signal.StateOff:
		if current.On {
			return &huego.State{On: false}, nil
		}
	default:
		return nil, fmt.Errorf("cannot ensure hue state for %v: %v", t, state)
	}
	return nil, nil
}

func (this *Hue) bridge() (*huego.Bridge, error) {
	v := this.credentials
	if v.IsHueZero() {
		return nil, fmt.Errorf("not paired with hue bridge")
	}
	return huego.New(v.HueBridge, v.HueUser), nil
}

func (this *Hue) resolveCredentials() (credentials.Credentials, error) {
	if u := this.conf.User; u != "" {
		bridge, err := this.discoverBridge()
		if err != nil {
			return credentials.Credentials{}, err
		}
		return credentials.Credentials{
			HueBridge: bridge.Host,
			HueUser:   u,
		}, nil
	}

	if this.conf.Pair {
		return this.pair()
	}

	v, err := this.readCredentials()
	if err != nil {
		return credentials.Credentials{}, err
	}
	if !v.IsHueZero() {
		return v, nil
	}

	return this.pair()
}

func (this *Hue) discoverBridge() (*huego.Bridge, error) {
	if this.conf.Bridge != "" {
		return &huego.Bridge{
			Host: this.conf.Bridge,
		}, nil
	}
	return huego.Discover()
}

func (this *Hue) pair() (credentials.Credentials, error) {
	bridge, err := this.discoverBridge()
	if err != nil {
		return credentials.Credentials{}, err
	}

	for {
		log.Info("Wait for hue link button been pressed...")
		user, err := bridge.CreateUser(appName)
		if apiErr, ok := err.(*huego.APIError); ok && apiErr.Type == 101 {
			time.Sleep(1 * time.Second)
			continue
		}
		if err != nil {
			return credentials.Credentials{}, fmt.Errorf("was not able to pair with %s: %w", bridge.Host, err)
		}

		v := credentials.Credentials{
			HueBridge: bridge.Host,
			HueUser:   user,
		}
		if err := this.storeCredentials(v); err != nil {
			log.WithError(err).
				Warn("Cannot store credentials. The app will work now, but next time the pairing might be required again.")
		}

		log.With("bridge", bridge.Host).
			Info("Successful paired.")
		return v, nil
	}
}

func (this *Hue) readCredentials() (credentials.Credentials, error) {
	var v credentials.Credentials
	if _, err := v.ReadFromStore(); err != nil {
		return credentials.Credentials{}, err
	}

	if v.HueBridge == "" {
		v.HueBridge = this.conf.Bridge
	}
	if v.HueUser == "" {
		v.HueUser = this.conf.User
	}
	return v, nil
}

func (this *Hue) storeCredentials(v credentials.Credentials) error {
	existing, err := this.readCredentials()
	if err != nil {
		return err
	}
	existing.HueBridge, existing.HueUser = v.HueBridge, v.HueUser

	supported, err := existing.WriteToStore()
	if err != nil {
		return err
	}
	if supported {
		return nil
	}

	this.conf.Bridge = v.HueBridge
	this.conf.User = v.HueUser
	return this.saveConfFunc()
}

func (this *Hue) Dispose() error {
	this.conf = nil
	this.saveConfFunc = nil
	return nil
}

func (this *Hue) GetType() signal.Type {
	return signal.TypeHue
}
