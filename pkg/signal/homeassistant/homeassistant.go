package homeassistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/echocat/slf4g"

	"github.com/blaubaer/transcriber/pkg/common"
	"github.com/blaubaer/transcriber/pkg/credentials"
	"github.com/blaubaer/transcriber/pkg/signal"
)

const DefaultServer = "http://homeassistant.local:8123/"

// Homeassistant mirrors the transcription job into an entity of Home Assistant.
type Homeassistant struct {
	conf         *Configuration
	saveConfFunc func() error
	mutex        sync.RWMutex

	lastJob atomic.Pointer[job]

	client   http.Client
	prompter common.Prompter
}

func (this *Homeassistant) Initialize(conf *Configuration, saveConfFunc func() error) error {
	this.conf = conf
	this.saveConfFunc = saveConfFunc
	if this.prompter.Stdin == nil {
		this.prompter = common.DefaultPrompter
	}

	return this.Update()
}

func (this *Homeassistant) Update() error {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	rsp, err := this.do(http.MethodGet, "/api/")
	if err != nil {
		return err
	}
	defer func() {
		_ = rsp.Body.Close()
	}()
	if rsp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d - %s", rsp.StatusCode, rsp.Status)
	}

	return nil
}

func (this *Homeassistant) Ensure(ctx signal.Context) error {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	target := jobOf(ctx)
	logger := log.With("entityId", this.conf.EntityId)

	if v := this.lastJob.Load(); v != nil {
		if v.timestamp.Add(this.conf.DeadZoneInterval).After(time.Now()) && v.isEqualTo(&target) {
			logger.Debug("Entity is already in requested state (while dead zone timeout). No update needed.")
			return nil
		}
	}

	rsp, err := this.do(http.MethodGet, "/api/states/"+this.conf.EntityId)
	if err != nil {
		return err
	}
	defer func() {
		_ = rsp.Body.Close()
	}()

	var current job
	attributes := make(map[string]any)
	forceUpdate := false

	switch rsp.StatusCode {
	case http.StatusOK:
		var gRsp stateGetResponse
		if err := json.NewDecoder(rsp.Body).Decode(&gRsp); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
		current = gRsp.job()
		if v := gRsp.Attributes; v != nil {
			attributes = v
		}

	case http.StatusNotFound:
		logger.Info("Entity not found. It will be created now...")
		forceUpdate = true
		attributes["icon"] = "mdi:microphone-message"
		attributes["friendly_name"] = "Transcription"

	default:
		return fmt.Errorf("unexpected status code: %d - %s", rsp.StatusCode, rsp.Status)
	}

	if !forceUpdate && target.isEqualTo(&current) {
		logger.Debug("Entity is already in requested state. No update needed.")
		this.lastJob.Store(&target)
		return nil
	}

	attributes["editable"] = false
	sReq := statePostRequest{
		State:      target.state,
		Attributes: attributes,
	}
	sReq.setJob(target)

	sReqB, err := json.Marshal(sReq)
	if err != nil {
		return err
	}

	sRsp, err := this.do(http.MethodPost, "/api/states/"+this.conf.EntityId, func(req *http.Request) error {
		req.Header.Set("Content-Type", "application/json")
		req.Body = io.NopCloser(bytes.NewReader(sReqB))
		req.ContentLength = int64(len(sReqB))
		return nil
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = sRsp.Body.Close()
	}()
	if sRsp.StatusCode != http.StatusOK && sRsp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status code: %d - %s", sRsp.StatusCode, sRsp.Status)
	}

	logger.With("state", target.state).
		Debug("Entity updated.")
	this.lastJob.Store(&target)

	return nil
}

func (this *Homeassistant) loadCredentials() (credentials.Credentials, error) {
	var v credentials.Credentials
	if _, err := v.ReadFromStore(); err != nil {
		return credentials.Credentials{}, err
	}

	if v.HomeAssistantServer == "" {
		v.HomeAssistantServer = this.conf.Server
	}
	if v.HomeAssistantToken == "" {
		v.HomeAssistantToken = this.conf.Token
	}

	return v, nil
}

func (this *Homeassistant) storeCredentials(cred credentials.Credentials) error {
	supported, err := cred.WriteToStore()
	if err != nil {
		return err
	}
	if supported {
		return nil
	}

	this.conf.Server = cred.HomeAssistantServer
	this.conf.Token = cred.HomeAssistantToken
	return this.saveConfFunc()
}

type resolveCredentialsReason uint

const (
	resolveCredentialsReasonDefault resolveCredentialsReason = iota
	resolveCredentialsReasonInvalidToken
)

func (this *Homeassistant) resolveCredentials(reason resolveCredentialsReason) (credentials.Credentials, error) {
	fail := func(err error) (credentials.Credentials, error) {
		return credentials.Credentials{}, err
	}

	cred, err := this.loadCredentials()
	if err != nil {
		return fail(err)
	}

	if reason == resolveCredentialsReasonDefault && !cred.IsHomeAssistantZero() {
		return cred, nil
	}

	switch reason {
	case resolveCredentialsReasonInvalidToken:
		log.With("server", cred.HomeAssistantServer).
			Error("Home Assistant rejected the access token.")
	default:
		log.Info("Server URL and long lived access token required to access Home Assistant.")
	}

	for {
		cred.HomeAssistantServer = ""
		cred.HomeAssistantToken = ""
		if err := this.prompter.RequestString(&cred.HomeAssistantServer, fmt.Sprintf("Server URL (empty = %s)", DefaultServer), true, false); err != nil {
			return fail(fmt.Errorf("cannot request server url: %w", err))
		}
		if cred.HomeAssistantServer == "" {
			cred.HomeAssistantServer = DefaultServer
		}
		if err := this.prompter.RequestString(&cred.HomeAssistantToken, "Token", false, true); err != nil {
			return fail(fmt.Errorf("cannot request token: %w", err))
		}

		serverOk, tokenOk, err := this.check(cred)
		if err != nil {
			return fail(err)
		}
		if serverOk && tokenOk {
			if err := this.storeCredentials(cred); err != nil {
				return fail(fmt.Errorf("cannot store credentials: %w", err))
			}
			return cred, nil
		}

		if !serverOk {
			log.With("server", cred.HomeAssistantServer).
				Error("Provided Home Assistant's server URL is invalid.")
		} else {
			log.With("server", cred.HomeAssistantServer).
				Error("Provided Home Assistant's long lived access token is invalid.")
		}
	}
}

func (this *Homeassistant) check(cred credentials.Credentials) (serverOk, tokenOk bool, err error) {
	rsp, err := this.send(cred, http.MethodGet, "/api/")
	if err != nil {
		return false, false, err
	}
	_ = rsp.Body.Close()

	switch rsp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true, false, nil
	case http.StatusOK:
		return true, true, nil
	default:
		return false, false, nil
	}
}

func (this *Homeassistant) send(cred credentials.Credentials, method, path string, cb ...func(req *http.Request) error) (*http.Response, error) {
	ctx, cancelFunc := context.WithTimeout(context.Background(), time.Second*60)

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(cred.HomeAssistantServer, "/")+path, nil)
	if err != nil {
		cancelFunc()
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+cred.HomeAssistantToken)
	for _, cbi := range cb {
		if err := cbi(req); err != nil {
			cancelFunc()
			return nil, err
		}
	}

	rsp, err := this.client.Do(req)
	if err != nil {
		cancelFunc()
		return nil, fmt.Errorf("failed to access %v: %w", req.URL, err)
	}
	rsp.Body = &cancelOnClose{rsp.Body, cancelFunc}
	return rsp, nil
}

func (this *Homeassistant) do(method, path string, cb ...func(req *http.Request) error) (*http.Response, error) {
	cred, err := this.resolveCredentials(resolveCredentialsReasonDefault)
	if err != nil {
		return nil, err
	}

	for {
		rsp, err := this.send(cred, method, path, cb...)
		if err != nil {
			return nil, err
		}

		switch rsp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			_ = rsp.Body.Close()
			if cred, err = this.resolveCredentials(resolveCredentialsReasonInvalidToken); err != nil {
				return nil, err
			}
		default:
			return rsp, nil
		}
	}
}

func (this *Homeassistant) Dispose() error {
	this.conf = nil
	this.saveConfFunc = nil
	return nil
}

func (this *Homeassistant) GetType() signal.Type {
	return signal.TypeHomeAssistant
}

// cancelOnClose releases the request context once the body was consumed.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (this *cancelOnClose) Close() error {
	defer this.cancel()
	return this.ReadCloser.Close()
}
