package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	log "github.com/echocat/slf4g"
	"github.com/google/uuid"

	"github.com/blaubaer/transcriber/pkg/session"
)

const userAgent = "github.com/blaubaer/transcriber"

func NewClient(conf *Configuration) *Client {
	return &Client{conf: conf}
}

// Client talks to the transcription service. It implements session.Remote.
type Client struct {
	conf   *Configuration
	client http.Client
}

func (this *Client) Start(ctx context.Context, conf session.Config) (string, error) {
	b, err := json.Marshal(conf)
	if err != nil {
		return "", &session.TransportFailure{Operation: session.OperationStart, Cause: err}
	}
	return this.do(ctx, session.OperationStart, func(req *http.Request) error {
		req.Header.Set("Content-Type", "application/json")
		req.Body = io.NopCloser(bytes.NewReader(b))
		req.ContentLength = int64(len(b))
		return nil
	})
}

func (this *Client) Stop(ctx context.Context) (string, error) {
	return this.do(ctx, session.OperationStop)
}

func (this *Client) url(op session.Operation) string {
	return strings.TrimRight(this.conf.Server, "/") + op.Path()
}

func (this *Client) do(ctx context.Context, op session.Operation, cb ...func(req *http.Request) error) (string, error) {
	fail := func(err error) (string, error) {
		return "", &session.TransportFailure{Operation: op, Cause: err}
	}

	if v := this.conf.Timeout; v > 0 {
		var cancelFunc context.CancelFunc
		ctx, cancelFunc = context.WithTimeout(ctx, v)
		defer cancelFunc()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, this.url(op), nil)
	if err != nil {
		return fail(err)
	}
	requestId := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-Id", requestId)
	for _, cbi := range cb {
		if err := cbi(req); err != nil {
			return fail(err)
		}
	}

	logger := log.With("operation", op).
		With("url", req.URL).
		With("requestId", requestId)
	logger.Debug("Sending request...")

	rsp, err := this.client.Do(req)
	if err != nil {
		return fail(fmt.Errorf("failed to access %v: %w", req.URL, err))
	}
	defer func() {
		_ = rsp.Body.Close()
	}()

	var body response
	if err := json.NewDecoder(rsp.Body).Decode(&body); err != nil {
		return fail(fmt.Errorf("cannot decode response of %v (%s): %w", req.URL, rsp.Status, err))
	}

	logger.With("status", rsp.StatusCode).
		Debug("Response received.")

	if rsp.StatusCode < 200 || rsp.StatusCode > 299 {
		return "", &session.RemoteRejection{
			Operation:  op,
			StatusCode: rsp.StatusCode,
			Message:    body.Error,
		}
	}

	return body.Message, nil
}

type response struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
