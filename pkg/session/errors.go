package session

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ValidationNotice      = "Please fill in all fields correctly!"
	ValidationDescription = "Without filling this you won't get any results"
)

var ErrBusy = errors.New("another operation is still in progress")

// ValidationError is returned before any request was sent.
type ValidationError struct {
	Fields []string
}

func (this *ValidationError) Error() string {
	return ValidationNotice
}

func (this *ValidationError) Details() string {
	if len(this.Fields) == 0 {
		return ValidationDescription
	}
	return fmt.Sprintf("%s (missing or invalid: %s)", ValidationDescription, strings.Join(this.Fields, ", "))
}

// RemoteRejection means the remote service answered with a non-success status.
type RemoteRejection struct {
	Operation  Operation
	StatusCode int
	Message    string
}

func (this *RemoteRejection) Error() string {
	if this.Message != "" {
		return this.Message
	}
	return this.Operation.DefaultFailureMessage()
}

// TransportFailure covers everything where no usable response was received.
type TransportFailure struct {
	Operation Operation
	Cause     error
}

func (this *TransportFailure) Error() string {
	if this.Cause == nil {
		return this.Operation.DefaultFailureMessage()
	}
	return this.Cause.Error()
}

func (this *TransportFailure) Unwrap() error {
	return this.Cause
}
