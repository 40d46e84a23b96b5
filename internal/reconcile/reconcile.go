// Package reconcile classifies API responses into view outcomes and applies
// them to per-screen view state.
package reconcile

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/beplus/beplus/internal/api"
	"github.com/beplus/beplus/internal/credential"
)

// AuthMissingMessage is shown whenever no credential is stored.
const AuthMissingMessage = "Authentication token not found."

// Class is the terminal classification of one request cycle.
type Class int

const (
	Success Class = iota + 1
	Absent
	Failed
)

func (c Class) String() string {
	switch c {
	case Success:
		return "success"
	case Absent:
		return "absent"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Kind describes how one remote resource is decoded and reported.
type Kind[T any] struct {
	Name string
	// Op completes "An unexpected error occurred while ...".
	Op string
	// FailPrefix leads server-reported failure messages.
	FailPrefix string
	// AbsentAware kinds map 404 and "200 without the nested record" to Absent.
	AbsentAware bool
	// Decode validates the body and extracts the payload. present is false
	// when the body is well formed but the nested record is missing.
	Decode func(body json.RawMessage) (data T, present bool, err error)
}

// Outcome is the result of reconciling one response.
type Outcome[T any] struct {
	Class   Class
	Data    T
	Err     error
	Message string
}

// Failure returns the outcome's error for callers outside the TUI, or nil
// unless the outcome is Failed.
func (o Outcome[T]) Failure() error {
	if o.Class != Failed {
		return nil
	}
	return &FailedError{Message: o.Message, Err: o.Err}
}

// FailedError carries the user-facing message of a Failed outcome.
type FailedError struct {
	Message string
	Err     error
}

func (e *FailedError) Error() string { return e.Message }

func (e *FailedError) Unwrap() error { return e.Err }

// Reconcile classifies a response (or the error that replaced it).
func Reconcile[T any](kind Kind[T], resp *api.Response, err error) Outcome[T] {
	if err != nil {
		var pe *api.ParseError
		if kind.AbsentAware && errors.As(err, &pe) && pe.Status == http.StatusNotFound {
			return Outcome[T]{Class: Absent}
		}
		return FromError(kind, err)
	}
	if resp == nil {
		return FromError(kind, errors.New("no response"))
	}

	if kind.AbsentAware && resp.Status == http.StatusNotFound {
		return Outcome[T]{Class: Absent}
	}

	if err := api.CheckStatus(resp); err != nil {
		return Outcome[T]{Class: Failed, Err: err, Message: serverFailureMessage(kind, err.(*api.ServerError))}
	}

	data, present, err := kind.Decode(resp.Body)
	if err != nil {
		return FromError(kind, &api.ParseError{Status: resp.Status, Raw: resp.Body, Err: err})
	}
	if !present {
		if kind.AbsentAware && resp.Status == http.StatusOK {
			return Outcome[T]{Class: Absent}
		}
		missing := &api.ParseError{Status: resp.Status, Raw: resp.Body, Err: fmt.Errorf("%s payload missing", kind.Name)}
		return FromError(kind, missing)
	}

	return Outcome[T]{Class: Success, Data: data}
}

// FromError builds the Failed outcome for an error that prevented or
// replaced a response: missing credential, transport, parse, or storage.
func FromError[T any](kind Kind[T], err error) Outcome[T] {
	if errors.Is(err, credential.ErrAuthMissing) {
		return Outcome[T]{Class: Failed, Err: err, Message: AuthMissingMessage}
	}
	var se *api.ServerError
	if errors.As(err, &se) {
		return Outcome[T]{Class: Failed, Err: err, Message: serverFailureMessage(kind, se)}
	}
	return Outcome[T]{Class: Failed, Err: err, Message: fmt.Sprintf("An unexpected error occurred while %s.", kind.Op)}
}

// Rejected builds the Failed outcome for input refused before any request.
func Rejected[T any](err error, message string) Outcome[T] {
	return Outcome[T]{Class: Failed, Err: err, Message: message}
}

func serverFailureMessage[T any](kind Kind[T], se *api.ServerError) string {
	if se.Message != "" {
		return fmt.Sprintf("%s: %s", kind.FailPrefix, se.Message)
	}
	raw := strings.TrimSpace(string(se.Body))
	return fmt.Sprintf("%s: unexpected error (status %d): %s", kind.FailPrefix, se.Status, raw)
}
