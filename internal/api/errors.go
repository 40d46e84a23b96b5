package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TransportError indicates the request never produced an HTTP response
// (DNS failure, refused or reset connection, timeout).
type TransportError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: transport failure: %v", e.Method, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError indicates the server answered but the body was not the JSON
// the caller expected, either syntactically or against a response schema.
type ParseError struct {
	Status int
	Raw    []byte
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed response (status %d): %v", e.Status, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ServerError indicates a non-2xx HTTP status.
type ServerError struct {
	Status  int
	Message string // server-supplied message, if any
	Body    json.RawMessage
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (status %d): %s", e.Status, strings.TrimSpace(string(e.Body)))
}

// CheckStatus returns a *ServerError when resp carries a non-2xx status.
func CheckStatus(resp *Response) error {
	if resp == nil || resp.OK() {
		return nil
	}
	return &ServerError{
		Status:  resp.Status,
		Message: serverMessage(resp.Body),
		Body:    resp.Body,
	}
}

// serverMessage digs the human-readable message out of the shapes the API
// gateway and the handlers use: {"message"}, {"error"}, {"body":{"message"}}.
func serverMessage(body json.RawMessage) string {
	var envelope struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
		Body    json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}

	var errText string
	if json.Unmarshal(envelope.Error, &errText) == nil && errText != "" {
		return errText
	}

	var nested struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(envelope.Body, &nested) == nil && nested.Message != "" {
		return nested.Message
	}
	// Lambda proxy integrations sometimes double-encode the body.
	var encoded string
	if json.Unmarshal(envelope.Body, &encoded) == nil && encoded != "" {
		if json.Unmarshal([]byte(encoded), &nested) == nil {
			return nested.Message
		}
	}
	return ""
}
