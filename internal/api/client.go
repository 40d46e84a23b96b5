// Package api issues single authenticated JSON requests against the Be+ API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

// Method is one of the HTTP methods the API uses.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodDelete Method = http.MethodDelete
)

// Call describes one request.
type Call struct {
	Method   Method
	Endpoint string
	// Token is sent verbatim as the Authorization header, without a scheme.
	Token string
	// Body, when non-nil, is JSON-encoded and sent with a JSON content type.
	Body any
}

// Payload returns the JSON encoding of the request body, or "" when there is none.
func (c Call) Payload() string {
	if c.Body == nil {
		return ""
	}
	b, err := json.Marshal(c.Body)
	if err != nil {
		return fmt.Sprintf("<unencodable %T>", c.Body)
	}
	return string(b)
}

// Response is a transport-level success: a status code and a JSON body.
type Response struct {
	Status int
	// Body is syntactically valid JSON; an empty body is reported as null.
	Body json.RawMessage
}

// OK reports whether the status is in the 2xx range.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status <= 299
}

// Doer is the core abstraction for talking to the API.
type Doer interface {
	// Do sends the call and returns the response for any HTTP status.
	// It fails with *TransportError when no response arrived and with
	// *ParseError when the body is not JSON.
	Do(ctx context.Context, call Call) (*Response, error)
}

// Client is the net/http implementation of Doer.
type Client struct {
	http *http.Client
}

var _ Doer = (*Client)(nil)

// NewClient creates a Client. A nil httpClient selects http.DefaultClient.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient}
}

func (c *Client) Do(ctx context.Context, call Call) (*Response, error) {
	var body io.Reader
	if call.Body != nil {
		encoded, err := json.Marshal(call.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, string(call.Method), call.Endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", call.Token)
	req.Header.Set("Accept", "application/json")
	if call.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Method: string(call.Method), Endpoint: call.Endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Method: string(call.Method), Endpoint: call.Endpoint, Err: fmt.Errorf("read response: %w", err)}
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return &Response{Status: resp.StatusCode, Body: json.RawMessage("null")}, nil
	}
	if !json.Valid(raw) {
		return nil, &ParseError{Status: resp.StatusCode, Raw: raw, Err: fmt.Errorf("body is not valid JSON")}
	}

	return &Response{Status: resp.StatusCode, Body: json.RawMessage(raw)}, nil
}
