package reconcile

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beplus/beplus/internal/api"
	"github.com/beplus/beplus/internal/credential"
)

type profile struct {
	Name string `json:"name"`
}

// profileKind decodes {"body":{"profile":{...}}} and treats a missing
// profile as absent.
var profileKind = Kind[*profile]{
	Name:        "profile",
	Op:          "fetching profile",
	FailPrefix:  "Failed to fetch profile",
	AbsentAware: true,
	Decode: func(body json.RawMessage) (*profile, bool, error) {
		var env struct {
			Body *struct {
				Profile *profile `json:"profile"`
			} `json:"body"`
		}
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, false, err
		}
		if env.Body == nil {
			return nil, false, errors.New("body missing")
		}
		return env.Body.Profile, env.Body.Profile != nil, nil
	},
}

var namesKind = Kind[[]string]{
	Name:       "names",
	Op:         "fetching names",
	FailPrefix: "Failed to fetch names",
	Decode: func(body json.RawMessage) ([]string, bool, error) {
		var env struct {
			Body struct {
				Items []string `json:"items"`
			} `json:"body"`
		}
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, false, err
		}
		return env.Body.Items, true, nil
	},
}

func response(status int, body string) *api.Response {
	return &api.Response{Status: status, Body: json.RawMessage(body)}
}

func TestReconcileAbsentClassification(t *testing.T) {
	tests := []struct {
		name string
		resp *api.Response
		want Class
	}{
		{"200 with record", response(200, `{"body":{"profile":{"name":"a"}}}`), Success},
		{"200 without record", response(200, `{"body":{}}`), Absent},
		{"404 with message", response(404, `{"message":"not found"}`), Absent},
		{"404 with null body", response(404, `null`), Absent},
		{"201 without record", response(201, `{"body":{}}`), Failed},
		{"400", response(400, `{"message":"bad"}`), Failed},
		{"403", response(403, `{}`), Failed},
		{"500", response(500, `{"message":"boom"}`), Failed},
		{"503 null", response(503, `null`), Failed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(profileKind, tt.resp, nil)
			assert.Equal(t, tt.want, got.Class)
			if got.Class == Absent {
				assert.Nil(t, got.Data)
				assert.Empty(t, got.Message)
			}
		})
	}
}

func TestReconcile404WithUnparseableBodyIsAbsent(t *testing.T) {
	err := &api.ParseError{Status: 404, Raw: []byte("Not Found"), Err: errors.New("body is not valid JSON")}
	got := Reconcile(profileKind, nil, err)
	assert.Equal(t, Absent, got.Class)
}

func TestReconcileNotAbsentAwareTreats404AsFailure(t *testing.T) {
	got := Reconcile(namesKind, response(404, `{"message":"no such route"}`), nil)
	assert.Equal(t, Failed, got.Class)
	assert.Equal(t, "Failed to fetch names: no such route", got.Message)
}

func TestReconcileSuccessPreservesServerOrder(t *testing.T) {
	got := Reconcile(namesKind, response(200, `{"body":{"items":["c","a","b"]}}`), nil)
	require.Equal(t, Success, got.Class)
	assert.Equal(t, []string{"c", "a", "b"}, got.Data)
}

func TestReconcileServerMessages(t *testing.T) {
	got := Reconcile(namesKind, response(500, `{"message":"database unavailable"}`), nil)
	assert.Equal(t, "Failed to fetch names: database unavailable", got.Message)

	var se *api.ServerError
	require.ErrorAs(t, got.Err, &se)
	assert.Equal(t, 500, se.Status)

	got = Reconcile(namesKind, response(502, `{"detail":"upstream"}`), nil)
	assert.Equal(t, `Failed to fetch names: unexpected error (status 502): {"detail":"upstream"}`, got.Message)
}

func TestReconcileTransportAndParseAreGeneric(t *testing.T) {
	transport := &api.TransportError{Method: "GET", Endpoint: "u", Err: errors.New("connection reset by peer")}
	got := Reconcile(namesKind, nil, transport)
	assert.Equal(t, Failed, got.Class)
	assert.Equal(t, "An unexpected error occurred while fetching names.", got.Message)

	parse := &api.ParseError{Status: 200, Raw: []byte("<html>"), Err: errors.New("body is not valid JSON")}
	got = Reconcile(namesKind, nil, parse)
	assert.Equal(t, "An unexpected error occurred while fetching names.", got.Message)
}

func TestReconcileDecodeErrorIsParseError(t *testing.T) {
	got := Reconcile(profileKind, response(200, `{"items":[]}`), nil)
	assert.Equal(t, Failed, got.Class)

	var pe *api.ParseError
	require.ErrorAs(t, got.Err, &pe)
	assert.Equal(t, 200, pe.Status)
}

func TestFromErrorAuthMissing(t *testing.T) {
	got := FromError(namesKind, fmt.Errorf("acquire: %w", credential.ErrAuthMissing))
	assert.Equal(t, Failed, got.Class)
	assert.Equal(t, AuthMissingMessage, got.Message)
	assert.ErrorIs(t, got.Err, credential.ErrAuthMissing)
}

func TestOutcomeFailure(t *testing.T) {
	assert.NoError(t, Outcome[int]{Class: Success}.Failure())
	assert.NoError(t, Outcome[int]{Class: Absent}.Failure())

	err := FromError(namesKind, credential.ErrAuthMissing).Failure()
	require.Error(t, err)
	assert.Equal(t, AuthMissingMessage, err.Error())
	assert.ErrorIs(t, err, credential.ErrAuthMissing)
}

func TestRejected(t *testing.T) {
	cause := errors.New("empty")
	got := Rejected[int](cause, "Input cannot be empty.")
	assert.Equal(t, Failed, got.Class)
	assert.Equal(t, "Input cannot be empty.", got.Message)
	assert.Same(t, cause, got.Err)
}
