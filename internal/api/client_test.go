package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestClientSendsRawTokenWithoutBody(t *testing.T) {
	var gotAuth, gotContentType, gotMethod string
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotMethod = r.Method
		w.Write([]byte(`{"body":{"items":[]}}`))
	})

	resp, err := NewClient(nil).Do(context.Background(), Call{
		Method:   MethodGet,
		Endpoint: server.URL + "/activities",
		Token:    "tok-raw",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `{"body":{"items":[]}}`, string(resp.Body))
	assert.Equal(t, "tok-raw", gotAuth, "token must not be prefixed")
	assert.Empty(t, gotContentType)
	assert.Equal(t, http.MethodGet, gotMethod)
}

func TestClientSendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]any
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	})

	resp, err := NewClient(nil).Do(context.Background(), Call{
		Method:   MethodPost,
		Endpoint: server.URL,
		Token:    "tok",
		Body:     map[string]any{"activity_type": "run"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.True(t, resp.OK())
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "run", gotBody["activity_type"])
}

func TestClientReturnsNon2xxAsResponse(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"database unavailable"}`))
	})

	resp, err := NewClient(nil).Do(context.Background(), Call{Method: MethodGet, Endpoint: server.URL, Token: "tok"})
	require.NoError(t, err)
	assert.False(t, resp.OK())

	var se *ServerError
	require.ErrorAs(t, CheckStatus(resp), &se)
	assert.Equal(t, http.StatusInternalServerError, se.Status)
	assert.Equal(t, "database unavailable", se.Message)
}

func TestClientEmptyBodyIsNull(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	resp, err := NewClient(nil).Do(context.Background(), Call{Method: MethodDelete, Endpoint: server.URL, Token: "tok", Body: map[string]string{"activity_id": "a1"}})
	require.NoError(t, err)
	assert.Equal(t, "null", string(resp.Body))
}

func TestClientMalformedJSONIsParseError(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway timeout</html>`))
	})

	_, err := NewClient(nil).Do(context.Background(), Call{Method: MethodGet, Endpoint: server.URL, Token: "tok"})

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusOK, pe.Status)
	assert.Equal(t, "<html>gateway timeout</html>", string(pe.Raw))

	var te *TransportError
	assert.False(t, errors.As(err, &te))
}

func TestClientConnectionFailureIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	_, err := NewClient(nil).Do(context.Background(), Call{Method: MethodGet, Endpoint: endpoint, Token: "tok"})

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "GET", te.Method)
}

func TestClientConnectionResetIsTransportError(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		require.True(t, ok)
		conn, _, err := hj.Hijack()
		require.NoError(t, err)
		conn.Close()
	})

	_, err := NewClient(nil).Do(context.Background(), Call{Method: MethodGet, Endpoint: server.URL, Token: "tok"})

	var te *TransportError
	require.ErrorAs(t, err, &te)
}

func TestServerMessageShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"top-level message", `{"message":"nope"}`, "nope"},
		{"error string", `{"error":"bad token"}`, "bad token"},
		{"nested body message", `{"body":{"message":"not yours"}}`, "not yours"},
		{"double-encoded body", `{"body":"{\"message\":\"encoded\"}"}`, "encoded"},
		{"no message", `{"body":{}}`, ""},
		{"not an object", `[1,2]`, ""},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serverMessage(json.RawMessage(tt.body)))
		})
	}
}

func TestCallPayload(t *testing.T) {
	assert.Equal(t, "", Call{}.Payload())
	assert.JSONEq(t, `{"activity_id":"a1"}`, Call{Body: map[string]string{"activity_id": "a1"}}.Payload())
}
