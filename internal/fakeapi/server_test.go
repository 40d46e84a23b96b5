package fakeapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, s *Server, method, target, token, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec.Code, decoded
}

func items(t *testing.T, payload map[string]any) []any {
	t.Helper()
	body, ok := payload["body"].(map[string]any)
	require.True(t, ok)
	list, ok := body["items"].([]any)
	require.True(t, ok)
	return list
}

func TestActivitiesLifecycle(t *testing.T) {
	s := New()

	status, payload := do(t, s, http.MethodGet, "/activities?method=gsi&limit=10", "tok", "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, items(t, payload))

	status, payload = do(t, s, http.MethodPost, "/activities", "tok", `{"activity_type":"run","activity_data":{"time":30}}`)
	require.Equal(t, http.StatusCreated, status)
	created := payload["body"].(map[string]any)
	id := created["activity_id"].(string)
	assert.NotEmpty(t, id)

	_, payload = do(t, s, http.MethodGet, "/activities?method=gsi&limit=10", "tok", "")
	list := items(t, payload)
	require.Len(t, list, 1)
	assert.Equal(t, "run", list[0].(map[string]any)["activity_type"])

	status, _ = do(t, s, http.MethodDelete, "/activities", "tok", `{"activity_id":"`+id+`"}`)
	require.Equal(t, http.StatusOK, status)

	_, payload = do(t, s, http.MethodGet, "/activities?method=gsi&limit=10", "tok", "")
	assert.Empty(t, items(t, payload))

	status, payload = do(t, s, http.MethodDelete, "/activities", "tok", `{"activity_id":"`+id+`"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Activity not found", payload["message"])
}

func TestActivitiesLimitAndOrder(t *testing.T) {
	s := New()
	for _, name := range []string{"a", "b", "c"} {
		s.SeedActivity("tok", name, nil)
	}

	_, payload := do(t, s, http.MethodGet, "/activities?limit=2", "tok", "")
	list := items(t, payload)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].(map[string]any)["activity_type"])
	assert.Equal(t, "b", list[1].(map[string]any)["activity_type"])
}

func TestActivitiesAreScopedByIdentity(t *testing.T) {
	s := New()
	s.SeedActivity("alice", "swim", nil)

	_, payload := do(t, s, http.MethodGet, "/activities", "bob", "")
	assert.Empty(t, items(t, payload))
}

func TestMissingAuthorizationIsRejected(t *testing.T) {
	s := New()
	status, payload := do(t, s, http.MethodGet, "/rockie", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Unauthorized", payload["message"])
}

func TestCreateActivityRequiresType(t *testing.T) {
	s := New()
	status, _ := do(t, s, http.MethodPost, "/activities", "tok", `{"activity_type":"  "}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRockieLifecycle(t *testing.T) {
	clock := func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	s := New(WithClock(clock))

	status, payload := do(t, s, http.MethodGet, "/rockie", "tok", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, map[string]any{}, payload["body"])

	status, payload = do(t, s, http.MethodPost, "/rockie", "tok", `{"rockie_name":"FireRockie2"}`)
	require.Equal(t, http.StatusOK, status)
	body := payload["body"].(map[string]any)
	assert.Equal(t, "2026-03-01T12:00:00Z", body["creation_date"])

	status, payload = do(t, s, http.MethodGet, "/rockie", "tok", "")
	require.Equal(t, http.StatusOK, status)
	data := payload["body"].(map[string]any)["rockie_data"].(map[string]any)
	assert.Equal(t, "FireRockie2", data["rockie_name"])

	status, _ = do(t, s, http.MethodPost, "/rockie", "tok", `{"rockie_name":"Again"}`)
	assert.Equal(t, http.StatusConflict, status)
}

func TestJWTIdentityUsesClaims(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        "user-1",
		"tenant_id":  "school-9",
		"student_id": "stu-42",
	})
	signed, err := token.SignedString([]byte("k"))
	require.NoError(t, err)

	s := New()
	_, payload := do(t, s, http.MethodPost, "/rockie", signed, `{"rockie_name":"R"}`)
	body := payload["body"].(map[string]any)
	assert.Equal(t, "school-9", body["tenant_id"])
	assert.Equal(t, "stu-42", body["student_id"])
}

func TestFailNextIsOneShot(t *testing.T) {
	s := New()
	s.FailNext(http.MethodGet, "/activities", http.StatusInternalServerError, `{"message":"boom"}`)

	status, payload := do(t, s, http.MethodGet, "/activities", "tok", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "boom", payload["message"])

	status, _ = do(t, s, http.MethodGet, "/activities", "tok", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestRequestsAreRecorded(t *testing.T) {
	s := New()
	do(t, s, http.MethodGet, "/activities?method=gsi&limit=10", "tok", "")
	do(t, s, http.MethodGet, "/rockie", "tok", "")

	got := s.Requests()
	require.Len(t, got, 2)
	assert.Equal(t, Request{Method: "GET", Path: "/activities", Query: "method=gsi&limit=10", Token: "tok"}, got[0])
	assert.Equal(t, "/rockie", got[1].Path)
}

func TestMetricsEndpoint(t *testing.T) {
	s := New()
	do(t, s, http.MethodGet, "/activities", "tok", "")
	s.SeedActivity("tok", "walk", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	text := rec.Body.String()
	assert.Contains(t, text, `beplus_fakeapi_requests_total{code="200",method="GET",route="/activities"} 1`)
	assert.Contains(t, text, `beplus_fakeapi_stored_items{resource="activities"} 1`)
	assert.Empty(t, s.Requests()[1:], "metrics scrapes are not API requests")
}
