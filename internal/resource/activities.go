package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/beplus/beplus/internal/api"
	"github.com/beplus/beplus/internal/reconcile"
)

// DefaultPageSize is the fixed number of activities fetched per list call.
const DefaultPageSize = 10

var (
	// ErrEmptyActivityType rejects a create before the credential is read.
	ErrEmptyActivityType = errors.New("activity type is empty")
	// ErrEmptyActivityID rejects a delete before the credential is read.
	ErrEmptyActivityID = errors.New("activity id is empty")
)

// Messages shown for local validation and successful mutations.
const (
	EmptyActivityTypeMessage = "Activity type cannot be empty."
	EmptyActivityIDMessage   = "Select an activity to delete."
	ActivityAddedMessage     = "Activity added successfully!"
	ActivityDeletedMessage   = "Activity deleted successfully!"
)

// ActivityList decodes the activities collection. A missing items field is
// an empty list.
var ActivityList = reconcile.Kind[[]Activity]{
	Name:       "activities",
	Op:         "fetching activities",
	FailPrefix: "Failed to fetch activities",
	Decode: func(body json.RawMessage) ([]Activity, bool, error) {
		if err := validate(activitiesListSchema, body); err != nil {
			return nil, false, err
		}
		var env struct {
			Body struct {
				Items []Activity `json:"items"`
			} `json:"body"`
		}
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, false, err
		}
		items := env.Body.Items
		if items == nil {
			items = []Activity{}
		}
		return items, true, nil
	},
}

// ActivityCreate and ActivityDelete only need a 2xx status.
var (
	ActivityCreate = mutation("add activity", "adding the activity", "Failed to add activity")
	ActivityDelete = mutation("delete activity", "deleting the activity", "Failed to delete activity")
)

func mutation(name, op, prefix string) reconcile.Kind[struct{}] {
	return reconcile.Kind[struct{}]{
		Name:       name,
		Op:         op,
		FailPrefix: prefix,
		Decode: func(json.RawMessage) (struct{}, bool, error) {
			return struct{}{}, true, nil
		},
	}
}

// Activities talks to the activities endpoint.
type Activities struct {
	tokens   TokenSource
	doer     api.Doer
	endpoint string
	pageSize int
}

// NewActivities creates an Activities service. A non-positive pageSize
// selects DefaultPageSize.
func NewActivities(tokens TokenSource, doer api.Doer, endpoint string, pageSize int) *Activities {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Activities{tokens: tokens, doer: doer, endpoint: endpoint, pageSize: pageSize}
}

// ListURL is the GET endpoint including the query.
func (a *Activities) ListURL() string {
	q := url.Values{}
	q.Set("method", "gsi")
	q.Set("limit", strconv.Itoa(a.pageSize))

	sep := "?"
	if strings.Contains(a.endpoint, "?") {
		sep = "&"
	}
	return a.endpoint + sep + q.Encode()
}

// List fetches the collection in server order.
func (a *Activities) List(ctx context.Context) reconcile.Outcome[[]Activity] {
	resp, err := a.send(ctx, api.MethodGet, a.ListURL(), nil)
	return reconcile.Reconcile(ActivityList, resp, err)
}

// Create adds an activity. A nil data selects DefaultActivityData.
func (a *Activities) Create(ctx context.Context, activityType string, data json.RawMessage) reconcile.Outcome[struct{}] {
	activityType = strings.TrimSpace(activityType)
	if activityType == "" {
		return reconcile.Rejected[struct{}](ErrEmptyActivityType, EmptyActivityTypeMessage)
	}
	if len(data) == 0 {
		data = DefaultActivityData
	}
	if !json.Valid(data) {
		return reconcile.Rejected[struct{}](fmt.Errorf("activity data is not valid JSON"), "Activity data must be valid JSON.")
	}

	body := map[string]any{
		"activity_type": activityType,
		"activity_data": data,
	}
	resp, err := a.send(ctx, api.MethodPost, a.endpoint, body)
	return reconcile.Reconcile(ActivityCreate, resp, err)
}

// Delete removes the activity with the given id.
func (a *Activities) Delete(ctx context.Context, id string) reconcile.Outcome[struct{}] {
	id = strings.TrimSpace(id)
	if id == "" {
		return reconcile.Rejected[struct{}](ErrEmptyActivityID, EmptyActivityIDMessage)
	}

	resp, err := a.send(ctx, api.MethodDelete, a.endpoint, map[string]string{"activity_id": id})
	return reconcile.Reconcile(ActivityDelete, resp, err)
}

func (a *Activities) send(ctx context.Context, method api.Method, endpoint string, body any) (*api.Response, error) {
	token, err := a.tokens.AcquireToken(ctx)
	if err != nil {
		return nil, err
	}
	ctx = api.WithResource(ctx, "activities")
	return a.doer.Do(ctx, api.Call{Method: method, Endpoint: endpoint, Token: token, Body: body})
}
