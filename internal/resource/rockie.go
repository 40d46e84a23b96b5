package resource

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/beplus/beplus/internal/api"
	"github.com/beplus/beplus/internal/reconcile"
)

// DefaultRockieName is the name given to a rockie created from the empty state.
const DefaultRockieName = "FireRockie2"

// NoRockieMessage is the empty-state text of the profile screen.
const NoRockieMessage = "No Rockie found."

// RockieProfile decodes the singleton. The rockie exists only when
// rockie_data is present.
var RockieProfile = reconcile.Kind[*Rockie]{
	Name:        "rockie",
	Op:          "fetching the Rockie profile",
	FailPrefix:  "Failed to fetch Rockie",
	AbsentAware: true,
	Decode: func(body json.RawMessage) (*Rockie, bool, error) {
		if err := validate(rockieSchema, body); err != nil {
			return nil, false, err
		}
		var env struct {
			Body Rockie `json:"body"`
		}
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, false, err
		}
		if env.Body.RockieData == nil {
			return nil, false, nil
		}
		return &env.Body, true, nil
	},
}

// RockieCreate only needs a 2xx status; the screen re-fetches afterwards.
var RockieCreate = mutation("create rockie", "creating the Rockie", "Failed to create Rockie")

// Rockies talks to the rockie endpoint.
type Rockies struct {
	tokens   TokenSource
	doer     api.Doer
	endpoint string
}

// NewRockies creates a Rockies service.
func NewRockies(tokens TokenSource, doer api.Doer, endpoint string) *Rockies {
	return &Rockies{tokens: tokens, doer: doer, endpoint: endpoint}
}

// Get fetches the profile. Absent carries a nil Rockie.
func (r *Rockies) Get(ctx context.Context) reconcile.Outcome[*Rockie] {
	resp, err := r.send(ctx, api.MethodGet, nil)
	return reconcile.Reconcile(RockieProfile, resp, err)
}

// CreateDefault creates a rockie named name, or DefaultRockieName when empty.
func (r *Rockies) CreateDefault(ctx context.Context, name string) reconcile.Outcome[struct{}] {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultRockieName
	}
	resp, err := r.send(ctx, api.MethodPost, map[string]string{"rockie_name": name})
	return reconcile.Reconcile(RockieCreate, resp, err)
}

func (r *Rockies) send(ctx context.Context, method api.Method, body any) (*api.Response, error) {
	token, err := r.tokens.AcquireToken(ctx)
	if err != nil {
		return nil, err
	}
	ctx = api.WithResource(ctx, "rockie")
	return r.doer.Do(ctx, api.Call{Method: method, Endpoint: r.endpoint, Token: token, Body: body})
}
