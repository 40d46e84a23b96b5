// Package resource binds the Be+ activities and rockie endpoints to the
// reconciler: response schemas, request bodies, and per-screen services.
package resource

import (
	"context"
	"encoding/json"
	"strconv"
)

// NotProvided is displayed in place of a missing rockie field.
const NotProvided = "Not provided"

// DefaultActivityData is sent when an activity is created without a payload.
var DefaultActivityData = json.RawMessage(`{"time":30}`)

// Activity is one entry of the activities collection.
type Activity struct {
	ActivityID   string          `json:"activity_id"`
	ActivityType string          `json:"activity_type"`
	ActivityData json.RawMessage `json:"activity_data,omitempty"`
}

// DataString renders the opaque activity payload for display.
func (a Activity) DataString() string {
	if len(a.ActivityData) == 0 {
		return ""
	}
	return string(a.ActivityData)
}

// RockieData is the nested record whose presence makes a Rockie exist.
type RockieData struct {
	RockieName string `json:"rockie_name,omitempty"`
	Evolution  string `json:"evolution,omitempty"`
}

// Rockie is the singleton profile of the authenticated student.
type Rockie struct {
	TenantID     string      `json:"tenant_id,omitempty"`
	StudentID    string      `json:"student_id,omitempty"`
	Level        *int        `json:"level,omitempty"`
	Experience   *int        `json:"experience,omitempty"`
	CreationDate string      `json:"creation_date,omitempty"`
	RockieData   *RockieData `json:"rockie_data,omitempty"`
}

// Name returns the rockie name or NotProvided.
func (r *Rockie) Name() string {
	if r == nil || r.RockieData == nil || r.RockieData.RockieName == "" {
		return NotProvided
	}
	return r.RockieData.RockieName
}

// EvolutionLabel returns the evolution stage or NotProvided.
func (r *Rockie) EvolutionLabel() string {
	if r == nil || r.RockieData == nil || r.RockieData.Evolution == "" {
		return NotProvided
	}
	return r.RockieData.Evolution
}

// LevelLabel returns the level or NotProvided.
func (r *Rockie) LevelLabel() string {
	if r == nil || r.Level == nil {
		return NotProvided
	}
	return strconv.Itoa(*r.Level)
}

// ExperienceLabel returns the experience points or NotProvided.
func (r *Rockie) ExperienceLabel() string {
	if r == nil || r.Experience == nil {
		return NotProvided
	}
	return strconv.Itoa(*r.Experience)
}

// TokenSource yields the bearer token for a request.
type TokenSource interface {
	AcquireToken(ctx context.Context) (string, error)
}
