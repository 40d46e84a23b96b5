package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit    int       // max results (0 = unlimited)
	After    int64     // sequence > After
	Before   int64     // sequence < Before
	From     time.Time // timestamp >= From
	To       time.Time // timestamp <= To
	Resource string    // exact resource match ("" = any)
}

// APICallEventData captures one request/response round trip.
type APICallEventData struct {
	CallID          string
	Resource        string
	Method          string
	Endpoint        string
	RequestPayload  string
	Status          int // 0 when no response was received
	ResponsePayload string
	LatencyMs       int64
	Success         bool
	ErrorMessage    string
}

// APICallRecord is a stored APICallEventData with its ordering metadata.
type APICallRecord struct {
	APICallEventData
	Sequence  int64
	Timestamp time.Time
}

// CallLog is the append-only diagnostic sink for API calls.
type CallLog interface {
	// AppendAPICall records one API call.
	AppendAPICall(ctx context.Context, data APICallEventData) error

	// QueryAPICalls returns recorded calls, newest first.
	QueryAPICalls(ctx context.Context, opts QueryOpts) ([]APICallRecord, error)

	// Prune deletes all but the N most recent calls.
	Prune(ctx context.Context, keep int) error
}
