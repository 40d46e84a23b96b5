package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const apiCallTable = "api_call_events"

var apiCallColumns = []string{
	"sequence", "timestamp_ms", "call_id", "resource", "method", "endpoint",
	"request_payload", "status", "response_payload", "latency_ms", "success", "error_message",
}

// callLog implements CallLog with ent's SQL builder and the sequence counter.
type callLog struct {
	drv *entsql.Driver
	seq *sequencer
	now func() time.Time
}

func (r *callLog) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *callLog) AppendAPICall(ctx context.Context, data APICallEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(apiCallTable).
		Columns(apiCallColumns...).
		Values(
			seqNum,
			r.clock().UnixMilli(),
			data.CallID,
			data.Resource,
			data.Method,
			data.Endpoint,
			data.RequestPayload,
			data.Status,
			data.ResponsePayload,
			data.LatencyMs,
			data.Success,
			data.ErrorMessage,
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save api call event: %w", err)
	}
	return nil
}

func (r *callLog) QueryAPICalls(ctx context.Context, opts QueryOpts) ([]APICallRecord, error) {
	selector := entsql.Dialect(dialect.SQLite).
		Select(apiCallColumns...).
		From(entsql.Table(apiCallTable)).
		OrderBy(entsql.Desc("sequence"))

	if opts.Limit > 0 {
		selector = selector.Limit(opts.Limit)
	}
	if opts.After > 0 {
		selector = selector.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		selector = selector.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		selector = selector.Where(entsql.GTE("timestamp_ms", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		selector = selector.Where(entsql.LTE("timestamp_ms", opts.To.UnixMilli()))
	}
	if opts.Resource != "" {
		selector = selector.Where(entsql.EQ("resource", opts.Resource))
	}

	query, args := selector.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query api call events: %w", err)
	}
	defer rows.Close()

	var records []APICallRecord
	for rows.Next() {
		var (
			rec  APICallRecord
			tsMs int64
		)
		if err := rows.Scan(
			&rec.Sequence,
			&tsMs,
			&rec.CallID,
			&rec.Resource,
			&rec.Method,
			&rec.Endpoint,
			&rec.RequestPayload,
			&rec.Status,
			&rec.ResponsePayload,
			&rec.LatencyMs,
			&rec.Success,
			&rec.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("scan api call event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(tsMs).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate api call events: %w", err)
	}
	return records, nil
}

func (r *callLog) Prune(ctx context.Context, keep int) error {
	// Find the sequence threshold: the (keep+1)th most recent call.
	query, args := entsql.Dialect(dialect.SQLite).
		Select("sequence").
		From(entsql.Table(apiCallTable)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Offset(keep).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return fmt.Errorf("query api calls for prune: %w", err)
	}
	var threshold int64
	found := false
	if rows.Next() {
		if err := rows.Scan(&threshold); err != nil {
			rows.Close()
			return fmt.Errorf("scan prune threshold: %w", err)
		}
		found = true
	}
	rows.Close()
	if !found {
		return nil // fewer than keep calls exist
	}

	query, args = entsql.Dialect(dialect.SQLite).
		Delete(apiCallTable).
		Where(entsql.LTE("sequence", threshold)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("prune api call events: %w", err)
	}
	return nil
}
