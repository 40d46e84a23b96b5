package api

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/beplus/beplus/internal/store"
)

// LoggingDoer is a decorator that records every API call as an event.
type LoggingDoer struct {
	inner  Doer
	sink   store.CallLog
	logger *slog.Logger
}

// WithLogging wraps a Doer with call logging. Either sink or logger may be nil.
func WithLogging(d Doer, sink store.CallLog, logger *slog.Logger) Doer {
	return &LoggingDoer{inner: d, sink: sink, logger: logger}
}

func (l *LoggingDoer) Do(ctx context.Context, call Call) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Do(ctx, call)

	data := store.APICallEventData{
		CallID:         uuid.NewString(),
		Resource:       ResourceFrom(ctx),
		Method:         string(call.Method),
		Endpoint:       call.Endpoint,
		RequestPayload: call.Payload(),
		LatencyMs:      time.Since(start).Milliseconds(),
	}

	if resp != nil {
		data.Status = resp.Status
		data.ResponsePayload = string(resp.Body)
		data.Success = err == nil && resp.OK()
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		var pe *ParseError
		if errors.As(err, &pe) {
			data.Status = pe.Status
			data.ResponsePayload = string(pe.Raw)
		}
	}

	l.trace(ctx, data)

	// Recorded even when the caller was cancelled mid-flight.
	if l.sink != nil {
		if logErr := l.sink.AppendAPICall(context.WithoutCancel(ctx), data); logErr != nil && l.logger != nil {
			l.logger.Warn("failed to record api call", "call_id", data.CallID, "error", logErr)
		}
	}

	return resp, err
}

func (l *LoggingDoer) trace(ctx context.Context, data store.APICallEventData) {
	if l.logger == nil || !l.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	l.logger.Debug("api call",
		"call_id", data.CallID,
		"resource", data.Resource,
		"method", data.Method,
		"endpoint", data.Endpoint,
		"request", data.RequestPayload,
		"status", data.Status,
		"response", data.ResponsePayload,
		"latency_ms", data.LatencyMs,
		"error", data.ErrorMessage,
	)
}
