package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "helix-panes"

// Metrics holds all OTEL metric instruments for helix-panes.
// All counters are cumulative (monotonic) and safe for concurrent use.
type Metrics struct {
	// Actions partitioned by action name and outcome (ok, error).
	Actions metric.Int64Counter

	// Multiplexer commands partitioned by backend and operation.
	MuxCommands metric.Int64Counter

	PanesCreated        metric.Int64Counter
	ResizeOps           metric.Int64Counter
	StatusParseFailures metric.Int64Counter
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Actions, err = meter.Int64Counter("actions.total",
		metric.WithDescription("Actions run, partitioned by action and outcome"))
	if err != nil {
		return nil, err
	}

	m.MuxCommands, err = meter.Int64Counter("mux.commands.total",
		metric.WithDescription("Multiplexer commands issued, partitioned by backend and operation"))
	if err != nil {
		return nil, err
	}

	m.PanesCreated, err = meter.Int64Counter("panes.created",
		metric.WithDescription("Panes created by splitting because no neighbor existed"))
	if err != nil {
		return nil, err
	}

	m.ResizeOps, err = meter.Int64Counter("layout.resize_ops",
		metric.WithDescription("Relative resize operations issued by the layout engine"))
	if err != nil {
		return nil, err
	}

	m.StatusParseFailures, err = meter.Int64Counter("status.parse_failures",
		metric.WithDescription("Screen captures with no recognizable editor status line"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordAction records one finished action.
func (m *Metrics) RecordAction(ctx context.Context, action string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Actions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("outcome", outcome),
	))
}

// RecordMuxCommand records one multiplexer command.
func (m *Metrics) RecordMuxCommand(ctx context.Context, backend, op string) {
	if m == nil {
		return
	}
	m.MuxCommands.Add(ctx, 1, metric.WithAttributes(
		attribute.String("mux.backend", backend),
		attribute.String("mux.op", op),
	))
}

// RecordPaneCreated records a split that created a new pane.
func (m *Metrics) RecordPaneCreated(ctx context.Context, direction string) {
	if m == nil {
		return
	}
	m.PanesCreated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("direction", direction),
	))
}

// RecordResizeOps records n resize operations from one layout pass.
func (m *Metrics) RecordResizeOps(ctx context.Context, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ResizeOps.Add(ctx, int64(n))
}

// RecordStatusParseFailure records a failed status-line parse.
func (m *Metrics) RecordStatusParseFailure(ctx context.Context) {
	if m == nil {
		return
	}
	m.StatusParseFailures.Add(ctx, 1)
}
