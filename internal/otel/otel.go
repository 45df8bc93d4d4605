// Package otel wires helix-panes actions and multiplexer calls to an OTLP
// collector over HTTP. Without a collector URL every instrument is a no-op.
package otel

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "helix-panes"
	metricInterval = 15 * time.Second
)

// Version is reported as service.version; cmd copies its build version here.
var Version = "dev"

// OTELConfig names the collector. Endpoint is a base URL such as
// "http://localhost:4318"; Headers uses the OTEL_EXPORTER_OTLP_HEADERS syntax.
type OTELConfig struct {
	Endpoint string
	Headers  string
}

// Telemetry owns the SDK providers registered by Init.
type Telemetry struct {
	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider

	Tracer  trace.Tracer
	Metrics *Metrics
}

// Tracer returns the helix-panes tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(serviceName)
}

// collector is an OTLP base URL split into the pieces the HTTP exporters take.
type collector struct {
	host     string
	basePath string
	insecure bool
	headers  map[string]string
}

func parseCollector(endpoint, headers string) (collector, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return collector{}, fmt.Errorf("otel: invalid endpoint URL %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return collector{}, fmt.Errorf("otel: endpoint %q has no host", endpoint)
	}
	return collector{
		host:     u.Host,
		basePath: strings.TrimRight(u.Path, "/"),
		insecure: u.Scheme == "http",
		headers:  parseHeaders(headers),
	}, nil
}

// parseHeaders reads "k=v,k2=v2". Pairs without a key are dropped.
func parseHeaders(raw string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		key, val, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		out[key] = strings.TrimSpace(val)
	}
	return out
}

func (c collector) traceExporter(ctx context.Context) (*otlptrace.Exporter, error) {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(c.host),
		otlptracehttp.WithURLPath(c.basePath + "/v1/traces"),
	}
	if c.insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(c.headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(c.headers))
	}
	return otlptracehttp.New(ctx, opts...)
}

func (c collector) metricExporter(ctx context.Context) (*otlpmetrichttp.Exporter, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(c.host),
		otlpmetrichttp.WithURLPath(c.basePath + "/v1/metrics"),
	}
	if c.insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	if len(c.headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(c.headers))
	}
	return otlpmetrichttp.New(ctx, opts...)
}

// Init registers exporting providers when cfg.Endpoint is set and always
// returns usable instruments.
func Init(ctx context.Context, cfg OTELConfig) (*Telemetry, error) {
	t := &Telemetry{}
	if cfg.Endpoint != "" {
		if err := t.export(ctx, cfg); err != nil {
			return nil, err
		}
	}

	t.Tracer = Tracer()
	metrics, err := NewMetrics()
	if err != nil {
		return nil, fmt.Errorf("otel metrics: %w", err)
	}
	t.Metrics = metrics
	return t, nil
}

func (t *Telemetry) export(ctx context.Context, cfg OTELConfig) error {
	c, err := parseCollector(cfg.Endpoint, cfg.Headers)
	if err != nil {
		return err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(Version),
		),
		resource.WithHost(),
	)
	if err != nil {
		return fmt.Errorf("otel resource: %w", err)
	}

	spans, err := c.traceExporter(ctx)
	if err != nil {
		return fmt.Errorf("otel trace exporter: %w", err)
	}
	points, err := c.metricExporter(ctx)
	if err != nil {
		return fmt.Errorf("otel metric exporter: %w", err)
	}

	// One action per process: a batcher would lose spans on exit.
	t.tp = sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(spans),
		sdktrace.WithResource(res),
	)
	t.mp = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(points, sdkmetric.WithInterval(metricInterval))),
		sdkmetric.WithResource(res),
	)
	otel.SetTracerProvider(t.tp)
	otel.SetMeterProvider(t.mp)
	return nil
}

// Shutdown flushes pending metrics and spans. Safe on a nil Telemetry.
func (t *Telemetry) Shutdown(ctx context.Context) {
	if t == nil {
		return
	}
	if t.tp != nil {
		_ = t.tp.Shutdown(ctx)
	}
	if t.mp != nil {
		_ = t.mp.Shutdown(ctx)
	}
}
