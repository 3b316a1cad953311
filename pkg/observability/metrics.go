package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// Metrics bundles the meter provider with the /metrics HTTP handler.
type Metrics struct {
	provider *sdkmetric.MeterProvider
	handler  http.Handler
	name     string
}

// InitMetrics initializes the Prometheus metrics exporter.
func InitMetrics(cfg MetricsConfig) (*Metrics, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	return &Metrics{
		provider: provider,
		handler:  promhttp.Handler(),
		name:     cfg.ServiceName,
	}, nil
}

// Meter returns the service-scoped meter.
func (m *Metrics) Meter() metric.Meter {
	return m.provider.Meter(m.name)
}

// Handler serves the Prometheus scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// Shutdown flushes and stops the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}
