package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector

	// OTel meters and instruments
	meter           metric.Meter
	totalBooksGauge metric.Int64ObservableGauge
	genreCountGauge metric.Int64ObservableGauge
	coverKindGauge  metric.Int64ObservableGauge
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"book-catalog",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collector:     collector,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.totalBooksGauge, err = oe.meter.Int64ObservableGauge(
		"catalog.books.total",
		metric.WithDescription("Number of books in the catalog"),
		metric.WithUnit("{books}"),
		metric.WithInt64Callback(oe.observeTotalBooks),
	)
	if err != nil {
		return fmt.Errorf("creating total books gauge: %w", err)
	}

	oe.genreCountGauge, err = oe.meter.Int64ObservableGauge(
		"catalog.books.by_genre",
		metric.WithDescription("Number of books per genre"),
		metric.WithUnit("{books}"),
		metric.WithInt64Callback(oe.observeGenreCounts),
	)
	if err != nil {
		return fmt.Errorf("creating genre count gauge: %w", err)
	}

	oe.coverKindGauge, err = oe.meter.Int64ObservableGauge(
		"catalog.covers.by_kind",
		metric.WithDescription("Number of books per cover shape"),
		metric.WithUnit("{books}"),
		metric.WithInt64Callback(oe.observeCoverKinds),
	)
	if err != nil {
		return fmt.Errorf("creating cover kind gauge: %w", err)
	}

	return nil
}

// observeTotalBooks is a callback that reports the catalog size
func (oe *OTelExporter) observeTotalBooks(ctx context.Context, observer metric.Int64Observer) error {
	total, err := oe.collector.GetTotalBooks(ctx)
	if err != nil {
		return err
	}
	observer.Observe(total)
	return nil
}

// observeGenreCounts is a callback that reports book counts by genre
func (oe *OTelExporter) observeGenreCounts(ctx context.Context, observer metric.Int64Observer) error {
	counts, err := oe.collector.GetGenreCounts(ctx)
	if err != nil {
		return err
	}

	for genre, count := range counts {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("book.genre", genre),
		))
	}
	return nil
}

// observeCoverKinds is a callback that reports book counts by cover shape
func (oe *OTelExporter) observeCoverKinds(ctx context.Context, observer metric.Int64Observer) error {
	counts, err := oe.collector.GetCoverKinds(ctx)
	if err != nil {
		return err
	}

	for kind, count := range counts {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("cover.kind", kind),
		))
	}
	return nil
}

// Handler serves Prometheus-formatted metrics
func (oe *OTelExporter) Handler() http.Handler {
	return promhttp.Handler()
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
