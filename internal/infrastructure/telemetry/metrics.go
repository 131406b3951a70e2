package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"

	infraconfig "github.com/peeves/backend/internal/infrastructure/config"
)

const metricExportInterval = 60 * time.Second

// MeterProvider wraps the OpenTelemetry MeterProvider with lifecycle
// management. When telemetry is disabled it stays a no-op.
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
	logger   *zap.Logger
	config   infraconfig.TelemetryConfig
}

// NewMeterProvider creates and registers the global meter provider
func NewMeterProvider(ctx context.Context, cfg infraconfig.TelemetryConfig, logger *zap.Logger) (*MeterProvider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	mp := &MeterProvider{
		logger: logger,
		config: cfg,
	}

	if !cfg.Enabled {
		logger.Info("Metrics disabled, using no-op meter provider")
		return mp, nil
	}

	exporterOpts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint),
	}
	if cfg.Insecure {
		exporterOpts = append(exporterOpts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	mp.provider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(
				exporter,
				sdkmetric.WithInterval(metricExportInterval),
			),
		),
	)

	otel.SetMeterProvider(mp.provider)

	logger.Info("OpenTelemetry MeterProvider initialized",
		zap.String("collector_endpoint", cfg.CollectorEndpoint),
		zap.String("service_name", cfg.ServiceName),
	)

	return mp, nil
}

// Shutdown flushes pending metrics and stops the provider
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := mp.provider.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	return nil
}

// Meter returns a named meter from the provider
func (mp *MeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if mp.provider == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return mp.provider.Meter(name, opts...)
}

// IsEnabled reports whether metrics are actually exported
func (mp *MeterProvider) IsEnabled() bool {
	return mp.config.Enabled && mp.provider != nil
}

// StorefrontMetrics holds the instruments recorded by the HTTP layer
type StorefrontMetrics struct {
	OrdersPlaced     metric.Int64Counter
	CheckoutAmount   metric.Float64Histogram
	StatusChanges    metric.Int64Counter
	ImportedProducts metric.Int64Counter
}

// Metric attribute keys shared across instruments
var (
	AttrOrderStatus = attribute.Key("order.status")
	AttrAdminAction = attribute.Key("admin.action")
)

// NewStorefrontMetrics creates the storefront's business instruments
func NewStorefrontMetrics(meter metric.Meter) (*StorefrontMetrics, error) {
	ordersPlaced, err := meter.Int64Counter("storefront.orders.placed",
		metric.WithDescription("Orders created through checkout"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create orders counter: %w", err)
	}

	checkoutAmount, err := meter.Float64Histogram("storefront.checkout.amount",
		metric.WithDescription("Order totals at checkout"),
		metric.WithUnit("EUR"),
		metric.WithExplicitBucketBoundaries(25, 50, 100, 150, 250, 500, 1000),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout histogram: %w", err)
	}

	statusChanges, err := meter.Int64Counter("storefront.orders.status_changes",
		metric.WithDescription("Admin order status transitions"),
		metric.WithUnit("{change}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create status change counter: %w", err)
	}

	imported, err := meter.Int64Counter("storefront.catalog.imported",
		metric.WithDescription("Products created by the CSV importer"),
		metric.WithUnit("{product}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create import counter: %w", err)
	}

	return &StorefrontMetrics{
		OrdersPlaced:     ordersPlaced,
		CheckoutAmount:   checkoutAmount,
		StatusChanges:    statusChanges,
		ImportedProducts: imported,
	}, nil
}
