package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	infraconfig "github.com/peeves/backend/internal/infrastructure/config"
)

func TestTracerProviderDisabled(t *testing.T) {
	ctx := context.Background()

	tp, err := NewTracerProvider(ctx, infraconfig.TelemetryConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestMeterProviderDisabled(t *testing.T) {
	ctx := context.Background()

	mp, err := NewMeterProvider(ctx, infraconfig.TelemetryConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, mp.IsEnabled())
	assert.NoError(t, mp.Shutdown(ctx))

	metrics, err := NewStorefrontMetrics(mp.Meter("test"))
	require.NoError(t, err)
	assert.NotNil(t, metrics.OrdersPlaced)

	// No-op instruments must accept records without a registered backend
	metrics.OrdersPlaced.Add(ctx, 1)
	metrics.CheckoutAmount.Record(ctx, 129.99)
}

func TestLoggerProviderDisabled(t *testing.T) {
	ctx := context.Background()

	lp, err := NewLoggerProvider(ctx, infraconfig.TelemetryConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, lp.IsEnabled())

	base := zap.NewNop()
	assert.Same(t, base, lp.BridgeLogger(base))
	assert.NoError(t, lp.Shutdown(ctx))
}

func TestProfiler(t *testing.T) {
	t.Run("disabled profiler is a no-op", func(t *testing.T) {
		p, err := NewProfiler(infraconfig.ProfilerConfig{Enabled: false}, zap.NewNop())
		require.NoError(t, err)

		assert.False(t, p.IsEnabled())
		assert.NoError(t, p.Stop())
		assert.NoError(t, p.Stop())
	})

	t.Run("enabled profiler requires a server address", func(t *testing.T) {
		_, err := NewProfiler(infraconfig.ProfilerConfig{Enabled: true, ServiceName: "storefront"}, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("enabled profiler requires a service name", func(t *testing.T) {
		_, err := NewProfiler(infraconfig.ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, zap.NewNop())
		assert.Error(t, err)
	})
}
