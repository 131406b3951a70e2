package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"

	infraconfig "github.com/peeves/backend/internal/infrastructure/config"
)

// RegisterDBTracing attaches the otelgorm plugin so database queries show
// up as child spans. Query variables are stripped from span attributes.
func RegisterDBTracing(db *gorm.DB, cfg infraconfig.TelemetryConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		logger.Debug("Database tracing disabled")
		return nil
	}

	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName("postgres"),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return err
	}

	logger.Info("Database tracing enabled")
	return nil
}
