package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/phish-dashboard/internal/adapters/history"
	"github.com/mikey/phish-dashboard/internal/adapters/web"
	"github.com/mikey/phish-dashboard/internal/config"
	"github.com/mikey/phish-dashboard/internal/core"
	"github.com/mikey/phish-dashboard/internal/factory"
	"github.com/mikey/phish-dashboard/internal/logging"
	"github.com/mikey/phish-dashboard/internal/ports"
	"github.com/mikey/phish-dashboard/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register classifier factory and classifier
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.ClassifierFactory) (core.Classifier, error) {
		return f.CreateClassifier()
	}); err != nil {
		return nil, err
	}

	// Register scan history
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.ScanHistory {
		historyConfig := cfg.GetHistory()
		return history.NewMemoryHistory(historyConfig.MaxEntries, logger)
	}); err != nil {
		return nil, err
	}

	// Register trend aggregator
	if err := container.Provide(func(cfg *config.Config) *core.TrendAggregator {
		return core.NewTrendAggregator(cfg.GetTrend().WindowSize)
	}); err != nil {
		return nil, err
	}

	// Register dashboard server
	if err := container.Provide(web.NewServer); err != nil {
		return nil, err
	}
	if err := container.Provide(func(s *web.Server) ports.DashboardServer {
		return s
	}); err != nil {
		return nil, err
	}

	return container, nil
}
