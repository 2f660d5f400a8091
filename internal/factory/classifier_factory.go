package factory

import (
	"fmt"

	"github.com/mikey/phish-dashboard/internal/adapters/classifier"
	"github.com/mikey/phish-dashboard/internal/config"
	"github.com/mikey/phish-dashboard/internal/core"
	"github.com/mikey/phish-dashboard/internal/utils"
	"go.uber.org/zap"
)

// ClassifierFactory creates classifier clients
type ClassifierFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClassifier creates a new classifier client based on the configuration
func (f *ClassifierFactory) CreateClassifier() (core.Classifier, error) {
	classifierConfig, err := f.cfg.GetClassifier()
	if err != nil {
		return nil, fmt.Errorf("invalid classifier config: %w", err)
	}

	switch classifierConfig.Provider {
	case "http":
		if classifierConfig.Endpoint == "" {
			return nil, fmt.Errorf("classifier endpoint is not configured")
		}
		f.logger.Info("Using HTTP classification service",
			zap.String("endpoint", classifierConfig.Endpoint))
		return classifier.NewHTTPClassifier(
			classifierConfig.Endpoint,
			classifierConfig.Timeout,
			f.textProcessor,
			f.logger,
		), nil
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", classifierConfig.Provider)
	}
}
