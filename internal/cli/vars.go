package cli

import (
	"go.uber.org/zap"

	"github.com/kinemalab/kinema/internal/integration"
	"github.com/kinemalab/kinema/internal/observability"
	"github.com/kinemalab/kinema/internal/profiling"
	"github.com/kinemalab/kinema/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath string
	Config   *models.GlobalConfig
	Logger   *zap.Logger

	Executor integration.CLIExecutor
	Recipes  integration.RecipeRunner
	Codec    integration.CodecDiscoverer
	Browser  integration.Opener
	Reporter profiling.Reporter

	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
)
