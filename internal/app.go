// Package internal provides the App struct that wires all components of
// kinema together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kinemalab/kinema/internal/cli"
	"github.com/kinemalab/kinema/internal/core"
	"github.com/kinemalab/kinema/internal/integration"
	"github.com/kinemalab/kinema/internal/observability"
	"github.com/kinemalab/kinema/internal/profiling"
	"github.com/kinemalab/kinema/pkg/models"
)

// App holds all service dependencies for kinema.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.GlobalConfig

	// Integration services
	Executor integration.CLIExecutor
	Recipes  integration.RecipeRunner
	Codec    integration.CodecDiscoverer
	Browser  integration.Opener

	// Profiling
	Reporter profiling.Reporter

	// Observability
	Logger      *zap.Logger
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires all components of the system. basePath is the
// project root, typically the directory containing .kinemarc.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := app.ConfigMgr.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	app.Config = cfg

	// --- Logging ---
	app.Logger, err = observability.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	// --- Integration services ---
	app.Executor = integration.NewCLIExecutor()
	app.Recipes = integration.NewRecipeRunner(app.Executor)
	app.Codec = integration.NewCodecDiscoverer(app.Executor)
	app.Browser = integration.NewOpener(app.Executor)

	// --- Profiling ---
	app.Reporter = profiling.NewReporter(app.Executor, app.Browser)

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, ".kinema_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: disable observability if log can't be created.
		app.EventLog = nil
	}
	if app.EventLog != nil {
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Config = app.Config
	cli.Logger = app.Logger
	cli.Executor = app.Executor
	cli.Recipes = app.Recipes
	cli.Codec = app.Codec
	cli.Browser = app.Browser
	cli.Reporter = app.Reporter
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc

	return app, nil
}

// Close flushes and releases the app's resources.
func (a *App) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the project root. KINEMA_HOME wins when set;
// otherwise the directory tree is walked up from the working directory
// looking for a .kinemarc.
func ResolveBasePath() string {
	if home := os.Getenv("KINEMA_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".kinemarc")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	// Fall back to cwd.
	cwd, _ := os.Getwd()
	return cwd
}
