package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/kinemalab/kinema/pkg/models"
)

// ConfigurationManager loads and validates kinema project configuration.
type ConfigurationManager interface {
	// Load reads configuration from the project directory, applying
	// defaults for anything not present in .kinemarc.
	Load() (*models.GlobalConfig, error)
	// Validate checks the configuration for values that would make a
	// render fail midway rather than up front.
	Validate(cfg *models.GlobalConfig) error
	// ConfigPath returns the path of the config file that was loaded,
	// or empty when defaults were used.
	ConfigPath() string
}

type viperConfigManager struct {
	basePath   string
	configPath string
}

// NewConfigurationManager returns a manager rooted at basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

func (m *viperConfigManager) Load() (*models.GlobalConfig, error) {
	v := viper.New()
	v.SetConfigName(".kinemarc")
	v.SetConfigType("yaml")
	v.AddConfigPath(m.basePath)

	v.SetDefault("canvas.width", 1920)
	v.SetDefault("canvas.height", 1080)
	v.SetDefault("canvas.fps", 60)
	v.SetDefault("render.workers", 0)
	v.SetDefault("render.output", "output")
	v.SetDefault("ffmpeg.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("recipes.file", "recipes.yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No .kinemarc is fine, defaults apply.
	} else {
		m.configPath = v.ConfigFileUsed()
	}

	cfg := &models.GlobalConfig{
		Width:      v.GetInt("canvas.width"),
		Height:     v.GetInt("canvas.height"),
		FPS:        v.GetInt("canvas.fps"),
		Workers:    v.GetInt("render.workers"),
		Output:     v.GetString("render.output"),
		FFmpegPath: v.GetString("ffmpeg.path"),
		LogLevel:   v.GetString("log.level"),
		RecipeFile: v.GetString("recipes.file"),
	}

	aliases := v.Get("cli_aliases")
	if aliasList, ok := aliases.([]interface{}); ok {
		for _, raw := range aliasList {
			entry, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			alias := models.CLIAliasConfig{}
			if name, ok := entry["name"].(string); ok {
				alias.Name = name
			}
			if command, ok := entry["command"].(string); ok {
				alias.Command = command
			}
			if args, ok := entry["default_args"].([]interface{}); ok {
				for _, a := range args {
					if s, ok := a.(string); ok {
						alias.DefaultArgs = append(alias.DefaultArgs, s)
					}
				}
			}
			if alias.Name != "" && alias.Command != "" {
				cfg.CLIAliases = append(cfg.CLIAliases, alias)
			}
		}
	}

	if !filepath.IsAbs(cfg.Output) {
		cfg.Output = filepath.Join(m.basePath, cfg.Output)
	}

	return cfg, nil
}

func (m *viperConfigManager) Validate(cfg *models.GlobalConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d: both dimensions must be positive", cfg.Width, cfg.Height)
	}
	if cfg.FPS <= 0 {
		return fmt.Errorf("fps %d: must be positive", cfg.FPS)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("workers %d: must be zero (auto) or positive", cfg.Workers)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level %q: must be one of debug, info, warn, error", cfg.LogLevel)
	}
	if cfg.FFmpegPath != "" {
		if _, err := os.Stat(cfg.FFmpegPath); err != nil {
			return fmt.Errorf("ffmpeg path %q: %w", cfg.FFmpegPath, err)
		}
	}
	return nil
}

func (m *viperConfigManager) ConfigPath() string {
	return m.configPath
}
