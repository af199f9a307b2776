// Package models defines the shared data structures of kinema:
// configuration and render job records.
package models

// GlobalConfig holds the merged configuration from .kinemarc and defaults.
type GlobalConfig struct {
	// Canvas defaults applied when a scene file does not override them.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`

	// Workers bounds frame rasterization parallelism; 0 means one worker
	// per CPU.
	Workers int `yaml:"workers"`

	// Output is the directory render results are written into.
	Output string `yaml:"output"`

	// FFmpegPath overrides codec discovery when set.
	FFmpegPath string `yaml:"ffmpeg_path"`

	// LogLevel is the default log verbosity; the KINEMA_LOG environment
	// variable takes precedence.
	LogLevel string `yaml:"log_level"`

	// RecipeFile is the recipe definition file consulted by `kinema run`.
	RecipeFile string `yaml:"recipe_file"`

	// CLIAliases maps short names to external commands for recipe steps.
	CLIAliases []CLIAliasConfig `yaml:"cli_aliases"`
}

// CLIAliasConfig maps an alias to a command with optional default
// arguments.
type CLIAliasConfig struct {
	Name        string   `yaml:"name"`
	Command     string   `yaml:"command"`
	DefaultArgs []string `yaml:"default_args,omitempty"`
}
