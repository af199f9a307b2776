package integration

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Recipe represents a single named task: a short command sequence with
// environment-variable parameters that fall back to defaults when unset.
type Recipe struct {
	Name        string            `yaml:"-"`
	Description string            `yaml:"desc,omitempty"`
	Aliases     []string          `yaml:"aliases,omitempty"`
	Params      map[string]string `yaml:"params,omitempty"`
	Commands    []string          `yaml:"cmds"`
}

// RecipeFile represents a parsed recipes.yaml.
type RecipeFile struct {
	Version string            `yaml:"version"`
	Recipes map[string]Recipe `yaml:"recipes"`
}

// RecipeRunConfig holds all parameters needed to execute a recipe.
type RecipeRunConfig struct {
	Name      string
	Args      []string
	RenderCtx *RenderEnvContext // nil if no active render job
	Dir       string            // directory containing recipes.yaml
	Stdout    io.Writer
	Stderr    io.Writer
}

// RecipeRunner defines the interface for discovering and executing recipes.
type RecipeRunner interface {
	// Discover parses recipes.yaml from the given directory, merged over
	// the built-in recipes. A missing file yields just the built-ins.
	Discover(dir string) (*RecipeFile, error)
	// Run executes a named recipe (or alias), injecting parameter env vars.
	Run(ctx context.Context, config RecipeRunConfig) (*ExecResult, error)
	// List returns all recipes sorted by name.
	List(dir string) ([]Recipe, error)
}

// Parameter names shared by the built-in recipes. A value already present
// in the process environment wins over the recipe default.
const (
	ParamLogLevel = "KINEMA_LOG"   // log verbosity, default "info"
	ParamDebug    = "KINEMA_DEBUG" // debug symbols / debug rendering, default "0"
)

// builtinRecipes are always available, even without a recipes.yaml.
// The short aliases mirror the long names: d, p, pd.
func builtinRecipes() map[string]Recipe {
	defaults := map[string]string{ParamLogLevel: "info", ParamDebug: "0"}
	debug := map[string]string{ParamLogLevel: "debug", ParamDebug: "1"}
	return map[string]Recipe{
		"run": {
			Description: "render the scene to video",
			Params:      defaults,
			Commands:    []string{"kinema render scene.yaml"},
		},
		"run_debug": {
			Description: "render with debug symbols and verbose logging",
			Aliases:     []string{"d"},
			Params:      debug,
			Commands:    []string{"kinema render scene.yaml --debug"},
		},
		"profile": {
			Description: "render under the CPU profiler and open the flame graph",
			Aliases:     []string{"p"},
			Params:      defaults,
			Commands:    []string{"kinema profile scene.yaml"},
		},
		"profile_debug": {
			Description: "profile a debug render and open the flame graph",
			Aliases:     []string{"pd"},
			Params:      debug,
			Commands:    []string{"kinema profile scene.yaml --debug"},
		},
	}
}

// recipeRunner implements RecipeRunner using a CLIExecutor for command execution.
type recipeRunner struct {
	executor CLIExecutor
}

// NewRecipeRunner creates a new RecipeRunner backed by the given CLIExecutor.
func NewRecipeRunner(executor CLIExecutor) RecipeRunner {
	return &recipeRunner{executor: executor}
}

// Discover reads recipes.yaml from dir and merges it over the built-ins.
// Project recipes with the same name shadow built-ins.
func (r *recipeRunner) Discover(dir string) (*RecipeFile, error) {
	rf := &RecipeFile{Version: "1", Recipes: builtinRecipes()}

	path := filepath.Join(dir, "recipes.yaml")
	data, err := os.ReadFile(path) //nolint:gosec // G304: reading recipes.yaml from user-specified directory
	if err != nil {
		if os.IsNotExist(err) {
			return rf, nil
		}
		return nil, fmt.Errorf("reading recipes.yaml: %w", err)
	}

	var parsed RecipeFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing recipes.yaml in %s: %w", dir, err)
	}
	for name, recipe := range parsed.Recipes {
		rf.Recipes[name] = recipe
	}

	// Set the Name field from the map key for each recipe.
	for name, recipe := range rf.Recipes {
		recipe.Name = name
		rf.Recipes[name] = recipe
	}

	return rf, nil
}

// List discovers the recipes and returns them sorted by name.
func (r *recipeRunner) List(dir string) ([]Recipe, error) {
	rf, err := r.Discover(dir)
	if err != nil {
		return nil, err
	}

	recipes := make([]Recipe, 0, len(rf.Recipes))
	for _, recipe := range rf.Recipes {
		recipes = append(recipes, recipe)
	}
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].Name < recipes[j].Name })

	return recipes, nil
}

// resolve finds a recipe by name or alias.
func resolve(rf *RecipeFile, name string) (Recipe, bool) {
	if recipe, ok := rf.Recipes[name]; ok {
		return recipe, true
	}
	for _, recipe := range rf.Recipes {
		for _, alias := range recipe.Aliases {
			if alias == name {
				return recipe, true
			}
		}
	}
	return Recipe{}, false
}

// resolveParams returns the recipe's parameter values, letting any variable
// already set in the process environment override the recipe default.
func resolveParams(params map[string]string) map[string]string {
	resolved := make(map[string]string, len(params))
	for name, def := range params {
		if v, ok := os.LookupEnv(name); ok {
			resolved[name] = v
		} else {
			resolved[name] = def
		}
	}
	return resolved
}

// Run discovers the recipes, resolves the named one, and executes its
// commands sequentially. Execution stops at the first non-zero exit.
func (r *recipeRunner) Run(ctx context.Context, config RecipeRunConfig) (*ExecResult, error) {
	rf, err := r.Discover(config.Dir)
	if err != nil {
		return nil, err
	}

	recipe, ok := resolve(rf, config.Name)
	if !ok {
		available := make([]string, 0, len(rf.Recipes))
		for name := range rf.Recipes {
			available = append(available, name)
		}
		sort.Strings(available)
		return nil, fmt.Errorf("recipe %q not found, available recipes: %v", config.Name, available)
	}

	if len(recipe.Commands) == 0 {
		return &ExecResult{ExitCode: 0}, nil
	}

	params := resolveParams(recipe.Params)

	// Execute each command in the recipe sequentially.
	var lastResult *ExecResult
	for _, cmdStr := range recipe.Commands {
		fields := strings.Fields(cmdStr)
		if len(fields) == 0 {
			continue
		}
		args := append(fields[1:], config.Args...)
		result, execErr := r.executor.Exec(ctx, ExecConfig{
			CLI:       fields[0],
			Args:      args,
			Dir:       config.Dir,
			Env:       params,
			RenderCtx: config.RenderCtx,
			Stdout:    config.Stdout,
			Stderr:    config.Stderr,
		})
		if execErr != nil {
			return result, fmt.Errorf("running recipe %q command %q: %w", recipe.Name, cmdStr, execErr)
		}
		lastResult = result
		if result.ExitCode != 0 {
			return result, nil
		}
	}

	return lastResult, nil
}
