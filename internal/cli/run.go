package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kinemalab/kinema/internal/integration"
	"github.com/kinemalab/kinema/internal/observability"
	"github.com/kinemalab/kinema/pkg/models"
)

var runList bool

// recipeExitError carries a recipe's non-zero exit status up to main, so
// cleanup deferred there still runs before the process exits.
type recipeExitError struct {
	code int
}

func (e recipeExitError) Error() string {
	return fmt.Sprintf("recipe exited with code %d", e.code)
}

// ExitCode maps an Execute error to the process exit code.
func ExitCode(err error) int {
	var re recipeExitError
	if errors.As(err, &re) {
		return re.code
	}
	return 1
}

var runCmd = &cobra.Command{
	Use:   "run [recipe] [args...]",
	Short: "Run a project recipe",
	Long: `Run a named recipe from recipes.yaml, or one of the built-ins:

  run            render the scene to video
  run_debug (d)  render with debug symbols and verbose logging
  profile (p)    render under the CPU profiler, open the flame graph
  profile_debug (pd)
                 profile a debug render

Recipe parameters are environment variables with defaults, e.g. KINEMA_LOG
(default "info") and KINEMA_DEBUG (default "0"). A variable already set in
the environment overrides the recipe default. Extra arguments are appended
to each recipe command. The command exits with the recipe's exit code.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		if runList || len(args) == 0 {
			return listRecipes()
		}

		name := args[0]
		result, err := Recipes.Run(cmd.Context(), integration.RecipeRunConfig{
			Name:      name,
			Args:      args[1:],
			RenderCtx: recipeRenderContext(cmd.Context()),
			Dir:       BasePath,
			Stdout:    os.Stdout,
			Stderr:    os.Stderr,
		})
		if err != nil {
			return err
		}

		emitEvent(observability.RecipeExecuted(name, result.ExitCode))
		if result.ExitCode != 0 {
			return recipeExitError{code: result.ExitCode}
		}
		return nil
	},
}

// recipeRenderContext exposes the resolved toolchain to recipe commands as
// KINEMA_* environment variables. Discovery failures are not fatal here; a
// recipe that needs ffmpeg will surface its own error.
func recipeRenderContext(ctx context.Context) *integration.RenderEnvContext {
	if Codec == nil || Config == nil {
		return nil
	}
	disc, err := Codec.Discover(ctx, Config.FFmpegPath)
	if err != nil {
		return nil
	}
	return &integration.RenderEnvContext{
		OutputDir:   Config.Output,
		FFmpegPath:  disc.Path,
		CodecLibDir: disc.LibDir,
	}
}

func listRecipes() error {
	recipes, err := Recipes.List(BasePath)
	if err != nil {
		return err
	}

	fmt.Println("Available recipes:")
	for _, r := range recipes {
		alias := ""
		if len(r.Aliases) > 0 {
			alias = fmt.Sprintf(" (%s)", r.Aliases[0])
		}
		desc := r.Description
		if desc == "" && len(r.Commands) > 0 {
			desc = r.Commands[0]
		}
		fmt.Printf("  %-14s%-6s%s\n", r.Name, alias, desc)
	}

	if Config != nil && len(Config.CLIAliases) > 0 {
		fmt.Println("\nCLI aliases:")
		for _, line := range Executor.ListAliases(toExecAliases(Config.CLIAliases)) {
			fmt.Printf("  %s\n", line)
		}
	}
	return nil
}

// toExecAliases converts configured aliases to the executor's type.
func toExecAliases(aliases []models.CLIAliasConfig) []integration.CLIAlias {
	out := make([]integration.CLIAlias, 0, len(aliases))
	for _, a := range aliases {
		out = append(out, integration.CLIAlias{
			Name:        a.Name,
			Command:     a.Command,
			DefaultArgs: a.DefaultArgs,
		})
	}
	return out
}

func init() {
	runCmd.Flags().BoolVar(&runList, "list", false, "List available recipes")
	rootCmd.AddCommand(runCmd)
}
