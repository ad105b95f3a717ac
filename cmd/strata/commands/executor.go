package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/strata/internal/app"
	"go.trai.ch/strata/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return newExecutorCmd(
		"build [projects...]",
		"Compile projects for the workspace, or package them with --distribution external",
		"internal, external or layer",
		c.app.Build,
	)
}

func (c *CLI) newPackageCmd() *cobra.Command {
	return newExecutorCmd(
		"package [projects...]",
		"Package projects with their unpublished dependencies vendored",
		"lib, npm or app",
		c.app.Package,
	)
}

func newExecutorCmd(
	use, short, distributions string,
	runFn func(ctx context.Context, opts app.RunOptions) error,
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			return runFn(cmd.Context(), runOptions(cmd, args))
		},
	}

	cmd.Flags().StringP("distribution", "d", "", "Distribution to produce: "+distributions)
	cmd.Flags().StringP("entry", "e", "", "Entry module, relative to the project root")
	cmd.Flags().StringArrayP("asset", "a", nil, "Glob of static assets below the base directory (repeatable)")
	cmd.Flags().String("target-runtime", "", "ECMAScript version targeted by the transpiler")
	cmd.Flags().String("base-dir", "", "Source root, overriding the tsconfig baseUrl")
	cmd.Flags().String("layout", "", "Output layout: "+domain.LayoutESM.Name+" or "+domain.LayoutDist.Name)
	cmd.Flags().StringP("target", "t", "", "Project target whose options are used")
	cmd.Flags().String("execution-id", "", "Join the layers of an outer invocation")
	return cmd
}

func runOptions(cmd *cobra.Command, args []string) app.RunOptions {
	flags := cmd.Flags()
	distribution, _ := flags.GetString("distribution")
	entry, _ := flags.GetString("entry")
	runtime, _ := flags.GetString("target-runtime")
	baseDir, _ := flags.GetString("base-dir")
	layout, _ := flags.GetString("layout")
	target, _ := flags.GetString("target")
	execID, _ := flags.GetString("execution-id")
	verbose, _ := flags.GetBool("verbose")

	overrides := domain.TargetOptions{
		Distribution:  distribution,
		Entry:         entry,
		TargetRuntime: runtime,
		BaseDir:       baseDir,
		Layout:        layout,
	}
	if flags.Changed("asset") {
		assets, _ := flags.GetStringArray("asset")
		overrides.Assets = append([]string{}, assets...)
	}

	return app.RunOptions{
		Projects:    args,
		Target:      target,
		Overrides:   overrides,
		ExecutionID: execID,
		Verbose:     verbose,
	}
}
