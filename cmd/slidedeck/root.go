package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alnah/go-slidedeck/internal/assets"
	"github.com/alnah/go-slidedeck/internal/yamlutil"
)

// newRootCmd builds the command tree: the root command generates a
// presentation, subcommands inspect themes, config and version.
func newRootCmd(env *Environment) *cobra.Command {
	f := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "slidedeck [flags] SOURCE",
		Short: "Generate an HTML slide deck from Markdown",
		Long: `slidedeck turns a Markdown document into a single-file HTML presentation,
or a PDF when the destination ends in .pdf.

Slides are separated by "---". The first heading of a slide is its title;
everything after a "Presenter Notes" heading goes to the presenter view.
Slide directives:

  .fx: class [class...]        add classes to the slide
  .notes: text                 add a speaker note
  .code: file [lines]          include a source file
  .coden: file [lines]         include a source file with line numbers

Line selections: "8", "-1", "$", "3 8", "/def main/ /return/+1".

The source may also come from a config file (-c) or SLIDEDECK_* variables.`,
		Args:          sourceArgs,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), args, cmd.Flags(), f, env)
		},
	}
	addBuildFlags(cmd.Flags(), f)

	cmd.SetOut(env.Stdout)
	cmd.SetErr(env.Stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	cmd.AddCommand(
		newVersionCmd(env),
		newThemesCmd(env),
		newConfigCmd(env),
	)
	return cmd
}

// sourceArgs accepts at most one source file.
func sourceArgs(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: expected one source file, got %d arguments", errUsage, len(args))
	}
	return nil
}

func newVersionCmd(env *Environment) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of slidedeck",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(env.Stdout, "slidedeck %s\n", Version)
		},
	}
}

func newThemesCmd(env *Environment) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the built-in themes",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			for _, name := range assets.NewEmbeddedLoader().Names() {
				fmt.Fprintln(env.Stdout, name)
			}
		},
	}
}

// newConfigCmd prints the configuration a build with the same flags
// would use, as YAML.
func newConfigCmd(env *Environment) *cobra.Command {
	f := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "config [flags] [SOURCE]",
		Short: "Print the effective configuration",
		Args:  sourceArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(args, cmd.Flags(), f, env)
			if err != nil {
				return err
			}
			out, err := yamlutil.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			_, err = env.Stdout.Write(out)
			return err
		},
	}
	addBuildFlags(cmd.Flags(), f)
	return cmd
}

// configName returns the config name given to cmd, from its flag or the
// environment.
func configName(cmd *cobra.Command, env *Environment) string {
	if cmd != nil {
		if name, err := cmd.Flags().GetString("config"); err == nil && name != "" {
			return name
		}
	}
	if env.Getenv == nil {
		return ""
	}
	return env.Getenv("SLIDEDECK_CONFIG")
}
