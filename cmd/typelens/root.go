package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pablor21/typelens"
	"github.com/pablor21/typelens/logger"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	dir        string
	format     string
	extras     bool
	strict     bool
	logLevel   string
	noColor    bool
}

// NewRootCommand creates the typelens command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "typelens",
		Short: "Inspect the annotations of Go functions and types",
		Long: `typelens reads Go packages from source and prints the normalised view
of function signatures and types: origins, arguments, wrappers and
classification flags.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.dir, "dir", "", "Directory packages are loaded from")
	cmd.PersistentFlags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&opts.extras, "extras", false, "Keep Annotated metadata (struct tags, @ doc lines)")
	cmd.PersistentFlags().BoolVar(&opts.strict, "strict", false, "Fail on parameters without annotation")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error or none")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(newInspectCommand(opts))
	cmd.AddCommand(newTypeCommand(opts))
	return cmd
}

// lens builds a source-resolving Lens from the configuration file and flags
func (o *rootOptions) lens(cmd *cobra.Command) (*typelens.Lens, error) {
	cfg := typelens.NewDefaultConfig()
	if o.configPath != "" {
		var err error
		cfg, err = typelens.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
	}

	cfg.Mode |= typelens.ResolveModeSource
	if o.extras {
		cfg.Mode |= typelens.ResolveModeExtras
	}
	if o.strict {
		cfg.Mode |= typelens.ResolveModeStrict
	}
	if o.dir != "" {
		cfg.Dir = o.dir
	}
	if o.logLevel != "" {
		cfg.LogLevel = logger.LogLevel(o.logLevel)
	}
	logger.SetOutput(cmd.ErrOrStderr())
	return typelens.New(cfg)
}

func (o *rootOptions) validate() error {
	switch o.format {
	case "text", "json":
		return nil
	}
	return fmt.Errorf("unknown format %q", o.format)
}
