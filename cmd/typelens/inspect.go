package main

import (
	"fmt"

	"github.com/pablor21/typelens"
	"github.com/spf13/cobra"
)

func newInspectCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <package> <Func|Type|Type.Method>",
		Short: "Print the signature view of a function, method or struct type",
		Example: `  typelens inspect ./examples/starwars/functions Fight
  typelens inspect ./examples/starwars/models Character --extras --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			lens, err := opts.lens(cmd)
			if err != nil {
				return err
			}
			pkgPath, err := resolvePackage(lens, args[0])
			if err != nil {
				return err
			}
			view, err := lens.Symbol(pkgPath, args[1])
			if err != nil {
				return err
			}
			if opts.format == "json" {
				return writeJSON(cmd.OutOrStdout(), view.Serialize())
			}
			writeCallable(cmd.OutOrStdout(), view)
			return nil
		},
	}
}

func newTypeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "type <package> <Type>",
		Short: "Print the annotation view of a declared type",
		Example: `  typelens type ./examples/starwars/models Squad`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			lens, err := opts.lens(cmd)
			if err != nil {
				return err
			}
			pkgPath, err := resolvePackage(lens, args[0])
			if err != nil {
				return err
			}
			view, err := lens.TypeOf(pkgPath, args[1])
			if err != nil {
				return err
			}
			if opts.format == "json" {
				return writeJSON(cmd.OutOrStdout(), view.Serialize())
			}
			writeType(cmd.OutOrStdout(), view, 0)
			return nil
		},
	}
}

// resolvePackage loads pattern and returns the import path of the single
// package it names.
func resolvePackage(lens *typelens.Lens, pattern string) (string, error) {
	pkgs, err := lens.Source().Load(pattern)
	if err != nil {
		return "", err
	}
	switch len(pkgs) {
	case 0:
		return "", fmt.Errorf("no package matches %s", pattern)
	case 1:
		return pkgs[0].PkgPath, nil
	}
	return "", fmt.Errorf("%s matches %d packages, expected one", pattern, len(pkgs))
}
