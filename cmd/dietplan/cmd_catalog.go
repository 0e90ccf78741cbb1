package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Skufu/dietplan/internal/diet"
)

func newCatalogCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Check a catalog and print its templates",
		Long: `Loads the builtin catalog, or the YAML file given with --file, runs the
consistency check and prints every template.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := diet.DefaultCatalog()
			if file != "" {
				c, err := diet.LoadCatalog(file)
				if err != nil {
					return err
				}
				catalog = c
			}
			if err := catalog.Check(); err != nil {
				return err
			}

			templates, err := catalog.Templates()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range templates {
				fmt.Fprintln(out, renderTemplate(t))
			}
			fmt.Fprintf(out, "catalog ok: %d templates\n", len(templates))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML catalog to check")
	return cmd
}
