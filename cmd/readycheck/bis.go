package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbctxt/readycheck/internal/cli"
)

func bisCmd() *cobra.Command {
	var (
		class string
		spec  string
		phase string
	)

	cmd := &cobra.Command{
		Use:   "bis",
		Short: "Show the best-in-slot list for a class, spec, and phase",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := buildComponents(nil)
			if err != nil {
				return err
			}
			defer app.Close()

			class, spec, phase = app.store.ResolveSelection(class, spec, phase)
			entries := app.store.BisList(class, spec, phase)
			phaseName := app.store.PhaseName(class, spec, phase)

			fmt.Println(cli.RenderBisList(class, spec, phaseName, entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&class, "class", "", "character class (e.g. warrior)")
	cmd.Flags().StringVar(&spec, "spec", "", "talent spec (e.g. protection)")
	cmd.Flags().StringVar(&phase, "phase", "", "raid phase (1-5)")

	return cmd
}
