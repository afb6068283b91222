package main

import (
	"github.com/spf13/cobra"

	"github.com/tbctxt/readycheck/internal/tui"
)

func interactiveCmd() *cobra.Command {
	var (
		class string
		spec  string
		phase string
	)

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Interactively edit a gear list with live slot matching",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			gearText := ""
			if session := loadSavedSession(ctx); session != nil {
				gearText = session.GearText
				if class == "" {
					class = session.Class
				}
				if spec == "" {
					spec = session.Spec
				}
				if phase == "" {
					phase = session.Phase
				}
			}

			app, err := buildComponents(nil)
			if err != nil {
				return err
			}
			defer app.Close()

			class, spec, phase = app.store.ResolveSelection(class, spec, phase)

			final, err := tui.Run(tui.NewChecker(app.engine, class, spec, phase, gearText))
			if err != nil {
				return err
			}

			saveSession(ctx, class, spec, phase, final.GearText())
			return nil
		},
	}

	cmd.Flags().StringVar(&class, "class", "", "character class (e.g. warrior)")
	cmd.Flags().StringVar(&spec, "spec", "", "talent spec (e.g. protection)")
	cmd.Flags().StringVar(&phase, "phase", "", "raid phase (1-5)")

	return cmd
}
