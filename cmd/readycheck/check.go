package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/tbctxt/readycheck/internal/cli"
)

func checkCmd() *cobra.Command {
	var (
		class    string
		spec     string
		phase    string
		gearFile string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check gear readiness for a raid phase",
		Long: `Check reads a gear list (one item name per line) and reports readiness
for the selected class, spec, and phase.

Gear is read from --file, from stdin when piped, or from the last saved
session when neither is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			gearText, err := readGearText(gearFile)
			if err != nil {
				return err
			}

			// Fall back to the saved session for anything not given
			if session := loadSavedSession(ctx); session != nil {
				if gearText == "" {
					gearText = session.GearText
				}
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
			if strings.TrimSpace(gearText) == "" {
				return fmt.Errorf("no gear list given: use --file, pipe to stdin, or run interactive first")
			}

			var bar *progressbar.ProgressBar
			app, err := buildComponents(func(done, total int) {
				if bar == nil {
					bar = newFetchProgressBar(total)
				}
				_ = bar.Set(done)
			})
			if err != nil {
				return err
			}
			defer app.Close()

			report, err := app.engine.Check(ctx, class, spec, phase, gearText)
			if err != nil {
				return err
			}
			if bar != nil {
				_ = bar.Finish()
			}

			fmt.Println(cli.RenderReport(report))
			saveSession(ctx, report.Class, report.Spec, report.Phase, gearText)
			return nil
		},
	}

	cmd.Flags().StringVar(&class, "class", "", "character class (e.g. warrior)")
	cmd.Flags().StringVar(&spec, "spec", "", "talent spec (e.g. protection)")
	cmd.Flags().StringVar(&phase, "phase", "", "raid phase (1-5)")
	cmd.Flags().StringVarP(&gearFile, "file", "f", "", "read the gear list from a file")

	return cmd
}

// readGearText loads gear from the given file, or from stdin when piped.
func readGearText(path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // user-supplied path
		if err != nil {
			return "", fmt.Errorf("failed to read gear file: %w", err)
		}
		return string(data), nil
	}

	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice != 0 {
		return "", nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func newFetchProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Fetching item stats...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}
