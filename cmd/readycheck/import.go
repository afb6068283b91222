package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tbctxt/readycheck/internal/armory"
	"github.com/tbctxt/readycheck/internal/cli"
	"github.com/tbctxt/readycheck/internal/storage"
)

func importCmd() *cobra.Command {
	var (
		realm string
		class string
		spec  string
	)

	cmd := &cobra.Command{
		Use:   "import <character>",
		Short: "Import a character's equipped gear from the armory",
		Long: `Import fetches a character's equipped items from the Blizzard profile API
and saves them as the current gear list.

Requires armory.client_id and armory.client_secret in the config file or
the READYCHECK_ARMORY_CLIENT_ID / READYCHECK_ARMORY_CLIENT_SECRET
environment variables.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			client, err := armory.NewClient(ctx, armory.Config{
				ClientID:     viper.GetString("armory.client_id"),
				ClientSecret: viper.GetString("armory.client_secret"),
				Region:       viper.GetString("armory.region"),
			})
			if err != nil {
				return err
			}

			items, err := client.FetchGear(ctx, name, realm)
			if err != nil {
				return err
			}
			gearText := armory.GearText(items)

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			region := viper.GetString("armory.region")
			if region == "" {
				region = "us"
			}
			err = store.SaveCharacter(ctx, storage.Character{
				Name:     name,
				Realm:    realm,
				Region:   region,
				Class:    class,
				Spec:     spec,
				GearText: gearText,
			})
			if err != nil {
				return err
			}

			err = store.SaveSession(ctx, storage.Session{
				ID:       storage.DefaultSessionID,
				GearText: gearText,
				Class:    class,
				Spec:     spec,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"imported %d items for %s on %s", len(items), name, realm)))
			return nil
		},
	}

	cmd.Flags().StringVar(&realm, "realm", "", "realm the character is on")
	cmd.Flags().StringVar(&class, "class", "", "character class, saved with the session")
	cmd.Flags().StringVar(&spec, "spec", "", "talent spec, saved with the session")
	_ = cmd.MarkFlagRequired("realm")

	return cmd
}
