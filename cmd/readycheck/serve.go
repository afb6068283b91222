package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tbctxt/readycheck/internal/server"
)

func serveCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the readiness JSON API server",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := buildComponents(nil)
			if err != nil {
				return err
			}
			defer app.Close()

			srv := server.New(server.Config{
				Host:  host,
				Port:  port,
				Debug: viper.GetString("logging.level") == "debug",
			}, app.store, app.resolver, app.engine)

			return srv.Start()
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "interface to bind")
	cmd.Flags().IntVar(&port, "port", 3001, "port to listen on")

	return cmd
}
