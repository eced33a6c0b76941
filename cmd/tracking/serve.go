package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThinkWithTheo/external-tracking-sub000/internal/config"
	"github.com/ThinkWithTheo/external-tracking-sub000/internal/web"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard API server",
		Long: `Start the dashboard API server.

Examples:
  tracking serve
  tracking serve --addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			store, err := buildStore(context.Background(), cfg)
			if err != nil {
				return err
			}

			client, err := buildTrackerClient(cfg)
			if err != nil {
				return err
			}

			fmt.Printf("Serving %s environment at %s\n", cfg.Env(), cfg.ListenAddr)
			return web.NewServer(client, store).Run(cfg.ListenAddr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
