package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThinkWithTheo/external-tracking-sub000/internal/config"
	"github.com/ThinkWithTheo/external-tracking-sub000/internal/report"
)

func reportCmd() *cobra.Command {
	var asChat bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the daily report and print it to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx := context.Background()
			store, err := buildStore(ctx, cfg)
			if err != nil {
				return err
			}

			client, err := buildTrackerClient(cfg)
			if err != nil {
				return err
			}

			r, err := report.NewGenerator(client, store).Daily(ctx)
			if err != nil {
				return fmt.Errorf("build report: %w", err)
			}

			if asChat {
				fmt.Println(r.ChatMessage)
				return nil
			}
			fmt.Println(r.Markdown)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asChat, "chat", false, "print the chat summary instead of the full report")
	return cmd
}
