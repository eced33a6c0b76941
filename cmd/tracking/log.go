package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThinkWithTheo/external-tracking-sub000/internal/config"
)

func logCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect the change log",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the full change log",
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

			text, err := store.ReadAll(ctx)
			if err != nil {
				return fmt.Errorf("read change log: %w", err)
			}
			fmt.Print(text)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "meta",
		Short: "Print change log metadata",
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

			meta, err := store.Metadata(ctx)
			if err != nil {
				return fmt.Errorf("read change log metadata: %w", err)
			}
			fmt.Printf("source: %s\nsize:   %d bytes\n", meta.Source, meta.SizeBytes)
			return nil
		},
	})

	return cmd
}
