package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/suchimauz/pet-clinic-core/internal/adapters/out/storage"
	"github.com/suchimauz/pet-clinic-core/internal/config"
	"github.com/suchimauz/pet-clinic-core/internal/core/domain"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "clinicctl",
		Short:         "Служебные команды ядра клиники",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newTierCmd(), newStatusCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции к базе из DATABASE_DSN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return fmt.Errorf("config.load: %w", err)
			}

			db, err := storage.Open(cfg.Database.DSN)
			if err != nil {
				return fmt.Errorf("storage.open: %w", err)
			}
			if err := storage.Migrate(db); err != nil {
				return fmt.Errorf("storage.migrate: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migrated")
			return nil
		},
	}
}

func newTierCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tier <spend>",
		Short: "Показать уровень участника и сумму до следующего",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spend, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid spend %q: %w", args[0], err)
			}

			level := domain.TierFor(spend)
			fmt.Fprintf(cmd.OutOrStdout(), "level: %s\n", level)
			if next, ok := domain.NextTier(level, spend); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "next: %s (%.0f)\n", next.NextTier, next.AmountNeeded)
			}
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "status backend|frontend <label>",
		Short:     "Перевести статус записи между интерфейсом и хранилищем",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"backend", "frontend"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "backend":
				fmt.Fprintln(cmd.OutOrStdout(), domain.ToBackendLabel(args[1]))
			case "frontend":
				fmt.Fprintln(cmd.OutOrStdout(), domain.ToFrontendLabel(args[1]))
			default:
				return fmt.Errorf("unknown direction %q, expected backend or frontend", args[0])
			}
			return nil
		},
	}
}
