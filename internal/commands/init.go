package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"propdesk/internal/migration"
	"propdesk/internal/schema"
)

func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the apartment, tenant and parking tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			gw, err := connect(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = gw.Close() }()

			migrator := migration.NewMigrator(gw.DB(), log)
			migrator.Register(migration.TableMigrations(schema.NewCatalog(cfg.Tables))...)

			out := cmd.OutOrStdout()
			if dryRun {
				statuses, err := migrator.Status(cmd.Context())
				if err != nil {
					return err
				}
				for _, s := range statuses {
					state := "pending"
					if s.Applied {
						state = "applied"
					}
					fmt.Fprintf(out, "%s %s (%s)\n", s.Version, s.Name, state)
				}
				return nil
			}

			n, err := migrator.Up(cmd.Context())
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(out, "Tables already exist.")
				return nil
			}
			fmt.Fprintf(out, "Created %d table(s).\n", n)
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Show which tables would be created without creating them")

	return cmd
}

func DownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Drop the most recently created table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			gw, err := connect(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = gw.Close() }()

			migrator := migration.NewMigrator(gw.DB(), log)
			migrator.Register(migration.TableMigrations(schema.NewCatalog(cfg.Tables))...)

			reverted, err := migrator.Down(cmd.Context())
			if err != nil {
				return err
			}
			if !reverted {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to revert.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reverted last migration.")
			return nil
		},
	}
}
