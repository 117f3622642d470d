package main

import (
	"fmt"

	"github.com/2beens/gymlog/internal/db"

	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres schema",
	}

	cmd.AddCommand(
		newMigrateUpCmd(opts),
		newMigrateDownCmd(opts),
		newMigrateVersionCmd(opts),
	)

	return cmd
}

func (o *rootOptions) migrator() (*db.Migrator, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return db.NewMigrator(dbParams(cfg).ConnString())
}

func newMigrateUpCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mg, err := opts.migrator()
			if err != nil {
				return err
			}
			defer mg.Close()

			if err := mg.Up(); err != nil {
				return err
			}
			return printVersion(cmd, mg)
		},
	}
}

func newMigrateDownCmd(opts *rootOptions) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last applied migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps <= 0 {
				return fmt.Errorf("steps must be positive, got %d", steps)
			}
			mg, err := opts.migrator()
			if err != nil {
				return err
			}
			defer mg.Close()

			if err := mg.Down(steps); err != nil {
				return err
			}
			return printVersion(cmd, mg)
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	return cmd
}

func newMigrateVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mg, err := opts.migrator()
			if err != nil {
				return err
			}
			defer mg.Close()
			return printVersion(cmd, mg)
		},
	}
}

func printVersion(cmd *cobra.Command, mg *db.Migrator) error {
	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	if dirty {
		cmd.Printf("schema version %d (dirty)\n", version)
		return nil
	}
	cmd.Printf("schema version %d\n", version)
	return nil
}
