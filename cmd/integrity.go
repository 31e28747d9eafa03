package cmd

import (
	"context"
	"fmt"
	"sort"

	"mastodon-sync/feature/integrity"
	"mastodon-sync/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the archive bucket and the graph schema",
	Long:  `Checks that the archive bucket holds the required folders and that the database has every graph table and column.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the archive folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check and migrate the graph schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, schemaCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
	schemaCmd.Flags().BoolVar(&fixFlag, "fix", false, "Migrate the graph tables")
}

func runIntegrityChecks(ctx context.Context, runStructure, runSchema bool) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	logg := a.logger

	svc := integrity.NewService(a.storage, a.cfg.Storage.Bucket, []string{a.archive.Prefix()}, a.db, logg, 0)
	only := runStructure != runSchema

	if runStructure {
		logg.Info("Checking archive structure...", zap.String("bucket", a.cfg.Storage.Bucket))
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			return fmt.Errorf("structure check failed: %w", err)
		}

		if len(missing) == 0 {
			logg.Info("Structure is intact.")
		} else {
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))

			if only && fixFlag {
				logg.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					return fmt.Errorf("failed to fix structure: %w", err)
				}
				logg.Info("Structure fixed successfully.")
			} else if only {
				logg.Info("Run with --fix to create missing folders.")
			}
		}
	}

	if runSchema {
		if only && fixFlag {
			logg.Info("Migrating graph schema...")
			if err := svc.FixSchema(ctx); err != nil {
				return fmt.Errorf("failed to migrate schema: %w", err)
			}
		}

		logg.Info("Checking graph schema...", zap.String("driver", a.cfg.Database.Driver))
		report, err := svc.CheckSchema(ctx)
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}

		if report.Matched {
			logg.Info("Graph schema matches the models.")
			return nil
		}

		tables := make([]string, 0, len(report.Tables))
		for table := range report.Tables {
			tables = append(tables, table)
		}
		sort.Strings(tables)

		for _, table := range tables {
			tbl := report.Tables[table]
			if tbl.Status != checks.TableOK {
				logg.Warn("Table out of date",
					zap.String("table", table),
					zap.String("status", tbl.Status),
					zap.Strings("missing_columns", tbl.MissingColumns))
			}
		}
		for _, e := range report.Errors {
			logg.Error("Inspection error", zap.String("error", e))
		}
		if only {
			logg.Info("Run with --fix to migrate the graph.")
		}
	}
	return nil
}
