// main is the entry point of the students-cli application.
//
// STARTUP SEQUENCE (interactive mode):
//  1. Load configuration (--config flag, CONFIG_PATH, or environment only)
//  2. Initialise the logger (rotating file; stdout belongs to the menu)
//  3. Build the SQL store from the configured driver
//  4. Ensure the database and students table exist
//  5. Register the menu actions and run the menu until the user exits
//
// RUNNING:
//
//	go run ./cmd/students-cli --config=config/local.yaml
//
// or (environment only):
//
//	ENV=dev DB_DRIVER=sqlite DB_NAME=storage/students.db go run ./cmd/students-cli
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/students-cli/internal/config"
	"github.com/aanand-mishra/students-cli/internal/console/handlers/student"
	"github.com/aanand-mishra/students-cli/internal/console/menu"
	"github.com/aanand-mishra/students-cli/internal/console/prompt"
	"github.com/aanand-mishra/students-cli/internal/export"
	"github.com/aanand-mishra/students-cli/internal/logging"
	"github.com/aanand-mishra/students-cli/internal/storage/sqlstore"
	"github.com/aanand-mishra/students-cli/internal/utils/output"
)

const appTitle = "Student Database Management System"

var (
	version = "1.0.0"
	commit  = "none"
	date    = "unknown"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "students-cli",
		Short: "Student records manager",
		Long:  `students-cli manages student records in a SQL table through an interactive menu.`,
		RunE:  runMenu,
		// Runtime failures are not usage mistakes.
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to the configuration YAML file (or set CONFIG_PATH)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Create the database and students table if missing",
			RunE:  runInit,
		},
		&cobra.Command{
			Use:   "ping",
			Short: "Check that the database is reachable",
			RunE:  runPing,
		},
		exportCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Printf("students-cli %s (commit: %s, built: %s)\n", version, commit, date)
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads config, installs the logger and builds the store.
func setup() (*config.Config, *slog.Logger, *sqlstore.Store, error) {
	cfg := config.MustLoad(config.ResolvePath(configPath))
	log := logging.Setup(cfg.Env, cfg.Log)

	store, err := sqlstore.New(cfg.Database, log)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		return nil, nil, nil, err
	}

	return cfg, log, store, nil
}

// signalContext is cancelled on Ctrl+C / SIGTERM. Only the one-shot
// subcommands use it.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func runMenu(cmd *cobra.Command, _ []string) error {
	cfg, log, store, err := setup()
	if err != nil {
		return err
	}

	// Ctrl+C keeps its default meaning here: a prompt blocked on stdin
	// cannot observe a cancelled context until the next line arrives.
	ctx := cmd.Context()

	log.Info("starting students-cli",
		slog.String("env", cfg.Env),
		slog.String("driver", cfg.Database.Driver),
		slog.String("version", version))

	out := cmd.OutOrStdout()
	m := menu.New(appTitle, log)
	m.Welcome(out, version)

	fmt.Fprintln(out, "\nInitializing database...")
	if err := store.EnsureSchema(ctx); err != nil {
		// Not fatal: every later operation reports its own failure.
		output.Warning(out, "Could not initialise the database: %s", err.Error())
		output.Warning(out, "Check that the database is running and the credentials are correct.")
	} else {
		fmt.Fprintln(out, "Database initialized successfully!")
	}
	fmt.Fprintln(out, "Application ready!")

	student.Register(m, store)

	session := prompt.New(cmd.InOrStdin(), out, cfg.Console.ClearScreen)
	if err := m.Run(ctx, session); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info("menu cancelled")
			return nil
		}
		log.Error("menu stopped", slog.String("error", err.Error()))
		return err
	}

	log.Info("students-cli stopped")
	return nil
}

func runInit(cmd *cobra.Command, _ []string) error {
	_, _, store, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	if err := store.EnsureSchema(ctx); err != nil {
		output.Failure(cmd.ErrOrStderr(), "Error initializing database: %s", err.Error())
		return err
	}

	output.Success(cmd.OutOrStdout(), "Database initialized successfully!")
	return nil
}

func runPing(cmd *cobra.Command, _ []string) error {
	_, _, store, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	if !store.TestConnection(ctx) {
		output.Failure(cmd.ErrOrStderr(), "Database connection failed!")
		return fmt.Errorf("database unreachable")
	}

	output.Success(cmd.OutOrStdout(), "Database connection successful!")
	return nil
}

func exportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all students to an .xlsx workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, log, store, err := setup()
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd)
			defer stop()

			n, err := export.WriteXLSX(ctx, store, outPath)
			if err != nil {
				log.Error("export failed", slog.String("error", err.Error()))
				output.Failure(cmd.ErrOrStderr(), "Export failed: %s", err.Error())
				return err
			}

			log.Info("students exported", slog.Int("count", n), slog.String("path", outPath))
			output.Success(cmd.OutOrStdout(), "Exported %d student(s) to %s", n, outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "students.xlsx", "Destination .xlsx file")
	return cmd
}
