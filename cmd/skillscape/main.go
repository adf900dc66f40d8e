// Package main is the entry point for the Skillscape application.
// It initializes all components and runs the interactive command loop.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"skillscape/local-app/pkg/adapter"
	"skillscape/local-app/pkg/cli"
	"skillscape/local-app/pkg/config"
	"skillscape/local-app/pkg/data"
	"skillscape/local-app/pkg/log"
	"skillscape/local-app/pkg/session"
	"skillscape/local-app/pkg/storage"
)

var version = "0.1.0-dev"

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "skillscape [script]...",
		Short: "Local training standards and staff assessment catalogue",
		Long: `Skillscape keeps a catalogue of training standards organized in groups
and records staff assessments against them. Without arguments it starts an
interactive command-line session; script files given as arguments are
executed first.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.ConfigPathSet(configPath)
			return run(args)
		},
		SilenceUsage: true,
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the configuration file")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("skillscape %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components in dependency order and runs the CLI until
// the user exits or an interrupt signal arrives.
func run(scripts []string) error {
	// Set up channel to receive interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Load configuration
	if err := config.ConfigLoad(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := config.ConfigGet()

	// Initialize logger
	logger, err := log.NewLogger(cfg, log.LevelInfo)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Printf("Error closing logger: %v\n", err)
		}
	}()

	logger.Info(context.Background(), "Application started", log.Fields{"version": version})

	// Initialize storage
	store, err := storage.NewStorage(cfg, logger)
	if err != nil {
		logger.Error(context.Background(), "Failed to initialize storage", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error(context.Background(), "Failed to close storage", log.Fields{"error": err})
		}
	}()

	logger.Info(context.Background(), "Storage initialized", nil)

	// Initialize data manager
	dataManager, err := data.NewDataManager(store.Store, cfg, logger)
	if err != nil {
		logger.Error(context.Background(), "Failed to initialize data manager", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize data manager: %w", err)
	}

	logger.Info(context.Background(), "Data manager initialized", nil)

	// Initialize session manager
	sessionManager := session.NewSessionManager(dataManager, logger)
	defer sessionManager.Stop()

	logger.Info(context.Background(), "Session manager initialized", nil)

	// Initialize adapter manager and register the CLI adapter factory
	adapterManager := adapter.NewAdapterManager(sessionManager, logger)
	defer adapterManager.Shutdown()
	adapterManager.FactoryRegister(adapter.TypeCLI, func() (adapter.AdapterInstance, error) {
		return adapter.NewCLIAdapter(sessionManager, logger)
	})

	logger.Info(context.Background(), "Adapter manager initialized", nil)

	// Create the CLI adapter instance
	instance, err := adapterManager.AdapterAdd(adapter.TypeCLI)
	if err != nil {
		logger.Error(context.Background(), "Failed to initialize CLI adapter", log.Fields{"error": err})
		return fmt.Errorf("failed to initialize CLI adapter: %w", err)
	}
	cliAdapter, ok := instance.(*adapter.CLIAdapter)
	if !ok {
		return fmt.Errorf("unexpected adapter type %T for %s", instance, adapter.TypeCLI)
	}

	logger.Info(context.Background(), "CLI adapter initialized", nil)

	// Create the CLI frontend
	cliInstance, err := cli.NewCLI(cliAdapter, cfg.HistoryFile, logger)
	if err != nil {
		logger.Error(context.Background(), "Failed to initiate CLI", log.Fields{"error": err})
		return fmt.Errorf("failed to initiate CLI: %w", err)
	}

	logger.Info(context.Background(), "CLI instance created", nil)

	// Execute script files before the interactive loop. A script that runs
	// 'exit' skips the interactive session.
	for _, scriptFile := range scripts {
		if err := cliInstance.ExecuteScript(scriptFile); err != nil {
			if errors.Is(err, io.EOF) {
				logger.Info(context.Background(), "Script requested exit", log.Fields{"filename": scriptFile})
				cliInstance.Stop()
				fmt.Println("Goodbye!")
				return nil
			}
			logger.Error(context.Background(), "Failed to execute script", log.Fields{"filename": scriptFile, "error": err})
			fmt.Printf("Error executing script %s: %v\n", scriptFile, err)
		}
	}

	// Set up graceful shutdown
	go func() {
		<-sigChan
		logger.Info(context.Background(), "Received interrupt signal. Shutting down...", nil)
		fmt.Println("\nReceived interrupt signal. Shutting down...")
		cliInstance.Stop()
	}()

	// Run CLI
	if err := cliInstance.Run(); err != nil {
		logger.Error(context.Background(), "CLI error", log.Fields{"error": err})
		return err
	}

	logger.Info(context.Background(), "Application shutting down", nil)
	fmt.Println("Goodbye!")
	return nil
}
