package main

import (
	"fmt"
	"net"
	"os"
	"os/user"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pm-tools/project-pulse/pkg/server"
	"github.com/pm-tools/project-pulse/pkg/services/analytics"
	"github.com/pm-tools/project-pulse/pkg/services/registry"
	snapshotsvc "github.com/pm-tools/project-pulse/pkg/services/snapshot"
	"github.com/pm-tools/project-pulse/pkg/store/erp"
	"github.com/pm-tools/project-pulse/pkg/store/sqlite"
	snapshotstore "github.com/pm-tools/project-pulse/pkg/store/sqlite/snapshot"
)

var (
	cfgPath string
	profile string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Project Pulse web server",
		RunE:  runServer,
	}

	usr, _ := user.Current()
	defaultPath := fmt.Sprintf("%s/.erpcfg", usr.HomeDir)

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", defaultPath,
		"Path to the .erpcfg file (default is $HOME/.erpcfg)")
	rootCmd.Flags().StringVarP(&profile, "profile", "p", "default",
		"ERP connection profile to use")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	reg, err := registry.NewRegistry(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to create profile registry: %w", err)
	}

	connection, err := reg.GetProfile(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to resolve profile %q: %w", profile, err)
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	logger.Info().Msgf("Using profile `%s` (company `%s`)", connection.Name, connection.Company)

	client := erp.NewClient(erp.Settings{
		BaseURL: connection.BaseURL,
		Token:   connection.Token,
		Company: connection.Company,
	})
	explorer := analytics.NewExplorer(client, analytics.Settings{})

	db, err := sqlite.NewDB(sqlite.Settings{DbPath: "project-pulse.db"})
	if err != nil {
		return fmt.Errorf("failed to open snapshot database: %w", err)
	}

	store, err := snapshotstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create snapshot store: %w", err)
	}
	snapshots := snapshotsvc.NewController(explorer, store)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Explorer:  explorer,
			Snapshots: snapshots,
			History:   store,
			Logger:    logger,
		},
	})

	return api.Start()
}
