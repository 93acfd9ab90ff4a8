package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/faqdesk/backend/internal/config"
	"github.com/zhouzirui/faqdesk/backend/internal/logging"
	"github.com/zhouzirui/faqdesk/backend/internal/model/faq"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env bundles what every subcommand needs after startup.
type env struct {
	cfg     *config.Config
	log     zerolog.Logger
	catalog *faq.Catalog
}

func newRootCmd() *cobra.Command {
	var e env

	root := &cobra.Command{
		Use:           "faqdesk",
		Short:         "FAQ chat panel backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			e = *loaded
			return nil
		},
	}

	root.AddCommand(
		newServeCmd(&e),
		newTopicsCmd(&e),
		newChatCmd(&e),
	)
	return root
}

func bootstrap(cmd *cobra.Command) (*env, error) {
	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if envErr != nil && !os.IsNotExist(envErr) {
		logger.Warn().Err(envErr).Msg("failed to load .env file, continuing with system environment variables only")
	}

	catalog, err := loadCatalog(cfg.Widget.CatalogPath)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("topics", len(catalog.List())).Str("path", cfg.Widget.CatalogPath).Msg("catalog loaded")

	return &env{cfg: cfg, log: logger, catalog: catalog}, nil
}

func loadCatalog(path string) (*faq.Catalog, error) {
	if path == "" {
		return faq.MustSeedCatalog(), nil
	}
	return faq.LoadFile(path)
}
