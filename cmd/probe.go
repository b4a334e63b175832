package cmd

import (
	"context"
	"fmt"

	"schema-provisioner/core/config"
	"schema-provisioner/core/logger"
	"schema-provisioner/core/provision"
	"schema-provisioner/core/remote"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// probeCmd checks whether the remote store is reachable.
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check that the remote document store is reachable",
	Long: `Probe issues a single unauthenticated request to the store's health
endpoint and reports the outcome. Exit code 1 means the store did not answer.`,
	RunE: runProbe,
}

func init() {
	RootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := remote.NewClient(cfg.Remote)
	if err != nil {
		return fmt.Errorf("failed to create store client: %w", err)
	}

	result := provision.Probe(ctx, client)
	if !result.Healthy {
		l.Error("Store is not reachable",
			zap.String("endpoint", cfg.Remote.Endpoint),
			zap.String("message", result.Message),
		)
		return fmt.Errorf("store at %s is not healthy", cfg.Remote.Endpoint)
	}

	l.Info("Store is healthy",
		zap.String("endpoint", cfg.Remote.Endpoint),
		zap.String("message", result.Message),
	)
	return nil
}
