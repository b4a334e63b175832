package cmd

import (
	"context"
	"fmt"

	"schema-provisioner/core/config"
	"schema-provisioner/core/schema"
	"schema-provisioner/core/storage"
)

// loadRegistry resolves the registry from the configured source: the
// built-in starter registry, a local JSON file, or an object in the
// storage bucket.
func loadRegistry(ctx context.Context, cfg *config.Config) (schema.Registry, error) {
	if !cfg.Registry.IsValidSource() {
		return nil, fmt.Errorf("invalid registry source %q", cfg.Registry.Source)
	}

	switch cfg.Registry.Source {
	case schema.SourceFile:
		return schema.LoadRegistry(cfg.Registry.Path)
	case schema.SourceStorage:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		return schema.LoadRegistryFromStorage(ctx, client, cfg.Storage.Bucket, cfg.Registry.Object)
	default:
		return schema.DefaultRegistry(), nil
	}
}
