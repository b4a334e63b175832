package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"schema-provisioner/core/storage"

	"github.com/minio/minio-go/v7"
)

// LoadRegistry reads and validates a registry from a local JSON file.
func LoadRegistry(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}
	return parseRegistry(data)
}

// LoadRegistryFromStorage reads and validates a registry from a JSON object
// in the configured bucket. This lets deployments share one registry
// without baking it into every image.
func LoadRegistryFromStorage(ctx context.Context, client storage.Client, bucket, objectName string) (Registry, error) {
	obj, err := client.GetObject(ctx, bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registry object %s: %w", objectName, err)
	}
	defer obj.Close()

	var reg Registry
	if err := json.NewDecoder(obj).Decode(&reg); err != nil {
		return nil, fmt.Errorf("failed to decode registry object %s: %w", objectName, err)
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

func parseRegistry(data []byte) (Registry, error) {
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to decode registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// DefaultRegistry returns the built-in starter registry used when no
// registry source is configured: a single example collection with
// authenticated-only access.
func DefaultRegistry() Registry {
	return Registry{
		{
			Name: "test_items",
			Kind: KindBase,
			Fields: []Field{
				{Name: "title", Kind: FieldText, Required: true},
				{Name: "description", Kind: FieldText},
				{Name: "status", Kind: FieldText},
			},
			Rules: AllAuthenticated(),
		},
	}
}
