package provision

import (
	"context"

	"schema-provisioner/core/remote"
)

// listExisting performs the full collection listing and reduces it to a
// name set for O(1) membership tests. A listing failure (including an
// authorization failure) is wrapped in *FetchError and is fatal to the run.
func listExisting(ctx context.Context, client remote.Client, s remote.Session) (map[string]struct{}, error) {
	records, err := client.ListCollections(ctx, s)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	existing := make(map[string]struct{}, len(records))
	for _, rec := range records {
		existing[rec.Name] = struct{}{}
	}
	return existing, nil
}
