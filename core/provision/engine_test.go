package provision

import (
	"context"
	"fmt"
	"testing"

	"schema-provisioner/core/remote"
	"schema-provisioner/core/remote/mocks"
	"schema-provisioner/core/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRegistry() schema.Registry {
	return schema.Registry{
		{
			Name: "test_items",
			Kind: schema.KindBase,
			Fields: []schema.Field{
				{Name: "title", Kind: schema.FieldText, Required: true},
				{Name: "description", Kind: schema.FieldText},
				{Name: "status", Kind: schema.FieldText},
			},
			Rules: schema.AllAuthenticated(),
		},
	}
}

func testCreds() Credentials {
	return Credentials{Email: "admin@example.com", Password: "secret"}
}

func records(names ...string) []remote.CollectionRecord {
	recs := make([]remote.CollectionRecord, 0, len(names))
	for i, name := range names {
		recs = append(recs, remote.CollectionRecord{
			ID:   fmt.Sprintf("col_%d", i),
			Name: name,
			Type: "base",
		})
	}
	return recs
}

func TestProvision_CreatesMissingCollections(t *testing.T) {
	client := new(mocks.Client)
	client.On("Authenticate", mock.Anything, "admin@example.com", "secret").
		Return(remote.Session{Token: "tok"}, nil)
	client.On("ListCollections", mock.Anything, remote.Session{Token: "tok"}).
		Return(records(), nil)
	client.On("CreateCollection", mock.Anything, remote.Session{Token: "tok"}, mock.MatchedBy(func(p map[string]any) bool {
		return p["name"] == "test_items"
	})).Return(remote.CollectionRecord{ID: "abc", Name: "test_items"}, nil)

	engine := NewEngine(client, zap.NewNop())
	result := engine.Provision(context.Background(), testRegistry(), testCreds(), Options{})

	assert.True(t, result.Success)
	assert.Equal(t, []string{"test_items"}, result.Created)
	assert.Empty(t, result.Skipped)
	assert.Empty(t, result.Errors)
	assert.Contains(t, result.Summary, "1 created")
	client.AssertExpectations(t)
}

func TestProvision_SkipsExistingByNameOnly(t *testing.T) {
	client := new(mocks.Client)
	client.On("Authenticate", mock.Anything, mock.Anything, mock.Anything).
		Return(remote.Session{Token: "tok"}, nil)
	client.On("ListCollections", mock.Anything, mock.Anything).
		Return(records("test_items"), nil)

	engine := NewEngine(client, zap.NewNop())
	result := engine.Provision(context.Background(), testRegistry(), testCreds(), Options{})

	assert.True(t, result.Success)
	assert.Empty(t, result.Created)
	assert.Equal(t, []string{"test_items"}, result.Skipped)
	assert.Empty(t, result.Errors)

	// Skips make no network call and perform no field diffing.
	client.AssertNotCalled(t, "CreateCollection", mock.Anything, mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "GetCollection", mock.Anything, mock.Anything, mock.Anything)
}

func TestProvision_AuthFailureIsTerminal(t *testing.T) {
	client := new(mocks.Client)
	client.On("Authenticate", mock.Anything, mock.Anything, mock.Anything).
		Return(remote.Session{}, fmt.Errorf("invalid credentials"))

	engine := NewEngine(client, zap.NewNop())
	result := engine.Provision(context.Background(), testRegistry(), testCreds(), Options{})

	assert.False(t, result.Success)
	assert.Empty(t, result.Created)
	assert.Empty(t, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, SentinelAdmin, result.Errors[0].Collection)
	assert.Contains(t, result.Errors[0].Message, "authentication failed")

	// No per-collection outcome may be recorded after an auth failure.
	client.AssertNotCalled(t, "ListCollections", mock.Anything, mock.Anything)
}

func TestProvision_ListFailureIsTerminal(t *testing.T) {
	client := new(mocks.Client)
	client.On("Authenticate", mock.Anything, mock.Anything, mock.Anything).
		Return(remote.Session{Token: "tok"}, nil)
	client.On("ListCollections", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("boom"))

	engine := NewEngine(client, zap.NewNop())
	result := engine.Provision(context.Background(), testRegistry(), testCreds(), Options{})

	assert.False(t, result.Success)
	assert.Empty(t, result.Created)
	assert.Empty(t, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, SentinelAdmin, result.Errors[0].Collection)
	assert.Contains(t, result.Errors[0].Message, "failed to list existing collections")
}

func TestProvision_PartialFailureIsolation(t *testing.T) {
	registry := schema.Registry{
		{Name: "alpha", Kind: schema.KindBase},
		{Name: "beta", Kind: schema.KindBase},
		{Name: "gamma", Kind: schema.KindBase},
	}

	client := new(mocks.Client)
	client.On("Authenticate", mock.Anything, mock.Anything, mock.Anything).
		Return(remote.Session{Token: "tok"}, nil)
	client.On("ListCollections", mock.Anything, mock.Anything).
		Return(records(), nil)
	client.On("CreateCollection", mock.Anything, mock.Anything, mock.MatchedBy(func(p map[string]any) bool {
		return p["name"] == "beta"
	})).Return(remote.CollectionRecord{}, fmt.Errorf("validation failed"))
	client.On("CreateCollection", mock.Anything, mock.Anything, mock.Anything).
		Return(remote.CollectionRecord{ID: "x"}, nil)

	engine := NewEngine(client, zap.NewNop())
	result := engine.Provision(context.Background(), registry, testCreds(), Options{})

	// One failure never blocks the remaining collections.
	assert.False(t, result.Success)
	assert.Equal(t, []string{"alpha", "gamma"}, result.Created)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "beta", result.Errors[0].Collection)

	// Partition: every registry name lands in exactly one bucket.
	outcomes := map[string]int{}
	for _, name := range result.Created {
		outcomes[name]++
	}
	for _, name := range result.Skipped {
		outcomes[name]++
	}
	for _, itemErr := range result.Errors {
		outcomes[itemErr.Collection]++
	}
	for _, col := range registry {
		assert.Equal(t, 1, outcomes[col.Name], "collection %s", col.Name)
	}
}

func TestProvision_UpdateExisting(t *testing.T) {
	client := new(mocks.Client)
	client.On("Authenticate", mock.Anything, mock.Anything, mock.Anything).
		Return(remote.Session{Token: "tok"}, nil)
	client.On("ListCollections", mock.Anything, mock.Anything).
		Return(records("test_items"), nil)
	client.On("GetCollection", mock.Anything, mock.Anything, "test_items").
		Return(remote.CollectionRecord{ID: "col_0", Name: "test_items"}, nil)
	client.On("UpdateCollection", mock.Anything, mock.Anything, "col_0", mock.Anything).
		Return(remote.CollectionRecord{ID: "col_0", Name: "test_items"}, nil)

	engine := NewEngine(client, zap.NewNop())
	result := engine.Provision(context.Background(), testRegistry(), testCreds(), Options{UpdateExisting: true})

	assert.True(t, result.Success)
	assert.Equal(t, []string{"test_items (updated)"}, result.Created)
	assert.Empty(t, result.Skipped)
	client.AssertExpectations(t)
}

func TestProvision_UpdateFailureRecorded(t *testing.T) {
	client := new(mocks.Client)
	client.On("Authenticate", mock.Anything, mock.Anything, mock.Anything).
		Return(remote.Session{Token: "tok"}, nil)
	client.On("ListCollections", mock.Anything, mock.Anything).
		Return(records("test_items"), nil)
	client.On("GetCollection", mock.Anything, mock.Anything, "test_items").
		Return(remote.CollectionRecord{}, fmt.Errorf("not found"))

	engine := NewEngine(client, zap.NewNop())
	result := engine.Provision(context.Background(), testRegistry(), testCreds(), Options{UpdateExisting: true})

	assert.False(t, result.Success)
	assert.Empty(t, result.Created)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "test_items", result.Errors[0].Collection)
	assert.Contains(t, result.Errors[0].Message, "failed to update collection")
}

func TestProvision_AuthSettingsFailureIsNotFatal(t *testing.T) {
	client := new(mocks.Client)
	client.On("Authenticate", mock.Anything, mock.Anything, mock.Anything).
		Return(remote.Session{Token: "tok"}, nil)
	client.On("ListCollections", mock.Anything, mock.Anything).
		Return(records(), nil)
	client.On("UpdateAuthSettings", mock.Anything, mock.Anything, mock.Anything).
		Return(fmt.Errorf("provider rejected"))
	client.On("CreateCollection", mock.Anything, mock.Anything, mock.Anything).
		Return(remote.CollectionRecord{ID: "abc"}, nil)

	engine := NewEngine(client, zap.NewNop())
	opts := Options{Auth: &remote.AuthSettings{Provider: "google", Enabled: true}}
	result := engine.Provision(context.Background(), testRegistry(), testCreds(), opts)

	// The settings failure is recorded, but the run still provisions.
	assert.False(t, result.Success)
	assert.Equal(t, []string{"test_items"}, result.Created)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "users", result.Errors[0].Collection)
	client.AssertExpectations(t)
}

func TestProvision_ProgressEvents(t *testing.T) {
	client := new(mocks.Client)
	client.On("Authenticate", mock.Anything, mock.Anything, mock.Anything).
		Return(remote.Session{Token: "tok"}, nil)
	client.On("ListCollections", mock.Anything, mock.Anything).
		Return(records(), nil)
	client.On("CreateCollection", mock.Anything, mock.Anything, mock.Anything).
		Return(remote.CollectionRecord{ID: "abc"}, nil)

	var events []Event
	opts := Options{Progress: func(ev Event) { events = append(events, ev) }}

	engine := NewEngine(client, zap.NewNop())
	engine.Provision(context.Background(), testRegistry(), testCreds(), opts)

	kinds := make([]EventKind, 0, len(events))
	for _, ev := range events {
		assert.NotEmpty(t, ev.Text)
		kinds = append(kinds, ev.Kind)
	}
	assert.Contains(t, kinds, EventInfo)
	assert.Contains(t, kinds, EventCreated)
	assert.NotContains(t, kinds, EventFailed)
}

// fakeStore is a stateful in-memory store used to verify idempotence
// across consecutive runs.
type fakeStore struct {
	collections map[string]remote.CollectionRecord
	nextID      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{collections: make(map[string]remote.CollectionRecord)}
}

func (f *fakeStore) HealthCheck(ctx context.Context) (remote.Health, error) {
	return remote.Health{Code: 200, Message: "API is healthy."}, nil
}

func (f *fakeStore) Authenticate(ctx context.Context, email, password string) (remote.Session, error) {
	return remote.Session{Token: "fake"}, nil
}

func (f *fakeStore) ListCollections(ctx context.Context, s remote.Session) ([]remote.CollectionRecord, error) {
	recs := make([]remote.CollectionRecord, 0, len(f.collections))
	for _, rec := range f.collections {
		recs = append(recs, rec)
	}
	return recs, nil
}

func (f *fakeStore) GetCollection(ctx context.Context, s remote.Session, name string) (remote.CollectionRecord, error) {
	rec, ok := f.collections[name]
	if !ok {
		return remote.CollectionRecord{}, fmt.Errorf("collection %s not found", name)
	}
	return rec, nil
}

func (f *fakeStore) CreateCollection(ctx context.Context, s remote.Session, payload map[string]any) (remote.CollectionRecord, error) {
	name := payload["name"].(string)
	f.nextID++
	rec := remote.CollectionRecord{ID: fmt.Sprintf("id_%d", f.nextID), Name: name}
	f.collections[name] = rec
	return rec, nil
}

func (f *fakeStore) UpdateCollection(ctx context.Context, s remote.Session, id string, payload map[string]any) (remote.CollectionRecord, error) {
	for _, rec := range f.collections {
		if rec.ID == id {
			return rec, nil
		}
	}
	return remote.CollectionRecord{}, fmt.Errorf("collection %s not found", id)
}

func (f *fakeStore) UpdateAuthSettings(ctx context.Context, s remote.Session, settings remote.AuthSettings) error {
	return nil
}

func TestProvision_Idempotence(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store, zap.NewNop())
	registry := schema.Registry{
		{Name: "posts", Kind: schema.KindBase},
		{Name: "comments", Kind: schema.KindBase},
	}

	first := engine.Provision(context.Background(), registry, testCreds(), Options{})
	require.True(t, first.Success)
	assert.Equal(t, []string{"posts", "comments"}, first.Created)
	assert.Empty(t, first.Skipped)

	// Second run with unchanged registry and server state: everything
	// skips, nothing is created, nothing fails.
	second := engine.Provision(context.Background(), registry, testCreds(), Options{})
	assert.True(t, second.Success)
	assert.Empty(t, second.Created)
	assert.Equal(t, []string{"posts", "comments"}, second.Skipped)
	assert.Empty(t, second.Errors)
}
