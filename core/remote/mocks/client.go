package mocks

import (
	"context"

	"schema-provisioner/core/remote"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of remote.Client
type Client struct {
	mock.Mock
}

func (m *Client) HealthCheck(ctx context.Context) (remote.Health, error) {
	args := m.Called(ctx)
	return args.Get(0).(remote.Health), args.Error(1)
}

func (m *Client) Authenticate(ctx context.Context, email, password string) (remote.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(remote.Session), args.Error(1)
}

func (m *Client) ListCollections(ctx context.Context, s remote.Session) ([]remote.CollectionRecord, error) {
	args := m.Called(ctx, s)
	if recs, ok := args.Get(0).([]remote.CollectionRecord); ok {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetCollection(ctx context.Context, s remote.Session, name string) (remote.CollectionRecord, error) {
	args := m.Called(ctx, s, name)
	return args.Get(0).(remote.CollectionRecord), args.Error(1)
}

func (m *Client) CreateCollection(ctx context.Context, s remote.Session, payload map[string]any) (remote.CollectionRecord, error) {
	args := m.Called(ctx, s, payload)
	return args.Get(0).(remote.CollectionRecord), args.Error(1)
}

func (m *Client) UpdateCollection(ctx context.Context, s remote.Session, id string, payload map[string]any) (remote.CollectionRecord, error) {
	args := m.Called(ctx, s, id, payload)
	return args.Get(0).(remote.CollectionRecord), args.Error(1)
}

func (m *Client) UpdateAuthSettings(ctx context.Context, s remote.Session, settings remote.AuthSettings) error {
	args := m.Called(ctx, s, settings)
	return args.Error(0)
}
