package provision

import (
	"context"
	"fmt"
	"testing"

	"schema-provisioner/core/remote"
	"schema-provisioner/core/remote/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProbe_Healthy(t *testing.T) {
	client := new(mocks.Client)
	client.On("HealthCheck", mock.Anything).
		Return(remote.Health{Code: 200, Message: "API is healthy."}, nil)

	result := Probe(context.Background(), client)

	assert.True(t, result.Healthy)
	assert.Equal(t, "API is healthy.", result.Message)
}

func TestProbe_EmptyMessageGetsDefault(t *testing.T) {
	client := new(mocks.Client)
	client.On("HealthCheck", mock.Anything).
		Return(remote.Health{Code: 200}, nil)

	result := Probe(context.Background(), client)

	assert.True(t, result.Healthy)
	assert.NotEmpty(t, result.Message)
}

func TestProbe_UnreachableNeverFails(t *testing.T) {
	client := new(mocks.Client)
	client.On("HealthCheck", mock.Anything).
		Return(remote.Health{}, fmt.Errorf("dial tcp: connection refused"))

	result := Probe(context.Background(), client)

	assert.False(t, result.Healthy)
	assert.Contains(t, result.Message, "server unreachable")
	assert.Contains(t, result.Message, "connection refused")
}
