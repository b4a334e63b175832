package provision

import (
	"context"
	"fmt"

	"schema-provisioner/core/remote"
)

// ProbeResult reports whether the remote store answered its health
// endpoint.
type ProbeResult struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message"`
}

// Probe issues a single unauthenticated health-check request. It never
// fails: any transport or API error is folded into the returned message.
// Callers use it as a pre-flight gate before provisioning; the engine
// itself does not probe.
func Probe(ctx context.Context, client remote.Client) ProbeResult {
	health, err := client.HealthCheck(ctx)
	if err != nil {
		return ProbeResult{
			Healthy: false,
			Message: fmt.Sprintf("server unreachable: %v", err),
		}
	}

	msg := health.Message
	if msg == "" {
		msg = "server is healthy"
	}
	return ProbeResult{Healthy: true, Message: msg}
}
