// Package provision exposes the provisioning core to embedding callers over
// HTTP: a health probe, the configured registry, and an endpoint that runs
// one reconciliation pass and returns the structured result.
//
// The service also fans completed runs out to the optional sinks (MySQL run
// history, object-storage report archive); sink failures are logged and
// never alter the run's result.
package provision
