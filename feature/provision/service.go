package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"schema-provisioner/core/provision"
	"schema-provisioner/core/remote"
	"schema-provisioner/core/schema"
	"schema-provisioner/core/storage"
	"schema-provisioner/feature/history"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Service runs provisioning against the configured store and fans the
// outcome out to the optional history and report-archive sinks.
type Service struct {
	client   remote.Client
	registry schema.Registry
	creds    provision.Credentials
	logger   *zap.Logger

	store   storage.Client
	bucket  string
	history *history.Service
}

// NewService creates a new provisioning service.
func NewService(client remote.Client, registry schema.Registry, creds provision.Credentials, logger *zap.Logger) *Service {
	return &Service{
		client:   client,
		registry: registry,
		creds:    creds,
		logger:   logger,
	}
}

// SetArchive enables report archival to the given bucket.
func (s *Service) SetArchive(store storage.Client, bucket string) {
	s.store = store
	s.bucket = bucket
}

// SetHistory enables run persistence.
func (s *Service) SetHistory(h *history.Service) {
	s.history = h
}

// Probe checks whether the remote store is reachable.
func (s *Service) Probe(ctx context.Context) provision.ProbeResult {
	return provision.Probe(ctx, s.client)
}

// Registry returns the desired collection registry.
func (s *Service) Registry() schema.Registry {
	return s.registry
}

// Run executes one provisioning run, then records and archives the result.
// Sink failures are logged, never surfaced: the result of the run itself is
// what callers get.
func (s *Service) Run(ctx context.Context, opts provision.Options) *provision.Result {
	startedAt := time.Now()
	engine := provision.NewEngine(s.client, s.logger)
	result := engine.Provision(ctx, s.registry, s.creds, opts)
	duration := time.Since(startedAt)

	if s.history != nil {
		if _, err := s.history.Record(ctx, result, startedAt, duration); err != nil {
			s.logger.Warn("Failed to record run history", zap.Error(err))
		}
	}

	if s.store != nil {
		if err := s.archive(ctx, result, startedAt); err != nil {
			s.logger.Warn("Failed to archive provision report", zap.Error(err))
		}
	}

	return result
}

// archive writes the result JSON to the reports/ prefix of the bucket.
func (s *Service) archive(ctx context.Context, result *provision.Result, startedAt time.Time) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	objectName := fmt.Sprintf("reports/%s.json", startedAt.UTC().Format("20060102T150405Z"))
	_, err = s.store.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	return err
}
