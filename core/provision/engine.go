package provision

import (
	"context"
	"fmt"

	"schema-provisioner/core/remote"
	"schema-provisioner/core/schema"

	"go.uber.org/zap"
)

// Engine reconciles a desired registry against the live collection state of
// a remote store. It owns no session: each Provision call authenticates,
// runs to completion, and discards its session.
type Engine struct {
	client remote.Client
	logger *zap.Logger
}

// NewEngine creates a provisioning engine backed by the given store client.
func NewEngine(client remote.Client, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{client: client, logger: logger}
}

// Provision reconciles the registry against the server, issuing the minimal
// set of create/update calls and reporting per-collection outcomes.
//
// It never returns an error: authentication and listing failures
// short-circuit into a Result with a single sentinel-tagged error, and
// per-collection failures are recorded without aborting the remaining
// collections.
func (e *Engine) Provision(ctx context.Context, registry schema.Registry, creds Credentials, opts Options) *Result {
	emit := func(kind EventKind, format string, args ...any) {
		if opts.Progress != nil {
			opts.Progress(Event{Kind: kind, Text: fmt.Sprintf(format, args...)})
		}
	}

	// Step 1: authenticate.
	session, err := e.client.Authenticate(ctx, creds.Email, creds.Password)
	if err != nil {
		authErr := &AuthError{Err: err}
		e.logger.Error("Authentication failed", zap.Error(err))
		emit(EventFailed, "authentication failed: %v", err)
		return terminal(authErr)
	}
	// The session must not outlive this run.
	defer func() { session = remote.Session{} }()

	e.logger.Info("Authenticated with remote store", zap.String("email", creds.Email))
	emit(EventInfo, "authenticated as %s", creds.Email)

	// Step 2: fetch existing collection names.
	existing, err := listExisting(ctx, e.client, session)
	if err != nil {
		e.logger.Error("Failed to list existing collections", zap.Error(err))
		emit(EventFailed, "%v", err)
		return terminal(err)
	}
	e.logger.Info("Fetched existing collections", zap.Int("count", len(existing)))

	result := newResult()

	// Step 3: optional auth settings, best-effort.
	if opts.Auth != nil {
		if err := e.client.UpdateAuthSettings(ctx, session, *opts.Auth); err != nil {
			settingsErr := &SettingsError{Err: err}
			e.logger.Warn("Auth settings update failed", zap.Error(err))
			emit(EventFailed, "%v", settingsErr)
			result.Errors = append(result.Errors, ItemError{
				Collection: usersCollectionName,
				Message:    settingsErr.Error(),
			})
		} else {
			emit(EventInfo, "applied auth settings for provider %s", opts.Auth.Provider)
		}
	}

	// Step 4: per-collection reconciliation, in registry order. Outcomes
	// are independent: one failure never blocks the rest.
	for _, col := range registry {
		e.reconcileOne(ctx, session, col, existing, opts, result, emit)
	}

	result.finish()
	e.logger.Info("Provisioning finished",
		zap.Bool("success", result.Success),
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failed", len(result.Errors)),
	)
	emit(EventInfo, "provisioning finished: %s", result.Summary)
	return result
}

// usersCollectionName is where settings-update failures are recorded, since
// they target the store's built-in user-auth collection.
const usersCollectionName = "users"

// reconcileOne applies the create/skip/update decision for one collection.
func (e *Engine) reconcileOne(
	ctx context.Context,
	session remote.Session,
	col schema.Collection,
	existing map[string]struct{},
	opts Options,
	result *Result,
	emit func(EventKind, string, ...any),
) {
	if _, exists := existing[col.Name]; exists {
		if !opts.UpdateExisting {
			// Name presence alone decides the skip; no network call, no
			// field diffing.
			result.Skipped = append(result.Skipped, col.Name)
			e.logger.Info("Collection exists, skipping", zap.String("collection", col.Name))
			emit(EventSkipped, "%s already exists, skipped", col.Name)
			return
		}

		record, err := e.client.GetCollection(ctx, session, col.Name)
		if err == nil {
			_, err = e.client.UpdateCollection(ctx, session, record.ID, schema.BuildPayload(col))
		}
		if err != nil {
			updErr := &UpdateError{Collection: col.Name, Err: err}
			result.Errors = append(result.Errors, ItemError{Collection: col.Name, Message: updErr.Error()})
			e.logger.Error("Collection update failed", zap.String("collection", col.Name), zap.Error(err))
			emit(EventFailed, "%v", updErr)
			return
		}

		result.Created = append(result.Created, col.Name+" (updated)")
		e.logger.Info("Collection updated", zap.String("collection", col.Name))
		emit(EventCreated, "%s updated", col.Name)
		return
	}

	if _, err := e.client.CreateCollection(ctx, session, schema.BuildPayload(col)); err != nil {
		crtErr := &CreateError{Collection: col.Name, Err: err}
		result.Errors = append(result.Errors, ItemError{Collection: col.Name, Message: crtErr.Error()})
		e.logger.Error("Collection create failed", zap.String("collection", col.Name), zap.Error(err))
		emit(EventFailed, "%v", crtErr)
		return
	}

	result.Created = append(result.Created, col.Name)
	e.logger.Info("Collection created", zap.String("collection", col.Name))
	emit(EventCreated, "%s created", col.Name)
}
