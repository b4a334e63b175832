package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"schema-provisioner/core/config"
	"schema-provisioner/core/database"
	"schema-provisioner/core/logger"
	"schema-provisioner/core/provision"
	"schema-provisioner/core/remote"
	"schema-provisioner/core/storage"
	"schema-provisioner/feature/history"
	provisionFeature "schema-provisioner/feature/provision"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the provision command
	updateExisting bool
	yesConfirm     bool
	oauthProvider  string
	oauthClientID  string
	oauthSecret    string
)

// provisionCmd reconciles the registry against the remote store.
var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Reconcile the collection registry against the remote store",
	Long: `Provision compares the declarative collection registry against the
collections that already exist on the remote store and creates what is
missing. Collections whose name already exists are skipped; presence is
judged by name only, so registry changes to an existing collection are not
applied unless --update-existing is set.

Running provision twice with an unchanged registry is safe: the second run
skips everything and changes nothing.

Examples:
  # Create missing collections only
  provision

  # Also push registry changes onto existing collections
  provision --update-existing

  # Non-interactive update
  provision --update-existing --yes`,
	RunE: runProvision,
}

func init() {
	provisionCmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Update collections that already exist instead of skipping them")
	provisionCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm updates to existing collections (non-interactive)")
	provisionCmd.Flags().StringVar(&oauthProvider, "oauth-provider", "", "Optional OAuth provider name to configure on the users collection")
	provisionCmd.Flags().StringVar(&oauthClientID, "oauth-client-id", "", "OAuth client id (with --oauth-provider)")
	provisionCmd.Flags().StringVar(&oauthSecret, "oauth-client-secret", "", "OAuth client secret (with --oauth-provider)")

	RootCmd.AddCommand(provisionCmd)
}

func runProvision(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	l.Info("Starting collection provisioning", zap.String("endpoint", cfg.Remote.Endpoint))

	// Resolve the registry
	registry, err := loadRegistry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	l.Info("Registry loaded", zap.Int("collections", len(registry)))

	// Connect to the store
	client, err := remote.NewClient(cfg.Remote)
	if err != nil {
		return fmt.Errorf("failed to create store client: %w", err)
	}

	// Pre-flight gate: don't attempt a run against a dead store.
	if probe := provision.Probe(ctx, client); !probe.Healthy {
		return fmt.Errorf("store at %s is not healthy: %s", cfg.Remote.Endpoint, probe.Message)
	}

	creds, err := resolveCredentials(cfg)
	if err != nil {
		return err
	}

	// Updating existing collections overwrites live schema state.
	if updateExisting && !confirmUpdateExisting() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	svc := provisionFeature.NewService(client, registry, creds, l)

	// Optional report archive
	if cfg.Storage.Enabled {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			l.Warn("Optional storage connection failed", zap.Error(err))
		} else {
			svc.SetArchive(store, cfg.Storage.Bucket)
		}
	}

	// Optional run history
	if cfg.Database.Enabled {
		if db, err := database.Connect(cfg.Database); err != nil {
			l.Warn("Optional database connection failed", zap.Error(err))
		} else {
			histSvc := history.NewService(db, l)
			if err := histSvc.Migrate(); err != nil {
				l.Warn("Failed to migrate history table", zap.Error(err))
			} else {
				svc.SetHistory(histSvc)
			}
		}
	}

	opts := provision.Options{
		UpdateExisting: updateExisting,
		Progress:       consoleProgress(l),
	}
	if oauthProvider != "" {
		opts.Auth = &remote.AuthSettings{
			Provider:     oauthProvider,
			ClientID:     oauthClientID,
			ClientSecret: oauthSecret,
			Enabled:      true,
		}
	}

	result := svc.Run(ctx, opts)
	printProvisionReport(l, result)

	if !result.Success {
		return fmt.Errorf("provisioning finished with %d error(s)", len(result.Errors))
	}
	return nil
}

// resolveCredentials takes admin credentials from configuration, prompting
// interactively for whichever part is missing.
func resolveCredentials(cfg *config.Config) (provision.Credentials, error) {
	creds := provision.Credentials{
		Email:    cfg.Remote.AdminEmail,
		Password: cfg.Remote.AdminPassword,
	}

	reader := bufio.NewReader(os.Stdin)
	if creds.Email == "" {
		fmt.Print("Admin email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return provision.Credentials{}, fmt.Errorf("failed to read admin email: %w", err)
		}
		creds.Email = strings.TrimSpace(line)
	}
	if creds.Password == "" {
		fmt.Print("Admin password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return provision.Credentials{}, fmt.Errorf("failed to read admin password: %w", err)
		}
		creds.Password = strings.TrimSpace(line)
	}

	if creds.Email == "" || creds.Password == "" {
		return provision.Credentials{}, fmt.Errorf("admin credentials are required")
	}
	return creds, nil
}

// confirmUpdateExisting prompts the user for confirmation or uses --yes flag.
func confirmUpdateExisting() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm updating existing collections: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}

// consoleProgress renders progress events through the logger.
func consoleProgress(l *zap.Logger) provision.Sink {
	return func(ev provision.Event) {
		switch ev.Kind {
		case provision.EventFailed:
			l.Error(ev.Text)
		case provision.EventSkipped:
			l.Warn(ev.Text)
		default:
			l.Info(ev.Text)
		}
	}
}

// printProvisionReport prints a formatted provisioning report using logger.
func printProvisionReport(l *zap.Logger, result *provision.Result) {
	l.Info("Provisioning report",
		zap.Bool("success", result.Success),
		zap.Strings("created", result.Created),
		zap.Strings("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
		zap.String("summary", result.Summary),
	)

	for _, itemErr := range result.Errors {
		l.Error("Collection failed",
			zap.String("collection", itemErr.Collection),
			zap.String("error", itemErr.Message),
		)
	}
}
