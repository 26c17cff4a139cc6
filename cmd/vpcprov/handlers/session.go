// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"

	"github.com/imamik/vpcprov/internal/config"
	"github.com/imamik/vpcprov/internal/inventory"
	"github.com/imamik/vpcprov/internal/logging"
	"github.com/imamik/vpcprov/internal/metrics"
	"github.com/imamik/vpcprov/internal/platform/cos"
	"github.com/imamik/vpcprov/internal/platform/ibmvpc"
	"github.com/imamik/vpcprov/internal/ui"
)

// archiver stores finished task records and prepares its bucket.
type archiver interface {
	Archive(ctx context.Context, name string, doc any) (string, error)
	EnsureBucket(ctx context.Context) error
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.LoadFile

	// loadCredentials reads API keys from the environment.
	loadCredentials = config.LoadCredentials

	// newLogger creates the provider logger.
	newLogger = logging.New

	// newGateway creates a new VPC API client.
	newGateway = func(apiKey string, cfg *config.Config) (ibmvpc.Gateway, error) {
		return ibmvpc.NewRealClient(apiKey, cfg)
	}

	// openInventory opens the local inventory database.
	openInventory = inventory.Open

	// newArchiver creates the Cloud Object Storage task archive.
	newArchiver = func(cfg config.ArchiveConfig, creds config.Credentials) (archiver, error) {
		return cos.NewClient(cfg, creds.COSAccessKey, creds.COSSecretKey)
	}

	// runRequestForm runs the interactive request form.
	runRequestForm = ui.RunRequestForm

	// writeMetricsTextfile writes collected metrics for the node exporter.
	writeMetricsTextfile = metrics.WriteTextfile

	// writeFile writes data to a file (for testing injection).
	writeFile = os.WriteFile

	// isInteractiveTTY reports whether the CLI can run interactive forms.
	isInteractiveTTY = func() bool {
		return isTerminal(os.Stdin) && isTerminal(os.Stdout)
	}

	// stdout receives command output.
	stdout io.Writer = os.Stdout
)

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// session holds what every command needs: the configuration, the provider
// logger and, opened on first use, the inventory.
type session struct {
	cfg    *config.Config
	logger logr.Logger
	log    logging.Component
	closer io.Closer
	store  *inventory.Store
}

func openSession(configPath string) (*session, error) {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, err
	}

	logger, closer, err := newLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	return &session{
		cfg:    cfg,
		logger: logger,
		log:    logging.NewComponent(logger, "cli"),
		closer: closer,
	}, nil
}

// Close writes the metrics textfile and releases the inventory and log file.
func (s *session) Close() {
	if s.cfg.Metrics.Textfile != "" {
		if err := writeMetricsTextfile(s.cfg.Metrics.Textfile); err != nil {
			s.log.Warn("metrics", err.Error())
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.log.Warn("inventory", fmt.Sprintf("unable to close inventory: %v", err))
		}
	}
	if s.closer != nil {
		_ = s.closer.Close()
	}
}

func (s *session) inventory() (*inventory.Store, error) {
	if s.store != nil {
		return s.store, nil
	}
	store, err := openInventory(s.cfg.Inventory)
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory: %w", err)
	}
	s.store = store
	return store, nil
}

func (s *session) gateway() (ibmvpc.Gateway, error) {
	creds := loadCredentials()
	if creds.APIKey == "" {
		return nil, fmt.Errorf("IBMCLOUD_API_KEY environment variable is required")
	}
	return newGateway(creds.APIKey, s.cfg)
}

// ems returns the configured management system record.
func (s *session) ems(ctx context.Context) (*inventory.ExtManagementSystem, error) {
	store, err := s.inventory()
	if err != nil {
		return nil, err
	}
	ems, err := store.GetEMSByName(ctx, s.cfg.EMS)
	if errors.Is(err, inventory.ErrNotFound) {
		return nil, fmt.Errorf("management system %q is not registered, run 'vpcprov inventory add-ems' first", s.cfg.EMS)
	}
	return ems, err
}
