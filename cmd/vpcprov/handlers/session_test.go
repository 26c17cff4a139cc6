package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/vpcprov/internal/config"
	"github.com/imamik/vpcprov/internal/inventory"
	"github.com/imamik/vpcprov/internal/metrics"
	"github.com/imamik/vpcprov/internal/platform/ibmvpc"
	"github.com/imamik/vpcprov/internal/platform/ibmvpc/ibmvpctest"
)

// saveAndRestoreFactories saves all factory variables and restores them after the test.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()

	origLoadConfigFile := loadConfigFile
	origLoadCredentials := loadCredentials
	origNewLogger := newLogger
	origNewGateway := newGateway
	origOpenInventory := openInventory
	origNewArchiver := newArchiver
	origRunRequestForm := runRequestForm
	origWriteMetricsTextfile := writeMetricsTextfile
	origWriteFile := writeFile
	origIsInteractiveTTY := isInteractiveTTY
	origStdout := stdout

	t.Cleanup(func() {
		loadConfigFile = origLoadConfigFile
		loadCredentials = origLoadCredentials
		newLogger = origNewLogger
		newGateway = origNewGateway
		openInventory = origOpenInventory
		newArchiver = origNewArchiver
		runRequestForm = origRunRequestForm
		writeMetricsTextfile = origWriteMetricsTextfile
		writeFile = origWriteFile
		isInteractiveTTY = origIsInteractiveTTY
		stdout = origStdout
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// testEnv wires the handlers to a temporary inventory and a mock gateway and
// returns the captured output.
type testEnv struct {
	cfg     *config.Config
	gateway *ibmvpctest.MockClient
	out     *bytes.Buffer
}

func setupHandlers(t *testing.T) *testEnv {
	t.Helper()
	saveAndRestoreFactories(t)

	env := &testEnv{
		cfg: &config.Config{
			Region:    "us-south",
			AccountID: "acct-1",
			EMS:       "prod",
			Inventory: config.InventoryConfig{Path: filepath.Join(t.TempDir(), "inventory.db")},
		},
		gateway: &ibmvpctest.MockClient{},
		out:     &bytes.Buffer{},
	}

	loadConfigFile = func(string) (*config.Config, error) { return env.cfg, nil }
	loadCredentials = func() config.Credentials {
		return config.Credentials{APIKey: "test-key", COSAccessKey: "hmac-id", COSSecretKey: "hmac-secret"}
	}
	newLogger = func(config.LogConfig) (logr.Logger, io.Closer, error) {
		return logr.Discard(), nopCloser{}, nil
	}
	newGateway = func(apiKey string, _ *config.Config) (ibmvpc.Gateway, error) {
		assert.Equal(t, "test-key", apiKey)
		return env.gateway, nil
	}
	stdout = env.out

	return env
}

// seedInventory registers the configured EMS with one image and one zone.
func (e *testEnv) seedInventory(t *testing.T) (*inventory.ExtManagementSystem, inventory.Template) {
	t.Helper()
	store, err := inventory.Open(e.cfg.Inventory)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	ems := &inventory.ExtManagementSystem{Name: e.cfg.EMS, UidEms: "a1b2", Region: e.cfg.Region}
	require.NoError(t, store.CreateEMS(ctx, ems))
	require.NoError(t, store.ReplaceInventory(ctx, ems.ID, inventory.Snapshot{
		Zones:     []inventory.AvailabilityZone{{EmsRef: "us-south-1", Name: "us-south-1"}},
		Templates: []inventory.Template{{EmsRef: "r006-image-1", Name: "ubuntu"}},
	}))
	templates, err := store.Templates(ctx, ems.ID)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	return ems, templates[0]
}

func TestOpenSession_ConfigError(t *testing.T) {
	saveAndRestoreFactories(t)
	loadConfigFile = func(string) (*config.Config, error) {
		return nil, errors.New("failed to read config file: no such file")
	}

	_, err := openSession("missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestOpenSession_LoggerError(t *testing.T) {
	setupHandlers(t)
	newLogger = func(config.LogConfig) (logr.Logger, io.Closer, error) {
		return logr.Discard(), nil, errors.New("permission denied")
	}

	_, err := openSession("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize logging")
}

func TestSession_GatewayRequiresAPIKey(t *testing.T) {
	setupHandlers(t)
	loadCredentials = func() config.Credentials { return config.Credentials{} }

	s, err := openSession("")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.gateway()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IBMCLOUD_API_KEY")
}

func TestSession_EMSNotRegistered(t *testing.T) {
	setupHandlers(t)

	s, err := openSession("")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.ems(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vpcprov inventory add-ems")
}

func TestSession_InventoryOpenedOnce(t *testing.T) {
	setupHandlers(t)
	opens := 0
	openInventory = func(cfg config.InventoryConfig) (*inventory.Store, error) {
		opens++
		return inventory.Open(cfg)
	}

	s, err := openSession("")
	require.NoError(t, err)
	defer s.Close()

	first, err := s.inventory()
	require.NoError(t, err)
	second, err := s.inventory()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, opens)
}

func TestSession_CloseWritesMetrics(t *testing.T) {
	env := setupHandlers(t)
	env.cfg.Metrics.Textfile = filepath.Join(t.TempDir(), "vpcprov.prom")

	s, err := openSession("")
	require.NoError(t, err)
	metrics.RecordSubmission("success")
	s.Close()

	data, err := os.ReadFile(env.cfg.Metrics.Textfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "vpcprov_provision_submissions_total")
}

func TestSession_CloseSkipsMetricsWhenUnset(t *testing.T) {
	setupHandlers(t)
	called := false
	writeMetricsTextfile = func(string) error {
		called = true
		return nil
	}

	s, err := openSession("")
	require.NoError(t, err)
	s.Close()

	assert.False(t, called)
}
