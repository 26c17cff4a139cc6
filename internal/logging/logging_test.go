package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/vpcprov/internal/config"
)

func captureComponent(name string, verbosity int) (Component, *[]string) {
	var lines []string
	log := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: verbosity})
	return NewComponent(log, name), &lines
}

func TestComponent_Format(t *testing.T) {
	t.Parallel()
	c := NewComponent(funcr.New(func(string, string) {}, funcr.Options{}), "Provision")

	assert.Equal(t, "Provision.start_clone payload sent", c.Format("start_clone", "payload sent"))
	assert.Equal(t, "Provision.start_clone", c.Format("start_clone", ""))
}

func TestComponent_InfoAndError(t *testing.T) {
	t.Parallel()
	c, lines := captureComponent("ProvisionWorkflow", 0)

	c.Info("allowed_sys_type", "resolved 3 entries")
	c.Error("allowed_sys_type", "", errors.New("connection reset"))

	require.Len(t, *lines, 2)
	assert.Contains(t, (*lines)[0], "ProvisionWorkflow.allowed_sys_type resolved 3 entries")
	assert.Contains(t, (*lines)[1], "ProvisionWorkflow.allowed_sys_type exception: connection reset")
}

func TestComponent_DebugRespectsVerbosity(t *testing.T) {
	t.Parallel()

	quiet, quietLines := captureComponent("Provision", 0)
	quiet.Debug("start_clone", "options")
	assert.Empty(t, *quietLines)

	verbose, verboseLines := captureComponent("Provision", 1)
	verbose.Debug("start_clone", "options")
	assert.Len(t, *verboseLines, 1)
}

func TestComponent_Warn(t *testing.T) {
	t.Parallel()
	c, lines := captureComponent("Provision", 0)

	c.Warn("check_clone", "unknown state")

	require.Len(t, *lines, 1)
	assert.Contains(t, (*lines)[0], `"severity"="warning"`)
}

func TestNewWriter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := NewWriter(&buf, 0)

	NewComponent(log, "Inventory").Info("refresh", "done", "zones", 3)
	log.V(1).Info("hidden")

	out := buf.String()
	assert.Contains(t, out, "Inventory.refresh done")
	assert.Contains(t, out, "INFO")
	assert.NotContains(t, out, "hidden")
}

func TestNew_WritesToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "ibm_cloud.log")

	log, closer, err := New(config.LogConfig{File: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	require.NoError(t, err)

	NewComponent(log, "Provision").Error("check_clone", "get instance", errors.New("timeout"))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "Provision.check_clone get instance exception: timeout"))
}

func TestNew_RequiresFile(t *testing.T) {
	t.Parallel()
	_, closer, err := New(config.LogConfig{})
	require.Error(t, err)
	assert.NoError(t, closer.Close())
}
