package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/vpcprov/internal/config"
	"github.com/imamik/vpcprov/internal/inventory"
	"github.com/imamik/vpcprov/internal/platform/ibmvpc"
	"github.com/imamik/vpcprov/internal/provisioning"
)

type fakeArchiver struct {
	ensureErr error
	ensured   bool
	archived  []string
}

func (f *fakeArchiver) EnsureBucket(context.Context) error {
	f.ensured = true
	return f.ensureErr
}

func (f *fakeArchiver) Archive(_ context.Context, name string, _ any) (string, error) {
	f.archived = append(f.archived, name)
	return "tasks/" + name + ".json", nil
}

func writeRequest(t *testing.T, template inventory.Template) string {
	t.Helper()
	opts := provisioning.Options{}
	opts.Set(provisioning.OptTargetName, "web-01")
	opts.SetPair(provisioning.OptKeyPair, "key-1", "deploy")
	opts.SetPair(provisioning.OptSysType, "0", "bx2-2x8")
	opts.SetPair(provisioning.OptAvailabilityZone, "0", "us-south-1")
	opts.SetPair(provisioning.OptSubnet, "subnet-1", "front")
	opts.SetPair(provisioning.OptStorageType, "0", "general-purpose")
	opts.SetPair(provisioning.OptSourceImage, strconv.FormatUint(uint64(template.ID), 10), template.Name)

	data, err := opts.YAML()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "request.yaml")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestProvision_Success(t *testing.T) {
	env := setupHandlers(t)
	_, template := env.seedInventory(t)
	requestPath := writeRequest(t, template)

	var submitted *ibmvpc.InstancePrototype
	env.gateway.CreateInstanceFunc = func(_ context.Context, req *ibmvpc.InstancePrototype) (*ibmvpc.Instance, error) {
		submitted = req
		return &ibmvpc.Instance{ID: "0717_instance", Name: req.Name, Status: "pending"}, nil
	}
	env.gateway.GetInstanceFunc = func(_ context.Context, id string) (*ibmvpc.Instance, error) {
		return &ibmvpc.Instance{ID: id, Status: "running"}, nil
	}

	err := Provision(context.Background(), "", requestPath)
	require.NoError(t, err)

	require.NotNil(t, submitted)
	assert.Equal(t, "web-01", submitted.Name)
	assert.Equal(t, "r006-image-1", submitted.Image.ID)

	out := env.out.String()
	assert.Contains(t, out, "0717_instance")
	assert.Contains(t, out, inventory.PhaseFinished)
	assert.Contains(t, out, provisioning.MsgProvisioned)
}

func TestProvision_InstanceFailed(t *testing.T) {
	env := setupHandlers(t)
	_, template := env.seedInventory(t)
	requestPath := writeRequest(t, template)

	env.gateway.GetInstanceFunc = func(_ context.Context, id string) (*ibmvpc.Instance, error) {
		return &ibmvpc.Instance{ID: id, Status: "failed"}, nil
	}

	err := Provision(context.Background(), "", requestPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provisioning failed")
	assert.Contains(t, err.Error(), provisioning.MsgProvisionFailed)

	// The failed task record is still printed.
	assert.Contains(t, env.out.String(), inventory.PhaseError)
}

func TestProvision_MissingRequestFile(t *testing.T) {
	setupHandlers(t)

	err := Provision(context.Background(), "", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestProvision_GatewayError(t *testing.T) {
	env := setupHandlers(t)
	_, template := env.seedInventory(t)
	requestPath := writeRequest(t, template)
	newGateway = func(string, *config.Config) (ibmvpc.Gateway, error) {
		return nil, errors.New("failed to create IAM authenticator")
	}

	err := Provision(context.Background(), "", requestPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IAM authenticator")
	assert.Empty(t, env.out.String())
}

func TestProvision_Archive(t *testing.T) {
	env := setupHandlers(t)
	_, template := env.seedInventory(t)
	requestPath := writeRequest(t, template)
	env.cfg.Archive = config.ArchiveConfig{Enabled: true, Bucket: "vpcprov-tasks"}

	archive := &fakeArchiver{}
	newArchiver = func(cfg config.ArchiveConfig, creds config.Credentials) (archiver, error) {
		assert.Equal(t, "vpcprov-tasks", cfg.Bucket)
		assert.Equal(t, "hmac-id", creds.COSAccessKey)
		return archive, nil
	}

	err := Provision(context.Background(), "", requestPath)
	require.NoError(t, err)

	assert.True(t, archive.ensured)
	require.Len(t, archive.archived, 1)
	assert.Contains(t, env.out.String(), archive.archived[0])
}

func TestProvision_ArchiveBucketError(t *testing.T) {
	env := setupHandlers(t)
	_, template := env.seedInventory(t)
	requestPath := writeRequest(t, template)
	env.cfg.Archive = config.ArchiveConfig{Enabled: true, Bucket: "vpcprov-tasks"}

	submitted := false
	env.gateway.CreateInstanceFunc = func(_ context.Context, req *ibmvpc.InstancePrototype) (*ibmvpc.Instance, error) {
		submitted = true
		return &ibmvpc.Instance{ID: "0717_instance", Name: req.Name}, nil
	}
	newArchiver = func(config.ArchiveConfig, config.Credentials) (archiver, error) {
		return &fakeArchiver{ensureErr: errors.New("AccessDenied")}, nil
	}

	err := Provision(context.Background(), "", requestPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to prepare archive bucket")
	assert.False(t, submitted, "nothing is submitted when the archive cannot be prepared")
}
