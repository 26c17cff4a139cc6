package provisioning

import (
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/vpcprov/internal/platform/ibmvpc"
	"github.com/imamik/vpcprov/internal/platform/ibmvpc/ibmvpctest"
)

func captureLogger(verbosity int) (logr.Logger, *[]string) {
	var lines []string
	return funcr.New(func(_, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: verbosity}), &lines
}

func TestSubmitter_Submit(t *testing.T) {
	t.Parallel()

	var sent *ibmvpc.InstancePrototype
	gw := &ibmvpctest.MockClient{
		CreateInstanceFunc: func(_ context.Context, req *ibmvpc.InstancePrototype) (*ibmvpc.Instance, error) {
			sent = req
			return &ibmvpc.Instance{ID: "0717_8f2c-instance", Name: req.Name, Status: "pending"}, nil
		},
	}
	log, lines := captureLogger(1)

	req := Build(requestOptions(), nil)
	ref, err := NewSubmitter(gw, log).Submit(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "0717_8f2c-instance", ref)
	assert.Same(t, req, sent)
	require.NotEmpty(t, *lines)
	assert.Contains(t, (*lines)[0], "submitter.submit outbound payload")
	assert.Contains(t, (*lines)[0], "web-01_boot")
}

func TestSubmitter_PayloadNotLoggedAtInfo(t *testing.T) {
	t.Parallel()
	log, lines := captureLogger(0)

	_, err := NewSubmitter(&ibmvpctest.MockClient{}, log).Submit(context.Background(), Build(requestOptions(), nil))
	require.NoError(t, err)

	for _, line := range *lines {
		assert.NotContains(t, line, "outbound payload")
	}
}

func TestSubmitter_ProviderError(t *testing.T) {
	t.Parallel()
	providerErr := errors.New("Expected only one of image or source_template")
	gw := &ibmvpctest.MockClient{
		CreateInstanceFunc: func(context.Context, *ibmvpc.InstancePrototype) (*ibmvpc.Instance, error) {
			return nil, providerErr
		},
	}

	ref, err := NewSubmitter(gw, logr.Discard()).Submit(context.Background(), Build(requestOptions(), nil))

	require.Error(t, err)
	assert.Empty(t, ref)
	assert.True(t, IsProvisionError(err))
	assert.ErrorIs(t, err, providerErr)
	assert.Equal(t, providerErr.Error(), err.Error())
}

func TestSubmitter_MissingInstanceID(t *testing.T) {
	t.Parallel()
	gw := &ibmvpctest.MockClient{
		CreateInstanceFunc: func(context.Context, *ibmvpc.InstancePrototype) (*ibmvpc.Instance, error) {
			return &ibmvpc.Instance{}, nil
		},
	}

	_, err := NewSubmitter(gw, logr.Discard()).Submit(context.Background(), Build(requestOptions(), nil))
	assert.True(t, IsProvisionError(err))
}
