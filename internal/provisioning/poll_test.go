package provisioning

import (
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/vpcprov/internal/platform/ibmvpc"
	"github.com/imamik/vpcprov/internal/platform/ibmvpc/ibmvpctest"
)

func statusGateway(status string) *ibmvpctest.MockClient {
	return &ibmvpctest.MockClient{
		GetInstanceFunc: func(_ context.Context, id string) (*ibmvpc.Instance, error) {
			return &ibmvpc.Instance{ID: id, Status: status}, nil
		},
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want Status
	}{
		{"pausing", StatusPending},
		{"pending", StatusPending},
		{"restarting", StatusPending},
		{"resuming", StatusPending},
		{"starting", StatusPending},
		{"stopping", StatusPending},
		{"Starting", StatusPending},
		{"running", StatusRunning},
		{"RUNNING", StatusRunning},
		{"failed", StatusFailed},
		{"deleting", StatusUnknown},
		{"", StatusUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.raw), "status %q", tt.raw)
	}
}

func TestPoller_Check(t *testing.T) {
	t.Parallel()

	t.Run("running is done", func(t *testing.T) {
		t.Parallel()
		done, msg, err := NewPoller(statusGateway("running"), logr.Discard()).Check(context.Background(), "i-1")
		require.NoError(t, err)
		assert.True(t, done)
		assert.Contains(t, msg, "provisioned")
	})

	t.Run("failed raises", func(t *testing.T) {
		t.Parallel()
		done, _, err := NewPoller(statusGateway("failed"), logr.Discard()).Check(context.Background(), "i-1")
		require.Error(t, err)
		assert.False(t, done)
		assert.True(t, IsProvisionError(err))
		assert.Equal(t, MsgProvisionFailed, err.Error())
	})

	for _, status := range []string{"pausing", "pending", "restarting", "resuming", "starting", "stopping"} {
		t.Run(status, func(t *testing.T) {
			t.Parallel()
			done, msg, err := NewPoller(statusGateway(status), logr.Discard()).Check(context.Background(), "i-1")
			require.NoError(t, err)
			assert.False(t, done)
			assert.Equal(t, MsgProvisioning, msg)
		})
	}

	t.Run("unknown status is not done and warns", func(t *testing.T) {
		t.Parallel()
		log, lines := captureLogger(0)
		done, msg, err := NewPoller(statusGateway("deleting"), log).Check(context.Background(), "i-1")
		require.NoError(t, err)
		assert.False(t, done)
		assert.Equal(t, "Unknown server state received from the cloud API: 'deleting'", msg)
		require.Len(t, *lines, 1)
		assert.Contains(t, (*lines)[0], `"severity"="warning"`)
	})

	t.Run("gateway error", func(t *testing.T) {
		t.Parallel()
		gw := &ibmvpctest.MockClient{
			GetInstanceFunc: func(context.Context, string) (*ibmvpc.Instance, error) {
				return nil, errors.New("connection refused")
			},
		}
		_, _, err := NewPoller(gw, logr.Discard()).Check(context.Background(), "i-1")
		assert.True(t, IsProvisionError(err))
		assert.Contains(t, err.Error(), "connection refused")
	})
}
