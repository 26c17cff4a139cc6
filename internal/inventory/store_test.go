package inventory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/imamik/vpcprov/internal/config"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(config.InventoryConfig{Path: filepath.Join(t.TempDir(), "inventory.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func createEMS(t *testing.T, store *Store, name string) *ExtManagementSystem {
	t.Helper()
	ems := &ExtManagementSystem{Name: name, UidEms: "crn:" + name, Region: "us-south"}
	require.NoError(t, store.CreateEMS(context.Background(), ems))
	return ems
}

func TestStore_EMS(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()

	ems := createEMS(t, store, "prod")
	assert.NotZero(t, ems.ID)

	got, err := store.GetEMS(ctx, ems.ID)
	require.NoError(t, err)
	assert.Equal(t, "crn:prod", got.UidEms)

	byName, err := store.GetEMSByName(ctx, "prod")
	require.NoError(t, err)
	assert.Equal(t, ems.ID, byName.ID)

	_, err = store.GetEMS(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.GetEMSByName(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.CreateEMS(ctx, &ExtManagementSystem{Name: "prod"})
	assert.Error(t, err, "names are unique")
}

func TestStore_ReplaceInventory(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()

	a := createEMS(t, store, "a")
	b := createEMS(t, store, "b")

	require.NoError(t, store.ReplaceInventory(ctx, a.ID, Snapshot{
		Zones:   []AvailabilityZone{{EmsRef: "us-south-1", Name: "us-south-1"}, {EmsRef: "us-south-2", Name: "us-south-2"}},
		Flavors: []Flavor{{EmsRef: "bx2-2x8", Name: "bx2-2x8", Family: "balanced"}},
	}))
	require.NoError(t, store.ReplaceInventory(ctx, b.ID, Snapshot{
		Zones: []AvailabilityZone{{EmsRef: "eu-de-1", Name: "eu-de-1"}},
	}))

	zones, err := store.AvailabilityZones(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, a.ID, zones[0].EmsID)

	// Second refresh of a replaces its rows only.
	require.NoError(t, store.ReplaceInventory(ctx, a.ID, Snapshot{
		Zones: []AvailabilityZone{{EmsRef: "us-south-3", Name: "us-south-3"}},
	}))

	zones, err = store.AvailabilityZones(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "us-south-3", zones[0].Name)

	flavors, err := store.Flavors(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, flavors)

	other, err := store.AvailabilityZones(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, "eu-de-1", other[0].Name)
}

func TestStore_TemplatesKeepIDs(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()
	ems := createEMS(t, store, "a")

	require.NoError(t, store.ReplaceInventory(ctx, ems.ID, Snapshot{
		Templates: []Template{
			{EmsRef: "r006-img-1", Name: "ubuntu", Status: "available"},
			{EmsRef: "r006-img-2", Name: "centos", Status: "available"},
		},
	}))

	before, err := store.Templates(ctx, ems.ID)
	require.NoError(t, err)
	require.Len(t, before, 2)
	ubuntuID := before[0].ID

	require.NoError(t, store.ReplaceInventory(ctx, ems.ID, Snapshot{
		Templates: []Template{{EmsRef: "r006-img-1", Name: "ubuntu-22", Status: "deprecated"}},
	}))

	after, err := store.Templates(ctx, ems.ID)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, ubuntuID, after[0].ID)
	assert.Equal(t, "ubuntu-22", after[0].Name)
	assert.Equal(t, "deprecated", after[0].Status)

	tmpl, err := store.GetTemplate(ctx, ubuntuID)
	require.NoError(t, err)
	assert.Equal(t, "r006-img-1", tmpl.EmsRef)

	require.NoError(t, store.ReplaceInventory(ctx, ems.ID, Snapshot{}))
	empty, err := store.Templates(ctx, ems.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = store.GetTemplate(ctx, ubuntuID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Tasks(t *testing.T) {
	t.Parallel()
	store := openTestStore(t)
	ctx := context.Background()

	task := &ProvisionTask{EmsID: 1, Options: datatypes.JSON(`{"vm_target_name":"web"}`)}
	require.NoError(t, store.CreateTask(ctx, task))
	assert.Len(t, task.ID, 36)
	assert.Equal(t, PhaseQueued, task.Phase)

	task.Phase = PhaseActive
	task.InstanceRef = "0717_abc"
	task.Message = "The server is being provisioned."
	require.NoError(t, store.UpdateTask(ctx, task))

	got, err := store.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, PhaseActive, got.Phase)
	assert.Equal(t, "0717_abc", got.InstanceRef)
	assert.JSONEq(t, `{"vm_target_name":"web"}`, string(got.Options))

	require.NoError(t, store.CreateTask(ctx, &ProvisionTask{EmsID: 1}))
	tasks, err := store.ListTasks(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	limited, err := store.ListTasks(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = store.GetTask(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
