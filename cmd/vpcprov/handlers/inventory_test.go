package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/vpcprov/internal/inventory"
	"github.com/imamik/vpcprov/internal/platform/ibmvpc"
)

func TestInventoryAddEMS(t *testing.T) {
	env := setupHandlers(t)

	require.NoError(t, InventoryAddEMS(context.Background(), "", ""))
	assert.Contains(t, env.out.String(), `Registered management system "prod"`)

	store, err := inventory.Open(env.cfg.Inventory)
	require.NoError(t, err)
	ems, err := store.GetEMSByName(context.Background(), "prod")
	require.NoError(t, err)
	require.NoError(t, store.Close())
	assert.Equal(t, "acct-1", ems.UidEms)
	assert.Equal(t, "us-south", ems.Region)

	env.out.Reset()
	require.NoError(t, InventoryAddEMS(context.Background(), "", "other"))
	assert.Contains(t, env.out.String(), "already registered")
}

func TestInventoryAddEMS_ExplicitUID(t *testing.T) {
	env := setupHandlers(t)

	require.NoError(t, InventoryAddEMS(context.Background(), "", "0a1b2c"))

	store, err := inventory.Open(env.cfg.Inventory)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ems, err := store.GetEMSByName(context.Background(), "prod")
	require.NoError(t, err)
	assert.Equal(t, "0a1b2c", ems.UidEms)
}

func TestInventoryRefresh(t *testing.T) {
	env := setupHandlers(t)
	require.NoError(t, InventoryAddEMS(context.Background(), "", ""))
	env.out.Reset()

	env.gateway.ListZonesFunc = func(context.Context) ([]ibmvpc.Zone, error) {
		return []ibmvpc.Zone{{Name: "us-south-1"}, {Name: "us-south-2"}}, nil
	}
	env.gateway.ListImagesFunc = func(context.Context) ([]ibmvpc.Image, error) {
		return []ibmvpc.Image{{ID: "r006-image-1", Name: "ubuntu", Status: "available"}}, nil
	}

	require.NoError(t, InventoryRefresh(context.Background(), ""))
	assert.Contains(t, env.out.String(), "zones:     2")
	assert.Contains(t, env.out.String(), "images:    1")

	store, err := inventory.Open(env.cfg.Inventory)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ems, err := store.GetEMSByName(context.Background(), "prod")
	require.NoError(t, err)
	zones, err := store.AvailabilityZones(context.Background(), ems.ID)
	require.NoError(t, err)
	assert.Len(t, zones, 2)
}

func TestInventoryRefresh_ListingError(t *testing.T) {
	env := setupHandlers(t)
	require.NoError(t, InventoryAddEMS(context.Background(), "", ""))
	env.gateway.ListSubnetsFunc = func(context.Context) ([]ibmvpc.Subnet, error) {
		return nil, errors.New("rate limited")
	}

	err := InventoryRefresh(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inventory refresh failed")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestInventoryRefresh_EMSNotRegistered(t *testing.T) {
	setupHandlers(t)

	err := InventoryRefresh(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vpcprov inventory add-ems")
}
