// Package ibmvpctest provides a configurable in-memory Gateway for tests.
package ibmvpctest

import (
	"context"

	"github.com/imamik/vpcprov/internal/platform/ibmvpc"
)

// MockClient is a mock implementation of Gateway.
// Unset functions return empty results and no error.
type MockClient struct {
	CreateInstanceFunc func(ctx context.Context, prototype *ibmvpc.InstancePrototype) (*ibmvpc.Instance, error)
	GetInstanceFunc    func(ctx context.Context, id string) (*ibmvpc.Instance, error)

	ListKeysFunc             func(ctx context.Context) ([]ibmvpc.Key, error)
	ListInstanceProfilesFunc func(ctx context.Context) ([]ibmvpc.Profile, error)
	ListVolumeProfilesFunc   func(ctx context.Context) ([]ibmvpc.Profile, error)
	ListZonesFunc            func(ctx context.Context) ([]ibmvpc.Zone, error)
	ListVPCsFunc             func(ctx context.Context) ([]ibmvpc.VPC, error)
	ListSubnetsFunc          func(ctx context.Context) ([]ibmvpc.Subnet, error)
	ListVolumesFunc          func(ctx context.Context) ([]ibmvpc.Volume, error)
	ListImagesFunc           func(ctx context.Context) ([]ibmvpc.Image, error)
	ListResourceGroupsFunc   func(ctx context.Context) ([]ibmvpc.ResourceGroup, error)
}

// Ensure interface compliance
var _ ibmvpc.Gateway = (*MockClient)(nil)

// CreateInstance mocks instance creation.
func (m *MockClient) CreateInstance(ctx context.Context, prototype *ibmvpc.InstancePrototype) (*ibmvpc.Instance, error) {
	if m.CreateInstanceFunc != nil {
		return m.CreateInstanceFunc(ctx, prototype)
	}
	return &ibmvpc.Instance{ID: "mock-instance-id", Name: prototype.Name, Status: "pending"}, nil
}

// GetInstance mocks instance lookup.
func (m *MockClient) GetInstance(ctx context.Context, id string) (*ibmvpc.Instance, error) {
	if m.GetInstanceFunc != nil {
		return m.GetInstanceFunc(ctx, id)
	}
	return &ibmvpc.Instance{ID: id, Status: "running"}, nil
}

// ListKeys mocks key listing.
func (m *MockClient) ListKeys(ctx context.Context) ([]ibmvpc.Key, error) {
	if m.ListKeysFunc != nil {
		return m.ListKeysFunc(ctx)
	}
	return []ibmvpc.Key{}, nil
}

// ListInstanceProfiles mocks instance profile listing.
func (m *MockClient) ListInstanceProfiles(ctx context.Context) ([]ibmvpc.Profile, error) {
	if m.ListInstanceProfilesFunc != nil {
		return m.ListInstanceProfilesFunc(ctx)
	}
	return []ibmvpc.Profile{}, nil
}

// ListVolumeProfiles mocks volume profile listing.
func (m *MockClient) ListVolumeProfiles(ctx context.Context) ([]ibmvpc.Profile, error) {
	if m.ListVolumeProfilesFunc != nil {
		return m.ListVolumeProfilesFunc(ctx)
	}
	return []ibmvpc.Profile{}, nil
}

// ListZones mocks zone listing.
func (m *MockClient) ListZones(ctx context.Context) ([]ibmvpc.Zone, error) {
	if m.ListZonesFunc != nil {
		return m.ListZonesFunc(ctx)
	}
	return []ibmvpc.Zone{}, nil
}

// ListVPCs mocks VPC listing.
func (m *MockClient) ListVPCs(ctx context.Context) ([]ibmvpc.VPC, error) {
	if m.ListVPCsFunc != nil {
		return m.ListVPCsFunc(ctx)
	}
	return []ibmvpc.VPC{}, nil
}

// ListSubnets mocks subnet listing.
func (m *MockClient) ListSubnets(ctx context.Context) ([]ibmvpc.Subnet, error) {
	if m.ListSubnetsFunc != nil {
		return m.ListSubnetsFunc(ctx)
	}
	return []ibmvpc.Subnet{}, nil
}

// ListVolumes mocks volume listing.
func (m *MockClient) ListVolumes(ctx context.Context) ([]ibmvpc.Volume, error) {
	if m.ListVolumesFunc != nil {
		return m.ListVolumesFunc(ctx)
	}
	return []ibmvpc.Volume{}, nil
}

// ListImages mocks image listing.
func (m *MockClient) ListImages(ctx context.Context) ([]ibmvpc.Image, error) {
	if m.ListImagesFunc != nil {
		return m.ListImagesFunc(ctx)
	}
	return []ibmvpc.Image{}, nil
}

// ListResourceGroups mocks resource group listing.
func (m *MockClient) ListResourceGroups(ctx context.Context) ([]ibmvpc.ResourceGroup, error) {
	if m.ListResourceGroupsFunc != nil {
		return m.ListResourceGroupsFunc(ctx)
	}
	return []ibmvpc.ResourceGroup{}, nil
}
