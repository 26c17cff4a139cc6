package ibmvpc

import "context"

// InstanceProvisioner creates and inspects virtual server instances.
type InstanceProvisioner interface {
	// CreateInstance submits the instance-creation document and returns the
	// instance as accepted by the provider.
	CreateInstance(ctx context.Context, prototype *InstancePrototype) (*Instance, error)
	// GetInstance returns the current state of an instance.
	GetInstance(ctx context.Context, id string) (*Instance, error)
}

// CatalogReader lists the account resources a provisioning form offers.
type CatalogReader interface {
	ListKeys(ctx context.Context) ([]Key, error)
	ListInstanceProfiles(ctx context.Context) ([]Profile, error)
	ListVolumeProfiles(ctx context.Context) ([]Profile, error)
	ListZones(ctx context.Context) ([]Zone, error)
	ListVPCs(ctx context.Context) ([]VPC, error)
	ListSubnets(ctx context.Context) ([]Subnet, error)
	ListVolumes(ctx context.Context) ([]Volume, error)
	ListImages(ctx context.Context) ([]Image, error)
	// ListResourceGroups returns an empty list when no account is configured.
	ListResourceGroups(ctx context.Context) ([]ResourceGroup, error)
}

// Gateway combines all provider interfaces.
type Gateway interface {
	InstanceProvisioner
	CatalogReader
}
