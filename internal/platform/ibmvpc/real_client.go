package ibmvpc

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/go-sdk-core/v5/core"
	"github.com/IBM/platform-services-go-sdk/resourcemanagerv2"
	"github.com/IBM/vpc-go-sdk/vpcv1"

	"github.com/imamik/vpcprov/internal/config"
	"github.com/imamik/vpcprov/internal/metrics"
)

// RealClient implements Gateway using the IBM Cloud VPC API.
type RealClient struct {
	vpc             *vpcv1.VpcV1
	resourceManager *resourcemanagerv2.ResourceManagerV2
	region          string
	accountID       string
	timeouts        *config.Timeouts
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithVPCService sets a custom VPC service (useful for testing).
func WithVPCService(svc *vpcv1.VpcV1) ClientOption {
	return func(c *RealClient) {
		c.vpc = svc
	}
}

// WithResourceManager sets a custom resource manager service (useful for testing).
func WithResourceManager(svc *resourcemanagerv2.ResourceManagerV2) ClientOption {
	return func(c *RealClient) {
		c.resourceManager = svc
	}
}

// NewRealClient creates a RealClient authenticated with an IAM API key.
func NewRealClient(apiKey string, cfg *config.Config, opts ...ClientOption) (*RealClient, error) {
	c := &RealClient{
		region:    cfg.Region,
		accountID: cfg.AccountID,
		timeouts:  config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.vpc == nil || (c.accountID != "" && c.resourceManager == nil) {
		if apiKey == "" {
			return nil, fmt.Errorf("IBM Cloud API key is required")
		}
		auth, err := core.NewIamAuthenticatorBuilder().SetApiKey(apiKey).Build()
		if err != nil {
			return nil, fmt.Errorf("failed to create IAM authenticator: %w", err)
		}

		if c.vpc == nil {
			c.vpc, err = vpcv1.NewVpcV1(&vpcv1.VpcV1Options{
				URL:           cfg.VPCEndpoint(),
				Authenticator: auth,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create VPC service: %w", err)
			}
		}

		if c.accountID != "" && c.resourceManager == nil {
			c.resourceManager, err = resourcemanagerv2.NewResourceManagerV2(&resourcemanagerv2.ResourceManagerV2Options{
				Authenticator: auth,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create resource manager service: %w", err)
			}
		}
	}

	return c, nil
}

// call wraps one SDK round trip with error classification and metrics.
func call[T any](c *RealClient, operation string, fn func() (T, *core.DetailedResponse, error)) (T, error) {
	start := time.Now()
	result, resp, err := fn()
	if err != nil {
		metrics.RecordAPICall(operation, "error", time.Since(start).Seconds())
		apiErr := &APIError{Operation: operation, Err: err}
		if resp != nil {
			apiErr.StatusCode = resp.StatusCode
		}
		return result, apiErr
	}
	metrics.RecordAPICall(operation, "success", time.Since(start).Seconds())
	return result, nil
}

func (c *RealClient) listContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeouts.List)
}

// paginate walks a paginated collection, following the start token of each
// page's next link until the provider stops returning one.
func paginate[C any, T any](c *RealClient, operation string, fetch func(start *string) (*C, *core.DetailedResponse, error), page func(*C) ([]T, *string)) ([]T, error) {
	var (
		all   []T
		start *string
	)
	for {
		result, err := call(c, operation, func() (*C, *core.DetailedResponse, error) {
			return fetch(start)
		})
		if err != nil {
			return nil, err
		}

		items, next := page(result)
		all = append(all, items...)
		if next == nil {
			return all, nil
		}

		token, err := core.GetQueryParam(next, "start")
		if err != nil {
			return nil, &APIError{Operation: operation, Err: fmt.Errorf("invalid next page link %q: %w", *next, err)}
		}
		if token == nil || (start != nil && *token == *start) {
			return all, nil
		}
		start = token
	}
}

// CreateInstance submits the instance-creation document.
func (c *RealClient) CreateInstance(ctx context.Context, prototype *InstancePrototype) (*Instance, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Submit)
	defer cancel()

	opts := c.vpc.NewCreateInstanceOptions(toSDKPrototype(prototype))
	result, err := call(c, "create_instance", func() (*vpcv1.Instance, *core.DetailedResponse, error) {
		return c.vpc.CreateInstanceWithContext(ctx, opts)
	})
	if err != nil {
		return nil, err
	}
	return decodeInstance(result)
}

// GetInstance returns the current state of an instance.
func (c *RealClient) GetInstance(ctx context.Context, id string) (*Instance, error) {
	ctx, cancel := c.listContext(ctx)
	defer cancel()

	result, err := call(c, "get_instance", func() (*vpcv1.Instance, *core.DetailedResponse, error) {
		return c.vpc.GetInstanceWithContext(ctx, c.vpc.NewGetInstanceOptions(id))
	})
	if err != nil {
		return nil, err
	}
	return decodeInstance(result)
}

// ListKeys lists SSH keys.
func (c *RealClient) ListKeys(ctx context.Context) ([]Key, error) {
	ctx, cancel := c.listContext(ctx)
	defer cancel()

	keys, err := paginate(c, "list_keys",
		func(start *string) (*vpcv1.KeyCollection, *core.DetailedResponse, error) {
			return c.vpc.ListKeysWithContext(ctx, &vpcv1.ListKeysOptions{Start: start})
		},
		func(r *vpcv1.KeyCollection) ([]vpcv1.Key, *string) {
			if r.Next == nil {
				return r.Keys, nil
			}
			return r.Keys, r.Next.Href
		})
	if err != nil {
		return nil, err
	}
	return decodeAll(keys, decodeKey)
}

// ListInstanceProfiles lists instance profiles (flavors). The collection is not paginated.
func (c *RealClient) ListInstanceProfiles(ctx context.Context) ([]Profile, error) {
	ctx, cancel := c.listContext(ctx)
	defer cancel()

	result, err := call(c, "list_instance_profiles", func() (*vpcv1.InstanceProfileCollection, *core.DetailedResponse, error) {
		return c.vpc.ListInstanceProfilesWithContext(ctx, &vpcv1.ListInstanceProfilesOptions{})
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(result.Profiles, decodeInstanceProfile)
}

// ListVolumeProfiles lists volume profiles (storage types).
func (c *RealClient) ListVolumeProfiles(ctx context.Context) ([]Profile, error) {
	ctx, cancel := c.listContext(ctx)
	defer cancel()

	profiles, err := paginate(c, "list_volume_profiles",
		func(start *string) (*vpcv1.VolumeProfileCollection, *core.DetailedResponse, error) {
			return c.vpc.ListVolumeProfilesWithContext(ctx, &vpcv1.ListVolumeProfilesOptions{Start: start})
		},
		func(r *vpcv1.VolumeProfileCollection) ([]vpcv1.VolumeProfile, *string) {
			if r.Next == nil {
				return r.Profiles, nil
			}
			return r.Profiles, r.Next.Href
		})
	if err != nil {
		return nil, err
	}
	return decodeAll(profiles, decodeVolumeProfile)
}

// ListZones lists the zones of the configured region. The collection is not paginated.
func (c *RealClient) ListZones(ctx context.Context) ([]Zone, error) {
	ctx, cancel := c.listContext(ctx)
	defer cancel()

	result, err := call(c, "list_region_zones", func() (*vpcv1.ZoneCollection, *core.DetailedResponse, error) {
		return c.vpc.ListRegionZonesWithContext(ctx, c.vpc.NewListRegionZonesOptions(c.region))
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(result.Zones, decodeZone)
}

// ListVPCs lists VPCs.
func (c *RealClient) ListVPCs(ctx context.Context) ([]VPC, error) {
	ctx, cancel := c.listContext(ctx)
	defer cancel()

	vpcs, err := paginate(c, "list_vpcs",
		func(start *string) (*vpcv1.VPCCollection, *core.DetailedResponse, error) {
			return c.vpc.ListVpcsWithContext(ctx, &vpcv1.ListVpcsOptions{Start: start})
		},
		func(r *vpcv1.VPCCollection) ([]vpcv1.VPC, *string) {
			if r.Next == nil {
				return r.Vpcs, nil
			}
			return r.Vpcs, r.Next.Href
		})
	if err != nil {
		return nil, err
	}
	return decodeAll(vpcs, decodeVPC)
}

// ListSubnets lists subnets.
func (c *RealClient) ListSubnets(ctx context.Context) ([]Subnet, error) {
	ctx, cancel := c.listContext(ctx)
	defer cancel()

	subnets, err := paginate(c, "list_subnets",
		func(start *string) (*vpcv1.SubnetCollection, *core.DetailedResponse, error) {
			return c.vpc.ListSubnetsWithContext(ctx, &vpcv1.ListSubnetsOptions{Start: start})
		},
		func(r *vpcv1.SubnetCollection) ([]vpcv1.Subnet, *string) {
			if r.Next == nil {
				return r.Subnets, nil
			}
			return r.Subnets, r.Next.Href
		})
	if err != nil {
		return nil, err
	}
	return decodeAll(subnets, decodeSubnet)
}

// ListVolumes lists block storage volumes.
func (c *RealClient) ListVolumes(ctx context.Context) ([]Volume, error) {
	ctx, cancel := c.listContext(ctx)
	defer cancel()

	volumes, err := paginate(c, "list_volumes",
		func(start *string) (*vpcv1.VolumeCollection, *core.DetailedResponse, error) {
			return c.vpc.ListVolumesWithContext(ctx, &vpcv1.ListVolumesOptions{Start: start})
		},
		func(r *vpcv1.VolumeCollection) ([]vpcv1.Volume, *string) {
			if r.Next == nil {
				return r.Volumes, nil
			}
			return r.Volumes, r.Next.Href
		})
	if err != nil {
		return nil, err
	}
	return decodeAll(volumes, decodeVolume)
}

// ListImages lists images visible to the account.
func (c *RealClient) ListImages(ctx context.Context) ([]Image, error) {
	ctx, cancel := c.listContext(ctx)
	defer cancel()

	images, err := paginate(c, "list_images",
		func(start *string) (*vpcv1.ImageCollection, *core.DetailedResponse, error) {
			return c.vpc.ListImagesWithContext(ctx, &vpcv1.ListImagesOptions{Start: start})
		},
		func(r *vpcv1.ImageCollection) ([]vpcv1.Image, *string) {
			if r.Next == nil {
				return r.Images, nil
			}
			return r.Images, r.Next.Href
		})
	if err != nil {
		return nil, err
	}
	return decodeAll(images, decodeImage)
}

// ListResourceGroups lists the resource groups of the configured account.
// The resource manager returns the whole list in one response.
func (c *RealClient) ListResourceGroups(ctx context.Context) ([]ResourceGroup, error) {
	if c.resourceManager == nil || c.accountID == "" {
		return []ResourceGroup{}, nil
	}

	ctx, cancel := c.listContext(ctx)
	defer cancel()

	result, err := call(c, "list_resource_groups", func() (*resourcemanagerv2.ResourceGroupList, *core.DetailedResponse, error) {
		return c.resourceManager.ListResourceGroupsWithContext(ctx, &resourcemanagerv2.ListResourceGroupsOptions{
			AccountID: core.StringPtr(c.accountID),
		})
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(result.Resources, decodeResourceGroup)
}

// toSDKPrototype converts the creation document into the SDK prototype.
func toSDKPrototype(p *InstancePrototype) *vpcv1.InstancePrototypeInstanceByImage {
	nic := &vpcv1.NetworkInterfacePrototype{
		Subnet: &vpcv1.SubnetIdentityByID{ID: core.StringPtr(p.PrimaryNetworkInterface.Subnet.ID)},
	}
	if ip := p.PrimaryNetworkInterface.PrimaryIP; ip != nil {
		nic.PrimaryIP = &vpcv1.NetworkInterfaceIPPrototypeReservedIPPrototypeNetworkInterfaceContext{
			Address: core.StringPtr(ip.Address),
		}
	}
	for _, sg := range p.PrimaryNetworkInterface.SecurityGroups {
		nic.SecurityGroups = append(nic.SecurityGroups, &vpcv1.SecurityGroupIdentityByID{ID: core.StringPtr(sg.ID)})
	}

	proto := &vpcv1.InstancePrototypeInstanceByImage{
		Name:                    core.StringPtr(p.Name),
		Profile:                 &vpcv1.InstanceProfileIdentityByName{Name: core.StringPtr(p.Profile.Name)},
		Image:                   &vpcv1.ImageIdentityByID{ID: core.StringPtr(p.Image.ID)},
		Zone:                    &vpcv1.ZoneIdentityByName{Name: core.StringPtr(p.Zone.Name)},
		PrimaryNetworkInterface: nic,
		BootVolumeAttachment: &vpcv1.VolumeAttachmentPrototypeInstanceByImageContext{
			DeleteVolumeOnInstanceDelete: core.BoolPtr(p.BootVolumeAttachment.DeleteVolumeOnInstanceDelete),
			Volume: &vpcv1.VolumePrototypeInstanceByImageContext{
				Name:    core.StringPtr(p.BootVolumeAttachment.Volume.Name),
				Profile: &vpcv1.VolumeProfileIdentityByName{Name: core.StringPtr(p.BootVolumeAttachment.Volume.Profile.Name)},
			},
		},
	}
	for _, k := range p.Keys {
		proto.Keys = append(proto.Keys, &vpcv1.KeyIdentityByID{ID: core.StringPtr(k.ID)})
	}
	if p.VPC != nil {
		proto.VPC = &vpcv1.VPCIdentityByID{ID: core.StringPtr(p.VPC.ID)}
	}
	if p.ResourceGroup != nil {
		proto.ResourceGroup = &vpcv1.ResourceGroupIdentityByID{ID: core.StringPtr(p.ResourceGroup.ID)}
	}
	return proto
}
