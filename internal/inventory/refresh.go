package inventory

import (
	"context"

	"github.com/imamik/vpcprov/internal/platform/ibmvpc"
	"github.com/imamik/vpcprov/internal/util/async"
)

// VolumeStatusAvailable is the status of a volume that can be attached.
const VolumeStatusAvailable = "available"

// Collect reads the full catalog of the account through catalog. The
// listings run concurrently; the first failure is returned.
func Collect(ctx context.Context, catalog ibmvpc.CatalogReader) (Snapshot, error) {
	var snap Snapshot

	err := async.RunParallel(ctx, []async.Task{
		{Name: "zones", Func: func(ctx context.Context) error {
			zones, err := catalog.ListZones(ctx)
			for _, z := range zones {
				snap.Zones = append(snap.Zones, AvailabilityZone{EmsRef: z.Name, Name: z.Name})
			}
			return err
		}},
		{Name: "instance profiles", Func: func(ctx context.Context) error {
			profiles, err := catalog.ListInstanceProfiles(ctx)
			for _, p := range profiles {
				snap.Flavors = append(snap.Flavors, Flavor{EmsRef: p.Name, Name: p.Name, Family: p.Family})
			}
			return err
		}},
		{Name: "VPCs", Func: func(ctx context.Context) error {
			vpcs, err := catalog.ListVPCs(ctx)
			for _, v := range vpcs {
				snap.Networks = append(snap.Networks, CloudNetwork{EmsRef: v.ID, Name: v.Name})
			}
			return err
		}},
		{Name: "subnets", Func: func(ctx context.Context) error {
			subnets, err := catalog.ListSubnets(ctx)
			for _, s := range subnets {
				snap.Subnets = append(snap.Subnets, CloudSubnet{EmsRef: s.ID, Name: s.Name, Zone: s.Zone, CloudNetworkRef: s.VPCID})
			}
			return err
		}},
		{Name: "volumes", Func: func(ctx context.Context) error {
			volumes, err := catalog.ListVolumes(ctx)
			for _, v := range volumes {
				snap.Volumes = append(snap.Volumes, CloudVolume{
					EmsRef: v.ID,
					Name:   v.Name,
					Status: v.Status,
					Zone:   v.Zone,
					Size:   v.Capacity,
				})
			}
			return err
		}},
		{Name: "images", Func: func(ctx context.Context) error {
			images, err := catalog.ListImages(ctx)
			for _, img := range images {
				snap.Templates = append(snap.Templates, Template{EmsRef: img.ID, Name: img.Name, Status: img.Status, OS: img.OS})
			}
			return err
		}},
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Refresh replaces the cached catalog of the EMS with the current provider state.
// Nothing is written when any listing fails.
func Refresh(ctx context.Context, store *Store, catalog ibmvpc.CatalogReader, emsID uint) (Snapshot, error) {
	snap, err := Collect(ctx, catalog)
	if err != nil {
		return snap, err
	}
	if err := store.ReplaceInventory(ctx, emsID, snap); err != nil {
		return snap, err
	}
	return snap, nil
}
