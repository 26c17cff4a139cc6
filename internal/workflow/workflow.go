package workflow

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-logr/logr"

	"github.com/imamik/vpcprov/internal/inventory"
	"github.com/imamik/vpcprov/internal/logging"
	"github.com/imamik/vpcprov/internal/metrics"
	"github.com/imamik/vpcprov/internal/platform/ibmvpc"
	"github.com/imamik/vpcprov/internal/provisioning"
)

// DefaultDialogName is the name of the provisioning dialog.
const DefaultDialogName = "miq_provision_vpc_dialogs"

// MsgWorkflowError is reported when the management system of the form is gone.
const MsgWorkflowError = "A server-side error occurred in the provisioning workflow"

// Inventory is the part of the local inventory the form reads.
type Inventory interface {
	GetEMS(ctx context.Context, id uint) (*inventory.ExtManagementSystem, error)
	Templates(ctx context.Context, emsID uint) ([]inventory.Template, error)
	AvailabilityZones(ctx context.Context, emsID uint) ([]inventory.AvailabilityZone, error)
	Flavors(ctx context.Context, emsID uint) ([]inventory.Flavor, error)
	CloudNetworks(ctx context.Context, emsID uint) ([]inventory.CloudNetwork, error)
	CloudSubnets(ctx context.Context, emsID uint) ([]inventory.CloudSubnet, error)
	CloudVolumes(ctx context.Context, emsID uint) ([]inventory.CloudVolume, error)
}

// Workflow resolves the selection lists of one provisioning request.
type Workflow struct {
	emsID   uint
	inv     Inventory
	catalog ibmvpc.CatalogReader
	log     logging.Component

	ems  *inventory.ExtManagementSystem
	memo map[string]Dropdown
}

// New returns a Workflow for the management system emsID.
func New(emsID uint, inv Inventory, catalog ibmvpc.CatalogReader, log logr.Logger) *Workflow {
	return &Workflow{
		emsID:   emsID,
		inv:     inv,
		catalog: catalog,
		log:     logging.NewComponent(log, "workflow"),
		memo:    make(map[string]Dropdown),
	}
}

// VolumeDialogKeys are the fields of the volumes tab.
func VolumeDialogKeys() []string {
	return []string{"name", "size", "shareable"}
}

// allowed returns the memoized list of op, resolving it with list on first
// use. A failure is logged and replaced by the error entry and is not memoized.
func (w *Workflow) allowed(ctx context.Context, op string, addNone bool, list func(context.Context) (Dropdown, error)) Dropdown {
	if d, ok := w.memo[op]; ok {
		return d
	}

	d, err := list(ctx)
	if err != nil {
		w.log.Error(op, "", err)
		metrics.RecordDropdownFailure(op)
		return ErrorDropdown(addNone)
	}

	w.memo[op] = d
	return d
}

// arEMS returns the management system of the form.
func (w *Workflow) arEMS(ctx context.Context) (*inventory.ExtManagementSystem, error) {
	if w.ems != nil {
		return w.ems, nil
	}

	ems, err := w.inv.GetEMS(ctx, w.emsID)
	if err != nil {
		w.log.Error("ar_ems", "", err)
		if errors.Is(err, inventory.ErrNotFound) {
			return nil, &provisioning.Error{Op: "ar_ems", Message: MsgWorkflowError, Err: err}
		}
		return nil, err
	}

	w.ems = ems
	return ems, nil
}

// AllowedPlacementAvailabilityZone lists the zones of the region.
func (w *Workflow) AllowedPlacementAvailabilityZone(ctx context.Context) Dropdown {
	return w.allowed(ctx, "allowed_placement_availability_zone", false, w.listZones)
}

func (w *Workflow) listZones(ctx context.Context) (Dropdown, error) {
	ems, err := w.arEMS(ctx)
	if err != nil {
		return nil, err
	}
	zones, err := w.inv.AvailabilityZones(ctx, ems.ID)
	if err != nil {
		return nil, err
	}
	return indexDropdown(zones, func(z inventory.AvailabilityZone) string { return z.Name }), nil
}

// AllowedSysType lists the instance profiles.
func (w *Workflow) AllowedSysType(ctx context.Context) Dropdown {
	return w.allowed(ctx, "allowed_sys_type", false, w.listSysTypes)
}

func (w *Workflow) listSysTypes(ctx context.Context) (Dropdown, error) {
	ems, err := w.arEMS(ctx)
	if err != nil {
		return nil, err
	}
	flavors, err := w.inv.Flavors(ctx, ems.ID)
	if err != nil {
		return nil, err
	}
	return indexDropdown(flavors, func(f inventory.Flavor) string { return f.Name }), nil
}

// AllowedStorageType lists the volume profiles, read live from the provider.
func (w *Workflow) AllowedStorageType(ctx context.Context) Dropdown {
	return w.allowed(ctx, "allowed_storage_type", false, w.listStorageTypes)
}

func (w *Workflow) listStorageTypes(ctx context.Context) (Dropdown, error) {
	profiles, err := w.catalog.ListVolumeProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list_volume_profiles: %w", err)
	}
	return indexDropdown(profiles, func(p ibmvpc.Profile) string { return p.Name }), nil
}

// AllowedGuestAccessKeyPairs lists the SSH keys, read live from the provider.
func (w *Workflow) AllowedGuestAccessKeyPairs(ctx context.Context) Dropdown {
	return w.allowed(ctx, "allowed_guest_access_key_pairs", false, w.listKeyPairs)
}

func (w *Workflow) listKeyPairs(ctx context.Context) (Dropdown, error) {
	keys, err := w.catalog.ListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list_keys: %w", err)
	}
	return stringDropdown(keys,
		func(k ibmvpc.Key) string { return k.ID },
		func(k ibmvpc.Key) string { return k.Name },
		false), nil
}

// AllowedCloudNetworks lists the VPCs.
func (w *Workflow) AllowedCloudNetworks(ctx context.Context) Dropdown {
	return w.allowed(ctx, "allowed_cloud_networks", true, w.listCloudNetworks)
}

func (w *Workflow) listCloudNetworks(ctx context.Context) (Dropdown, error) {
	ems, err := w.arEMS(ctx)
	if err != nil {
		return nil, err
	}
	networks, err := w.inv.CloudNetworks(ctx, ems.ID)
	if err != nil {
		return nil, err
	}
	return stringDropdown(networks,
		func(n inventory.CloudNetwork) string { return n.EmsRef },
		func(n inventory.CloudNetwork) string { return n.Name },
		true), nil
}

// AllowedSubnets lists the subnets.
func (w *Workflow) AllowedSubnets(ctx context.Context) Dropdown {
	return w.allowed(ctx, "allowed_subnets", true, w.listSubnets)
}

func (w *Workflow) listSubnets(ctx context.Context) (Dropdown, error) {
	ems, err := w.arEMS(ctx)
	if err != nil {
		return nil, err
	}
	subnets, err := w.inv.CloudSubnets(ctx, ems.ID)
	if err != nil {
		return nil, err
	}
	return stringDropdown(subnets,
		func(s inventory.CloudSubnet) string { return s.EmsRef },
		func(s inventory.CloudSubnet) string { return s.Name },
		true), nil
}

// AllowedCloudVolumes lists the volumes that can be attached. VPC block
// volumes attach to one instance at a time, so only available volumes qualify.
func (w *Workflow) AllowedCloudVolumes(ctx context.Context) Dropdown {
	return w.allowed(ctx, "allowed_cloud_volumes", false, w.listCloudVolumes)
}

func (w *Workflow) listCloudVolumes(ctx context.Context) (Dropdown, error) {
	ems, err := w.arEMS(ctx)
	if err != nil {
		return nil, err
	}
	volumes, err := w.inv.CloudVolumes(ctx, ems.ID)
	if err != nil {
		return nil, err
	}

	attachable := volumes[:0:0]
	for _, v := range volumes {
		if v.Status == inventory.VolumeStatusAvailable {
			attachable = append(attachable, v)
		}
	}
	return stringDropdown(attachable,
		func(v inventory.CloudVolume) string { return v.EmsRef },
		func(v inventory.CloudVolume) string { return v.Name },
		false), nil
}

// AllowedResourceGroup lists the account resource groups.
func (w *Workflow) AllowedResourceGroup(ctx context.Context) Dropdown {
	return w.allowed(ctx, "allowed_resource_group", false, w.listResourceGroups)
}

func (w *Workflow) listResourceGroups(ctx context.Context) (Dropdown, error) {
	groups, err := w.catalog.ListResourceGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list_resource_groups: %w", err)
	}
	return stringDropdown(groups,
		func(g ibmvpc.ResourceGroup) string { return g.ID },
		func(g ibmvpc.ResourceGroup) string { return g.Name },
		false), nil
}

// AllowedTemplates lists the source images, keyed by template id.
func (w *Workflow) AllowedTemplates(ctx context.Context) Dropdown {
	return w.allowed(ctx, "allowed_templates", false, w.listTemplates)
}

func (w *Workflow) listTemplates(ctx context.Context) (Dropdown, error) {
	ems, err := w.arEMS(ctx)
	if err != nil {
		return nil, err
	}
	templates, err := w.inv.Templates(ctx, ems.ID)
	if err != nil {
		return nil, err
	}
	return stringDropdown(templates,
		func(t inventory.Template) string { return strconv.FormatUint(uint64(t.ID), 10) },
		func(t inventory.Template) string { return t.Name },
		false), nil
}
