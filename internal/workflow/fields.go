package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/imamik/vpcprov/internal/provisioning"
)

// Field binds a dropdown category to the request option it fills.
type Field struct {
	Category string
	Option   string
	Title    string
	Allowed  func(w *Workflow, ctx context.Context) Dropdown
}

// Fields lists the selection fields of the request form in display order.
var Fields = []Field{
	{"templates", provisioning.OptSourceImage, "Source image", (*Workflow).AllowedTemplates},
	{"zones", provisioning.OptAvailabilityZone, "Availability zone", (*Workflow).AllowedPlacementAvailabilityZone},
	{"sys-types", provisioning.OptSysType, "System profile", (*Workflow).AllowedSysType},
	{"storage-types", provisioning.OptStorageType, "Boot volume profile", (*Workflow).AllowedStorageType},
	{"key-pairs", provisioning.OptKeyPair, "SSH key", (*Workflow).AllowedGuestAccessKeyPairs},
	{"networks", provisioning.OptCloudNetwork, "VPC", (*Workflow).AllowedCloudNetworks},
	{"subnets", provisioning.OptSubnet, "Subnet", (*Workflow).AllowedSubnets},
	{"resource-groups", provisioning.OptResourceGroup, "Resource group", (*Workflow).AllowedResourceGroup},
	{"volumes", "", "Volumes", (*Workflow).AllowedCloudVolumes},
}

// Categories returns the names accepted by Allowed.
func Categories() []string {
	names := make([]string, 0, len(Fields))
	for _, f := range Fields {
		names = append(names, f.Category)
	}
	return names
}

// Allowed returns the dropdown of a category by name.
func (w *Workflow) Allowed(ctx context.Context, category string) (Dropdown, error) {
	for _, f := range Fields {
		if f.Category == category {
			return f.Allowed(w, ctx), nil
		}
	}
	return nil, fmt.Errorf("unknown category %q (valid: %s)", category, strings.Join(Categories(), ", "))
}
