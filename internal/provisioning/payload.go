package provisioning

import (
	"github.com/imamik/vpcprov/internal/inventory"
	"github.com/imamik/vpcprov/internal/platform/ibmvpc"
	"github.com/imamik/vpcprov/internal/util/naming"
)

// Build assembles the instance-creation document from the request options and
// the resolved source template. Options are not validated; missing ones become
// empty values and optional members are left out.
func Build(opts Options, image *inventory.Template) *ibmvpc.InstancePrototype {
	name := opts.Get(OptTargetName)

	var imageRef string
	if image != nil {
		imageRef = image.EmsRef
	}

	req := &ibmvpc.InstancePrototype{
		Keys:    []ibmvpc.Identity{{ID: opts.Get(OptKeyPair)}},
		Name:    name,
		Profile: ibmvpc.NameReference{Name: opts.GetLast(OptSysType)},
		Image:   ibmvpc.Identity{ID: imageRef},
		Zone:    ibmvpc.NameReference{Name: opts.GetLast(OptAvailabilityZone)},
		PrimaryNetworkInterface: ibmvpc.NetworkInterfacePrototype{
			Subnet: ibmvpc.Identity{ID: opts.Get(OptSubnet)},
		},
		BootVolumeAttachment: ibmvpc.BootVolumeAttachmentPrototype{
			Volume: ibmvpc.VolumePrototype{
				Name:    naming.BootVolume(name),
				Profile: ibmvpc.NameReference{Name: opts.GetLast(OptStorageType)},
			},
			DeleteVolumeOnInstanceDelete: true,
		},
	}

	if vpc := opts.Get(OptCloudNetwork); vpc != "" {
		req.VPC = &ibmvpc.Identity{ID: vpc}
	}
	if group := opts.Get(OptResourceGroup); group != "" {
		req.ResourceGroup = &ibmvpc.Identity{ID: group}
	}
	if addr := opts.Get(OptIPAddress); addr != "" {
		req.PrimaryNetworkInterface.PrimaryIP = &ibmvpc.AddressPrototype{Address: addr}
	}
	for _, sg := range opts.GetList(OptSecurityGroups) {
		req.PrimaryNetworkInterface.SecurityGroups = append(req.PrimaryNetworkInterface.SecurityGroups, ibmvpc.Identity{ID: sg})
	}

	return req
}
