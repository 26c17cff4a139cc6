package ibmvpc

// Instance is a virtual server instance.
type Instance struct {
	ID     string
	Name   string
	Status string
	Zone   string
}

// Key is an SSH key registered in the account.
type Key struct {
	ID   string
	Name string
}

// Profile is an instance or volume profile.
type Profile struct {
	Name   string
	Family string
}

// Zone is an availability zone of the configured region.
type Zone struct {
	Name   string
	Status string
}

// VPC is a virtual private cloud.
type VPC struct {
	ID   string
	Name string
}

// Subnet is a VPC subnet.
type Subnet struct {
	ID    string
	Name  string
	Zone  string
	VPCID string
}

// Volume is a block storage volume.
type Volume struct {
	ID       string
	Name     string
	Status   string
	Zone     string
	Capacity int64
}

// Image is a bootable image.
type Image struct {
	ID     string
	Name   string
	Status string
	OS     string
}

// ResourceGroup is an account resource group.
type ResourceGroup struct {
	ID   string
	Name string
}

// InstancePrototype is the instance-creation document.
// Optional members are pointers or omitempty slices and are left out of the
// request when unset.
type InstancePrototype struct {
	Keys                    []Identity                    `json:"keys"`
	Name                    string                        `json:"name"`
	Profile                 NameReference                 `json:"profile"`
	Image                   Identity                      `json:"image"`
	Zone                    NameReference                 `json:"zone"`
	VPC                     *Identity                     `json:"vpc,omitempty"`
	ResourceGroup           *Identity                     `json:"resource_group,omitempty"`
	PrimaryNetworkInterface NetworkInterfacePrototype     `json:"primary_network_interface"`
	BootVolumeAttachment    BootVolumeAttachmentPrototype `json:"boot_volume_attachment"`
}

// Identity references a resource by id.
type Identity struct {
	ID string `json:"id"`
}

// NameReference references a resource by name.
type NameReference struct {
	Name string `json:"name"`
}

// NetworkInterfacePrototype describes the primary network interface.
type NetworkInterfacePrototype struct {
	Subnet         Identity          `json:"subnet"`
	PrimaryIP      *AddressPrototype `json:"primary_ip,omitempty"`
	SecurityGroups []Identity        `json:"security_groups,omitempty"`
}

// AddressPrototype requests a specific reserved address.
type AddressPrototype struct {
	Address string `json:"address"`
}

// BootVolumeAttachmentPrototype describes the boot volume created from the image.
type BootVolumeAttachmentPrototype struct {
	Volume                       VolumePrototype `json:"volume"`
	DeleteVolumeOnInstanceDelete bool            `json:"delete_volume_on_instance_delete"`
}

// VolumePrototype names the boot volume and its profile.
type VolumePrototype struct {
	Name    string        `json:"name"`
	Profile NameReference `json:"profile"`
}
