package ibmvpc

import (
	"github.com/IBM/platform-services-go-sdk/resourcemanagerv2"
	"github.com/IBM/vpc-go-sdk/vpcv1"
)

// required returns the value of a required string field.
func required(kind, field string, v *string) (string, error) {
	if v == nil || *v == "" {
		return "", &DecodeError{Kind: kind, Field: field}
	}
	return *v, nil
}

func optional(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// decodeAll decodes every item, failing on the first incomplete one.
func decodeAll[S any, D any](items []S, decode func(S) (D, error)) ([]D, error) {
	out := make([]D, 0, len(items))
	for _, item := range items {
		d, err := decode(item)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func decodeInstance(m *vpcv1.Instance) (*Instance, error) {
	if m == nil {
		return nil, &DecodeError{Kind: "instance", Field: "body"}
	}
	id, err := required("instance", "id", m.ID)
	if err != nil {
		return nil, err
	}
	status, err := required("instance", "status", m.Status)
	if err != nil {
		return nil, err
	}
	inst := &Instance{ID: id, Name: optional(m.Name), Status: status}
	if m.Zone != nil {
		inst.Zone = optional(m.Zone.Name)
	}
	return inst, nil
}

func decodeKey(m vpcv1.Key) (Key, error) {
	id, err := required("key", "id", m.ID)
	if err != nil {
		return Key{}, err
	}
	name, err := required("key", "name", m.Name)
	if err != nil {
		return Key{}, err
	}
	return Key{ID: id, Name: name}, nil
}

func decodeInstanceProfile(m vpcv1.InstanceProfile) (Profile, error) {
	name, err := required("instance profile", "name", m.Name)
	if err != nil {
		return Profile{}, err
	}
	return Profile{Name: name, Family: optional(m.Family)}, nil
}

func decodeVolumeProfile(m vpcv1.VolumeProfile) (Profile, error) {
	name, err := required("volume profile", "name", m.Name)
	if err != nil {
		return Profile{}, err
	}
	return Profile{Name: name, Family: optional(m.Family)}, nil
}

func decodeZone(m vpcv1.Zone) (Zone, error) {
	name, err := required("zone", "name", m.Name)
	if err != nil {
		return Zone{}, err
	}
	return Zone{Name: name, Status: optional(m.Status)}, nil
}

func decodeVPC(m vpcv1.VPC) (VPC, error) {
	id, err := required("vpc", "id", m.ID)
	if err != nil {
		return VPC{}, err
	}
	return VPC{ID: id, Name: optional(m.Name)}, nil
}

func decodeSubnet(m vpcv1.Subnet) (Subnet, error) {
	id, err := required("subnet", "id", m.ID)
	if err != nil {
		return Subnet{}, err
	}
	s := Subnet{ID: id, Name: optional(m.Name)}
	if m.Zone != nil {
		s.Zone = optional(m.Zone.Name)
	}
	if m.VPC != nil {
		s.VPCID = optional(m.VPC.ID)
	}
	return s, nil
}

func decodeVolume(m vpcv1.Volume) (Volume, error) {
	id, err := required("volume", "id", m.ID)
	if err != nil {
		return Volume{}, err
	}
	v := Volume{ID: id, Name: optional(m.Name), Status: optional(m.Status)}
	if m.Zone != nil {
		v.Zone = optional(m.Zone.Name)
	}
	if m.Capacity != nil {
		v.Capacity = *m.Capacity
	}
	return v, nil
}

func decodeImage(m vpcv1.Image) (Image, error) {
	id, err := required("image", "id", m.ID)
	if err != nil {
		return Image{}, err
	}
	img := Image{ID: id, Name: optional(m.Name), Status: optional(m.Status)}
	if m.OperatingSystem != nil {
		img.OS = optional(m.OperatingSystem.Name)
	}
	return img, nil
}

func decodeResourceGroup(m resourcemanagerv2.ResourceGroup) (ResourceGroup, error) {
	id, err := required("resource group", "id", m.ID)
	if err != nil {
		return ResourceGroup{}, err
	}
	return ResourceGroup{ID: id, Name: optional(m.Name)}, nil
}
