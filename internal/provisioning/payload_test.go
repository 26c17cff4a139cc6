package provisioning

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/vpcprov/internal/inventory"
)

func requestOptions() Options {
	opts := Options{}
	opts.SetPair(OptKeyPair, "r006-key-1", "deploy")
	opts.Set(OptTargetName, "web-01")
	opts.SetPair(OptSysType, "0", "bx2-2x8")
	opts.SetPair(OptAvailabilityZone, "1", "us-south-1")
	opts.SetPair(OptSourceImage, "12", "ubuntu")
	opts.SetPair(OptSubnet, "0717-subnet-1", "front")
	opts.SetPair(OptStorageType, "2", "general-purpose")
	return opts
}

func TestBuild(t *testing.T) {
	t.Parallel()
	image := &inventory.Template{EmsRef: "r006-image-1", Name: "ubuntu"}

	req := Build(requestOptions(), image)

	assert.Equal(t, "web-01", req.Name)
	assert.Equal(t, "r006-image-1", req.Image.ID)
	assert.Equal(t, "0717-subnet-1", req.PrimaryNetworkInterface.Subnet.ID)
	require.Len(t, req.Keys, 1)
	assert.Equal(t, "r006-key-1", req.Keys[0].ID)
	assert.Equal(t, "bx2-2x8", req.Profile.Name)
	assert.Equal(t, "us-south-1", req.Zone.Name)
	assert.Equal(t, "web-01_boot", req.BootVolumeAttachment.Volume.Name)
	assert.Equal(t, "general-purpose", req.BootVolumeAttachment.Volume.Profile.Name)
	assert.True(t, req.BootVolumeAttachment.DeleteVolumeOnInstanceDelete)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"keys": [{"id": "r006-key-1"}],
		"name": "web-01",
		"profile": {"name": "bx2-2x8"},
		"image": {"id": "r006-image-1"},
		"zone": {"name": "us-south-1"},
		"primary_network_interface": {"subnet": {"id": "0717-subnet-1"}},
		"boot_volume_attachment": {
			"volume": {"name": "web-01_boot", "profile": {"name": "general-purpose"}},
			"delete_volume_on_instance_delete": true
		}
	}`, string(data))
}

func TestBuild_OptionalMembers(t *testing.T) {
	t.Parallel()
	opts := requestOptions()
	opts.SetPair(OptCloudNetwork, "r006-vpc-1", "main")
	opts.Set(OptIPAddress, "10.240.0.12")
	opts.Set(OptSecurityGroups, "sg-1,sg-2")
	opts.SetPair(OptResourceGroup, "rg-1", "default")

	req := Build(opts, &inventory.Template{EmsRef: "img"})

	require.NotNil(t, req.VPC)
	assert.Equal(t, "r006-vpc-1", req.VPC.ID)
	require.NotNil(t, req.ResourceGroup)
	assert.Equal(t, "rg-1", req.ResourceGroup.ID)
	require.NotNil(t, req.PrimaryNetworkInterface.PrimaryIP)
	assert.Equal(t, "10.240.0.12", req.PrimaryNetworkInterface.PrimaryIP.Address)
	assert.Len(t, req.PrimaryNetworkInterface.SecurityGroups, 2)
}

func TestBuild_MissingOptionsPropagateEmpty(t *testing.T) {
	t.Parallel()

	req := Build(Options{}, nil)

	assert.Empty(t, req.Name)
	assert.Empty(t, req.Image.ID)
	assert.Empty(t, req.PrimaryNetworkInterface.Subnet.ID)
	assert.Equal(t, "_boot", req.BootVolumeAttachment.Volume.Name)
	assert.Nil(t, req.VPC)
	assert.Nil(t, req.PrimaryNetworkInterface.PrimaryIP)
}
