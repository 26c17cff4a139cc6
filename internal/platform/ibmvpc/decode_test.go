package ibmvpc

import (
	"testing"

	"github.com/IBM/go-sdk-core/v5/core"
	"github.com/IBM/vpc-go-sdk/vpcv1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInstance(t *testing.T) {
	t.Parallel()

	inst, err := decodeInstance(&vpcv1.Instance{
		ID:     core.StringPtr("i-1"),
		Name:   core.StringPtr("web-01"),
		Status: core.StringPtr("starting"),
		Zone:   &vpcv1.ZoneReference{Name: core.StringPtr("us-south-3")},
	})
	require.NoError(t, err)
	assert.Equal(t, &Instance{ID: "i-1", Name: "web-01", Status: "starting", Zone: "us-south-3"}, inst)

	_, err = decodeInstance(nil)
	assert.True(t, IsDecodeError(err))

	_, err = decodeInstance(&vpcv1.Instance{Status: core.StringPtr("running")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"id"`)
}

func TestDecodeAll_FailsOnIncompleteItem(t *testing.T) {
	t.Parallel()

	_, err := decodeAll([]vpcv1.Key{
		{ID: core.StringPtr("k1"), Name: core.StringPtr("ops")},
		{ID: core.StringPtr("k2")},
	}, decodeKey)
	require.Error(t, err)
	assert.Equal(t, `decoding key: missing required field "name"`, err.Error())
}

func TestDecodeSubnetAndVolume(t *testing.T) {
	t.Parallel()

	subnet, err := decodeSubnet(vpcv1.Subnet{
		ID:   core.StringPtr("sn-1"),
		Name: core.StringPtr("private"),
		Zone: &vpcv1.ZoneReference{Name: core.StringPtr("us-south-1")},
		VPC:  &vpcv1.VPCReference{ID: core.StringPtr("vpc-1")},
	})
	require.NoError(t, err)
	assert.Equal(t, Subnet{ID: "sn-1", Name: "private", Zone: "us-south-1", VPCID: "vpc-1"}, subnet)

	volume, err := decodeVolume(vpcv1.Volume{
		ID:       core.StringPtr("vol-1"),
		Status:   core.StringPtr("available"),
		Capacity: core.Int64Ptr(100),
	})
	require.NoError(t, err)
	assert.Equal(t, Volume{ID: "vol-1", Status: "available", Capacity: 100}, volume)
}
