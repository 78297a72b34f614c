package vpcwire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttrRef_MarshalJSON(t *testing.T) {
	ref := AttrRef{Resource: "NATGatewayEIP", Attribute: "AllocationId"}
	data, err := json.Marshal(ref)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Fn::GetAtt": ["NATGatewayEIP", "AllocationId"]}`, string(data))
}

func TestAttrRef_IsZero(t *testing.T) {
	assert.True(t, AttrRef{}.IsZero())
	assert.False(t, AttrRef{Resource: "VPC"}.IsZero())
	assert.False(t, AttrRef{Attribute: "CidrBlock"}.IsZero())
}

func TestTemplate_MarshalJSON(t *testing.T) {
	tmpl := Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Resources: map[string]ResourceDef{
			"VPC": {
				Type: "AWS::EC2::VPC",
				Properties: map[string]any{
					"CidrBlock": "10.0.0.0/16",
				},
			},
			"NATGateway": {
				Type:      "AWS::EC2::NatGateway",
				DependsOn: []string{"VPCGatewayAttachment"},
			},
		},
	}

	data, err := json.Marshal(tmpl)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	resources := decoded["Resources"].(map[string]any)
	vpc := resources["VPC"].(map[string]any)
	assert.Equal(t, "AWS::EC2::VPC", vpc["Type"])

	nat := resources["NATGateway"].(map[string]any)
	assert.Equal(t, []any{"VPCGatewayAttachment"}, nat["DependsOn"])
	// Empty properties are omitted entirely
	assert.NotContains(t, nat, "Properties")
}

func TestResourceDef_OmitsEmptyDependsOn(t *testing.T) {
	def := ResourceDef{Type: "AWS::EC2::RouteTable"}
	data, err := json.Marshal(def)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "DependsOn")
}
