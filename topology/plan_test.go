package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex00/vpcwire-go/internal/netcheck"
)

func mustPlan(t *testing.T, yaml string) *Plan {
	t.Helper()
	cfg, err := Parse([]byte(yaml))
	require.NoError(t, err)
	plan, err := NewPlan(cfg)
	require.NoError(t, err)
	return plan
}

func TestPlan_SingleNAT(t *testing.T) {
	plan := mustPlan(t, `
name: prod
cidr: 10.0.0.0/16
zones: 2
`)

	resources := plan.Resources()
	for _, name := range []string{
		"VPC", "InternetGateway", "GatewayAttachment",
		"PublicSubnetA", "PublicSubnetB", "PrivateSubnetA", "PrivateSubnetB",
		"NATGatewayEIP", "NATGateway",
		"PublicRouteTable", "PublicRoute", "PrivateRouteTable", "PrivateRoute",
		"PublicSubnetARouteTableAssociation", "PrivateSubnetBRouteTableAssociation",
	} {
		assert.Contains(t, resources, name)
	}
	assert.NotContains(t, resources, "NATGatewayA")
	assert.NotContains(t, resources, "PrivateRouteTableA")
}

func TestPlan_PerAZNAT(t *testing.T) {
	plan := mustPlan(t, `
name: prod
cidr: 10.0.0.0/16
zones: 2
nat: per-az
`)

	resources := plan.Resources()
	for _, name := range []string{
		"NATGatewayA", "NATGatewayB", "NATGatewayEIPA", "NATGatewayEIPB",
		"PrivateRouteTableA", "PrivateRouteTableB", "PrivateRouteA", "PrivateRouteB",
	} {
		assert.Contains(t, resources, name)
	}
	assert.NotContains(t, resources, "NATGateway")
	assert.NotContains(t, resources, "PrivateRouteTable")
}

func TestPlan_NoNAT(t *testing.T) {
	plan := mustPlan(t, `
name: prod
cidr: 10.0.0.0/16
nat: none
`)

	resources := plan.Resources()
	assert.NotContains(t, resources, "NATGateway")
	assert.NotContains(t, resources, "NATGatewayEIP")
	assert.NotContains(t, resources, "PrivateRoute")
	assert.Contains(t, resources, "PrivateRouteTable")
	assert.Contains(t, resources, "PrivateSubnetARouteTableAssociation")
}

func TestPlan_Template(t *testing.T) {
	plan := mustPlan(t, `
name: prod
cidr: 10.0.0.0/16
zones: 2
tags:
  Environment: production
`)

	tmpl, err := plan.Template()
	require.NoError(t, err)

	vpc := tmpl.Resources["VPC"]
	assert.Equal(t, "AWS::EC2::VPC", vpc.Type)
	assert.Equal(t, "10.0.0.0/16", vpc.Properties["CidrBlock"])

	// Derived address plan: public half first, then private
	assert.Equal(t, "10.0.0.0/24", tmpl.Resources["PublicSubnetA"].Properties["CidrBlock"])
	assert.Equal(t, "10.0.1.0/24", tmpl.Resources["PublicSubnetB"].Properties["CidrBlock"])
	assert.Equal(t, "10.0.2.0/24", tmpl.Resources["PrivateSubnetA"].Properties["CidrBlock"])
	assert.Equal(t, "10.0.3.0/24", tmpl.Resources["PrivateSubnetB"].Properties["CidrBlock"])

	// Config tags merge onto the derived Name tag
	tags, ok := vpc.Properties["Tags"].([]any)
	require.True(t, ok)
	assert.Contains(t, tags, map[string]any{"Key": "Environment", "Value": "production"})
	assert.Contains(t, tags, map[string]any{"Key": "Name", "Value": "prod-vpc"})

	// Gateway ordering
	assert.Equal(t, []string{"GatewayAttachment"}, tmpl.Resources["NATGateway"].DependsOn)
	assert.Equal(t, []string{"GatewayAttachment"}, tmpl.Resources["PublicRoute"].DependsOn)
}

func TestPlan_TemplatePassesTopologyChecks(t *testing.T) {
	for _, nat := range []string{"single", "per-az", "none"} {
		t.Run(nat, func(t *testing.T) {
			plan := mustPlan(t, `
name: prod
cidr: 10.0.0.0/16
zones: 3
nat: `+nat+`
`)
			tmpl, err := plan.Template()
			require.NoError(t, err)

			result := netcheck.Check(tmpl)
			assert.True(t, result.Passed, "findings: %+v", result.Findings)
			assert.Empty(t, result.Findings)
		})
	}
}

func TestPlan_Endpoints(t *testing.T) {
	plan := mustPlan(t, `
name: prod
cidr: 10.0.0.0/16
endpoints:
  - service: s3
  - service: ssm
    private_dns: true
`)

	tmpl, err := plan.Template()
	require.NoError(t, err)

	s3 := tmpl.Resources["S3GatewayEndpoint"]
	require.NotNil(t, s3.Properties)
	assert.Equal(t, "AWS::EC2::VPCEndpoint", s3.Type)
	assert.Equal(t, "Gateway", s3.Properties["VpcEndpointType"])
	assert.Equal(t, []any{map[string]any{"Ref": "PrivateRouteTable"}}, s3.Properties["RouteTableIds"])
	assert.Equal(t, map[string]any{"Fn::Sub": "com.amazonaws.${AWS::Region}.s3"}, s3.Properties["ServiceName"])

	ssm := tmpl.Resources["SsmInterfaceEndpoint"]
	assert.Equal(t, "Interface", ssm.Properties["VpcEndpointType"])
	assert.Equal(t, []any{map[string]any{"Ref": "EndpointSecurityGroup"}}, ssm.Properties["SecurityGroupIds"])
	assert.Equal(t, true, ssm.Properties["PrivateDnsEnabled"])

	sg := tmpl.Resources["EndpointSecurityGroup"]
	require.NotNil(t, sg.Properties)
	ingress, ok := sg.Properties["SecurityGroupIngress"].([]any)
	require.True(t, ok)
	rule, ok := ingress[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "10.0.0.0/16", rule["CidrIp"])
}

func TestEndpointLogicalName(t *testing.T) {
	cases := []struct {
		ep   EndpointConfig
		want string
	}{
		{EndpointConfig{Service: "s3", Type: EndpointGateway}, "S3GatewayEndpoint"},
		{EndpointConfig{Service: "ssm", Type: EndpointInterface}, "SsmInterfaceEndpoint"},
		{EndpointConfig{Service: "ecr.api", Type: EndpointInterface}, "EcrApiInterfaceEndpoint"},
		{EndpointConfig{Service: "ecr.dkr", Type: EndpointInterface}, "EcrDkrInterfaceEndpoint"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, endpointLogicalName(tc.ep))
	}
}

func TestPlan_GatewayEndpointPerAZTables(t *testing.T) {
	plan := mustPlan(t, `
name: prod
cidr: 10.0.0.0/16
nat: per-az
endpoints:
  - service: dynamodb
`)

	tmpl, err := plan.Template()
	require.NoError(t, err)

	ep := tmpl.Resources["DynamodbGatewayEndpoint"]
	assert.Equal(t, []any{
		map[string]any{"Ref": "PrivateRouteTableA"},
		map[string]any{"Ref": "PrivateRouteTableB"},
	}, ep.Properties["RouteTableIds"])
}
