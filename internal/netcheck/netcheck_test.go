package netcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vpcwire "github.com/lex00/vpcwire-go"
)

func ref(name string) map[string]any {
	return map[string]any{"Ref": name}
}

// goodTemplate builds a two-subnet topology that passes every check.
func goodTemplate() *vpcwire.Template {
	return &vpcwire.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Resources: map[string]vpcwire.ResourceDef{
			"VPC": {Type: "AWS::EC2::VPC", Properties: map[string]any{
				"CidrBlock": "10.0.0.0/16",
			}},
			"InternetGateway": {Type: "AWS::EC2::InternetGateway", Properties: map[string]any{}},
			"GatewayAttachment": {Type: "AWS::EC2::VPCGatewayAttachment", Properties: map[string]any{
				"VpcId":             ref("VPC"),
				"InternetGatewayId": ref("InternetGateway"),
			}},
			"PublicSubnet": {Type: "AWS::EC2::Subnet", Properties: map[string]any{
				"VpcId":               ref("VPC"),
				"CidrBlock":           "10.0.0.0/24",
				"MapPublicIpOnLaunch": true,
			}},
			"PrivateSubnet": {Type: "AWS::EC2::Subnet", Properties: map[string]any{
				"VpcId":     ref("VPC"),
				"CidrBlock": "10.0.1.0/24",
			}},
			"NATGateway": {Type: "AWS::EC2::NatGateway", Properties: map[string]any{
				"SubnetId": ref("PublicSubnet"),
			}},
			"PublicRouteTable": {Type: "AWS::EC2::RouteTable", Properties: map[string]any{
				"VpcId": ref("VPC"),
			}},
			"PrivateRouteTable": {Type: "AWS::EC2::RouteTable", Properties: map[string]any{
				"VpcId": ref("VPC"),
			}},
			"PublicRoute": {Type: "AWS::EC2::Route", Properties: map[string]any{
				"RouteTableId":         ref("PublicRouteTable"),
				"DestinationCidrBlock": "0.0.0.0/0",
				"GatewayId":            ref("InternetGateway"),
			}},
			"PrivateRoute": {Type: "AWS::EC2::Route", Properties: map[string]any{
				"RouteTableId":         ref("PrivateRouteTable"),
				"DestinationCidrBlock": "0.0.0.0/0",
				"NatGatewayId":         ref("NATGateway"),
			}},
			"PublicAssociation": {Type: "AWS::EC2::SubnetRouteTableAssociation", Properties: map[string]any{
				"SubnetId":     ref("PublicSubnet"),
				"RouteTableId": ref("PublicRouteTable"),
			}},
			"PrivateAssociation": {Type: "AWS::EC2::SubnetRouteTableAssociation", Properties: map[string]any{
				"SubnetId":     ref("PrivateSubnet"),
				"RouteTableId": ref("PrivateRouteTable"),
			}},
		},
	}
}

func findingCodes(result Result) []string {
	var codes []string
	for _, f := range result.Findings {
		codes = append(codes, f.Code)
	}
	return codes
}

func TestCheck_CleanTopology(t *testing.T) {
	result := Check(goodTemplate())
	assert.True(t, result.Passed)
	assert.Empty(t, result.Findings)
}

func TestCheck_SubnetOutsideVPC(t *testing.T) {
	tmpl := goodTemplate()
	res := tmpl.Resources["PrivateSubnet"]
	res.Properties["CidrBlock"] = "192.168.1.0/24"
	tmpl.Resources["PrivateSubnet"] = res

	result := Check(tmpl)
	assert.False(t, result.Passed)
	assert.Contains(t, findingCodes(result), "NET001")
}

func TestCheck_OverlappingSubnets(t *testing.T) {
	tmpl := goodTemplate()
	res := tmpl.Resources["PrivateSubnet"]
	res.Properties["CidrBlock"] = "10.0.0.128/25"
	tmpl.Resources["PrivateSubnet"] = res

	result := Check(tmpl)
	assert.False(t, result.Passed)
	assert.Contains(t, findingCodes(result), "NET002")
}

func TestCheck_NATInPrivateSubnet(t *testing.T) {
	tmpl := goodTemplate()
	res := tmpl.Resources["NATGateway"]
	res.Properties["SubnetId"] = ref("PrivateSubnet")
	tmpl.Resources["NATGateway"] = res

	result := Check(tmpl)
	assert.False(t, result.Passed)
	assert.Contains(t, findingCodes(result), "NET003")
}

func TestCheck_MissingAssociation(t *testing.T) {
	tmpl := goodTemplate()
	delete(tmpl.Resources, "PrivateAssociation")

	result := Check(tmpl)
	// NET004 is a warning, so the check still passes
	assert.True(t, result.Passed)
	assert.Contains(t, findingCodes(result), "NET004")
}

func TestCheck_DuplicateAssociation(t *testing.T) {
	tmpl := goodTemplate()
	tmpl.Resources["ExtraAssociation"] = vpcwire.ResourceDef{
		Type: "AWS::EC2::SubnetRouteTableAssociation",
		Properties: map[string]any{
			"SubnetId":     ref("PrivateSubnet"),
			"RouteTableId": ref("PublicRouteTable"),
		},
	}

	result := Check(tmpl)
	// A second association for the same subnet fails at deploy time
	assert.False(t, result.Passed)
	assert.Contains(t, findingCodes(result), "NET004")
}

func TestCheck_PrivateSubnetWithoutNATRoute(t *testing.T) {
	tmpl := goodTemplate()
	delete(tmpl.Resources, "PrivateRoute")

	result := Check(tmpl)
	assert.Contains(t, findingCodes(result), "NET005")
}

func TestCheck_NoNATMeansIsolatedPrivateIsFine(t *testing.T) {
	tmpl := goodTemplate()
	delete(tmpl.Resources, "NATGateway")
	delete(tmpl.Resources, "PrivateRoute")

	result := Check(tmpl)
	assert.NotContains(t, findingCodes(result), "NET005")
}

func TestCheck_EndpointSecurityGroupOpenIngress(t *testing.T) {
	tmpl := goodTemplate()
	tmpl.Resources["EndpointSecurityGroup"] = vpcwire.ResourceDef{
		Type: "AWS::EC2::SecurityGroup",
		Properties: map[string]any{
			"GroupDescription": "Interface endpoint access",
			"VpcId":            ref("VPC"),
			"SecurityGroupIngress": []any{
				map[string]any{
					"IpProtocol": "tcp",
					"FromPort":   float64(443),
					"ToPort":     float64(443),
					"CidrIp":     "0.0.0.0/0",
				},
			},
		},
	}
	tmpl.Resources["SSMEndpoint"] = vpcwire.ResourceDef{
		Type: "AWS::EC2::VPCEndpoint",
		Properties: map[string]any{
			"VpcId":            ref("VPC"),
			"VpcEndpointType":  "Interface",
			"ServiceName":      "com.amazonaws.us-east-1.ssm",
			"SecurityGroupIds": []any{ref("EndpointSecurityGroup")},
		},
	}

	result := Check(tmpl)
	assert.Contains(t, findingCodes(result), "NET006")
}

func TestCheck_EndpointSecurityGroupRestrictedIngress(t *testing.T) {
	tmpl := goodTemplate()
	tmpl.Resources["EndpointSecurityGroup"] = vpcwire.ResourceDef{
		Type: "AWS::EC2::SecurityGroup",
		Properties: map[string]any{
			"GroupDescription": "Interface endpoint access",
			"VpcId":            ref("VPC"),
			"SecurityGroupIngress": []any{
				map[string]any{
					"IpProtocol": "tcp",
					"FromPort":   float64(443),
					"ToPort":     float64(443),
					"CidrIp":     "10.0.0.0/16",
				},
			},
		},
	}
	tmpl.Resources["SSMEndpoint"] = vpcwire.ResourceDef{
		Type: "AWS::EC2::VPCEndpoint",
		Properties: map[string]any{
			"VpcId":            ref("VPC"),
			"VpcEndpointType":  "Interface",
			"ServiceName":      "com.amazonaws.us-east-1.ssm",
			"SecurityGroupIds": []any{ref("EndpointSecurityGroup")},
		},
	}

	result := Check(tmpl)
	require.True(t, result.Passed)
	assert.NotContains(t, findingCodes(result), "NET006")
}

func TestCheck_UnattachedGatewayEndpoint(t *testing.T) {
	tmpl := goodTemplate()
	tmpl.Resources["S3Endpoint"] = vpcwire.ResourceDef{
		Type: "AWS::EC2::VPCEndpoint",
		Properties: map[string]any{
			"VpcId":           ref("VPC"),
			"VpcEndpointType": "Gateway",
			"ServiceName":     "com.amazonaws.us-east-1.s3",
		},
	}

	result := Check(tmpl)
	// Warning level: the template deploys, the endpoint just does nothing
	assert.True(t, result.Passed)
	assert.Contains(t, findingCodes(result), "NET007")
}

func TestCheck_AttachedGatewayEndpoint(t *testing.T) {
	tmpl := goodTemplate()
	tmpl.Resources["S3Endpoint"] = vpcwire.ResourceDef{
		Type: "AWS::EC2::VPCEndpoint",
		Properties: map[string]any{
			"VpcId":         ref("VPC"),
			"ServiceName":   "com.amazonaws.us-east-1.s3",
			"RouteTableIds": []any{ref("PrivateRouteTable")},
		},
	}

	result := Check(tmpl)
	assert.NotContains(t, findingCodes(result), "NET007")
}

func TestCheck_InterfaceEndpointNeedsNoRouteTables(t *testing.T) {
	tmpl := goodTemplate()
	tmpl.Resources["SSMEndpoint"] = vpcwire.ResourceDef{
		Type: "AWS::EC2::VPCEndpoint",
		Properties: map[string]any{
			"VpcId":           ref("VPC"),
			"VpcEndpointType": "Interface",
			"ServiceName":     "com.amazonaws.us-east-1.ssm",
		},
	}

	result := Check(tmpl)
	assert.NotContains(t, findingCodes(result), "NET007")
}
