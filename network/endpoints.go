// Package network declares the VPC network topology.
//
// This file contains the VPC endpoints and their security group.
package network

import (
	. "github.com/lex00/vpcwire-go/intrinsics"
	"github.com/lex00/vpcwire-go/resources/ec2"
)

// ----------------------------------------------------------------------------
// Endpoint Security Group
// ----------------------------------------------------------------------------

// EndpointHTTPSIngress allows HTTPS from inside the VPC only.
var EndpointHTTPSIngress = ec2.SecurityGroup_Ingress{
	Description: "Allow HTTPS from the VPC",
	IpProtocol:  "tcp",
	FromPort:    443,
	ToPort:      443,
	CidrIp:      "10.0.0.0/16",
}

// EndpointSecurityGroup guards the interface endpoints.
var EndpointSecurityGroup = ec2.SecurityGroup{
	GroupDescription:     "Security group for interface endpoints - allows HTTPS from the VPC",
	VpcId:                VPC,
	SecurityGroupIngress: []any{EndpointHTTPSIngress},
	Tags: []any{
		Tag{Key: "Name", Value: Sub{String: "${EnvName}-endpoint-sg"}},
	},
}

// ----------------------------------------------------------------------------
// Gateway Endpoints
// ----------------------------------------------------------------------------

// S3GatewayEndpoint gives private subnets S3 access without NAT traffic.
var S3GatewayEndpoint = ec2.VPCEndpoint{
	VpcId:           VPC,
	VpcEndpointType: "Gateway",
	ServiceName:     Sub{String: "com.amazonaws.${AWS::Region}.s3"},
	RouteTableIds:   []any{PrivateRouteTable},
}

// ----------------------------------------------------------------------------
// Interface Endpoints
// ----------------------------------------------------------------------------

// SSMInterfaceEndpoint provides Systems Manager access from private subnets.
var SSMInterfaceEndpoint = ec2.VPCEndpoint{
	VpcId:             VPC,
	VpcEndpointType:   "Interface",
	ServiceName:       Sub{String: "com.amazonaws.${AWS::Region}.ssm"},
	SubnetIds:         []any{PrivateSubnetA, PrivateSubnetB},
	SecurityGroupIds:  []any{EndpointSecurityGroup},
	PrivateDnsEnabled: true,
}
