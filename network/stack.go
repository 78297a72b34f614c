// Package network declares the VPC network topology.
//
// This file contains the stack parameters and outputs.
package network

import (
	. "github.com/lex00/vpcwire-go/intrinsics"
)

// EnvName names the environment; it prefixes every Name tag.
var EnvName = Parameter{
	Type:           "String",
	Description:    "Environment name used as a resource name prefix",
	Default:        "dev",
	AllowedPattern: "[a-z][a-z0-9-]*",
}

// VpcId exports the VPC for dependent stacks.
var VpcId = Output{
	Description: "The VPC id",
	Value:       VPC,
	ExportName:  Sub{String: "${AWS::StackName}-VpcId"},
}

// PublicSubnetAId exports the first public subnet.
var PublicSubnetAId = Output{
	Description: "Public subnet in the first availability zone",
	Value:       PublicSubnetA,
	ExportName:  Sub{String: "${AWS::StackName}-PublicSubnetAId"},
}

// PublicSubnetBId exports the second public subnet.
var PublicSubnetBId = Output{
	Description: "Public subnet in the second availability zone",
	Value:       PublicSubnetB,
	ExportName:  Sub{String: "${AWS::StackName}-PublicSubnetBId"},
}

// PrivateSubnetAId exports the first private subnet.
var PrivateSubnetAId = Output{
	Description: "Private subnet in the first availability zone",
	Value:       PrivateSubnetA,
	ExportName:  Sub{String: "${AWS::StackName}-PrivateSubnetAId"},
}

// PrivateSubnetBId exports the second private subnet.
var PrivateSubnetBId = Output{
	Description: "Private subnet in the second availability zone",
	Value:       PrivateSubnetB,
	ExportName:  Sub{String: "${AWS::StackName}-PrivateSubnetBId"},
}

// NATGatewayPublicIP exposes the NAT gateway address for allow-listing.
var NATGatewayPublicIP = Output{
	Description: "Public IP of the NAT gateway",
	Value:       NATGatewayEIP.PublicIp,
}
