// Package network declares the VPC network topology.
//
// Declarations follow the flat block style: named top-level vars,
// direct references between resources (no Ref()/GetAtt() calls), and
// extracted property vars instead of nested struct literals.
//
// Network Topology:
//
//	VPC (10.0.0.0/16)
//	|
//	+-- Public Subnet AZ-a (10.0.0.0/24)
//	|   +-- NAT Gateway -> Private Subnet routing
//	|
//	+-- Public Subnet AZ-b (10.0.1.0/24)
//	|
//	+-- Private Subnet AZ-a (10.0.10.0/24)
//	|
//	+-- Private Subnet AZ-b (10.0.11.0/24)
//	|
//	+-- S3 Gateway Endpoint (private route table)
//	+-- SSM Interface Endpoint (private subnets)
package network

import (
	. "github.com/lex00/vpcwire-go/intrinsics"
	"github.com/lex00/vpcwire-go/resources/ec2"
)

// ----------------------------------------------------------------------------
// VPC
// ----------------------------------------------------------------------------

// VPC is the main Virtual Private Cloud with DNS support enabled.
var VPC = ec2.VPC{
	CidrBlock:          "10.0.0.0/16",
	EnableDnsHostnames: true,
	EnableDnsSupport:   true,
	InstanceTenancy:    "default",
	Tags: []any{
		Tag{Key: "Name", Value: Sub{String: "${EnvName}-vpc"}},
		Tag{Key: "Environment", Value: Sub{String: "${EnvName}"}},
	},
}

// ----------------------------------------------------------------------------
// Internet Gateway
// ----------------------------------------------------------------------------

// InternetGateway provides internet access for public subnets.
var InternetGateway = ec2.InternetGateway{
	Tags: []any{
		Tag{Key: "Name", Value: Sub{String: "${EnvName}-igw"}},
	},
}

// GatewayAttachment attaches the internet gateway to the VPC.
var GatewayAttachment = ec2.VPCGatewayAttachment{
	InternetGatewayId: InternetGateway,
	VpcId:             VPC,
}

// ----------------------------------------------------------------------------
// Public Subnets
// ----------------------------------------------------------------------------

// PublicSubnetA is a public subnet in the first availability zone.
var PublicSubnetA = ec2.Subnet{
	VpcId:               VPC,
	CidrBlock:           "10.0.0.0/24",
	AvailabilityZone:    Select{Index: 0, List: GetAZs{}},
	MapPublicIpOnLaunch: true,
	Tags: []any{
		Tag{Key: "Name", Value: Sub{String: "${EnvName}-public-a"}},
	},
}

// PublicSubnetB is a public subnet in the second availability zone.
var PublicSubnetB = ec2.Subnet{
	VpcId:               VPC,
	CidrBlock:           "10.0.1.0/24",
	AvailabilityZone:    Select{Index: 1, List: GetAZs{}},
	MapPublicIpOnLaunch: true,
	Tags: []any{
		Tag{Key: "Name", Value: Sub{String: "${EnvName}-public-b"}},
	},
}

// ----------------------------------------------------------------------------
// Private Subnets
// ----------------------------------------------------------------------------

// PrivateSubnetA is a private subnet in the first availability zone.
var PrivateSubnetA = ec2.Subnet{
	VpcId:            VPC,
	CidrBlock:        "10.0.10.0/24",
	AvailabilityZone: Select{Index: 0, List: GetAZs{}},
	Tags: []any{
		Tag{Key: "Name", Value: Sub{String: "${EnvName}-private-a"}},
	},
}

// PrivateSubnetB is a private subnet in the second availability zone.
var PrivateSubnetB = ec2.Subnet{
	VpcId:            VPC,
	CidrBlock:        "10.0.11.0/24",
	AvailabilityZone: Select{Index: 1, List: GetAZs{}},
	Tags: []any{
		Tag{Key: "Name", Value: Sub{String: "${EnvName}-private-b"}},
	},
}

// ----------------------------------------------------------------------------
// NAT Gateway (for private subnet internet access)
// ----------------------------------------------------------------------------

// NATGatewayEIP is the Elastic IP for the NAT gateway.
var NATGatewayEIP = ec2.EIP{
	Domain: "vpc",
	Tags: []any{
		Tag{Key: "Name", Value: Sub{String: "${EnvName}-nat-eip"}},
	},
}

// NATGateway provides outbound internet access for private subnets.
// The EIP allocation comes through field access, not GetAtt().
var NATGateway = ec2.NatGateway{
	AllocationId: NATGatewayEIP.AllocationId,
	SubnetId:     PublicSubnetA,
	Tags: []any{
		Tag{Key: "Name", Value: Sub{String: "${EnvName}-nat"}},
	},
}

// ----------------------------------------------------------------------------
// Route Tables - Public
// ----------------------------------------------------------------------------

// PublicRouteTable is the route table for public subnets.
var PublicRouteTable = ec2.RouteTable{
	VpcId: VPC,
	Tags: []any{
		Tag{Key: "Name", Value: Sub{String: "${EnvName}-public-rt"}},
	},
}

// PublicRoute routes internet traffic through the internet gateway.
var PublicRoute = ec2.Route{
	RouteTableId:         PublicRouteTable,
	DestinationCidrBlock: "0.0.0.0/0",
	GatewayId:            InternetGateway,
}

// PublicSubnetARouteTableAssociation associates PublicSubnetA with the public route table.
var PublicSubnetARouteTableAssociation = ec2.SubnetRouteTableAssociation{
	SubnetId:     PublicSubnetA,
	RouteTableId: PublicRouteTable,
}

// PublicSubnetBRouteTableAssociation associates PublicSubnetB with the public route table.
var PublicSubnetBRouteTableAssociation = ec2.SubnetRouteTableAssociation{
	SubnetId:     PublicSubnetB,
	RouteTableId: PublicRouteTable,
}

// ----------------------------------------------------------------------------
// Route Tables - Private
// ----------------------------------------------------------------------------

// PrivateRouteTable is the route table for private subnets.
var PrivateRouteTable = ec2.RouteTable{
	VpcId: VPC,
	Tags: []any{
		Tag{Key: "Name", Value: Sub{String: "${EnvName}-private-rt"}},
	},
}

// PrivateRoute routes internet traffic through the NAT gateway.
var PrivateRoute = ec2.Route{
	RouteTableId:         PrivateRouteTable,
	DestinationCidrBlock: "0.0.0.0/0",
	NatGatewayId:         NATGateway,
}

// PrivateSubnetARouteTableAssociation associates PrivateSubnetA with the private route table.
var PrivateSubnetARouteTableAssociation = ec2.SubnetRouteTableAssociation{
	SubnetId:     PrivateSubnetA,
	RouteTableId: PrivateRouteTable,
}

// PrivateSubnetBRouteTableAssociation associates PrivateSubnetB with the private route table.
var PrivateSubnetBRouteTableAssociation = ec2.SubnetRouteTableAssociation{
	SubnetId:     PrivateSubnetB,
	RouteTableId: PrivateRouteTable,
}
