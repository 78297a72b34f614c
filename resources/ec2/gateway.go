package ec2

import (
	vpcwire "github.com/lex00/vpcwire-go"
)

// InternetGateway represents an AWS::EC2::InternetGateway resource.
type InternetGateway struct {
	Tags []any

	// GetAtt attributes
	InternetGatewayId vpcwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (InternetGateway) ResourceType() string { return "AWS::EC2::InternetGateway" }

// VPCGatewayAttachment represents an AWS::EC2::VPCGatewayAttachment resource.
// It attaches an internet gateway (or VPN gateway) to a VPC. NAT gateways
// and routes targeting the internet gateway must wait for this attachment.
type VPCGatewayAttachment struct {
	// InternetGatewayId references the internet gateway to attach.
	InternetGatewayId any
	// VpnGatewayId references a VPN gateway instead. Exactly one of the two is set.
	VpnGatewayId any
	// VpcId references the VPC.
	VpcId any
}

// ResourceType returns the CloudFormation type.
func (VPCGatewayAttachment) ResourceType() string { return "AWS::EC2::VPCGatewayAttachment" }

// EIP represents an AWS::EC2::EIP resource.
type EIP struct {
	// Domain indicates whether the address is for use with a VPC ("vpc").
	Domain string
	Tags   []any

	// GetAtt attributes
	AllocationId vpcwire.AttrRef `json:"-"`
	PublicIp     vpcwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (EIP) ResourceType() string { return "AWS::EC2::EIP" }

// NatGateway represents an AWS::EC2::NatGateway resource.
type NatGateway struct {
	// AllocationId is the EIP allocation for a public NAT gateway.
	AllocationId any
	// SubnetId references the public subnet the gateway is placed in.
	SubnetId any
	// ConnectivityType is "public" (default) or "private".
	ConnectivityType string
	Tags             []any

	// GetAtt attributes
	NatGatewayId vpcwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (NatGateway) ResourceType() string { return "AWS::EC2::NatGateway" }
