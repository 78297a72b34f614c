package ec2

import (
	vpcwire "github.com/lex00/vpcwire-go"
)

// VPC represents an AWS::EC2::VPC resource.
type VPC struct {
	// CidrBlock is the primary IPv4 CIDR block for the VPC (e.g., "10.0.0.0/16").
	CidrBlock string
	// EnableDnsHostnames indicates whether instances launched in the VPC get DNS hostnames.
	EnableDnsHostnames bool
	// EnableDnsSupport indicates whether DNS resolution is supported for the VPC.
	EnableDnsSupport bool
	// InstanceTenancy is the allowed tenancy of instances (default, dedicated, host).
	InstanceTenancy string
	Tags            []any

	// GetAtt attributes
	DefaultSecurityGroup vpcwire.AttrRef `json:"-"`
	DefaultNetworkAcl    vpcwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (VPC) ResourceType() string { return "AWS::EC2::VPC" }
