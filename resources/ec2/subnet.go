package ec2

import (
	vpcwire "github.com/lex00/vpcwire-go"
)

// Subnet represents an AWS::EC2::Subnet resource.
type Subnet struct {
	// VpcId references the VPC the subnet lives in.
	VpcId any
	// CidrBlock is the IPv4 CIDR block for the subnet (e.g., "10.0.0.0/24").
	CidrBlock string
	// AvailabilityZone pins the subnet to a zone. Usually Select{Index: n, List: GetAZs{}}.
	AvailabilityZone any
	// MapPublicIpOnLaunch assigns public IPs to instances launched in the subnet.
	MapPublicIpOnLaunch bool
	Tags                []any

	// GetAtt attributes
	NetworkAclAssociationId vpcwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (Subnet) ResourceType() string { return "AWS::EC2::Subnet" }
