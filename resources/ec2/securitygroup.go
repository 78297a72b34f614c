package ec2

import (
	vpcwire "github.com/lex00/vpcwire-go"
)

// SecurityGroup represents an AWS::EC2::SecurityGroup resource.
type SecurityGroup struct {
	// GroupDescription is required by CloudFormation.
	GroupDescription string
	// GroupName is optional; CloudFormation generates one when omitted.
	GroupName string
	// VpcId references the VPC.
	VpcId any
	// SecurityGroupIngress holds SecurityGroup_Ingress rules.
	SecurityGroupIngress []any
	// SecurityGroupEgress holds SecurityGroup_Egress rules.
	SecurityGroupEgress []any
	Tags                []any

	// GetAtt attributes
	GroupId vpcwire.AttrRef `json:"-"`
}

// ResourceType returns the CloudFormation type.
func (SecurityGroup) ResourceType() string { return "AWS::EC2::SecurityGroup" }

// SecurityGroup_Ingress is the inline ingress rule property type.
type SecurityGroup_Ingress struct {
	Description string
	IpProtocol  string
	FromPort    int
	ToPort      int
	// CidrIp admits an IPv4 range.
	CidrIp string
	// SourceSecurityGroupId admits traffic from another security group.
	SourceSecurityGroupId any
}

// SecurityGroup_Egress is the inline egress rule property type.
type SecurityGroup_Egress struct {
	Description string
	IpProtocol  string
	FromPort    int
	ToPort      int
	CidrIp      string
	// DestinationSecurityGroupId restricts traffic to another security group.
	DestinationSecurityGroupId any
}
