package ec2

// VPCEndpoint represents an AWS::EC2::VPCEndpoint resource.
//
// Gateway endpoints (S3, DynamoDB) attach to route tables; interface
// endpoints are placed in subnets behind security groups.
type VPCEndpoint struct {
	// ServiceName is the endpoint service (e.g., "com.amazonaws.us-east-1.s3").
	// Usually Sub{String: "com.amazonaws.${AWS::Region}.s3"}.
	ServiceName any
	// VpcEndpointType is "Gateway" or "Interface".
	VpcEndpointType string
	// VpcId references the VPC.
	VpcId any
	// RouteTableIds lists route tables for a gateway endpoint.
	RouteTableIds []any
	// SubnetIds lists subnets for an interface endpoint.
	SubnetIds []any
	// SecurityGroupIds lists security groups for an interface endpoint.
	SecurityGroupIds []any
	// PrivateDnsEnabled associates a private hosted zone (interface endpoints only).
	PrivateDnsEnabled bool
	// PolicyDocument restricts what the endpoint can access.
	PolicyDocument any
}

// ResourceType returns the CloudFormation type.
func (VPCEndpoint) ResourceType() string { return "AWS::EC2::VPCEndpoint" }
