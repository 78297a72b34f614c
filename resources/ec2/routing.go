package ec2

// RouteTable represents an AWS::EC2::RouteTable resource.
type RouteTable struct {
	// VpcId references the VPC the table belongs to.
	VpcId any
	Tags  []any
}

// ResourceType returns the CloudFormation type.
func (RouteTable) ResourceType() string { return "AWS::EC2::RouteTable" }

// Route represents an AWS::EC2::Route resource.
// Exactly one target (GatewayId, NatGatewayId, VpcEndpointId, ...) is set.
type Route struct {
	// RouteTableId references the table the route is added to.
	RouteTableId any
	// DestinationCidrBlock is the IPv4 destination match (e.g., "0.0.0.0/0").
	DestinationCidrBlock string
	// GatewayId targets an internet gateway or virtual private gateway.
	GatewayId any
	// NatGatewayId targets a NAT gateway.
	NatGatewayId any
	// VpcEndpointId targets a gateway VPC endpoint.
	VpcEndpointId any
}

// ResourceType returns the CloudFormation type.
func (Route) ResourceType() string { return "AWS::EC2::Route" }

// SubnetRouteTableAssociation represents an AWS::EC2::SubnetRouteTableAssociation resource.
type SubnetRouteTableAssociation struct {
	// SubnetId references the subnet.
	SubnetId any
	// RouteTableId references the route table.
	RouteTableId any
}

// ResourceType returns the CloudFormation type.
func (SubnetRouteTableAssociation) ResourceType() string {
	return "AWS::EC2::SubnetRouteTableAssociation"
}
