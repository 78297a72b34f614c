package network

// Declarations returns every declared value keyed by logical name.
// The build command pairs these runtime values with the AST-discovered
// metadata for the same names.
func Declarations() map[string]any {
	return map[string]any{
		// Parameters
		"EnvName": EnvName,

		// VPC and internet gateway
		"VPC":               VPC,
		"InternetGateway":   InternetGateway,
		"GatewayAttachment": GatewayAttachment,

		// Subnets
		"PublicSubnetA":  PublicSubnetA,
		"PublicSubnetB":  PublicSubnetB,
		"PrivateSubnetA": PrivateSubnetA,
		"PrivateSubnetB": PrivateSubnetB,

		// NAT
		"NATGatewayEIP": NATGatewayEIP,
		"NATGateway":    NATGateway,

		// Routing
		"PublicRouteTable":                    PublicRouteTable,
		"PublicRoute":                         PublicRoute,
		"PublicSubnetARouteTableAssociation":  PublicSubnetARouteTableAssociation,
		"PublicSubnetBRouteTableAssociation":  PublicSubnetBRouteTableAssociation,
		"PrivateRouteTable":                   PrivateRouteTable,
		"PrivateRoute":                        PrivateRoute,
		"PrivateSubnetARouteTableAssociation": PrivateSubnetARouteTableAssociation,
		"PrivateSubnetBRouteTableAssociation": PrivateSubnetBRouteTableAssociation,

		// Endpoints
		"EndpointHTTPSIngress":  EndpointHTTPSIngress,
		"EndpointSecurityGroup": EndpointSecurityGroup,
		"S3GatewayEndpoint":     S3GatewayEndpoint,
		"SSMInterfaceEndpoint":  SSMInterfaceEndpoint,

		// Outputs
		"VpcId":              VpcId,
		"PublicSubnetAId":    PublicSubnetAId,
		"PublicSubnetBId":    PublicSubnetBId,
		"PrivateSubnetAId":   PrivateSubnetAId,
		"PrivateSubnetBId":   PrivateSubnetBId,
		"NATGatewayPublicIP": NATGatewayPublicIP,
	}
}
