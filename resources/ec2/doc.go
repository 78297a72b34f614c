// Package ec2 contains CloudFormation resource types for AWS::EC2 networking.
//
// Resources are declared as package-level vars and referenced directly:
//
//	var VPC = ec2.VPC{CidrBlock: "10.0.0.0/16"}
//	var PublicSubnetA = ec2.Subnet{VpcId: VPC, CidrBlock: "10.0.0.0/24"}
//
// Reference fields (VpcId, SubnetId, RouteTableId, ...) are typed any so
// they accept another resource value, an intrinsic, or a literal ID string.
// AttrRef fields expose GetAtt attributes (NATGatewayEIP.AllocationId).
package ec2
