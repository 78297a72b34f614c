// Package v1alpha1 contains ACK EC2 resource types for exporting VPC
// topologies to Kubernetes clusters running the ACK EC2 controller.
//
// The types mirror the ec2.services.k8s.aws/v1alpha1 API group: VPC,
// Subnet, InternetGateway, NATGateway, ElasticIPAddress, RouteTable,
// and SecurityGroup. Cross-resource wiring uses ACK reference wrappers
// (vpcRef, subnetRef, allocationRef) so the controller resolves IDs at
// reconcile time instead of requiring them up front.
//
// Example:
//
//	import (
//		ec2v1alpha1 "github.com/lex00/vpcwire-go/resources/k8s/ec2/v1alpha1"
//		metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
//	)
//
//	var vpc = ec2v1alpha1.VPC{
//		ObjectMeta: metav1.ObjectMeta{
//			Name:      "prod-vpc",
//			Namespace: "ack-system",
//		},
//		Spec: ec2v1alpha1.VPCSpec{
//			CIDRBlocks:         []*string{&cidr},
//			EnableDNSHostnames: &enabled,
//		},
//	}
package v1alpha1
