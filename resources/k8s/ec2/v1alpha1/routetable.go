package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// RouteTable represents an ACK EC2 route table resource.
// +kubebuilder:object:root=true
type RouteTable struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   RouteTableSpec   `json:"spec,omitempty"`
	Status RouteTableStatus `json:"status,omitempty"`
}

// RouteTableSpec defines the desired state of a route table.
type RouteTableSpec struct {
	// VPCID is the ID of the VPC the table belongs to.
	VPCID *string `json:"vpcID,omitempty"`

	// VPCRef references a VPC managed in the same cluster.
	VPCRef *AWSResourceReferenceWrapper `json:"vpcRef,omitempty"`

	// Routes are the routes in the table.
	Routes []*CreateRouteInput `json:"routes,omitempty"`

	// Tags are key-value pairs to categorize resources.
	Tags []*Tag `json:"tags,omitempty"`
}

// CreateRouteInput describes one route in a route table.
type CreateRouteInput struct {
	// DestinationCIDRBlock is the IPv4 destination of the route.
	DestinationCIDRBlock *string `json:"destinationCIDRBlock,omitempty"`

	// DestinationIPv6CIDRBlock is the IPv6 destination of the route.
	DestinationIPv6CIDRBlock *string `json:"destinationIPv6CIDRBlock,omitempty"`

	// GatewayID is the ID of an internet gateway target.
	GatewayID *string `json:"gatewayID,omitempty"`

	// GatewayRef references an InternetGateway managed in the same
	// cluster.
	GatewayRef *AWSResourceReferenceWrapper `json:"gatewayRef,omitempty"`

	// NATGatewayID is the ID of a NAT gateway target.
	NATGatewayID *string `json:"natGatewayID,omitempty"`

	// NATGatewayRef references a NATGateway managed in the same
	// cluster.
	NATGatewayRef *AWSResourceReferenceWrapper `json:"natGatewayRef,omitempty"`
}

// RouteTableStatus defines the observed state of a route table.
type RouteTableStatus struct {
	// ACKResourceMetadata contains ACK-specific metadata.
	ACKResourceMetadata *ACKResourceMetadata `json:"ackResourceMetadata,omitempty"`

	// Conditions represent the latest available observations.
	Conditions []*Condition `json:"conditions,omitempty"`

	// RouteTableID is the ID of the route table.
	RouteTableID *string `json:"routeTableID,omitempty"`

	// OwnerID is the ID of the AWS account that owns the table.
	OwnerID *string `json:"ownerID,omitempty"`
}
