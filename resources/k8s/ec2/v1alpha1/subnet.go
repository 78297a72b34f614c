package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Subnet represents an ACK EC2 Subnet resource.
// +kubebuilder:object:root=true
type Subnet struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   SubnetSpec   `json:"spec,omitempty"`
	Status SubnetStatus `json:"status,omitempty"`
}

// SubnetSpec defines the desired state of a Subnet.
type SubnetSpec struct {
	// AvailabilityZone is the zone name, for example us-east-1a.
	AvailabilityZone *string `json:"availabilityZone,omitempty"`

	// AvailabilityZoneID is the zone ID, an alternative to the name.
	AvailabilityZoneID *string `json:"availabilityZoneID,omitempty"`

	// CIDRBlock is the IPv4 CIDR block for the subnet. Must fall
	// inside the VPC CIDR.
	CIDRBlock *string `json:"cidrBlock,omitempty"`

	// VPCID is the ID of the VPC the subnet belongs to.
	VPCID *string `json:"vpcID,omitempty"`

	// VPCRef references a VPC managed in the same cluster.
	VPCRef *AWSResourceReferenceWrapper `json:"vpcRef,omitempty"`

	// MapPublicIPOnLaunch assigns public IPs to launched instances.
	// Set on public subnets.
	MapPublicIPOnLaunch *bool `json:"mapPublicIPOnLaunch,omitempty"`

	// RouteTableRefs associates the subnet with route tables managed
	// in the same cluster.
	RouteTableRefs []*AWSResourceReferenceWrapper `json:"routeTableRefs,omitempty"`

	// AssignIPv6AddressOnCreation assigns IPv6 addresses on launch.
	AssignIPv6AddressOnCreation *bool `json:"assignIPv6AddressOnCreation,omitempty"`

	// IPv6CIDRBlock is the IPv6 CIDR block for the subnet.
	IPv6CIDRBlock *string `json:"ipv6CIDRBlock,omitempty"`

	// Tags are key-value pairs to categorize resources.
	Tags []*Tag `json:"tags,omitempty"`
}

// SubnetStatus defines the observed state of a Subnet.
type SubnetStatus struct {
	// ACKResourceMetadata contains ACK-specific metadata.
	ACKResourceMetadata *ACKResourceMetadata `json:"ackResourceMetadata,omitempty"`

	// Conditions represent the latest available observations.
	Conditions []*Condition `json:"conditions,omitempty"`

	// SubnetID is the ID of the subnet.
	SubnetID *string `json:"subnetID,omitempty"`

	// AvailableIPAddressCount is the number of unused addresses.
	AvailableIPAddressCount *int64 `json:"availableIPAddressCount,omitempty"`

	// DefaultForAZ indicates the default subnet for the zone.
	DefaultForAZ *bool `json:"defaultForAZ,omitempty"`

	// OwnerID is the ID of the AWS account that owns the subnet.
	OwnerID *string `json:"ownerID,omitempty"`

	// State is the current state of the subnet.
	State *string `json:"state,omitempty"`
}
