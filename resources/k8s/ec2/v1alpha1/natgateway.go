package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// NATGateway represents an ACK EC2 NAT gateway resource.
// +kubebuilder:object:root=true
type NATGateway struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   NATGatewaySpec   `json:"spec,omitempty"`
	Status NATGatewayStatus `json:"status,omitempty"`
}

// NATGatewaySpec defines the desired state of a NAT gateway.
type NATGatewaySpec struct {
	// AllocationID is the allocation ID of an Elastic IP to associate
	// with the gateway. Required for public connectivity.
	AllocationID *string `json:"allocationID,omitempty"`

	// AllocationRef references an ElasticIPAddress managed in the
	// same cluster.
	AllocationRef *AWSResourceReferenceWrapper `json:"allocationRef,omitempty"`

	// ConnectivityType is public or private. Defaults to public.
	ConnectivityType *string `json:"connectivityType,omitempty"`

	// SubnetID is the ID of the subnet to place the gateway in.
	SubnetID *string `json:"subnetID,omitempty"`

	// SubnetRef references a Subnet managed in the same cluster.
	SubnetRef *AWSResourceReferenceWrapper `json:"subnetRef,omitempty"`

	// Tags are key-value pairs to categorize resources.
	Tags []*Tag `json:"tags,omitempty"`
}

// NATGatewayStatus defines the observed state of a NAT gateway.
type NATGatewayStatus struct {
	// ACKResourceMetadata contains ACK-specific metadata.
	ACKResourceMetadata *ACKResourceMetadata `json:"ackResourceMetadata,omitempty"`

	// Conditions represent the latest available observations.
	Conditions []*Condition `json:"conditions,omitempty"`

	// NATGatewayID is the ID of the NAT gateway.
	NATGatewayID *string `json:"natGatewayID,omitempty"`

	// NATGatewayAddresses describes the addresses associated with
	// the gateway.
	NATGatewayAddresses []*NATGatewayAddress `json:"natGatewayAddresses,omitempty"`

	// State is the current state of the NAT gateway.
	State *string `json:"state,omitempty"`

	// FailureMessage explains why the gateway could not be created.
	FailureMessage *string `json:"failureMessage,omitempty"`
}

// NATGatewayAddress describes an IP address associated with a NAT
// gateway.
type NATGatewayAddress struct {
	// AllocationID is the allocation ID of the Elastic IP.
	AllocationID *string `json:"allocationID,omitempty"`

	// NetworkInterfaceID is the ID of the network interface.
	NetworkInterfaceID *string `json:"networkInterfaceID,omitempty"`

	// PrivateIP is the private IP address.
	PrivateIP *string `json:"privateIP,omitempty"`

	// PublicIP is the public IP address.
	PublicIP *string `json:"publicIP,omitempty"`
}
