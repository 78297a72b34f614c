package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// VPC represents an ACK EC2 VPC resource.
// +kubebuilder:object:root=true
type VPC struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   VPCSpec   `json:"spec,omitempty"`
	Status VPCStatus `json:"status,omitempty"`
}

// VPCSpec defines the desired state of a VPC.
type VPCSpec struct {
	// CIDRBlocks are the IPv4 CIDR blocks to associate with the VPC.
	// The first entry is the primary block.
	CIDRBlocks []*string `json:"cidrBlocks,omitempty"`

	// EnableDNSHostnames gives instances public DNS hostnames.
	// Requires EnableDNSSupport.
	EnableDNSHostnames *bool `json:"enableDNSHostnames,omitempty"`

	// EnableDNSSupport enables DNS resolution through the Amazon
	// provided DNS server.
	EnableDNSSupport *bool `json:"enableDNSSupport,omitempty"`

	// InstanceTenancy is default, dedicated, or host.
	InstanceTenancy *string `json:"instanceTenancy,omitempty"`

	// Tags are key-value pairs to categorize resources.
	Tags []*Tag `json:"tags,omitempty"`
}

// VPCStatus defines the observed state of a VPC.
type VPCStatus struct {
	// ACKResourceMetadata contains ACK-specific metadata.
	ACKResourceMetadata *ACKResourceMetadata `json:"ackResourceMetadata,omitempty"`

	// Conditions represent the latest available observations.
	Conditions []*Condition `json:"conditions,omitempty"`

	// VPCID is the ID of the VPC.
	VPCID *string `json:"vpcID,omitempty"`

	// CIDRBlockAssociationSet lists the associated CIDR blocks and
	// their association state.
	CIDRBlockAssociationSet []*VPCCIDRBlockAssociation `json:"cidrBlockAssociationSet,omitempty"`

	// DHCPOptionsID is the ID of the DHCP options set.
	DHCPOptionsID *string `json:"dhcpOptionsID,omitempty"`

	// IsDefault indicates whether this is the account's default VPC.
	IsDefault *bool `json:"isDefault,omitempty"`

	// OwnerID is the ID of the AWS account that owns the VPC.
	OwnerID *string `json:"ownerID,omitempty"`

	// State is the current state of the VPC.
	State *string `json:"state,omitempty"`
}

// VPCCIDRBlockAssociation is one CIDR block associated with the VPC.
type VPCCIDRBlockAssociation struct {
	AssociationID  *string            `json:"associationID,omitempty"`
	CIDRBlock      *string            `json:"cidrBlock,omitempty"`
	CIDRBlockState *VPCCIDRBlockState `json:"cidrBlockState,omitempty"`
}

// VPCCIDRBlockState is the association state of a CIDR block.
type VPCCIDRBlockState struct {
	State         *string `json:"state,omitempty"`
	StatusMessage *string `json:"statusMessage,omitempty"`
}
