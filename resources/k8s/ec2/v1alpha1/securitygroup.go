package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// SecurityGroup represents an ACK EC2 SecurityGroup resource.
// +kubebuilder:object:root=true
type SecurityGroup struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   SecurityGroupSpec   `json:"spec,omitempty"`
	Status SecurityGroupStatus `json:"status,omitempty"`
}

// SecurityGroupSpec defines the desired state of a SecurityGroup.
type SecurityGroupSpec struct {
	// Description is required by EC2 and immutable after creation.
	Description *string `json:"description,omitempty"`

	// Name is the security group name, unique within the VPC.
	Name *string `json:"name,omitempty"`

	// VPCID is the ID of the VPC the group belongs to.
	VPCID *string `json:"vpcID,omitempty"`

	// VPCRef references a VPC managed in the same cluster.
	VPCRef *AWSResourceReferenceWrapper `json:"vpcRef,omitempty"`

	// IngressRules are the inbound rules.
	IngressRules []*IPPermission `json:"ingressRules,omitempty"`

	// EgressRules are the outbound rules.
	EgressRules []*IPPermission `json:"egressRules,omitempty"`

	// Tags are key-value pairs to categorize resources.
	Tags []*Tag `json:"tags,omitempty"`
}

// SecurityGroupStatus defines the observed state of a SecurityGroup.
type SecurityGroupStatus struct {
	// ACKResourceMetadata contains ACK-specific metadata.
	ACKResourceMetadata *ACKResourceMetadata `json:"ackResourceMetadata,omitempty"`

	// Conditions represent the latest available observations.
	Conditions []*Condition `json:"conditions,omitempty"`

	// ID is the ID of the security group.
	ID *string `json:"id,omitempty"`

	// OwnerID is the ID of the AWS account that owns the group.
	OwnerID *string `json:"ownerID,omitempty"`
}

// IPPermission is one security group rule. IPProtocol -1 with no port
// range means all traffic.
type IPPermission struct {
	FromPort   *int64  `json:"fromPort,omitempty"`
	ToPort     *int64  `json:"toPort,omitempty"`
	IPProtocol *string `json:"ipProtocol,omitempty"`

	// IPRanges are the IPv4 source or destination ranges.
	IPRanges []*IPRange `json:"ipRanges,omitempty"`

	// IPv6Ranges are the IPv6 source or destination ranges.
	IPv6Ranges []*IPv6Range `json:"ipv6Ranges,omitempty"`

	// PrefixListIDs are managed prefix list sources.
	PrefixListIDs []*PrefixListID `json:"prefixListIDs,omitempty"`

	// UserIDGroupPairs are source security groups.
	UserIDGroupPairs []*UserIDGroupPair `json:"userIDGroupPairs,omitempty"`
}

// IPRange is an IPv4 range with an optional rule description.
type IPRange struct {
	CIDRIP      *string `json:"cidrIP,omitempty"`
	Description *string `json:"description,omitempty"`
}

// IPv6Range is an IPv6 range with an optional rule description.
type IPv6Range struct {
	CIDRIPv6    *string `json:"cidrIPv6,omitempty"`
	Description *string `json:"description,omitempty"`
}

// PrefixListID references a managed prefix list.
type PrefixListID struct {
	Description  *string `json:"description,omitempty"`
	PrefixListID *string `json:"prefixListID,omitempty"`
}

// UserIDGroupPair references another security group as a rule source.
type UserIDGroupPair struct {
	Description            *string `json:"description,omitempty"`
	GroupID                *string `json:"groupID,omitempty"`
	GroupName              *string `json:"groupName,omitempty"`
	UserID                 *string `json:"userID,omitempty"`
	VPCID                  *string `json:"vpcID,omitempty"`
	VPCPeeringConnectionID *string `json:"vpcPeeringConnectionID,omitempty"`
}
