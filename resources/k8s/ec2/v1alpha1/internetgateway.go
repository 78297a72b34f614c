package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// InternetGateway represents an ACK EC2 internet gateway resource.
// +kubebuilder:object:root=true
type InternetGateway struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   InternetGatewaySpec   `json:"spec,omitempty"`
	Status InternetGatewayStatus `json:"status,omitempty"`
}

// InternetGatewaySpec defines the desired state of an internet gateway.
type InternetGatewaySpec struct {
	// VPC is the ID of the VPC to attach the gateway to.
	VPC *string `json:"vpc,omitempty"`

	// VPCRef references a VPC managed in the same cluster.
	VPCRef *AWSResourceReferenceWrapper `json:"vpcRef,omitempty"`

	// Tags are key-value pairs to categorize resources.
	Tags []*Tag `json:"tags,omitempty"`
}

// InternetGatewayStatus defines the observed state of an internet gateway.
type InternetGatewayStatus struct {
	// ACKResourceMetadata contains ACK-specific metadata.
	ACKResourceMetadata *ACKResourceMetadata `json:"ackResourceMetadata,omitempty"`

	// Conditions represent the latest available observations.
	Conditions []*Condition `json:"conditions,omitempty"`

	// InternetGatewayID is the ID of the internet gateway.
	InternetGatewayID *string `json:"internetGatewayID,omitempty"`

	// Attachments describes the VPCs attached to the gateway.
	Attachments []*InternetGatewayAttachment `json:"attachments,omitempty"`
}

// InternetGatewayAttachment describes a VPC attachment.
type InternetGatewayAttachment struct {
	// State is the attachment state.
	State *string `json:"state,omitempty"`

	// VPCID is the ID of the attached VPC.
	VPCID *string `json:"vpcID,omitempty"`
}
