package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Tag is an AWS resource tag.
type Tag struct {
	Key   *string `json:"key,omitempty"`
	Value *string `json:"value,omitempty"`
}

// AWSResourceReferenceWrapper points a spec field at another ACK
// resource in the cluster instead of a raw AWS ID.
type AWSResourceReferenceWrapper struct {
	From *AWSResourceReference `json:"from,omitempty"`
}

// AWSResourceReference identifies the referenced resource by name.
type AWSResourceReference struct {
	Name *string `json:"name,omitempty"`
}

// ACKResourceMetadata is the controller-populated identity of the
// reconciled AWS resource.
type ACKResourceMetadata struct {
	ARN            *string `json:"arn,omitempty"`
	OwnerAccountID *string `json:"ownerAccountID,omitempty"`
	Region         *string `json:"region,omitempty"`
}

// Condition is one observed condition of the resource.
type Condition struct {
	Type               *string      `json:"type,omitempty"`
	Status             *string      `json:"status,omitempty"`
	LastTransitionTime *metav1.Time `json:"lastTransitionTime,omitempty"`
	Message            *string      `json:"message,omitempty"`
	Reason             *string      `json:"reason,omitempty"`
}
