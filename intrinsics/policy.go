// Package intrinsics provides CloudFormation intrinsic functions.
// This file contains VPC endpoint policy types and slice helpers.
package intrinsics

// Json is a shorthand for map[string]any.
// Used for inline JSON objects like endpoint policy Condition blocks.
type Json = map[string]any

// List creates a typed slice from the given items.
// Avoids verbose slice type annotations in struct literals.
//
// Example:
//
//	RouteTableIds: List[any](PublicRouteTable, PrivateRouteTable),
func List[T any](items ...T) []T {
	return items
}

// Any creates a []any slice from the given items.
// Use for fields typed as []any that accept mixed types or intrinsics.
//
// Example:
//
//	SecurityGroupIds: Any(EndpointSecurityGroup),
func Any(items ...any) []any {
	return items
}

// PolicyDocument represents a VPC endpoint policy document.
//
// Example:
//
//	var S3EndpointPolicy = PolicyDocument{
//	    Version:   "2012-10-17",
//	    Statement: []any{S3ReadOnlyStatement},
//	}
type PolicyDocument struct {
	Version   string `json:"Version,omitempty"`
	Statement []any  `json:"Statement"`
}

// Statement is a single policy statement.
type Statement struct {
	Sid       string `json:"Sid,omitempty"`
	Effect    string `json:"Effect"`
	Principal any    `json:"Principal,omitempty"`
	Action    any    `json:"Action,omitempty"`
	Resource  any    `json:"Resource,omitempty"`
	Condition Json   `json:"Condition,omitempty"`
}
