// Package intrinsics provides CloudFormation intrinsic functions.
//
// This package re-exports the core intrinsic types from cloudformation-schema-go
// and adds template parameter and endpoint policy types.
//
// Core intrinsic functions:
//
//	Ref{"VPC"} → {"Ref": "VPC"}
//	Sub{"${AWS::StackName}-vpc"} → {"Fn::Sub": "${AWS::StackName}-vpc"}
//	Select{Index: 0, List: GetAZs{}} → {"Fn::Select": [0, {"Fn::GetAZs": ""}]}
//	Cidr{IPBlock: "10.0.0.0/16", Count: 4, CidrBits: 8} → {"Fn::Cidr": [...]}
//
// Pseudo-parameters:
//
//	AWS_REGION, AWS_ACCOUNT_ID, AWS_STACK_NAME, etc.
package intrinsics

import (
	"encoding/json"

	"github.com/lex00/cloudformation-schema-go/intrinsics"
)

// Re-export core intrinsic types from the shared package.
type (
	// Ref represents a CloudFormation Ref intrinsic function.
	Ref = intrinsics.Ref

	// GetAtt represents a CloudFormation Fn::GetAtt intrinsic function.
	GetAtt = intrinsics.GetAtt

	// Sub represents a CloudFormation Fn::Sub intrinsic function.
	Sub = intrinsics.Sub

	// SubWithMap is Fn::Sub with a variable map.
	SubWithMap = intrinsics.SubWithMap

	// Join represents a CloudFormation Fn::Join intrinsic function.
	Join = intrinsics.Join

	// Select represents a CloudFormation Fn::Select intrinsic function.
	Select = intrinsics.Select

	// GetAZs represents a CloudFormation Fn::GetAZs intrinsic function.
	GetAZs = intrinsics.GetAZs

	// Cidr represents a CloudFormation Fn::Cidr intrinsic function.
	Cidr = intrinsics.Cidr

	// Split represents a CloudFormation Fn::Split intrinsic function.
	Split = intrinsics.Split

	// ImportValue represents a CloudFormation Fn::ImportValue intrinsic function.
	ImportValue = intrinsics.ImportValue

	// Tag represents a CloudFormation resource tag.
	Tag = intrinsics.Tag
)

// Output declares a CloudFormation stack output.
//
// Example:
//
//	var VPCId = Output{
//	    Description: "ID of the VPC",
//	    Value:       VPC,
//	    ExportName:  Sub{String: "${AWS::StackName}-VPC"},
//	}
type Output struct {
	Description string `json:"Description,omitempty"`
	Value       any    `json:"Value"`
	ExportName  any    `json:"ExportName,omitempty"`
}

// Param creates a Ref for a CloudFormation parameter.
// Re-exported from shared package.
var Param = intrinsics.Param

// Parameter defines a CloudFormation template parameter with full metadata.
// When used as a value in resource properties, it serializes to {"Ref": "ParameterName"}.
//
// Example:
//
//	var EnvironmentName = Parameter{
//	    Type:        "String",
//	    Description: "Environment name prefixed to resource Name tags",
//	    Default:     "dev",
//	}
//
//	var VPC = ec2.VPC{
//	    Tags: []any{Tag{Key: "Environment", Value: EnvironmentName}},
//	}
type Parameter struct {
	// Type is the CloudFormation parameter type (String, Number, etc.)
	Type string
	// Description is optional documentation for the parameter
	Description string
	// Default is the default value if none is provided
	Default any
	// AllowedValues restricts the parameter to specific values
	AllowedValues []any
	// AllowedPattern is a regex pattern for String type validation
	AllowedPattern string
	// ConstraintDescription explains validation failures
	ConstraintDescription string

	// name is set during discovery to enable proper Ref serialization
	name string
}

// SetName sets the parameter name for Ref serialization. Declarations
// going through the build pipeline do not need this: the builder names
// the serialized Ref from the discovered reference. Call it when
// marshaling a Parameter directly, outside a build.
func (p *Parameter) SetName(name string) {
	p.name = name
}

// Name returns the parameter name.
func (p Parameter) Name() string {
	return p.name
}

// MarshalJSON serializes Parameter as a CloudFormation Ref when used as
// a value. An unnamed Parameter emits {"Ref": ""}, the placeholder the
// template builder fills from the discovered reference.
func (p Parameter) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Ref": p.name})
}

// ToDefinition returns the parameter as a map suitable for the Parameters section.
func (p Parameter) ToDefinition() map[string]any {
	def := map[string]any{
		"Type": p.Type,
	}
	if p.Description != "" {
		def["Description"] = p.Description
	}
	if p.Default != nil {
		def["Default"] = p.Default
	}
	if len(p.AllowedValues) > 0 {
		def["AllowedValues"] = p.AllowedValues
	}
	if p.AllowedPattern != "" {
		def["AllowedPattern"] = p.AllowedPattern
	}
	if p.ConstraintDescription != "" {
		def["ConstraintDescription"] = p.ConstraintDescription
	}
	return def
}
