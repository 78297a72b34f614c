// Package vpcwire provides Go types for declaring AWS VPC network topologies.
//
// Infrastructure is declared as plain package-level Go values:
//
//	var VPC = ec2.VPC{
//	    CidrBlock: "10.0.0.0/16",
//	}
//
//	var PublicSubnetA = ec2.Subnet{
//	    VpcId:     VPC,            // direct reference, no Ref() needed
//	    CidrBlock: "10.0.0.0/24",
//	}
//
// The vpcwire CLI discovers these declarations via AST parsing and renders
// a CloudFormation template for the external provisioning engine.
package vpcwire

import (
	"encoding/json"
)

// Resource represents a CloudFormation resource.
// All resource types in resources/ec2 implement this interface.
type Resource interface {
	// ResourceType returns the CloudFormation type (e.g., "AWS::EC2::VPC")
	ResourceType() string
}

// AttrRef represents a GetAtt reference to a resource attribute.
// Resource types carry AttrRef fields for each supported attribute.
//
// Example:
//
//	var NATGatewayEIP = ec2.EIP{Domain: "vpc"}
//	var NATGateway = ec2.NatGateway{
//	    AllocationId: NATGatewayEIP.AllocationId,  // an AttrRef
//	}
//
// When serialized to CloudFormation JSON, AttrRef becomes:
//
//	{"Fn::GetAtt": ["NATGatewayEIP", "AllocationId"]}
type AttrRef struct {
	// Resource is the logical name of the referenced resource
	Resource string
	// Attribute is the attribute name (e.g., "AllocationId", "GroupId")
	Attribute string
}

// MarshalJSON serializes AttrRef to CloudFormation GetAtt syntax.
func (a AttrRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]string{
		"Fn::GetAtt": {a.Resource, a.Attribute},
	})
}

// IsZero returns true if the AttrRef has not been populated.
func (a AttrRef) IsZero() bool {
	return a.Resource == "" && a.Attribute == ""
}

// DiscoveredResource represents a resource found by AST parsing.
// The CLI builds a map of these from manifest source files.
type DiscoveredResource struct {
	// Name is the variable name (becomes CloudFormation logical ID)
	Name string
	// Type is the Go type (e.g., "ec2.VPC", "ec2.Subnet")
	Type string
	// Package is the package name containing the declaration
	Package string
	// File is the source file path
	File string
	// Line is the line number of the declaration
	Line int
	// Dependencies are logical names of referenced resources
	Dependencies []string
	// AttrRefUsages are attribute references found in field values
	AttrRefUsages []AttrRefUsage
}

// AttrRefUsage records a Resource.Attribute reference at a field path.
// The template builder rewrites the serialized value at FieldPath into
// a Fn::GetAtt on ResourceName.Attribute.
type AttrRefUsage struct {
	ResourceName string
	Attribute    string
	FieldPath    string
}

// DiscoveredParameter is a template parameter found by AST parsing.
type DiscoveredParameter struct {
	Name string
	File string
	Line int
}

// DiscoveredOutput is a stack output found by AST parsing.
type DiscoveredOutput struct {
	Name          string
	File          string
	Line          int
	AttrRefUsages []AttrRefUsage
}

// Template represents a CloudFormation template.
type Template struct {
	AWSTemplateFormatVersion string                 `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Description              string                 `json:"Description,omitempty" yaml:"Description,omitempty"`
	Parameters               map[string]Parameter   `json:"Parameters,omitempty" yaml:"Parameters,omitempty"`
	Resources                map[string]ResourceDef `json:"Resources" yaml:"Resources"`
	Outputs                  map[string]Output      `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
}

// ResourceDef is a single resource in the CloudFormation template.
type ResourceDef struct {
	Type       string         `json:"Type" yaml:"Type"`
	Properties map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	DependsOn  []string       `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
}

// Parameter is a CloudFormation template parameter.
type Parameter struct {
	Type           string `json:"Type"`
	Description    string `json:"Description,omitempty"`
	Default        any    `json:"Default,omitempty"`
	AllowedValues  []any  `json:"AllowedValues,omitempty"`
	AllowedPattern string `json:"AllowedPattern,omitempty"`
}

// Output is a CloudFormation template output.
type Output struct {
	Description string  `json:"Description,omitempty"`
	Value       any     `json:"Value"`
	Export      *Export `json:"Export,omitempty"`
}

// Export names a cross-stack export for an output. Name may be a string
// or an intrinsic (e.g. a Sub on the stack name).
type Export struct {
	Name any `json:"Name"`
}

// BuildResult is the JSON output from `vpcwire build`.
type BuildResult struct {
	Success   bool     `json:"success"`
	Template  Template `json:"template,omitempty"`
	Resources []string `json:"resources,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// LintResult is the JSON output from `vpcwire lint`.
type LintResult struct {
	Success bool        `json:"success"`
	Issues  []LintIssue `json:"issues,omitempty"`
}

// LintIssue is a single linting issue.
type LintIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"` // "error", "warning", "info"
	Message  string `json:"message"`
	Rule     string `json:"rule"`
}

// ValidateResult is the JSON output from `vpcwire validate`.
type ValidateResult struct {
	Success   bool     `json:"success"`
	Resources int      `json:"resources"`
	Errors    []string `json:"errors,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// ListResult is the JSON output from `vpcwire list`.
type ListResult struct {
	Resources []ListResource `json:"resources"`
}

// ListResource is a single resource in the list output.
type ListResource struct {
	Name string `json:"name"`
	Type string `json:"type"`
	File string `json:"file"`
	Line int    `json:"line"`
}
