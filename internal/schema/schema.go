// Package schema validates built templates against the EC2 networking
// resource schemas, offline. It catches missing required properties and
// typos in property names before cfn-lint ever sees the document.
package schema

import (
	"fmt"
	"sort"
	"strings"

	vpcwire "github.com/lex00/vpcwire-go"
)

// Error is a single schema violation.
type Error struct {
	Resource string `json:"resource"`
	Property string `json:"property"`
	Message  string `json:"message"`
}

func (e Error) String() string {
	return fmt.Sprintf("%s.%s: %s", e.Resource, e.Property, e.Message)
}

// Result contains schema validation results.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Error `json:"errors,omitempty"`
	Warnings []Error `json:"warnings,omitempty"`
}

// resourceSchema describes one CloudFormation resource type.
type resourceSchema struct {
	Required   []string
	Properties map[string]bool
}

func props(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// resourceSchemas covers the EC2 networking surface the builder emits.
var resourceSchemas = map[string]resourceSchema{
	"AWS::EC2::VPC": {
		Required:   []string{"CidrBlock"},
		Properties: props("CidrBlock", "EnableDnsHostnames", "EnableDnsSupport", "InstanceTenancy", "Tags"),
	},
	"AWS::EC2::Subnet": {
		Required:   []string{"VpcId"},
		Properties: props("VpcId", "CidrBlock", "AvailabilityZone", "MapPublicIpOnLaunch", "Tags"),
	},
	"AWS::EC2::InternetGateway": {
		Properties: props("Tags"),
	},
	"AWS::EC2::VPCGatewayAttachment": {
		Required:   []string{"VpcId"},
		Properties: props("VpcId", "InternetGatewayId", "VpnGatewayId"),
	},
	"AWS::EC2::EIP": {
		Properties: props("Domain", "Tags"),
	},
	"AWS::EC2::NatGateway": {
		Required:   []string{"SubnetId"},
		Properties: props("SubnetId", "AllocationId", "ConnectivityType", "Tags"),
	},
	"AWS::EC2::RouteTable": {
		Required:   []string{"VpcId"},
		Properties: props("VpcId", "Tags"),
	},
	"AWS::EC2::Route": {
		Required:   []string{"RouteTableId"},
		Properties: props("RouteTableId", "DestinationCidrBlock", "GatewayId", "NatGatewayId", "VpcEndpointId"),
	},
	"AWS::EC2::SubnetRouteTableAssociation": {
		Required:   []string{"SubnetId", "RouteTableId"},
		Properties: props("SubnetId", "RouteTableId"),
	},
	"AWS::EC2::SecurityGroup": {
		Required:   []string{"GroupDescription"},
		Properties: props("GroupDescription", "GroupName", "VpcId", "SecurityGroupIngress", "SecurityGroupEgress", "Tags"),
	},
	"AWS::EC2::VPCEndpoint": {
		Required:   []string{"ServiceName", "VpcId"},
		Properties: props("ServiceName", "VpcId", "VpcEndpointType", "RouteTableIds", "SubnetIds", "SecurityGroupIds", "PrivateDnsEnabled", "PolicyDocument"),
	},
}

// ValidateTemplate checks every resource in a built template.
func ValidateTemplate(t *vpcwire.Template) Result {
	result := Result{Valid: true}

	names := make([]string, 0, len(t.Resources))
	for name := range t.Resources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		errs, warns := validateResource(name, t.Resources[name])
		result.Errors = append(result.Errors, errs...)
		result.Warnings = append(result.Warnings, warns...)
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func validateResource(name string, res vpcwire.ResourceDef) (errs, warns []Error) {
	if !strings.HasPrefix(res.Type, "AWS::") {
		errs = append(errs, Error{
			Resource: name,
			Property: "Type",
			Message:  fmt.Sprintf("invalid resource type %q", res.Type),
		})
		return errs, warns
	}

	schema, known := resourceSchemas[res.Type]
	if !known {
		// Resource types outside the networking surface are not an
		// error; cfn-lint covers them.
		warns = append(warns, Error{
			Resource: name,
			Property: "Type",
			Message:  fmt.Sprintf("no offline schema for %s", res.Type),
		})
		return errs, warns
	}

	for _, required := range schema.Required {
		if _, ok := res.Properties[required]; !ok {
			errs = append(errs, Error{
				Resource: name,
				Property: required,
				Message:  "missing required property",
			})
		}
	}

	propNames := make([]string, 0, len(res.Properties))
	for prop := range res.Properties {
		propNames = append(propNames, prop)
	}
	sort.Strings(propNames)

	for _, prop := range propNames {
		if !schema.Properties[prop] {
			errs = append(errs, Error{
				Resource: name,
				Property: prop,
				Message:  fmt.Sprintf("unknown property for %s", res.Type),
			})
		}
	}

	return errs, warns
}
