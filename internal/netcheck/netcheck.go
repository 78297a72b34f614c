// Package netcheck verifies topology invariants on a built template.
//
// The checks run on the rendered resource graph rather than the Go
// source, so they see the same property values CloudFormation would:
//
//	NET001: subnet CIDR must be inside the VPC CIDR
//	NET002: subnet CIDRs must not overlap
//	NET003: NAT gateways must sit in a public subnet
//	NET004: every subnet should have exactly one route table association
//	NET005: private subnets should route 0.0.0.0/0 to a NAT gateway
//	NET006: endpoint security group ingress should stay inside the VPC CIDR
//	NET007: gateway endpoints must attach to at least one route table
//
// CIDRs carried by intrinsics (Fn::Cidr, parameters) cannot be checked
// statically and are skipped.
package netcheck

import (
	"fmt"
	"sort"

	vpcwire "github.com/lex00/vpcwire-go"
	"github.com/lex00/vpcwire-go/netplan"
)

// Level indicates finding severity.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Finding is a single topology check result.
type Finding struct {
	Code     string `json:"code"`
	Level    Level  `json:"level"`
	Resource string `json:"resource"`
	Message  string `json:"message"`
}

// Result contains the outcome of the topology checks.
type Result struct {
	Passed   bool      `json:"passed"`
	Findings []Finding `json:"findings"`
}

// Check runs all topology checks on a built template.
func Check(t *vpcwire.Template) Result {
	c := &checker{template: t}
	c.run()

	passed := true
	for _, f := range c.findings {
		if f.Level == LevelError {
			passed = false
		}
	}
	return Result{Passed: passed, Findings: c.findings}
}

type checker struct {
	template *vpcwire.Template
	findings []Finding
}

func (c *checker) add(code string, level Level, resource, format string, args ...any) {
	c.findings = append(c.findings, Finding{
		Code:     code,
		Level:    level,
		Resource: resource,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (c *checker) run() {
	c.checkSubnetCIDRs()
	c.checkNATPlacement()
	c.checkAssociations()
	c.checkPrivateRoutes()
	c.checkEndpointSecurityGroups()
	c.checkGatewayEndpoints()
}

// byType returns logical names of resources with the given type, sorted.
func (c *checker) byType(cfType string) []string {
	var names []string
	for name, res := range c.template.Resources {
		if res.Type == cfType {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// refTarget extracts the logical name from a {"Ref": name} value.
func refTarget(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	name, _ := m["Ref"].(string)
	return name
}

// stringProp returns a property as a plain string, or "" when it is
// absent or intrinsic-valued.
func stringProp(res vpcwire.ResourceDef, key string) string {
	s, _ := res.Properties[key].(string)
	return s
}

// vpcCIDR returns the declared VPC logical name and its literal CIDR.
func (c *checker) vpcCIDR() (string, string) {
	for _, name := range c.byType("AWS::EC2::VPC") {
		return name, stringProp(c.template.Resources[name], "CidrBlock")
	}
	return "", ""
}

// checkSubnetCIDRs verifies containment (NET001) and overlap (NET002).
func (c *checker) checkSubnetCIDRs() {
	vpcName, vpcBlock := c.vpcCIDR()
	subnets := c.byType("AWS::EC2::Subnet")

	type subnetCIDR struct {
		name string
		cidr string
	}
	var literal []subnetCIDR

	for _, name := range subnets {
		cidr := stringProp(c.template.Resources[name], "CidrBlock")
		if cidr == "" {
			continue
		}
		literal = append(literal, subnetCIDR{name, cidr})

		if vpcBlock == "" {
			continue
		}
		contained, err := netplan.Contains(vpcBlock, cidr)
		if err != nil {
			c.add("NET001", LevelError, name, "invalid CIDR: %v", err)
			continue
		}
		if !contained {
			c.add("NET001", LevelError, name,
				"subnet CIDR %s is outside VPC %s CIDR %s", cidr, vpcName, vpcBlock)
		}
	}

	for i := 0; i < len(literal); i++ {
		for j := i + 1; j < len(literal); j++ {
			overlaps, err := netplan.Overlaps(literal[i].cidr, literal[j].cidr)
			if err != nil || !overlaps {
				continue
			}
			c.add("NET002", LevelError, literal[j].name,
				"subnet CIDR %s overlaps %s (%s)", literal[j].cidr, literal[i].name, literal[i].cidr)
		}
	}
}

// publicSubnets returns the set of subnets reachable from an internet
// gateway: either MapPublicIpOnLaunch or associated with a route table
// that has an IGW default route.
func (c *checker) publicSubnets() map[string]bool {
	public := make(map[string]bool)

	for _, name := range c.byType("AWS::EC2::Subnet") {
		if v, ok := c.template.Resources[name].Properties["MapPublicIpOnLaunch"].(bool); ok && v {
			public[name] = true
		}
	}

	// Route tables with an IGW default route
	igws := make(map[string]bool)
	for _, name := range c.byType("AWS::EC2::InternetGateway") {
		igws[name] = true
	}
	igwTables := make(map[string]bool)
	for _, name := range c.byType("AWS::EC2::Route") {
		res := c.template.Resources[name]
		if igws[refTarget(res.Properties["GatewayId"])] {
			igwTables[refTarget(res.Properties["RouteTableId"])] = true
		}
	}
	for _, name := range c.byType("AWS::EC2::SubnetRouteTableAssociation") {
		res := c.template.Resources[name]
		if igwTables[refTarget(res.Properties["RouteTableId"])] {
			public[refTarget(res.Properties["SubnetId"])] = true
		}
	}

	return public
}

// checkNATPlacement verifies NAT gateways sit in public subnets (NET003).
func (c *checker) checkNATPlacement() {
	public := c.publicSubnets()

	for _, name := range c.byType("AWS::EC2::NatGateway") {
		res := c.template.Resources[name]
		subnet := refTarget(res.Properties["SubnetId"])
		if subnet == "" {
			continue
		}
		if !public[subnet] {
			c.add("NET003", LevelError, name,
				"NAT gateway is placed in %s, which is not a public subnet", subnet)
		}
	}
}

// checkAssociations verifies every subnet has exactly one route table
// association (NET004). Unassociated subnets fall back to the VPC main
// route table, which this topology never configures; a second
// association for the same subnet fails at deploy time.
func (c *checker) checkAssociations() {
	associations := make(map[string]int)
	for _, name := range c.byType("AWS::EC2::SubnetRouteTableAssociation") {
		res := c.template.Resources[name]
		associations[refTarget(res.Properties["SubnetId"])]++
	}

	for _, name := range c.byType("AWS::EC2::Subnet") {
		switch n := associations[name]; {
		case n == 0:
			c.add("NET004", LevelWarning, name, "subnet has no route table association")
		case n > 1:
			c.add("NET004", LevelError, name,
				"subnet has %d route table associations, expected one", n)
		}
	}
}

// checkPrivateRoutes verifies private subnets have a NAT default route
// (NET005).
func (c *checker) checkPrivateRoutes() {
	public := c.publicSubnets()

	nats := make(map[string]bool)
	for _, name := range c.byType("AWS::EC2::NatGateway") {
		nats[name] = true
	}
	if len(nats) == 0 {
		// NAT-less topologies keep private subnets fully isolated
		return
	}

	// Route tables with a NAT default route
	natTables := make(map[string]bool)
	for _, name := range c.byType("AWS::EC2::Route") {
		res := c.template.Resources[name]
		if stringProp(res, "DestinationCidrBlock") != "0.0.0.0/0" {
			continue
		}
		if nats[refTarget(res.Properties["NatGatewayId"])] {
			natTables[refTarget(res.Properties["RouteTableId"])] = true
		}
	}

	for _, name := range c.byType("AWS::EC2::SubnetRouteTableAssociation") {
		res := c.template.Resources[name]
		subnet := refTarget(res.Properties["SubnetId"])
		if subnet == "" || public[subnet] {
			continue
		}
		if !natTables[refTarget(res.Properties["RouteTableId"])] {
			c.add("NET005", LevelWarning, subnet,
				"private subnet has no default route to a NAT gateway")
		}
	}
}

// checkGatewayEndpoints verifies gateway endpoints attach to at least
// one route table (NET007). An unattached gateway endpoint carries no
// routes and is never used. VpcEndpointType defaults to Gateway when
// absent.
func (c *checker) checkGatewayEndpoints() {
	for _, name := range c.byType("AWS::EC2::VPCEndpoint") {
		res := c.template.Resources[name]
		if t := stringProp(res, "VpcEndpointType"); t != "" && t != "Gateway" {
			continue
		}
		ids, ok := res.Properties["RouteTableIds"].([]any)
		if !ok || len(ids) == 0 {
			c.add("NET007", LevelWarning, name,
				"gateway endpoint is not attached to any route table")
		}
	}
}

// checkEndpointSecurityGroups verifies ingress on endpoint security
// groups stays inside the VPC CIDR (NET006).
func (c *checker) checkEndpointSecurityGroups() {
	_, vpcBlock := c.vpcCIDR()
	if vpcBlock == "" {
		return
	}

	// Security groups referenced by interface endpoints
	endpointSGs := make(map[string]bool)
	for _, name := range c.byType("AWS::EC2::VPCEndpoint") {
		res := c.template.Resources[name]
		ids, ok := res.Properties["SecurityGroupIds"].([]any)
		if !ok {
			continue
		}
		for _, id := range ids {
			if sg := refTarget(id); sg != "" {
				endpointSGs[sg] = true
			}
		}
	}

	for _, name := range c.byType("AWS::EC2::SecurityGroup") {
		if !endpointSGs[name] {
			continue
		}
		res := c.template.Resources[name]
		rules, ok := res.Properties["SecurityGroupIngress"].([]any)
		if !ok {
			continue
		}
		for _, rule := range rules {
			m, ok := rule.(map[string]any)
			if !ok {
				continue
			}
			cidr, _ := m["CidrIp"].(string)
			if cidr == "" {
				continue
			}
			contained, err := netplan.Contains(vpcBlock, cidr)
			if err != nil {
				continue
			}
			if !contained {
				c.add("NET006", LevelWarning, name,
					"endpoint security group allows ingress from %s, outside VPC CIDR %s", cidr, vpcBlock)
			}
		}
	}
}
