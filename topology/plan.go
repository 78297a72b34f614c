package topology

import (
	"fmt"
	"strings"

	vpcwire "github.com/lex00/vpcwire-go"
	"github.com/lex00/vpcwire-go/internal/template"
	"github.com/lex00/vpcwire-go/netplan"
)

// Plan is the derived resource set for a topology config.
type Plan struct {
	cfg       *Config
	resources map[string]vpcwire.DiscoveredResource
	values    map[string]any
	refs      map[string]template.RefInfo
}

// NewPlan derives the full resource set from a validated config.
func NewPlan(cfg *Config) (*Plan, error) {
	p := &Plan{
		cfg:       cfg,
		resources: make(map[string]vpcwire.DiscoveredResource),
		values:    make(map[string]any),
		refs:      make(map[string]template.RefInfo),
	}

	zones, err := netplan.Zones(cfg.Zones)
	if err != nil {
		return nil, err
	}
	blocks, err := netplan.Subdivide(cfg.CIDR, cfg.SubnetBits, 2*len(zones))
	if err != nil {
		return nil, err
	}

	p.addVPC()
	p.addInternetGateway()
	publicSubnets, privateSubnets := p.addSubnets(zones, blocks)
	natByZone := p.addNATGateways(zones, publicSubnets)
	p.addRouting(zones, publicSubnets, privateSubnets, natByZone)
	p.addEndpoints(privateSubnets)

	return p, nil
}

// Resources returns the derived resource set.
func (p *Plan) Resources() map[string]vpcwire.DiscoveredResource {
	return p.resources
}

// Template builds the CloudFormation template for the plan.
func (p *Plan) Template() (*vpcwire.Template, error) {
	b := template.NewBuilder(p.resources)
	b.SetDescription(fmt.Sprintf("VPC network topology for %s", p.cfg.Name))
	for name, value := range p.values {
		b.SetValue(name, value)
	}
	for name, info := range p.refs {
		b.SetRefs(name, info)
	}
	return b.Build()
}

// add records one derived resource.
func (p *Plan) add(name, goType string, props map[string]any, deps []string) {
	p.resources[name] = vpcwire.DiscoveredResource{
		Name:         name,
		Type:         goType,
		Dependencies: deps,
	}
	p.values[name] = props
}

func ref(name string) map[string]any {
	return map[string]any{"Ref": name}
}

// tags renders the merged tag map as a CloudFormation tag list, with
// the derived Name tag and config tags applied on top.
func (p *Plan) tags(nameSuffix string) []any {
	base := map[string]string{
		"Name": netplan.NameTag(p.cfg.Name, nameSuffix),
	}
	merged := netplan.MergeTags(base, p.cfg.Tags)

	list := make([]any, 0, len(merged))
	for _, k := range netplan.SortedKeys(merged) {
		list = append(list, map[string]any{"Key": k, "Value": merged[k]})
	}
	return list
}

// azSelect derives the zone name from the region's zone list.
func azSelect(index int) map[string]any {
	return map[string]any{
		"Fn::Select": []any{index, map[string]any{"Fn::GetAZs": ""}},
	}
}

func (p *Plan) addVPC() {
	p.add("VPC", "ec2.VPC", map[string]any{
		"CidrBlock":          p.cfg.CIDR,
		"EnableDnsSupport":   true,
		"EnableDnsHostnames": p.cfg.DnsHostnames,
		"Tags":               p.tags("vpc"),
	}, nil)
}

func (p *Plan) addInternetGateway() {
	p.add("InternetGateway", "ec2.InternetGateway", map[string]any{
		"Tags": p.tags("igw"),
	}, nil)
	p.add("GatewayAttachment", "ec2.VPCGatewayAttachment", map[string]any{
		"VpcId":             ref("VPC"),
		"InternetGatewayId": ref("InternetGateway"),
	}, []string{"VPC", "InternetGateway"})
}

// addSubnets creates one public and one private subnet per zone.
// The public half of the address plan comes first.
func (p *Plan) addSubnets(zones []netplan.Zone, blocks []string) (public, private []string) {
	for _, z := range zones {
		name := "PublicSubnet" + strings.ToUpper(z.Suffix)
		p.add(name, "ec2.Subnet", map[string]any{
			"VpcId":               ref("VPC"),
			"CidrBlock":           blocks[z.Index],
			"AvailabilityZone":    azSelect(z.Index),
			"MapPublicIpOnLaunch": true,
			"Tags":                p.tags("public-" + z.Suffix),
		}, []string{"VPC"})
		public = append(public, name)
	}

	for _, z := range zones {
		name := "PrivateSubnet" + strings.ToUpper(z.Suffix)
		p.add(name, "ec2.Subnet", map[string]any{
			"VpcId":            ref("VPC"),
			"CidrBlock":        blocks[len(zones)+z.Index],
			"AvailabilityZone": azSelect(z.Index),
			"Tags":             p.tags("private-" + z.Suffix),
		}, []string{"VPC"})
		private = append(private, name)
	}

	return public, private
}

// addNATGateways creates NAT gateways per the configured strategy and
// returns the NAT serving each zone index (nil entries when none).
func (p *Plan) addNATGateways(zones []netplan.Zone, publicSubnets []string) []string {
	natByZone := make([]string, len(zones))

	switch p.cfg.NAT {
	case NATNone:
		return natByZone

	case NATSingle:
		p.addNAT("NATGatewayEIP", "NATGateway", publicSubnets[0], "nat")
		for i := range natByZone {
			natByZone[i] = "NATGateway"
		}

	case NATPerAZ:
		for _, z := range zones {
			suffix := strings.ToUpper(z.Suffix)
			eip := "NATGatewayEIP" + suffix
			nat := "NATGateway" + suffix
			p.addNAT(eip, nat, publicSubnets[z.Index], "nat-"+z.Suffix)
			natByZone[z.Index] = nat
		}
	}

	return natByZone
}

func (p *Plan) addNAT(eipName, natName, subnet, tagSuffix string) {
	p.add(eipName, "ec2.EIP", map[string]any{
		"Domain": "vpc",
		"Tags":   p.tags(tagSuffix + "-eip"),
	}, nil)
	p.add(natName, "ec2.NatGateway", map[string]any{
		"AllocationId": map[string]any{"Fn::GetAtt": []any{eipName, "AllocationId"}},
		"SubnetId":     ref(subnet),
		"Tags":         p.tags(tagSuffix),
	}, []string{eipName, subnet})
}

// addRouting creates route tables, routes, and associations. Public
// subnets share one table with an internet gateway default route.
// Private subnets get a table per NAT gateway.
func (p *Plan) addRouting(zones []netplan.Zone, publicSubnets, privateSubnets, natByZone []string) {
	p.add("PublicRouteTable", "ec2.RouteTable", map[string]any{
		"VpcId": ref("VPC"),
		"Tags":  p.tags("public-rt"),
	}, []string{"VPC"})

	p.add("PublicRoute", "ec2.Route", map[string]any{
		"RouteTableId":         ref("PublicRouteTable"),
		"DestinationCidrBlock": "0.0.0.0/0",
		"GatewayId":            ref("InternetGateway"),
	}, []string{"PublicRouteTable", "InternetGateway"})
	p.refs["PublicRoute"] = template.RefInfo{
		Refs: map[string][]string{"GatewayId": {"InternetGateway"}},
	}

	for _, subnet := range publicSubnets {
		p.add(subnet+"RouteTableAssociation", "ec2.SubnetRouteTableAssociation", map[string]any{
			"SubnetId":     ref(subnet),
			"RouteTableId": ref("PublicRouteTable"),
		}, []string{subnet, "PublicRouteTable"})
	}

	// Private routing depends on the NAT strategy: one shared table
	// for a single NAT, one per zone otherwise.
	if p.cfg.NAT == NATPerAZ {
		for _, z := range zones {
			suffix := strings.ToUpper(z.Suffix)
			table := "PrivateRouteTable" + suffix
			p.add(table, "ec2.RouteTable", map[string]any{
				"VpcId": ref("VPC"),
				"Tags":  p.tags("private-rt-" + z.Suffix),
			}, []string{"VPC"})
			p.add("PrivateRoute"+suffix, "ec2.Route", map[string]any{
				"RouteTableId":         ref(table),
				"DestinationCidrBlock": "0.0.0.0/0",
				"NatGatewayId":         ref(natByZone[z.Index]),
			}, []string{table, natByZone[z.Index]})
			p.add(privateSubnets[z.Index]+"RouteTableAssociation", "ec2.SubnetRouteTableAssociation", map[string]any{
				"SubnetId":     ref(privateSubnets[z.Index]),
				"RouteTableId": ref(table),
			}, []string{privateSubnets[z.Index], table})
		}
		return
	}

	p.add("PrivateRouteTable", "ec2.RouteTable", map[string]any{
		"VpcId": ref("VPC"),
		"Tags":  p.tags("private-rt"),
	}, []string{"VPC"})

	if p.cfg.NAT == NATSingle {
		p.add("PrivateRoute", "ec2.Route", map[string]any{
			"RouteTableId":         ref("PrivateRouteTable"),
			"DestinationCidrBlock": "0.0.0.0/0",
			"NatGatewayId":         ref(natByZone[0]),
		}, []string{"PrivateRouteTable", natByZone[0]})
	}

	for _, subnet := range privateSubnets {
		p.add(subnet+"RouteTableAssociation", "ec2.SubnetRouteTableAssociation", map[string]any{
			"SubnetId":     ref(subnet),
			"RouteTableId": ref("PrivateRouteTable"),
		}, []string{subnet, "PrivateRouteTable"})
	}
}

// privateRouteTableNames lists the private route tables the plan
// created, for gateway endpoint wiring.
func (p *Plan) privateRouteTableNames() []string {
	if p.cfg.NAT == NATPerAZ {
		zones, _ := netplan.Zones(p.cfg.Zones)
		names := make([]string, 0, len(zones))
		for _, z := range zones {
			names = append(names, "PrivateRouteTable"+strings.ToUpper(z.Suffix))
		}
		return names
	}
	return []string{"PrivateRouteTable"}
}

// addEndpoints creates the configured VPC endpoints. Gateway endpoints
// attach to the private route tables; interface endpoints sit in the
// private subnets behind a shared security group.
func (p *Plan) addEndpoints(privateSubnets []string) {
	var hasInterface bool
	for _, ep := range p.cfg.Endpoints {
		if ep.Type == EndpointInterface {
			hasInterface = true
		}
	}

	if hasInterface {
		p.add("EndpointSecurityGroup", "ec2.SecurityGroup", map[string]any{
			"GroupDescription": "HTTPS from the VPC to interface endpoints",
			"VpcId":            ref("VPC"),
			"SecurityGroupIngress": []any{
				map[string]any{
					"Description": "HTTPS from the VPC",
					"IpProtocol":  "tcp",
					"FromPort":    443,
					"ToPort":      443,
					"CidrIp":      p.cfg.CIDR,
				},
			},
			"Tags": p.tags("endpoint-sg"),
		}, []string{"VPC"})
	}

	for _, ep := range p.cfg.Endpoints {
		name := endpointLogicalName(ep)
		serviceName := map[string]any{
			"Fn::Sub": "com.amazonaws.${AWS::Region}." + ep.Service,
		}

		switch ep.Type {
		case EndpointGateway:
			tables := p.privateRouteTableNames()
			tableRefs := make([]any, 0, len(tables))
			deps := []string{"VPC"}
			for _, t := range tables {
				tableRefs = append(tableRefs, ref(t))
				deps = append(deps, t)
			}
			p.add(name, "ec2.VPCEndpoint", map[string]any{
				"VpcId":           ref("VPC"),
				"VpcEndpointType": EndpointGateway,
				"ServiceName":     serviceName,
				"RouteTableIds":   tableRefs,
			}, deps)

		case EndpointInterface:
			subnetRefs := make([]any, 0, len(privateSubnets))
			deps := []string{"VPC", "EndpointSecurityGroup"}
			for _, s := range privateSubnets {
				subnetRefs = append(subnetRefs, ref(s))
				deps = append(deps, s)
			}
			p.add(name, "ec2.VPCEndpoint", map[string]any{
				"VpcId":             ref("VPC"),
				"VpcEndpointType":   EndpointInterface,
				"ServiceName":       serviceName,
				"SubnetIds":         subnetRefs,
				"SecurityGroupIds":  []any{ref("EndpointSecurityGroup")},
				"PrivateDnsEnabled": ep.PrivateDns,
			}, deps)
		}
	}
}

// endpointLogicalName derives a logical ID like S3GatewayEndpoint or
// EcrApiInterfaceEndpoint. Dots in service names ("ecr.api") become
// camel-case breaks, since logical IDs must be alphanumeric.
func endpointLogicalName(ep EndpointConfig) string {
	if ep.Service == "s3" {
		return "S3" + ep.Type + "Endpoint"
	}
	var b strings.Builder
	for _, part := range strings.FieldsFunc(ep.Service, func(r rune) bool {
		return r == '.' || r == '-'
	}) {
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return b.String() + ep.Type + "Endpoint"
}
