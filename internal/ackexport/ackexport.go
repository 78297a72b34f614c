// Package ackexport renders a topology config as ACK (AWS Controllers
// for Kubernetes) manifests. The output is a multi-document YAML
// stream of ec2.services.k8s.aws/v1alpha1 objects that the ACK EC2
// controller reconciles into the same network a CloudFormation build
// would create.
//
// Cross-resource wiring uses ACK reference wrappers instead of IDs:
// subnets point at their VPC via vpcRef, NAT gateways at their subnet
// and Elastic IP via subnetRef and allocationRef, and route table
// association happens through each subnet's routeTableRefs.
package ackexport

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/lex00/vpcwire-go/netplan"
	ec2v1alpha1 "github.com/lex00/vpcwire-go/resources/k8s/ec2/v1alpha1"
	"github.com/lex00/vpcwire-go/topology"
)

const apiVersion = "ec2.services.k8s.aws/v1alpha1"

// Options controls manifest generation.
type Options struct {
	// Namespace for all objects. Defaults to "ack-system".
	Namespace string

	// Region resolves zone suffixes into availability zone names
	// (ACK subnets need concrete AZs). Defaults to "us-east-1".
	Region string
}

func (o *Options) applyDefaults() {
	if o.Namespace == "" {
		o.Namespace = "ack-system"
	}
	if o.Region == "" {
		o.Region = "us-east-1"
	}
}

type exporter struct {
	cfg     *topology.Config
	opts    Options
	zones   []netplan.Zone
	blocks  []string
	objects []any
}

// Manifests derives the ACK object set for a topology config.
func Manifests(cfg *topology.Config, opts Options) ([]any, error) {
	opts.applyDefaults()

	zones, err := netplan.Zones(cfg.Zones)
	if err != nil {
		return nil, err
	}
	blocks, err := netplan.Subdivide(cfg.CIDR, cfg.SubnetBits, 2*cfg.Zones)
	if err != nil {
		return nil, err
	}

	e := &exporter{cfg: cfg, opts: opts, zones: zones, blocks: blocks}

	e.addVPC()
	e.addInternetGateway()
	publicNames, privateNames := e.addSubnetNames()
	natByZone := e.addNATGateways(publicNames)
	publicTable, privateTables := e.addRouteTables(natByZone)
	e.addSubnets(publicNames, privateNames, publicTable, privateTables)
	e.addEndpointSecurityGroup()

	return e.objects, nil
}

// Export renders the manifests as a multi-document YAML stream.
func Export(cfg *topology.Config, opts Options) ([]byte, error) {
	objects, err := Manifests(cfg, opts)
	if err != nil {
		return nil, err
	}
	return MarshalYAML(objects)
}

// MarshalYAML serializes objects as YAML documents separated by "---".
// Objects round-trip through JSON so the json field names stay
// authoritative, and empty status/creationTimestamp noise is dropped.
func MarshalYAML(objects []any) ([]byte, error) {
	var buf bytes.Buffer

	for i, obj := range objects {
		data, err := json.Marshal(obj)
		if err != nil {
			return nil, err
		}

		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		delete(doc, "status")
		if meta, ok := doc["metadata"].(map[string]any); ok {
			delete(meta, "creationTimestamp")
		}

		out, err := yaml.Marshal(doc)
		if err != nil {
			return nil, err
		}

		if i > 0 {
			buf.WriteString("---\n")
		}
		buf.Write(out)
	}

	return buf.Bytes(), nil
}

func (e *exporter) meta(name string) metav1.ObjectMeta {
	return metav1.ObjectMeta{
		Name:      name,
		Namespace: e.opts.Namespace,
	}
}

func typeMeta(kind string) metav1.TypeMeta {
	return metav1.TypeMeta{
		APIVersion: apiVersion,
		Kind:       kind,
	}
}

// tags merges the config tags over a derived Name tag, sorted by key.
func (e *exporter) tags(nameSuffix string) []*ec2v1alpha1.Tag {
	merged := netplan.MergeTags(
		map[string]string{"Name": netplan.NameTag(e.cfg.Name, nameSuffix)},
		e.cfg.Tags,
	)

	var out []*ec2v1alpha1.Tag
	for _, k := range netplan.SortedKeys(merged) {
		out = append(out, &ec2v1alpha1.Tag{Key: strPtr(k), Value: strPtr(merged[k])})
	}
	return out
}

func (e *exporter) name(suffix string) string {
	return e.cfg.Name + "-" + suffix
}

func (e *exporter) vpcRef() *ec2v1alpha1.AWSResourceReferenceWrapper {
	return refTo(e.name("vpc"))
}

func refTo(name string) *ec2v1alpha1.AWSResourceReferenceWrapper {
	return &ec2v1alpha1.AWSResourceReferenceWrapper{
		From: &ec2v1alpha1.AWSResourceReference{Name: strPtr(name)},
	}
}

func (e *exporter) addVPC() {
	e.objects = append(e.objects, ec2v1alpha1.VPC{
		TypeMeta:   typeMeta("VPC"),
		ObjectMeta: e.meta(e.name("vpc")),
		Spec: ec2v1alpha1.VPCSpec{
			CIDRBlocks:         []*string{strPtr(e.cfg.CIDR)},
			EnableDNSSupport:   boolPtr(true),
			EnableDNSHostnames: boolPtr(e.cfg.DnsHostnames),
			Tags:               e.tags("vpc"),
		},
	})
}

func (e *exporter) addInternetGateway() {
	e.objects = append(e.objects, ec2v1alpha1.InternetGateway{
		TypeMeta:   typeMeta("InternetGateway"),
		ObjectMeta: e.meta(e.name("igw")),
		Spec: ec2v1alpha1.InternetGatewaySpec{
			VPCRef: e.vpcRef(),
			Tags:   e.tags("igw"),
		},
	})
}

// addSubnetNames reserves the per-zone object names. Public subnets
// take the first half of the address blocks, private the second.
func (e *exporter) addSubnetNames() (public, private []string) {
	for _, z := range e.zones {
		public = append(public, e.name("public-"+z.Suffix))
		private = append(private, e.name("private-"+z.Suffix))
	}
	return public, private
}

func (e *exporter) addNATGateways(publicNames []string) []string {
	switch e.cfg.NAT {
	case topology.NATNone:
		return nil

	case topology.NATPerAZ:
		natByZone := make([]string, len(e.zones))
		for i, z := range e.zones {
			eipName := e.name("nat-eip-" + z.Suffix)
			natName := e.name("nat-" + z.Suffix)
			e.addNAT(eipName, natName, publicNames[i], "nat-"+z.Suffix)
			natByZone[i] = natName
		}
		return natByZone

	default: // single
		eipName := e.name("nat-eip")
		natName := e.name("nat")
		e.addNAT(eipName, natName, publicNames[0], "nat")

		natByZone := make([]string, len(e.zones))
		for i := range natByZone {
			natByZone[i] = natName
		}
		return natByZone
	}
}

func (e *exporter) addNAT(eipName, natName, subnetName, tagSuffix string) {
	e.objects = append(e.objects, ec2v1alpha1.ElasticIPAddress{
		TypeMeta:   typeMeta("ElasticIPAddress"),
		ObjectMeta: e.meta(eipName),
		Spec: ec2v1alpha1.ElasticIPAddressSpec{
			Tags: e.tags(tagSuffix + "-eip"),
		},
	})
	e.objects = append(e.objects, ec2v1alpha1.NATGateway{
		TypeMeta:   typeMeta("NATGateway"),
		ObjectMeta: e.meta(natName),
		Spec: ec2v1alpha1.NATGatewaySpec{
			AllocationRef:    refTo(eipName),
			SubnetRef:        refTo(subnetName),
			ConnectivityType: strPtr("public"),
			Tags:             e.tags(tagSuffix),
		},
	})
}

// addRouteTables emits the shared public table and the private tables
// (one per zone for per-az NAT, one shared table otherwise). Returns
// the public table name and the private table name per zone index.
func (e *exporter) addRouteTables(natByZone []string) (string, []string) {
	publicTable := e.name("public-rt")
	e.objects = append(e.objects, ec2v1alpha1.RouteTable{
		TypeMeta:   typeMeta("RouteTable"),
		ObjectMeta: e.meta(publicTable),
		Spec: ec2v1alpha1.RouteTableSpec{
			VPCRef: e.vpcRef(),
			Routes: []*ec2v1alpha1.CreateRouteInput{{
				DestinationCIDRBlock: strPtr("0.0.0.0/0"),
				GatewayRef:           refTo(e.name("igw")),
			}},
			Tags: e.tags("public-rt"),
		},
	})

	privateTables := make([]string, len(e.zones))

	if e.cfg.NAT == topology.NATPerAZ {
		for i, z := range e.zones {
			name := e.name("private-rt-" + z.Suffix)
			e.objects = append(e.objects, ec2v1alpha1.RouteTable{
				TypeMeta:   typeMeta("RouteTable"),
				ObjectMeta: e.meta(name),
				Spec: ec2v1alpha1.RouteTableSpec{
					VPCRef: e.vpcRef(),
					Routes: []*ec2v1alpha1.CreateRouteInput{{
						DestinationCIDRBlock: strPtr("0.0.0.0/0"),
						NATGatewayRef:        refTo(natByZone[i]),
					}},
					Tags: e.tags("private-rt-" + z.Suffix),
				},
			})
			privateTables[i] = name
		}
		return publicTable, privateTables
	}

	name := e.name("private-rt")
	spec := ec2v1alpha1.RouteTableSpec{
		VPCRef: e.vpcRef(),
		Tags:   e.tags("private-rt"),
	}
	if len(natByZone) > 0 {
		spec.Routes = []*ec2v1alpha1.CreateRouteInput{{
			DestinationCIDRBlock: strPtr("0.0.0.0/0"),
			NATGatewayRef:        refTo(natByZone[0]),
		}}
	}
	e.objects = append(e.objects, ec2v1alpha1.RouteTable{
		TypeMeta:   typeMeta("RouteTable"),
		ObjectMeta: e.meta(name),
		Spec:       spec,
	})
	for i := range privateTables {
		privateTables[i] = name
	}
	return publicTable, privateTables
}

func (e *exporter) addSubnets(publicNames, privateNames []string, publicTable string, privateTables []string) {
	for i, z := range e.zones {
		az := e.opts.Region + z.Suffix
		e.objects = append(e.objects, ec2v1alpha1.Subnet{
			TypeMeta:   typeMeta("Subnet"),
			ObjectMeta: e.meta(publicNames[i]),
			Spec: ec2v1alpha1.SubnetSpec{
				CIDRBlock:           strPtr(e.blocks[i]),
				AvailabilityZone:    strPtr(az),
				VPCRef:              e.vpcRef(),
				MapPublicIPOnLaunch: boolPtr(true),
				RouteTableRefs:      []*ec2v1alpha1.AWSResourceReferenceWrapper{refTo(publicTable)},
				Tags:                e.tags("public-" + z.Suffix),
			},
		})
	}
	for i, z := range e.zones {
		az := e.opts.Region + z.Suffix
		e.objects = append(e.objects, ec2v1alpha1.Subnet{
			TypeMeta:   typeMeta("Subnet"),
			ObjectMeta: e.meta(privateNames[i]),
			Spec: ec2v1alpha1.SubnetSpec{
				CIDRBlock:        strPtr(e.blocks[len(e.zones)+i]),
				AvailabilityZone: strPtr(az),
				VPCRef:           e.vpcRef(),
				RouteTableRefs:   []*ec2v1alpha1.AWSResourceReferenceWrapper{refTo(privateTables[i])},
				Tags:             e.tags("private-" + z.Suffix),
			},
		})
	}
}

// addEndpointSecurityGroup emits the HTTPS-from-VPC security group
// that interface endpoints attach to. ACK has no VPCEndpoint type in
// this API group, so the endpoints themselves stay CloudFormation-only;
// the group is still useful for clusters that create endpoints out of
// band.
func (e *exporter) addEndpointSecurityGroup() {
	hasInterface := false
	for _, ep := range e.cfg.Endpoints {
		if ep.Type == topology.EndpointInterface {
			hasInterface = true
			break
		}
	}
	if !hasInterface {
		return
	}

	e.objects = append(e.objects, ec2v1alpha1.SecurityGroup{
		TypeMeta:   typeMeta("SecurityGroup"),
		ObjectMeta: e.meta(e.name("endpoint-sg")),
		Spec: ec2v1alpha1.SecurityGroupSpec{
			Name:        strPtr(e.name("endpoint-sg")),
			Description: strPtr(fmt.Sprintf("HTTPS from %s to interface endpoints", e.cfg.CIDR)),
			VPCRef:      e.vpcRef(),
			IngressRules: []*ec2v1alpha1.IPPermission{{
				IPProtocol: strPtr("tcp"),
				FromPort:   int64Ptr(443),
				ToPort:     int64Ptr(443),
				IPRanges:   []*ec2v1alpha1.IPRange{{CIDRIP: strPtr(e.cfg.CIDR)}},
			}},
			Tags: e.tags("endpoint-sg"),
		},
	})
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func int64Ptr(n int64) *int64 { return &n }
