// Package topology builds VPC network templates from a declarative
// YAML description instead of Go declarations. The config names the
// address space, zone count, and NAT strategy; the plan derives the
// full resource set.
package topology

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lex00/vpcwire-go/netplan"
)

// Endpoint short names as AWS publishes them: lowercase ASCII with dot
// or dash separators ("s3", "ecr.api", "execute-api"). Keeping this
// strict keeps the derived logical IDs alphanumeric.
var validServiceName = regexp.MustCompile(`^[a-z0-9]+([.-][a-z0-9]+)*$`)

// NAT strategies.
const (
	NATSingle = "single"
	NATPerAZ  = "per-az"
	NATNone   = "none"
)

// Endpoint types.
const (
	EndpointGateway   = "Gateway"
	EndpointInterface = "Interface"
)

// EndpointConfig describes one VPC endpoint.
type EndpointConfig struct {
	// Service is the short service name (e.g. "s3", "ssm").
	Service string `yaml:"service"`
	// Type is Gateway or Interface. Defaults to Gateway for s3 and
	// dynamodb, Interface otherwise.
	Type string `yaml:"type,omitempty"`
	// PrivateDns enables private DNS for interface endpoints.
	PrivateDns bool `yaml:"private_dns,omitempty"`
}

// Config is the YAML topology description.
type Config struct {
	// Name prefixes resource Name tags.
	Name string `yaml:"name"`
	// CIDR is the VPC address block.
	CIDR string `yaml:"cidr"`
	// Zones is how many availability zones to span (1-6). Defaults
	// to 2.
	Zones int `yaml:"zones,omitempty"`
	// SubnetBits is how many extra prefix bits each subnet gets.
	// Defaults to 8 (a /16 VPC yields /24 subnets).
	SubnetBits int `yaml:"subnet_bits,omitempty"`
	// NAT is the NAT gateway strategy: single, per-az, or none.
	// Defaults to single.
	NAT string `yaml:"nat,omitempty"`
	// DnsHostnames enables DNS hostnames on the VPC.
	DnsHostnames bool `yaml:"dns_hostnames,omitempty"`
	// Tags are merged onto every resource's derived tags. Config
	// values win on key collision.
	Tags map[string]string `yaml:"tags,omitempty"`
	// Endpoints lists optional VPC endpoints.
	Endpoints []EndpointConfig `yaml:"endpoints,omitempty"`
}

// defaultGatewayServices are endpoint services that default to the
// Gateway type.
var defaultGatewayServices = map[string]bool{
	"s3":       true,
	"dynamodb": true,
}

// Load reads and validates a topology config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates topology config YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Zones == 0 {
		c.Zones = 2
	}
	if c.SubnetBits == 0 {
		c.SubnetBits = 8
	}
	if c.NAT == "" {
		c.NAT = NATSingle
	}
	for i := range c.Endpoints {
		ep := &c.Endpoints[i]
		ep.Service = strings.ToLower(ep.Service)
		if ep.Type == "" {
			if defaultGatewayServices[ep.Service] {
				ep.Type = EndpointGateway
			} else {
				ep.Type = EndpointInterface
			}
		}
	}
}

func (c *Config) validate() error {
	if c.Name == "" {
		return fmt.Errorf("config: name is required")
	}
	if c.CIDR == "" {
		return fmt.Errorf("config: cidr is required")
	}
	// Two subnets per zone must fit the address block
	if _, err := netplan.Subdivide(c.CIDR, c.SubnetBits, 2*c.Zones); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := netplan.Zones(c.Zones); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	switch c.NAT {
	case NATSingle, NATPerAZ, NATNone:
	default:
		return fmt.Errorf("config: unknown nat strategy %q (want single, per-az, or none)", c.NAT)
	}

	seen := make(map[string]bool)
	for _, ep := range c.Endpoints {
		if ep.Service == "" {
			return fmt.Errorf("config: endpoint service is required")
		}
		if !validServiceName.MatchString(ep.Service) {
			return fmt.Errorf("config: endpoint service %q is not a valid service short name", ep.Service)
		}
		if ep.Type != EndpointGateway && ep.Type != EndpointInterface {
			return fmt.Errorf("config: endpoint %s: unknown type %q (want Gateway or Interface)", ep.Service, ep.Type)
		}
		if seen[ep.Service] {
			return fmt.Errorf("config: duplicate endpoint %s", ep.Service)
		}
		seen[ep.Service] = true
	}

	return nil
}
