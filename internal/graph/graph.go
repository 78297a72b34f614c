// Package graph generates DOT and Mermaid dependency graphs from
// discovered network declarations.
package graph

import (
	"io"
	"strings"

	"github.com/emicklei/dot"
	vpcwire "github.com/lex00/vpcwire-go"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator creates dependency graphs from discovered resources.
type Generator struct {
	// IncludeParameters includes parameter references in the graph.
	IncludeParameters bool

	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// ClusterByTier groups resources by network tier (gateways,
	// subnets, routing, endpoints).
	ClusterByTier bool
}

// Generate creates a dependency graph and writes it to w.
func (g *Generator) Generate(resources map[string]vpcwire.DiscoveredResource, parameters map[string]vpcwire.DiscoveredParameter, w io.Writer) error {
	graph := g.buildGraph(resources, parameters)

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err := w.Write([]byte(output))
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(resources map[string]vpcwire.DiscoveredResource, parameters map[string]vpcwire.DiscoveredParameter) (string, error) {
	var sb strings.Builder
	if err := g.Generate(resources, parameters, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// buildGraph creates the dot.Graph structure from discovered resources.
func (g *Generator) buildGraph(resources map[string]vpcwire.DiscoveredResource, parameters map[string]vpcwire.DiscoveredParameter) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})

	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	// Set of GetAtt references for edge styling
	getAttRefs := g.buildGetAttSet(resources)

	if g.ClusterByTier {
		g.addClusteredNodes(graph, resources)
	} else {
		g.addNodes(graph, resources)
	}

	if g.IncludeParameters && parameters != nil {
		for name := range parameters {
			n := graph.Node(name)
			n.Attr("shape", "ellipse")
			n.Attr("style", "dashed")
			n.Label(name)
		}
	}

	for name, res := range resources {
		for _, dep := range res.Dependencies {
			if _, isParam := parameters[dep]; isParam && !g.IncludeParameters {
				continue
			}
			_, isResource := resources[dep]
			_, isParam := parameters[dep]
			if !isResource && !isParam {
				continue
			}

			from := graph.Node(name)
			to := graph.Node(dep)
			e := graph.Edge(from, to)

			// Attribute references render in blue to distinguish
			// them from plain Ref edges.
			key := name + "->" + dep
			if getAttRefs[key] {
				e.Attr("color", "blue")
			}
		}
	}

	return graph
}

// buildGetAttSet creates a set of edges that are GetAtt references.
func (g *Generator) buildGetAttSet(resources map[string]vpcwire.DiscoveredResource) map[string]bool {
	getAttRefs := make(map[string]bool)
	for name, res := range resources {
		for _, usage := range res.AttrRefUsages {
			key := name + "->" + usage.ResourceName
			getAttRefs[key] = true
		}
	}
	return getAttRefs
}

// addNodes adds resource nodes without clustering.
func (g *Generator) addNodes(graph *dot.Graph, resources map[string]vpcwire.DiscoveredResource) {
	for name, res := range resources {
		n := graph.Node(name)
		n.Label(name + "\\n[" + labelType(res.Type) + "]")
	}
}

// addClusteredNodes adds resource nodes grouped by network tier.
func (g *Generator) addClusteredNodes(graph *dot.Graph, resources map[string]vpcwire.DiscoveredResource) {
	tierResources := make(map[string][]string)
	resourceTypes := make(map[string]string)

	for name, res := range resources {
		tier := networkTier(res.Type)
		tierResources[tier] = append(tierResources[tier], name)
		resourceTypes[name] = res.Type
	}

	for tier, resNames := range tierResources {
		if len(resNames) > 1 {
			cluster := graph.Subgraph("cluster_"+tier, dot.ClusterOption{})
			cluster.Attr("label", tier)
			cluster.Attr("style", "rounded")
			cluster.Attr("bgcolor", "lightyellow")

			for _, name := range resNames {
				n := cluster.Node(name)
				n.Label(name + "\\n[" + labelType(resourceTypes[name]) + "]")
			}
		} else {
			for _, name := range resNames {
				n := graph.Node(name)
				n.Label(name + "\\n[" + labelType(resourceTypes[name]) + "]")
			}
		}
	}
}

// networkTier classifies a resource type into a topology tier.
func networkTier(goType string) string {
	switch goType {
	case "ec2.InternetGateway", "ec2.VPCGatewayAttachment", "ec2.NatGateway", "ec2.EIP":
		return "Gateways"
	case "ec2.Subnet":
		return "Subnets"
	case "ec2.RouteTable", "ec2.Route", "ec2.SubnetRouteTableAssociation":
		return "Routing"
	case "ec2.VPCEndpoint", "ec2.SecurityGroup":
		return "Endpoints"
	default:
		return "VPC"
	}
}

// labelType converts a Go type to its CloudFormation type for labels.
// e.g., "ec2.Subnet" -> "AWS::EC2::Subnet"
func labelType(goType string) string {
	parts := strings.Split(goType, ".")
	if len(parts) == 2 {
		return "AWS::" + strings.ToUpper(parts[0]) + "::" + parts[1]
	}
	return goType
}
