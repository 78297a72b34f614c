// Package template builds CloudFormation templates from discovered resources.
package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	vpcwire "github.com/lex00/vpcwire-go"
	"github.com/lex00/vpcwire-go/serialize"
)

// RefInfo carries the reference rewrites for one declaration: which
// variables its fields reference (by field path) and which attributes it
// reads. Populated from discovery.
type RefInfo struct {
	Refs     map[string][]string
	AttrRefs []vpcwire.AttrRefUsage
}

// Builder constructs CloudFormation templates from discovered resources.
type Builder struct {
	resources   map[string]vpcwire.DiscoveredResource
	parameters  map[string]vpcwire.DiscoveredParameter
	outputs     map[string]vpcwire.DiscoveredOutput
	values      map[string]any // declared struct values (or prebuilt property maps)
	refs        map[string]RefInfo
	description string
}

// NewBuilder creates a template builder from discovered resources.
func NewBuilder(resources map[string]vpcwire.DiscoveredResource) *Builder {
	return &Builder{
		resources:  resources,
		parameters: make(map[string]vpcwire.DiscoveredParameter),
		outputs:    make(map[string]vpcwire.DiscoveredOutput),
		values:     make(map[string]any),
		refs:       make(map[string]RefInfo),
	}
}

// NewBuilderFull creates a template builder from all discovered components.
func NewBuilderFull(
	resources map[string]vpcwire.DiscoveredResource,
	parameters map[string]vpcwire.DiscoveredParameter,
	outputs map[string]vpcwire.DiscoveredOutput,
) *Builder {
	return &Builder{
		resources:  resources,
		parameters: parameters,
		outputs:    outputs,
		values:     make(map[string]any),
		refs:       make(map[string]RefInfo),
	}
}

// SetDescription sets the template Description field.
func (b *Builder) SetDescription(desc string) {
	b.description = desc
}

// SetValue associates a declaration's value with its logical name.
// Values may be typed resource structs or prebuilt property maps.
func (b *Builder) SetValue(name string, value any) {
	b.values[name] = value
}

// SetRefs records the reference rewrites for a declaration.
func (b *Builder) SetRefs(name string, info RefInfo) {
	b.refs[name] = info
}

// Build constructs the CloudFormation template.
func (b *Builder) Build() (*vpcwire.Template, error) {
	order, err := b.topologicalSort()
	if err != nil {
		return nil, err
	}

	template := &vpcwire.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              b.description,
		Resources:                make(map[string]vpcwire.ResourceDef),
	}

	if len(b.parameters) > 0 {
		template.Parameters = make(map[string]vpcwire.Parameter)
		for name := range b.parameters {
			if val, ok := b.values[name]; ok {
				template.Parameters[name] = serializeParameter(val)
			}
		}
	}

	for _, name := range order {
		res := b.resources[name]

		resourceType := cfResourceType(res.Type)
		if resourceType == "" {
			return nil, fmt.Errorf("unknown resource type: %s", res.Type)
		}

		props, err := b.serializeDeclaration(name)
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", name, err)
		}

		template.Resources[name] = vpcwire.ResourceDef{
			Type:       resourceType,
			Properties: props,
			DependsOn:  b.gatewayOrderingDeps(name, res),
		}
	}

	if len(b.outputs) > 0 {
		template.Outputs = make(map[string]vpcwire.Output)
		for name := range b.outputs {
			if _, ok := b.values[name]; !ok {
				continue
			}
			out, err := b.serializeOutput(name)
			if err != nil {
				return nil, fmt.Errorf("serializing output %s: %w", name, err)
			}
			template.Outputs[name] = out
		}
	}

	return template, nil
}

// serializeDeclaration converts a declared value to CloudFormation
// properties and rewrites direct references to Ref / Fn::GetAtt.
func (b *Builder) serializeDeclaration(name string) (map[string]any, error) {
	value := b.values[name]

	var props map[string]any
	switch v := value.(type) {
	case nil:
		props = map[string]any{}
	case map[string]any:
		// Prebuilt properties (config-driven plans, extracted values).
		props = v
	default:
		var err error
		props, err = serialize.Properties(v)
		if err != nil {
			return nil, err
		}
	}

	b.applyRefs(name, props)
	return props, nil
}

// applyRefs rewrites serialized values at discovered field paths:
// direct resource references become {"Ref": name}, attribute reads
// become {"Fn::GetAtt": [name, attr]}.
func (b *Builder) applyRefs(name string, props map[string]any) {
	info, ok := b.refs[name]
	if !ok {
		return
	}

	// Deterministic order keeps rewrites stable across builds.
	paths := make([]string, 0, len(info.Refs))
	for path := range info.Refs {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		var rewrites []any
		var params []string
		for _, refName := range info.Refs[path] {
			if !b.isReferenceable(refName) {
				continue
			}
			if _, isParam := b.parameters[refName]; isParam {
				params = append(params, refName)
			}
			rewrites = append(rewrites, map[string]any{"Ref": refName})
		}
		if len(rewrites) == 0 {
			continue
		}

		// Parameter values copied into nested literals (Tag values and
		// the like) have already serialized as {"Ref": ""}. Name those
		// placeholders in place; replacing the whole value at the path
		// would drop sibling elements of a multi-element list.
		if len(params) == len(rewrites) {
			if fillEmptyRefs(props, path, params) == len(params) {
				continue
			}
		}

		if len(rewrites) == 1 {
			if _, isSlice := lookupPath(props, path).([]any); isSlice && len(info.Refs[path]) == 1 {
				setAtPath(props, path, rewrites)
			} else {
				setAtPath(props, path, rewrites[0])
			}
		} else {
			setAtPath(props, path, rewrites)
		}
	}

	for _, usage := range info.AttrRefs {
		setAtPath(props, usage.FieldPath, map[string]any{
			"Fn::GetAtt": []any{usage.ResourceName, usage.Attribute},
		})
	}
}

// isReferenceable reports whether refName resolves to a Ref target.
// Property-type vars serialize inline and are left alone.
func (b *Builder) isReferenceable(refName string) bool {
	if _, ok := b.resources[refName]; ok {
		return true
	}
	_, ok := b.parameters[refName]
	return ok
}

// fillEmptyRefs assigns names, in order of appearance, to serialized
// parameter placeholders ({"Ref": ""}) at a dot-separated path,
// descending into every slice element on the way. Slice elements keep
// declaration order, the same order discovery records the references.
// Returns how many placeholders were filled.
func fillEmptyRefs(props map[string]any, path string, names []string) int {
	parts := strings.Split(path, ".")
	filled := 0

	var walk func(v any, depth int)
	walk = func(v any, depth int) {
		if filled == len(names) {
			return
		}
		switch val := v.(type) {
		case []any:
			for _, item := range val {
				walk(item, depth)
			}
		case map[string]any:
			if depth == len(parts) {
				if r, ok := val["Ref"]; ok && len(val) == 1 && r == "" {
					val["Ref"] = names[filled]
					filled++
				}
				return
			}
			if next, ok := val[parts[depth]]; ok {
				walk(next, depth+1)
			}
		}
	}

	walk(props, 0)
	return filled
}

// lookupPath returns the value at a dot-separated path, or nil.
func lookupPath(props map[string]any, path string) any {
	parts := strings.Split(path, ".")
	var current any = props
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[part]
	}
	return current
}

// setAtPath sets a value at a dot-separated path, creating intermediate
// maps as needed. A single-element slice on the way is descended into;
// ambiguous multi-element slices are left untouched.
func setAtPath(props map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := props

	for i, part := range parts {
		if i == len(parts)-1 {
			current[part] = value
			return
		}

		next, ok := current[part]
		if !ok {
			m := make(map[string]any)
			current[part] = m
			current = m
			continue
		}

		switch v := next.(type) {
		case map[string]any:
			current = v
		case []any:
			if len(v) != 1 {
				return
			}
			m, ok := v[0].(map[string]any)
			if !ok {
				return
			}
			current = m
		default:
			m := make(map[string]any)
			current[part] = m
			current = m
		}
	}
}

// gatewayOrderingDeps returns the explicit DependsOn entries a resource
// needs beyond what its Ref/GetAtt usage already implies.
//
// NAT gateways and internet-bound routes must wait for the VPC gateway
// attachment: the EIP association and the IGW route both fail while the
// gateway is detached, and nothing in their properties references the
// attachment.
func (b *Builder) gatewayOrderingDeps(name string, res vpcwire.DiscoveredResource) []string {
	switch res.Type {
	case "ec2.NatGateway":
		return b.attachmentNames()
	case "ec2.Route":
		if b.routeTargetsInternetGateway(name) {
			return b.attachmentNames()
		}
	}
	return nil
}

// attachmentNames lists declared VPCGatewayAttachment resources, sorted.
func (b *Builder) attachmentNames() []string {
	var names []string
	for name, res := range b.resources {
		if res.Type == "ec2.VPCGatewayAttachment" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// routeTargetsInternetGateway reports whether a route's GatewayId
// references a declared InternetGateway.
func (b *Builder) routeTargetsInternetGateway(name string) bool {
	info, ok := b.refs[name]
	if !ok {
		return false
	}
	for _, refName := range info.Refs["GatewayId"] {
		if res, ok := b.resources[refName]; ok && res.Type == "ec2.InternetGateway" {
			return true
		}
	}
	return false
}

// serializeParameter converts a Parameter value to the template format.
// Accepts either a declared Parameter or a prebuilt definition map.
func serializeParameter(value any) vpcwire.Parameter {
	var def map[string]any
	switch v := value.(type) {
	case map[string]any:
		def = v
	case interface{ ToDefinition() map[string]any }:
		def = v.ToDefinition()
	default:
		return vpcwire.Parameter{Type: "String"}
	}

	param := vpcwire.Parameter{Type: "String"}
	if t, ok := def["Type"].(string); ok && t != "" {
		param.Type = t
	}
	if desc, ok := def["Description"].(string); ok {
		param.Description = desc
	}
	if d, ok := def["Default"]; ok {
		param.Default = d
	}
	if vals, ok := def["AllowedValues"].([]any); ok {
		param.AllowedValues = vals
	}
	if pattern, ok := def["AllowedPattern"].(string); ok {
		param.AllowedPattern = pattern
	}
	return param
}

// serializeOutput converts an Output value to the template format.
func (b *Builder) serializeOutput(name string) (vpcwire.Output, error) {
	data, err := json.Marshal(b.values[name])
	if err != nil {
		return vpcwire.Output{}, err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return vpcwire.Output{}, err
	}

	b.applyRefs(name, raw)

	output := vpcwire.Output{}
	if desc, ok := raw["Description"].(string); ok {
		output.Description = desc
	}
	output.Value = raw["Value"]
	if exportName, ok := raw["ExportName"]; ok && exportName != nil {
		output.Export = &vpcwire.Export{Name: exportName}
	}
	return output, nil
}

// topologicalSort returns resources in dependency order.
func (b *Builder) topologicalSort() ([]string, error) {
	graph := make(map[string][]string)
	inDegree := make(map[string]int)

	for name := range b.resources {
		graph[name] = nil
		inDegree[name] = 0
	}

	for name, res := range b.resources {
		for _, dep := range res.Dependencies {
			if _, exists := b.resources[dep]; exists {
				graph[dep] = append(graph[dep], name)
				inDegree[name]++
			}
		}
	}

	// Kahn's algorithm, queue kept sorted for deterministic order
	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	var result []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, neighbor := range graph[node] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
				sort.Strings(queue)
			}
		}
	}

	if len(result) != len(b.resources) {
		return nil, b.detectCycle()
	}

	return result, nil
}

// detectCycle finds and reports a cycle in the dependency graph.
func (b *Builder) detectCycle() error {
	visited := make(map[string]bool)
	path := make(map[string]bool)

	var cycle []string
	var findCycle func(node string) bool
	findCycle = func(node string) bool {
		visited[node] = true
		path[node] = true

		for _, dep := range b.resources[node].Dependencies {
			if _, exists := b.resources[dep]; !exists {
				continue
			}
			if !visited[dep] {
				if findCycle(dep) {
					cycle = append([]string{node}, cycle...)
					return true
				}
			} else if path[dep] {
				cycle = append([]string{dep, node}, cycle...)
				return true
			}
		}

		path[node] = false
		return false
	}

	for name := range b.resources {
		if !visited[name] {
			if findCycle(name) {
				break
			}
		}
	}

	if len(cycle) > 0 {
		msg := "circular dependency detected:\n"
		for i, name := range cycle {
			res := b.resources[name]
			msg += fmt.Sprintf("  %s (%s:%d)", name, res.File, res.Line)
			if i < len(cycle)-1 {
				msg += "\n    -> "
			}
		}
		return errors.New(msg)
	}

	return errors.New("circular dependency detected")
}

// cfResourceType converts a Go type to its CloudFormation type.
// e.g., "ec2.Subnet" -> "AWS::EC2::Subnet"
func cfResourceType(goType string) string {
	parts := strings.SplitN(goType, ".", 2)
	if len(parts) != 2 {
		return ""
	}

	serviceName := goPackageToCFService(parts[0])
	if serviceName == "" {
		return ""
	}

	return "AWS::" + serviceName + "::" + parts[1]
}

// goPackageToCFService maps resource package names to CloudFormation
// service names.
func goPackageToCFService(pkg string) string {
	switch pkg {
	case "ec2":
		return "EC2"
	}
	return ""
}

// ToJSON serializes the template to JSON.
func ToJSON(t *vpcwire.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML. The template round-trips
// through JSON so the JSON field names stay authoritative.
func ToYAML(t *vpcwire.Template) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	return yaml.Marshal(obj)
}
