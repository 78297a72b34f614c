// Package runner pairs AST-discovered declarations with their runtime
// values and drives the template builder. Discovery supplies names,
// dependency edges, and reference paths; the runtime values supply the
// properties. Both views describe the same package-level vars.
package runner

import (
	"fmt"

	vpcwire "github.com/lex00/vpcwire-go"
	"github.com/lex00/vpcwire-go/internal/discover"
	"github.com/lex00/vpcwire-go/internal/template"
)

// BuildPackage discovers the declarations in packageDir, extracts
// their runtime values by running a generated program, and renders the
// CloudFormation template. This is the CLI path; callers that already
// hold the declared values (tests, embedded use) call Build instead.
func BuildPackage(packageDir, description string) (*vpcwire.Template, error) {
	result, err := discover.Discover(discover.Options{Packages: []string{packageDir}})
	if err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("discovery: %w", result.Errors[0])
	}

	values, err := ExtractValues(packageDir, result)
	if err != nil {
		return nil, fmt.Errorf("extracting values: %w", err)
	}

	return BuildFromResult(result, description, values)
}

// Build discovers the declarations in packageDir, joins them with
// values, and renders the CloudFormation template.
func Build(packageDir, description string, values map[string]any) (*vpcwire.Template, error) {
	result, err := discover.Discover(discover.Options{Packages: []string{packageDir}})
	if err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("discovery: %w", result.Errors[0])
	}

	return BuildFromResult(result, description, values)
}

// BuildFromResult renders a template from an existing discovery result.
func BuildFromResult(result *discover.Result, description string, values map[string]any) (*vpcwire.Template, error) {
	for name := range result.Resources {
		if _, ok := values[name]; !ok {
			return nil, fmt.Errorf("no value registered for resource %s", name)
		}
	}

	b := template.NewBuilderFull(result.Resources, result.Parameters, result.Outputs)
	b.SetDescription(description)

	for name, value := range values {
		b.SetValue(name, value)
	}
	// ResolveAttrRefs follows reads made through extracted property
	// vars, so the GetAtt lands at the nested path after the property
	// value is inlined.
	for name, info := range result.VarRefs {
		b.SetRefs(name, template.RefInfo{
			Refs:     info.Refs,
			AttrRefs: result.ResolveAttrRefs(name),
		})
	}

	return b.Build()
}
