package differ

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vpcwire "github.com/lex00/vpcwire-go"
)

func vpcTemplate(cidr string) *vpcwire.Template {
	return &vpcwire.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Resources: map[string]vpcwire.ResourceDef{
			"VPC": {
				Type: "AWS::EC2::VPC",
				Properties: map[string]any{
					"CidrBlock":          cidr,
					"EnableDnsHostnames": true,
				},
			},
			"InternetGateway": {
				Type: "AWS::EC2::InternetGateway",
			},
		},
	}
}

func TestCompareIdentical(t *testing.T) {
	result := Compare(vpcTemplate("10.0.0.0/16"), vpcTemplate("10.0.0.0/16"))

	assert.True(t, result.Empty())
	assert.Equal(t, 0, result.Total())
}

func TestCompareModifiedProperty(t *testing.T) {
	result := Compare(vpcTemplate("10.0.0.0/16"), vpcTemplate("10.1.0.0/16"))

	require.Len(t, result.Modified, 1)
	entry := result.Modified[0]
	assert.Equal(t, "VPC", entry.Resource)
	assert.Equal(t, "AWS::EC2::VPC", entry.Type)
	require.Len(t, entry.Changes, 1)
	assert.Equal(t, "CidrBlock", entry.Changes[0].Path)
	assert.Equal(t, "modified", entry.Changes[0].Kind)
}

func TestCompareAddedAndRemoved(t *testing.T) {
	old := vpcTemplate("10.0.0.0/16")
	new := vpcTemplate("10.0.0.0/16")

	new.Resources["NATGateway"] = vpcwire.ResourceDef{
		Type: "AWS::EC2::NatGateway",
		Properties: map[string]any{
			"SubnetId": map[string]any{"Ref": "PublicSubnetA"},
		},
	}
	delete(new.Resources, "InternetGateway")

	result := Compare(old, new)

	require.Len(t, result.Added, 1)
	assert.Equal(t, "NATGateway", result.Added[0].Resource)
	require.Len(t, result.Removed, 1)
	assert.Equal(t, "InternetGateway", result.Removed[0].Resource)
	assert.Equal(t, 2, result.Total())
}

func TestCompareNestedProperty(t *testing.T) {
	old := vpcTemplate("10.0.0.0/16")
	new := vpcTemplate("10.0.0.0/16")

	old.Resources["NATGateway"] = vpcwire.ResourceDef{
		Type: "AWS::EC2::NatGateway",
		Properties: map[string]any{
			"SubnetId": map[string]any{"Ref": "PublicSubnetA"},
		},
	}
	new.Resources["NATGateway"] = vpcwire.ResourceDef{
		Type: "AWS::EC2::NatGateway",
		Properties: map[string]any{
			"SubnetId": map[string]any{"Ref": "PublicSubnetB"},
		},
	}

	result := Compare(old, new)

	require.Len(t, result.Modified, 1)
	require.Len(t, result.Modified[0].Changes, 1)
	assert.Equal(t, "SubnetId.Ref", result.Modified[0].Changes[0].Path)
	assert.Equal(t, "modified", result.Modified[0].Changes[0].Kind)
}

func TestCompareAddedAndRemovedProperties(t *testing.T) {
	old := vpcTemplate("10.0.0.0/16")
	new := vpcTemplate("10.0.0.0/16")

	props := new.Resources["VPC"].Properties
	delete(props, "EnableDnsHostnames")
	props["EnableDnsSupport"] = true

	result := Compare(old, new)

	require.Len(t, result.Modified, 1)
	changes := result.Modified[0].Changes
	require.Len(t, changes, 2)
	assert.Equal(t, Change{Path: "EnableDnsHostnames", Kind: "removed"}, changes[0])
	assert.Equal(t, Change{Path: "EnableDnsSupport", Kind: "added"}, changes[1])
}

func TestCompareDependsOn(t *testing.T) {
	old := vpcTemplate("10.0.0.0/16")
	new := vpcTemplate("10.0.0.0/16")

	def := new.Resources["InternetGateway"]
	def.DependsOn = []string{"VPC"}
	new.Resources["InternetGateway"] = def

	result := Compare(old, new)

	require.Len(t, result.Modified, 1)
	assert.Equal(t, "InternetGateway", result.Modified[0].Resource)
	require.Len(t, result.Modified[0].Changes, 1)
	assert.Equal(t, "DependsOn", result.Modified[0].Changes[0].Path)
}

func TestCompareNumberRepresentation(t *testing.T) {
	old := vpcTemplate("10.0.0.0/16")
	new := vpcTemplate("10.0.0.0/16")

	old.Resources["VPC"].Properties["Port"] = 443
	new.Resources["VPC"].Properties["Port"] = float64(443)

	result := Compare(old, new)

	assert.True(t, result.Empty())
}

func TestCompareSortedOutput(t *testing.T) {
	old := &vpcwire.Template{Resources: map[string]vpcwire.ResourceDef{}}
	new := &vpcwire.Template{Resources: map[string]vpcwire.ResourceDef{
		"Zebra": {Type: "AWS::EC2::Subnet"},
		"Alpha": {Type: "AWS::EC2::Subnet"},
	}}

	result := Compare(old, new)

	require.Len(t, result.Added, 2)
	assert.Equal(t, "Alpha", result.Added[0].Resource)
	assert.Equal(t, "Zebra", result.Added[1].Resource)
}

func TestLoadTemplateJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.json")
	content := `{"AWSTemplateFormatVersion":"2010-09-09","Resources":{"VPC":{"Type":"AWS::EC2::VPC","Properties":{"CidrBlock":"10.0.0.0/16"}}}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tmpl, err := LoadTemplate(path)

	require.NoError(t, err)
	assert.Equal(t, "AWS::EC2::VPC", tmpl.Resources["VPC"].Type)
}

func TestLoadTemplateYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.yaml")
	content := `AWSTemplateFormatVersion: "2010-09-09"
Resources:
  VPC:
    Type: AWS::EC2::VPC
    Properties:
      CidrBlock: 10.0.0.0/16
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tmpl, err := LoadTemplate(path)

	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/16", tmpl.Resources["VPC"].Properties["CidrBlock"])
}

func TestLoadTemplateInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.txt")
	require.NoError(t, os.WriteFile(path, []byte("{{{not a template"), 0o644))

	_, err := LoadTemplate(path)

	assert.Error(t, err)
}

func TestCompareFiles(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.json")
	newPath := filepath.Join(dir, "new.json")
	require.NoError(t, os.WriteFile(oldPath, []byte(`{"Resources":{"VPC":{"Type":"AWS::EC2::VPC","Properties":{"CidrBlock":"10.0.0.0/16"}}}}`), 0o644))
	require.NoError(t, os.WriteFile(newPath, []byte(`{"Resources":{"VPC":{"Type":"AWS::EC2::VPC","Properties":{"CidrBlock":"10.8.0.0/16"}}}}`), 0o644))

	result, err := CompareFiles(oldPath, newPath)

	require.NoError(t, err)
	require.Len(t, result.Modified, 1)
	assert.Equal(t, "CidrBlock", result.Modified[0].Changes[0].Path)
}

func TestCompareFilesMissing(t *testing.T) {
	_, err := CompareFiles("/nonexistent/a.json", "/nonexistent/b.json")

	assert.Error(t, err)
}
