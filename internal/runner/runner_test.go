package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vpcwire "github.com/lex00/vpcwire-go"
	"github.com/lex00/vpcwire-go/resources/ec2"
	"github.com/lex00/vpcwire-go/serialize"
)

func writeManifest(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0644))
}

func TestBuildWithValues(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "network.go", `package network

import (
	"github.com/lex00/vpcwire-go/resources/ec2"
)

var VPC = ec2.VPC{
	CidrBlock: "10.0.0.0/16",
}

var PublicSubnet = ec2.Subnet{
	VpcId:     VPC,
	CidrBlock: "10.0.0.0/24",
}
`)

	tmpl, err := Build(dir, "test network", map[string]any{
		"VPC": map[string]any{
			"CidrBlock": "10.0.0.0/16",
		},
		"PublicSubnet": map[string]any{
			"VpcId":     map[string]any{"inline": "overwritten"},
			"CidrBlock": "10.0.0.0/24",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "test network", tmpl.Description)
	require.Len(t, tmpl.Resources, 2)

	subnet := tmpl.Resources["PublicSubnet"]
	assert.Equal(t, "AWS::EC2::Subnet", subnet.Type)
	assert.Equal(t, map[string]any{"Ref": "VPC"}, subnet.Properties["VpcId"])
}

func TestBuildAttrRefThroughPropertyVar(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "security.go", `package network

import (
	"github.com/lex00/vpcwire-go/resources/ec2"
)

var AppSG = ec2.SecurityGroup{
	GroupDescription: "app tier",
}

var AppIngress = ec2.SecurityGroup_Ingress{
	IpProtocol:            "tcp",
	FromPort:              443,
	ToPort:                443,
	SourceSecurityGroupId: AppSG.GroupId,
}

var WebSG = ec2.SecurityGroup{
	GroupDescription:     "web tier",
	SecurityGroupIngress: []any{AppIngress},
}
`)

	// Values arrive serialized, as the extractor emits them; the
	// inlined AppIngress carries the zero GetAtt it held at runtime.
	appSG, err := serialize.Properties(ec2.SecurityGroup{GroupDescription: "app tier"})
	require.NoError(t, err)
	webSG, err := serialize.Properties(ec2.SecurityGroup{
		GroupDescription: "web tier",
		SecurityGroupIngress: []any{ec2.SecurityGroup_Ingress{
			IpProtocol:            "tcp",
			FromPort:              443,
			ToPort:                443,
			SourceSecurityGroupId: vpcwire.AttrRef{},
		}},
	})
	require.NoError(t, err)

	tmpl, err := Build(dir, "", map[string]any{
		"AppSG": appSG,
		"WebSG": webSG,
	})
	require.NoError(t, err)

	ingress, ok := tmpl.Resources["WebSG"].Properties["SecurityGroupIngress"].([]any)
	require.True(t, ok)
	require.Len(t, ingress, 1)
	rule, ok := ingress[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t,
		map[string]any{"Fn::GetAtt": []any{"AppSG", "GroupId"}},
		rule["SourceSecurityGroupId"],
	)
}

func TestBuildMissingValue(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "network.go", `package network

import (
	"github.com/lex00/vpcwire-go/resources/ec2"
)

var VPC = ec2.VPC{
	CidrBlock: "10.0.0.0/16",
}
`)

	_, err := Build(dir, "", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VPC")
}

func TestBuildDiscoveryError(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "broken.go", `package network

import (
	"github.com/lex00/vpcwire-go/resources/ec2"
)

var Subnet = ec2.Subnet{
	VpcId: MissingVPC,
}
`)

	_, err := Build(dir, "", map[string]any{"Subnet": map[string]any{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MissingVPC")
}

func TestFindGoModInfo(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "network")
	require.NoError(t, os.MkdirAll(sub, 0755))

	goMod := `module example.com/mynet

go 1.23

require github.com/lex00/vpcwire-go v1.0.0

replace github.com/lex00/vpcwire-go => ../vpcwire-go
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte(goMod), 0644))

	// Walks up from the package dir to the module root
	info, err := findGoModInfo(sub)
	require.NoError(t, err)

	assert.Equal(t, "example.com/mynet", info.Path)
	assert.Equal(t, dir, info.Dir)
	require.Len(t, info.Replaces, 1)
	assert.Contains(t, info.Replaces[0], "replace github.com/lex00/vpcwire-go")
}

func TestFindGoModInfoReplaceBlock(t *testing.T) {
	dir := t.TempDir()
	goMod := `module example.com/mynet

go 1.23

replace (
	github.com/lex00/vpcwire-go => ../vpcwire-go
	example.com/other => /abs/other
)
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte(goMod), 0644))

	info, err := findGoModInfo(dir)
	require.NoError(t, err)
	require.Len(t, info.Replaces, 2)
	assert.Equal(t, "replace github.com/lex00/vpcwire-go => ../vpcwire-go", info.Replaces[0])
}

func TestResolveReplacePath(t *testing.T) {
	resolved := resolveReplacePath("replace example.com/dep => ../dep", "/home/user/proj")
	assert.Equal(t, "replace example.com/dep => /home/user/dep", resolved)

	// Absolute and module targets stay untouched
	abs := resolveReplacePath("replace example.com/dep => /opt/dep", "/home/user/proj")
	assert.Equal(t, "replace example.com/dep => /opt/dep", abs)

	mod := resolveReplacePath("replace example.com/dep => example.com/fork v1.2.3", "/home/user/proj")
	assert.Equal(t, "replace example.com/dep => example.com/fork v1.2.3", mod)
}
