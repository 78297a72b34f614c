package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0644))
}

func TestDiscoverResources(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "network.go", `package network

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

	result, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)
	require.Empty(t, result.Errors)

	require.Len(t, result.Resources, 2)
	assert.Equal(t, "ec2.VPC", result.Resources["VPC"].Type)
	assert.Equal(t, "ec2.Subnet", result.Resources["PublicSubnet"].Type)
	assert.Equal(t, []string{"VPC"}, result.Resources["PublicSubnet"].Dependencies)

	info, ok := result.VarRefs["PublicSubnet"]
	require.True(t, ok)
	assert.Equal(t, []string{"VPC"}, info.Refs["VpcId"])
}

func TestDiscoverAttrRefs(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "nat.go", `package network

import (
	"github.com/lex00/vpcwire-go/resources/ec2"
)

var NATGatewayEIP = ec2.EIP{
	Domain: "vpc",
}

var NATGateway = ec2.NatGateway{
	AllocationId: NATGatewayEIP.AllocationId,
}
`)

	result, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)
	require.Empty(t, result.Errors)

	nat := result.Resources["NATGateway"]
	require.Len(t, nat.AttrRefUsages, 1)
	assert.Equal(t, "NATGatewayEIP", nat.AttrRefUsages[0].ResourceName)
	assert.Equal(t, "AllocationId", nat.AttrRefUsages[0].Attribute)
	assert.Equal(t, "AllocationId", nat.AttrRefUsages[0].FieldPath)
}

func TestDiscoverPropertyTypesAreNotResources(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "sg.go", `package network

import (
	"github.com/lex00/vpcwire-go/resources/ec2"
)

var HTTPSIngress = ec2.SecurityGroup_Ingress{
	IpProtocol: "tcp",
	FromPort:   443,
	ToPort:     443,
}

var EndpointSG = ec2.SecurityGroup{
	GroupDescription:     "endpoints",
	SecurityGroupIngress: []any{HTTPSIngress},
}
`)

	result, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)
	require.Empty(t, result.Errors)

	_, isResource := result.Resources["HTTPSIngress"]
	assert.False(t, isResource, "property type vars are not resources")
	assert.True(t, result.AllVars["HTTPSIngress"])

	sg, ok := result.Resources["EndpointSG"]
	require.True(t, ok)
	assert.Contains(t, sg.Dependencies, "HTTPSIngress")
}

func TestDiscoverParametersAndOutputs(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "stack.go", `package network

import (
	"github.com/lex00/vpcwire-go/resources/ec2"

	. "github.com/lex00/vpcwire-go/intrinsics"
)

var EnvName = Parameter{
	Type:    "String",
	Default: "dev",
}

var VPC = ec2.VPC{
	CidrBlock: "10.0.0.0/16",
}

var VpcId = Output{
	Description: "ID of the VPC",
	Value:       VPC,
	ExportName:  Sub{String: "${AWS::StackName}-VpcId"},
}
`)

	result, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)
	require.Empty(t, result.Errors)

	require.Contains(t, result.Parameters, "EnvName")
	require.Contains(t, result.Outputs, "VpcId")

	// Plain value refs inside outputs must be recorded for rewriting
	info, ok := result.VarRefs["VpcId"]
	require.True(t, ok)
	assert.Equal(t, []string{"VPC"}, info.Refs["Value"])
}

func TestDiscoverSliceRefs(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "endpoint.go", `package network

import (
	"github.com/lex00/vpcwire-go/resources/ec2"
)

var VPC = ec2.VPC{CidrBlock: "10.0.0.0/16"}

var TableA = ec2.RouteTable{VpcId: VPC}
var TableB = ec2.RouteTable{VpcId: VPC}

var S3Endpoint = ec2.VPCEndpoint{
	VpcId:         VPC,
	RouteTableIds: []any{TableA, TableB},
}
`)

	result, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)
	require.Empty(t, result.Errors)

	info := result.VarRefs["S3Endpoint"]
	assert.Equal(t, []string{"TableA", "TableB"}, info.Refs["RouteTableIds"])
}

func TestDiscoverUndefinedReference(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "broken.go", `package network

import (
	"github.com/lex00/vpcwire-go/resources/ec2"
)

var Subnet = ec2.Subnet{
	VpcId: MissingVPC,
}
`)

	result, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Error(), "MissingVPC")
}

func TestDiscoverRecursivePattern(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "network")
	require.NoError(t, os.MkdirAll(sub, 0755))
	writeSource(t, sub, "vpc.go", `package network

import (
	"github.com/lex00/vpcwire-go/resources/ec2"
)

var VPC = ec2.VPC{CidrBlock: "10.0.0.0/16"}
`)

	deep := filepath.Join(sub, "endpoints")
	require.NoError(t, os.MkdirAll(deep, 0755))
	writeSource(t, deep, "endpoints.go", `package endpoints

import (
	"github.com/lex00/vpcwire-go/resources/ec2"
)

var S3Endpoint = ec2.VPCEndpoint{ServiceName: "com.amazonaws.us-east-1.s3"}
`)

	result, err := Discover(Options{Packages: []string{dir + "/..."}})
	require.NoError(t, err)
	assert.Contains(t, result.Resources, "VPC")
	assert.Contains(t, result.Resources, "S3Endpoint")

	// Without the /... suffix only the named directory is scanned.
	flat, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)
	assert.NotContains(t, flat.Resources, "VPC")
}

func TestResolveAttrRefsThroughPropertyVars(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "network.go", `package network

import (
	"github.com/lex00/vpcwire-go/resources/ec2"
)

var VPC = ec2.VPC{CidrBlock: "10.0.0.0/16"}

var NATGatewayEIP = ec2.EIP{Domain: "vpc"}

var NATGateway = ec2.NatGateway{
	AllocationId: NATGatewayEIP.AllocationId,
}
`)

	result, err := Discover(Options{Packages: []string{dir}})
	require.NoError(t, err)

	usages := result.ResolveAttrRefs("NATGateway")
	require.Len(t, usages, 1)
	assert.Equal(t, "NATGatewayEIP", usages[0].ResourceName)
}
