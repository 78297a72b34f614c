package linter

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHardcodedPseudoParameter(t *testing.T) {
	src := `package test

var region = "AWS::Region"
var account = "AWS::AccountId"
var ok = "not-a-pseudo-param"
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, 0)
	require.NoError(t, err)

	rule := HardcodedPseudoParameter{}
	issues := rule.Check(file, fset)

	assert.Len(t, issues, 2)
	assert.Contains(t, issues[0].Message, "AWS_REGION")
	assert.Contains(t, issues[1].Message, "AWS_ACCOUNT_ID")
}

func TestMapShouldBeIntrinsic(t *testing.T) {
	src := `package test

var ref = map[string]any{"Ref": "VPC"}
var sub = map[string]any{"Fn::Sub": "${AWS::StackName}"}
var ok = map[string]any{"NotAnIntrinsic": "value"}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, 0)
	require.NoError(t, err)

	rule := MapShouldBeIntrinsic{}
	issues := rule.Check(file, fset)

	assert.Len(t, issues, 2)
	assert.Contains(t, issues[0].Message, "Ref")
	assert.Contains(t, issues[1].Message, "Sub")
}

func TestDuplicateResource(t *testing.T) {
	src := `package test

import "github.com/lex00/vpcwire-go/resources/ec2"

var VPC = ec2.VPC{CidrBlock: "10.0.0.0/16"}
var VPC = ec2.VPC{CidrBlock: "10.1.0.0/16"}
var OtherVPC = ec2.VPC{CidrBlock: "10.2.0.0/16"}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, 0)
	require.NoError(t, err)

	rule := DuplicateResource{}
	issues := rule.Check(file, fset)

	assert.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "Duplicate")
	assert.Contains(t, issues[0].Message, "VPC")
	assert.Equal(t, SeverityError, issues[0].Severity)
}

func TestFileTooLarge(t *testing.T) {
	src := `package test

import "github.com/lex00/vpcwire-go/resources/ec2"

var Subnet1 = ec2.Subnet{}
var Subnet2 = ec2.Subnet{}
var Subnet3 = ec2.Subnet{}
var Subnet4 = ec2.Subnet{}
var Subnet5 = ec2.Subnet{}
var Subnet6 = ec2.Subnet{}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, 0)
	require.NoError(t, err)

	rule := FileTooLarge{MaxResources: 5}
	issues := rule.Check(file, fset)

	assert.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "6 resources")
	assert.Contains(t, issues[0].Message, "max 5")

	rule = FileTooLarge{MaxResources: 15}
	issues = rule.Check(file, fset)
	assert.Empty(t, issues)
}

func TestAvoidExplicitRef(t *testing.T) {
	src := `package test

var vpcId = Ref{"VPC"}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, 0)
	require.NoError(t, err)

	rule := AvoidExplicitRef{}
	issues := rule.Check(file, fset)

	assert.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "Avoid Ref{}")
	assert.Contains(t, issues[0].Suggestion, "VPC")
}

func TestAvoidExplicitGetAtt(t *testing.T) {
	src := `package test

var allocId = GetAtt{"NATGatewayEIP", "AllocationId"}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, 0)
	require.NoError(t, err)

	rule := AvoidExplicitGetAtt{}
	issues := rule.Check(file, fset)

	assert.Len(t, issues, 1)
	assert.Contains(t, issues[0].Suggestion, "NATGatewayEIP.AllocationId")
}

func TestAvoidPointerAssignment(t *testing.T) {
	src := `package test

import "github.com/lex00/vpcwire-go/resources/ec2"

var VPC = &ec2.VPC{CidrBlock: "10.0.0.0/16"}
var Subnet = ec2.Subnet{CidrBlock: "10.0.0.0/24"}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, 0)
	require.NoError(t, err)

	rule := AvoidPointerAssignment{}
	issues := rule.Check(file, fset)

	assert.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "VPC")
	assert.Contains(t, issues[0].Message, "&VPC{}")
	assert.Equal(t, SeverityError, issues[0].Severity)
}

func TestUnrestrictedIngress(t *testing.T) {
	src := `package test

import "github.com/lex00/vpcwire-go/resources/ec2"

var Open = ec2.SecurityGroup_Ingress{
	IpProtocol: "tcp",
	FromPort:   443,
	ToPort:     443,
	CidrIp:     "0.0.0.0/0",
}

var Restricted = ec2.SecurityGroup_Ingress{
	IpProtocol: "tcp",
	FromPort:   443,
	ToPort:     443,
	CidrIp:     "10.0.0.0/16",
}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, 0)
	require.NoError(t, err)

	rule := UnrestrictedIngress{}
	issues := rule.Check(file, fset)

	assert.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "0.0.0.0/0")
}

func TestHardcodedAvailabilityZone(t *testing.T) {
	src := `package test

import "github.com/lex00/vpcwire-go/resources/ec2"

var Hardcoded = ec2.Subnet{
	CidrBlock:        "10.0.0.0/24",
	AvailabilityZone: "us-east-1a",
}

var Derived = ec2.Subnet{
	CidrBlock:        "10.0.1.0/24",
	AvailabilityZone: "not-a-zone",
}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "test.go", src, 0)
	require.NoError(t, err)

	rule := HardcodedAvailabilityZone{}
	issues := rule.Check(file, fset)

	assert.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "us-east-1a")
	assert.Contains(t, issues[0].Suggestion, "GetAZs")
}

func TestAllRulesHaveUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, rule := range AllRules() {
		assert.False(t, seen[rule.ID()], "duplicate rule ID %s", rule.ID())
		seen[rule.ID()] = true
		assert.NotEmpty(t, rule.Description())
	}
}
