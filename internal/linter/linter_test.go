package linter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestLintFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "network.go", `package network

var region = "AWS::Region"
`)

	result, err := LintFile(path, Options{})
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "VPW001", result.Issues[0].Rule)
}

func TestLintFileClean(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "network.go", `package network

import "github.com/lex00/vpcwire-go/resources/ec2"

var VPC = ec2.VPC{CidrBlock: "10.0.0.0/16"}
`)

	result, err := LintFile(path, Options{})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, result.Issues)
}

func TestLintFileEnabledRules(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "network.go", `package network

var region = "AWS::Region"
var vpcId = Ref{"VPC"}
`)

	// Only VPW005 enabled, so the pseudo-parameter is not reported
	result, err := LintFile(path, Options{EnabledRules: []string{"VPW005"}})
	require.NoError(t, err)

	require.Len(t, result.Issues, 1)
	assert.Equal(t, "VPW005", result.Issues[0].Rule)
}

func TestLintPackage(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "vpc.go", `package network

var region = "AWS::Region"
`)
	writeTestFile(t, dir, "subnets.go", `package network

var zone = "AWS::AccountId"
`)

	result, err := LintPackage(dir, Options{})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Len(t, result.Issues, 2)
}

func TestLintPackageRecursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "network")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	writeTestFile(t, sub, "vpc.go", `package network

var region = "AWS::Region"
`)
	// Test files are skipped
	writeTestFile(t, sub, "vpc_test.go", `package network

var other = "AWS::StackName"
`)

	result, err := LintPackage(dir+"/...", Options{})
	require.NoError(t, err)

	assert.Len(t, result.Issues, 1)
}
