package topology

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(`
name: prod
cidr: 10.0.0.0/16
`))
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Name)
	assert.Equal(t, "10.0.0.0/16", cfg.CIDR)
	assert.Equal(t, 2, cfg.Zones)
	assert.Equal(t, 8, cfg.SubnetBits)
	assert.Equal(t, NATSingle, cfg.NAT)
}

func TestParse_EndpointDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
name: prod
cidr: 10.0.0.0/16
endpoints:
  - service: S3
  - service: ssm
`))
	require.NoError(t, err)

	require.Len(t, cfg.Endpoints, 2)
	assert.Equal(t, "s3", cfg.Endpoints[0].Service)
	assert.Equal(t, EndpointGateway, cfg.Endpoints[0].Type)
	assert.Equal(t, "ssm", cfg.Endpoints[1].Service)
	assert.Equal(t, EndpointInterface, cfg.Endpoints[1].Type)
}

func TestParse_Full(t *testing.T) {
	cfg, err := Parse([]byte(`
name: staging
cidr: 10.50.0.0/16
zones: 3
subnet_bits: 6
nat: per-az
dns_hostnames: true
tags:
  Environment: staging
  Team: platform
endpoints:
  - service: dynamodb
    type: Gateway
  - service: ecr.api
    type: Interface
    private_dns: true
`))
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Zones)
	assert.Equal(t, 6, cfg.SubnetBits)
	assert.Equal(t, NATPerAZ, cfg.NAT)
	assert.True(t, cfg.DnsHostnames)
	assert.Equal(t, "staging", cfg.Tags["Environment"])
	assert.True(t, cfg.Endpoints[1].PrivateDns)
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing name",
			yaml: "cidr: 10.0.0.0/16",
			want: "name is required",
		},
		{
			name: "missing cidr",
			yaml: "name: prod",
			want: "cidr is required",
		},
		{
			name: "bad cidr",
			yaml: "name: prod\ncidr: not-a-cidr",
			want: "config",
		},
		{
			name: "too many zones",
			yaml: "name: prod\ncidr: 10.0.0.0/16\nzones: 9",
			want: "config",
		},
		{
			name: "bad nat strategy",
			yaml: "name: prod\ncidr: 10.0.0.0/16\nnat: sometimes",
			want: "unknown nat strategy",
		},
		{
			name: "bad endpoint type",
			yaml: "name: prod\ncidr: 10.0.0.0/16\nendpoints:\n  - service: s3\n    type: Magic",
			want: "unknown type",
		},
		{
			name: "non-ascii endpoint service",
			yaml: "name: prod\ncidr: 10.0.0.0/16\nendpoints:\n  - service: ß3",
			want: "not a valid service short name",
		},
		{
			name: "endpoint service with spaces",
			yaml: "name: prod\ncidr: 10.0.0.0/16\nendpoints:\n  - service: \"ecr api\"",
			want: "not a valid service short name",
		},
		{
			name: "duplicate endpoint",
			yaml: "name: prod\ncidr: 10.0.0.0/16\nendpoints:\n  - service: s3\n  - service: s3",
			want: "duplicate endpoint",
		},
		{
			name: "subnets exhaust the block",
			yaml: "name: prod\ncidr: 10.0.0.0/24\nsubnet_bits: 1\nzones: 2",
			want: "config",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topology.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: prod\ncidr: 10.0.0.0/16\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
