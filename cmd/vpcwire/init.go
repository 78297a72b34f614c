package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/spf13/cobra"
)

// validProjectName matches valid Go module/project names (alphanumeric, hyphens, underscores)
var validProjectName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [project-name]",
		Short: "Create a new vpcwire project",
		Long: `Init creates a new Go project with vpcwire configured.

The project is created in a subdirectory with the given name.
Multiple projects can coexist in the same workspace.

Examples:
    vpcwire init prod-network     # Creates ./prod-network/
    vpcwire init staging-vpc      # Creates ./staging-vpc/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(".", args[0])
		},
	}
}

// runInit creates a new project in {workspaceDir}/{projectName}/
func runInit(workspaceDir, projectName string) error {
	if !validProjectName.MatchString(projectName) {
		return fmt.Errorf("invalid project name %q: must start with a letter and contain only letters, numbers, hyphens, or underscores", projectName)
	}

	projectPath := filepath.Join(workspaceDir, projectName)
	if _, err := os.Stat(projectPath); err == nil {
		return fmt.Errorf("project already exists: %s", projectPath)
	}

	if err := os.MkdirAll(projectPath, 0755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}

	networkDir := filepath.Join(projectPath, "network")
	if err := os.MkdirAll(networkDir, 0755); err != nil {
		return fmt.Errorf("creating network directory: %w", err)
	}

	goMod := fmt.Sprintf(`module %s

go 1.23

require github.com/lex00/vpcwire-go v1.0.0
`, projectName)

	if err := os.WriteFile(filepath.Join(projectPath, "go.mod"), []byte(goMod), 0644); err != nil {
		return fmt.Errorf("writing go.mod: %w", err)
	}

	networkGo := `package network

import (
	"github.com/lex00/vpcwire-go/resources/ec2"

	. "github.com/lex00/vpcwire-go/intrinsics"
)

// VPC is the root of the network. Adjust the CIDR to your address plan.
var VPC = ec2.VPC{
	CidrBlock:          "10.0.0.0/16",
	EnableDnsSupport:   true,
	EnableDnsHostnames: true,
	Tags:               []any{Tag{Key: "Name", Value: "` + projectName + `-vpc"}},
}

var InternetGateway = ec2.InternetGateway{
	Tags: []any{Tag{Key: "Name", Value: "` + projectName + `-igw"}},
}

var GatewayAttachment = ec2.VPCGatewayAttachment{
	VpcId:             VPC,
	InternetGatewayId: InternetGateway,
}

// PublicSubnetA lands in the first availability zone of the region.
var PublicSubnetA = ec2.Subnet{
	VpcId:               VPC,
	CidrBlock:           "10.0.0.0/24",
	AvailabilityZone:    Select{Index: 0, List: GetAZs{}},
	MapPublicIpOnLaunch: true,
	Tags:                []any{Tag{Key: "Name", Value: "` + projectName + `-public-a"}},
}
`
	if err := os.WriteFile(filepath.Join(networkDir, "network.go"), []byte(networkGo), 0644); err != nil {
		return fmt.Errorf("writing network.go: %w", err)
	}

	outputsGo := `package network

import (
	. "github.com/lex00/vpcwire-go/intrinsics"
)

var VpcId = Output{
	Description: "ID of the VPC",
	Value:       VPC,
	ExportName:  Sub{String: "${AWS::StackName}-VpcId"},
}
`
	if err := os.WriteFile(filepath.Join(networkDir, "outputs.go"), []byte(outputsGo), 0644); err != nil {
		return fmt.Errorf("writing outputs.go: %w", err)
	}

	// A topology config for the config-driven path; build either one.
	topologyYaml := fmt.Sprintf(`# Declarative alternative to the Go declarations in network/.
# Build with: vpcwire build --config topology.yaml
name: %s
cidr: 10.0.0.0/16
zones: 2
nat: single
`, projectName)
	if err := os.WriteFile(filepath.Join(projectPath, "topology.yaml"), []byte(topologyYaml), 0644); err != nil {
		return fmt.Errorf("writing topology.yaml: %w", err)
	}

	gitignore := `# Build output
template.json
template.yaml

# IDE
.idea/
.vscode/
*.swp
*.swo

# OS
.DS_Store
Thumbs.db
`
	if err := os.WriteFile(filepath.Join(projectPath, ".gitignore"), []byte(gitignore), 0644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Printf("Created project: %s/\n", projectPath)
	fmt.Printf("  ├── go.mod\n")
	fmt.Printf("  ├── topology.yaml\n")
	fmt.Printf("  └── network/\n")
	fmt.Printf("      ├── network.go\n")
	fmt.Printf("      └── outputs.go\n")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  vpcwire build ./%s/network\n", projectName)
	fmt.Printf("  vpcwire build --config ./%s/topology.yaml\n", projectName)
	fmt.Println()

	return nil
}
