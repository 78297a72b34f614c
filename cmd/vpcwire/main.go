// Command vpcwire generates CloudFormation VPC templates from Go
// network declarations or a declarative topology config.
//
// Usage:
//
//	vpcwire build ./network/...      Generate CloudFormation template
//	vpcwire build --config net.yaml  Generate from a topology config
//	vpcwire lint ./network/...       Check declarations for issues
//	vpcwire diff old.json ./network  Drift review against a deployed template
//	vpcwire export --config net.yaml ACK manifests for Kubernetes
//	vpcwire version                  Show version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vpcwire",
		Short: "Generate VPC CloudFormation templates from Go",
		Long: `vpcwire generates CloudFormation VPC templates from Go network declarations.

Define your network using native Go syntax:

    var VPC = ec2.VPC{
        CidrBlock: "10.0.0.0/16",
    }

Then generate CloudFormation JSON:

    vpcwire build ./network/...

Or skip the Go declarations entirely and describe the topology in YAML:

    vpcwire build --config topology.yaml`,
	}

	rootCmd.AddCommand(
		newBuildCmd(),
		newValidateCmd(),
		newListCmd(),
		newLintCmd(),
		newGraphCmd(),
		newDiffCmd(),
		newExportCmd(),
		newInitCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("vpcwire %s\n", getVersion())
		},
	}
}
