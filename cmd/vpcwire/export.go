package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lex00/vpcwire-go/internal/ackexport"
	"github.com/lex00/vpcwire-go/topology"
)

func newExportCmd() *cobra.Command {
	var (
		configFile string
		outputFile string
		namespace  string
		region     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a topology config as ACK Kubernetes manifests",
		Long: `Export renders a YAML topology description as ACK (AWS Controllers for
Kubernetes) manifests for clusters running the ACK EC2 controller.

The output is multi-document YAML ready for kubectl apply. Subnets need
concrete availability zones, so the target region is part of the export.

Examples:
    vpcwire export --config topology.yaml
    vpcwire export --config topology.yaml --region eu-west-1
    vpcwire export --config topology.yaml -o manifests.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile == "" {
				return fmt.Errorf("--config is required")
			}
			return runExport(configFile, outputFile, namespace, region)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Topology config file (YAML)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Kubernetes namespace (default: ack-system)")
	cmd.Flags().StringVarP(&region, "region", "r", "", "AWS region for availability zones (default: us-east-1)")

	return cmd
}

func runExport(configFile, outputFile, namespace, region string) error {
	cfg, err := topology.Load(configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	data, err := ackexport.Export(cfg, ackexport.Options{
		Namespace: namespace,
		Region:    region,
	})
	if err != nil {
		return fmt.Errorf("exporting manifests: %w", err)
	}

	if outputFile == "" {
		fmt.Print(string(data))
		return nil
	}

	return os.WriteFile(outputFile, data, 0644)
}
