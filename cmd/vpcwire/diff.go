package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	vpcwire "github.com/lex00/vpcwire-go"
	"github.com/lex00/vpcwire-go/internal/differ"
	"github.com/lex00/vpcwire-go/internal/runner"
	"github.com/lex00/vpcwire-go/topology"
)

func newDiffCmd() *cobra.Command {
	var (
		configFile   string
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "diff <deployed-template> [package]",
		Short: "Compare a deployed template against the current build",
		Long: `Diff builds the current network declarations and compares the result
against a previously rendered template, showing added, removed, and
modified resources before a stack update.

Examples:
    vpcwire diff deployed.json ./network/...
    vpcwire diff deployed.yaml --config topology.yaml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" && len(args) > 1 {
				return fmt.Errorf("--config and a package argument are mutually exclusive")
			}
			if configFile == "" && len(args) < 2 {
				return fmt.Errorf("requires a package argument or --config")
			}
			return runDiff(args, configFile, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Topology config file (YAML)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")

	return cmd
}

func runDiff(args []string, configFile, format string) error {
	deployed, err := differ.LoadTemplate(args[0])
	if err != nil {
		return fmt.Errorf("loading %s: %w", args[0], err)
	}

	current, err := buildCurrent(args, configFile)
	if err != nil {
		return err
	}

	result := differ.Compare(deployed, current)

	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "text":
		printDiff(result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Empty() {
		os.Exit(1)
	}
	return nil
}

func buildCurrent(args []string, configFile string) (*vpcwire.Template, error) {
	if configFile != "" {
		cfg, err := topology.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		plan, err := topology.NewPlan(cfg)
		if err != nil {
			return nil, fmt.Errorf("planning topology: %w", err)
		}
		return plan.Template()
	}
	return runner.BuildPackage(args[1], "")
}

func printDiff(result *differ.Result) {
	if result.Empty() {
		fmt.Println("No differences")
		return
	}

	for _, entry := range result.Added {
		fmt.Printf("+ %s (%s)\n", entry.Resource, entry.Type)
	}
	for _, entry := range result.Removed {
		fmt.Printf("- %s (%s)\n", entry.Resource, entry.Type)
	}
	for _, entry := range result.Modified {
		fmt.Printf("~ %s (%s)\n", entry.Resource, entry.Type)
		for _, change := range entry.Changes {
			fmt.Printf("    %s %s\n", change.Kind, change.Path)
		}
	}
	fmt.Printf("\n%d resource(s) differ\n", result.Total())
}
