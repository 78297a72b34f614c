package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	vpcwire "github.com/lex00/vpcwire-go"
	"github.com/lex00/vpcwire-go/internal/runner"
	"github.com/lex00/vpcwire-go/internal/template"
	"github.com/lex00/vpcwire-go/topology"
)

func newBuildCmd() *cobra.Command {
	var (
		outputFormat string
		outputFile   string
		configFile   string
		description  string
	)

	cmd := &cobra.Command{
		Use:   "build [packages...]",
		Short: "Generate CloudFormation template from Go packages or a topology config",
		Long: `Build discovers network declarations in Go packages and generates a template.

With --config, the template is derived from a YAML topology description
instead of Go declarations.

Examples:
    vpcwire build ./network/...
    vpcwire build ./network/... -o template.json
    vpcwire build ./network/... --format yaml
    vpcwire build --config topology.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				if len(args) > 0 {
					return fmt.Errorf("--config and package arguments are mutually exclusive")
				}
				return runConfigBuild(configFile, description, outputFormat, outputFile)
			}
			if len(args) == 0 {
				return fmt.Errorf("requires package arguments or --config")
			}
			return runBuild(args, description, outputFormat, outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Topology config file (YAML)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Template description")

	return cmd
}

func runBuild(packages []string, description, format, outputFile string) error {
	tmpl, err := runner.BuildPackage(packages[0], description)
	if err != nil {
		buildResult := vpcwire.BuildResult{
			Success: false,
			Errors:  []string{err.Error()},
		}
		return outputBuildResult(buildResult, format, outputFile)
	}

	return outputBuildResult(successResult(tmpl), format, outputFile)
}

func runConfigBuild(configFile, description, format, outputFile string) error {
	cfg, err := topology.Load(configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	plan, err := topology.NewPlan(cfg)
	if err != nil {
		return fmt.Errorf("planning topology: %w", err)
	}

	tmpl, err := plan.Template()
	if err != nil {
		buildResult := vpcwire.BuildResult{
			Success: false,
			Errors:  []string{err.Error()},
		}
		return outputBuildResult(buildResult, format, outputFile)
	}
	if description != "" {
		tmpl.Description = description
	}

	return outputBuildResult(successResult(tmpl), format, outputFile)
}

func successResult(tmpl *vpcwire.Template) vpcwire.BuildResult {
	resourceNames := make([]string, 0, len(tmpl.Resources))
	for name := range tmpl.Resources {
		resourceNames = append(resourceNames, name)
	}
	return vpcwire.BuildResult{
		Success:   true,
		Template:  *tmpl,
		Resources: resourceNames,
	}
}

func outputBuildResult(result vpcwire.BuildResult, format, outputFile string) error {
	// Build failures go to stderr
	if !result.Success {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("build failed")
	}

	var data []byte
	var err error

	switch format {
	case "json":
		data, err = template.ToJSON(&result.Template)
	case "yaml":
		data, err = template.ToYAML(&result.Template)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if err != nil {
		return err
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}

	return os.WriteFile(outputFile, data, 0644)
}
