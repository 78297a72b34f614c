package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	vpcwire "github.com/lex00/vpcwire-go"
	"github.com/lex00/vpcwire-go/internal/discover"
	"github.com/lex00/vpcwire-go/internal/netcheck"
	"github.com/lex00/vpcwire-go/internal/runner"
	"github.com/lex00/vpcwire-go/internal/schema"
	"github.com/lex00/vpcwire-go/internal/template"
	"github.com/lex00/vpcwire-go/internal/validation"
)

// newValidateCmd creates the "validate" subcommand.
func newValidateCmd() *cobra.Command {
	var (
		outputFormat string
		skipCfnLint  bool
	)

	cmd := &cobra.Command{
		Use:   "validate [packages...]",
		Short: "Validate declarations, topology, and rendered template",
		Long: `Validate discovers network resources and checks them for issues.

Checks performed:
  - Reference validity: all resource references point to defined resources
  - Offline schema: required properties and unknown property names
  - Topology invariants: subnet CIDRs, NAT placement, route table coverage
  - Template lint: cfn-lint on the rendered CloudFormation document

Examples:
    vpcwire validate ./network/...
    vpcwire validate ./network/... --format json
    vpcwire validate ./network/... --skip-cfn-lint`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args, outputFormat, skipCfnLint)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&skipCfnLint, "skip-cfn-lint", false, "Skip cfn-lint template validation")

	return cmd
}

func runValidate(packages []string, format string, skipCfnLint bool) error {
	result, err := discover.Discover(discover.Options{
		Packages: packages,
	})
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	validateResult := vpcwire.ValidateResult{
		Success:   len(result.Errors) == 0,
		Resources: len(result.Resources),
	}
	for _, e := range result.Errors {
		validateResult.Errors = append(validateResult.Errors, e.Error())
	}

	// Topology and template checks need a successful build
	if validateResult.Success && len(result.Resources) > 0 {
		tmpl, err := runner.BuildPackage(packages[0], "")
		if err != nil {
			validateResult.Success = false
			validateResult.Errors = append(validateResult.Errors, err.Error())
			return outputValidateResult(validateResult, format)
		}

		schemaResult := schema.ValidateTemplate(tmpl)
		for _, e := range schemaResult.Errors {
			validateResult.Success = false
			validateResult.Errors = append(validateResult.Errors, e.String())
		}
		for _, w := range schemaResult.Warnings {
			validateResult.Warnings = append(validateResult.Warnings, w.String())
		}

		check := netcheck.Check(tmpl)
		for _, f := range check.Findings {
			msg := fmt.Sprintf("%s: %s: %s", f.Code, f.Resource, f.Message)
			if f.Level == netcheck.LevelError {
				validateResult.Success = false
				validateResult.Errors = append(validateResult.Errors, msg)
			} else {
				validateResult.Warnings = append(validateResult.Warnings, msg)
			}
		}

		if !skipCfnLint {
			if err := runTemplateLint(tmpl, &validateResult); err != nil {
				return err
			}
		}
	}

	return outputValidateResult(validateResult, format)
}

// runTemplateLint renders the template to a temp file and runs
// cfn-lint over it.
func runTemplateLint(tmpl *vpcwire.Template, validateResult *vpcwire.ValidateResult) error {
	data, err := template.ToJSON(tmpl)
	if err != nil {
		return err
	}

	tmpDir, err := os.MkdirTemp("", "vpcwire-validate-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	templatePath := filepath.Join(tmpDir, "template.json")
	if err := os.WriteFile(templatePath, data, 0644); err != nil {
		return err
	}

	cfnResult, err := validation.RunCfnLint(templatePath)
	if err != nil {
		return fmt.Errorf("cfn-lint: %w", err)
	}

	if len(cfnResult.Errors) > 0 {
		validateResult.Success = false
		validateResult.Errors = append(validateResult.Errors, cfnResult.Errors...)
	}
	validateResult.Warnings = append(validateResult.Warnings, cfnResult.Warnings...)
	return nil
}

func outputValidateResult(result vpcwire.ValidateResult, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "text":
		if result.Success {
			fmt.Printf("Validation passed: %d resources OK\n", result.Resources)
			for _, warnMsg := range result.Warnings {
				fmt.Printf("  WARNING: %s\n", warnMsg)
			}
			return nil
		}

		fmt.Println("Validation FAILED:")
		for _, errMsg := range result.Errors {
			fmt.Printf("  ERROR: %s\n", errMsg)
		}
		for _, warnMsg := range result.Warnings {
			fmt.Printf("  WARNING: %s\n", warnMsg)
		}

	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Success {
		os.Exit(1)
	}

	return nil
}
