// Package validation runs the template validation pipeline.
//
// Two stages:
//   - source lint: style and pattern checks on declaration files (in-process)
//   - cfn-lint-go: CloudFormation template validation (library dependency)
package validation

import (
	"fmt"
	"os"
	"strings"

	"github.com/lex00/cfn-lint-go/pkg/lint"

	"github.com/lex00/vpcwire-go/internal/linter"
)

// LintResult contains the result of the source lint stage.
type LintResult struct {
	Passed bool     `json:"passed"`
	Issues []string `json:"issues"`
}

// CfnLintResult contains the result of running cfn-lint.
type CfnLintResult struct {
	Passed        bool     `json:"passed"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	Informational []string `json:"informational"`
}

// TotalIssues returns the total number of issues found.
func (r CfnLintResult) TotalIssues() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Informational)
}

// Result contains all validation results for a package.
type Result struct {
	LintResult    *LintResult    `json:"lint_result"`
	CfnLintResult *CfnLintResult `json:"cfn_lint_result,omitempty"`
}

// RunLint lints the declaration files in a package directory.
func RunLint(packageDir string) (*LintResult, error) {
	res, err := linter.LintPackage(packageDir, linter.Options{})
	if err != nil {
		return nil, err
	}

	result := &LintResult{
		Passed: res.Success,
		Issues: []string{},
	}
	for _, issue := range res.Issues {
		result.Issues = append(result.Issues,
			fmt.Sprintf("%s:%d:%d: %s %s", issue.File, issue.Line, issue.Column, issue.Rule, issue.Message))
	}
	return result, nil
}

// RunCfnLint runs cfn-lint-go on the given template file.
// cfn-lint-go is a library dependency for guaranteed version control.
func RunCfnLint(templatePath string) (*CfnLintResult, error) {
	if _, err := os.Stat(templatePath); err != nil {
		return &CfnLintResult{
			Passed: false,
			Errors: []string{fmt.Sprintf("Template file not found: %s", templatePath)},
		}, nil
	}

	linter := lint.New(lint.Options{})
	matches, err := linter.LintFile(templatePath)
	if err != nil {
		return &CfnLintResult{
			Passed: false,
			Errors: []string{fmt.Sprintf("Linter error: %v", err)},
		}, nil
	}

	result := &CfnLintResult{
		Errors:        []string{},
		Warnings:      []string{},
		Informational: []string{},
	}

	if len(matches) == 0 {
		result.Passed = true
		return result, nil
	}

	for _, match := range matches {
		formatted := formatMatch(match)

		switch match.Level {
		case "Error":
			result.Errors = append(result.Errors, formatted)
		case "Warning":
			result.Warnings = append(result.Warnings, formatted)
		default:
			result.Informational = append(result.Informational, formatted)
		}
	}

	// Warnings are acceptable
	result.Passed = len(result.Errors) == 0

	return result, nil
}

// formatMatch formats a cfn-lint-go match for display.
func formatMatch(match lint.Match) string {
	pathStr := ""
	if len(match.Location.Path) > 0 {
		parts := make([]string, len(match.Location.Path))
		for i, p := range match.Location.Path {
			parts[i] = fmt.Sprintf("%v", p)
		}
		pathStr = strings.Join(parts, "/")
	}

	if pathStr != "" {
		return fmt.Sprintf("%s: %s (at %s)", match.Rule.ID, match.Message, pathStr)
	}
	return fmt.Sprintf("%s: %s", match.Rule.ID, match.Message)
}

// ValidatePackage lints a package and, when templatePath is non-empty,
// validates the rendered template with cfn-lint.
func ValidatePackage(packageDir, templatePath string) (*Result, error) {
	result := &Result{}

	lintResult, err := RunLint(packageDir)
	if err != nil {
		return nil, fmt.Errorf("running lint: %w", err)
	}
	result.LintResult = lintResult

	if templatePath != "" {
		cfnResult, err := RunCfnLint(templatePath)
		if err != nil {
			return nil, fmt.Errorf("running cfn-lint: %w", err)
		}
		result.CfnLintResult = cfnResult
	}

	return result, nil
}
