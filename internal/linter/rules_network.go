package linter

import (
	"fmt"
	"go/ast"
	"go/token"
	"regexp"
	"strings"
)

// UnrestrictedIngress detects security group ingress rules open to the
// world. Endpoint security groups should restrict ingress to the VPC
// CIDR.
//
// Example:
//
//	// Bad - open to the world
//	var HTTPSFromAnywhere = ec2.SecurityGroup_Ingress{
//	    IpProtocol: "tcp",
//	    FromPort:   443,
//	    ToPort:     443,
//	    CidrIp:     "0.0.0.0/0",
//	}
//
//	// Good - restricted to the VPC
//	var HTTPSFromVPC = ec2.SecurityGroup_Ingress{
//	    IpProtocol: "tcp",
//	    FromPort:   443,
//	    ToPort:     443,
//	    CidrIp:     "10.0.0.0/16",
//	}
type UnrestrictedIngress struct{}

func (r UnrestrictedIngress) ID() string { return "VPW008" }
func (r UnrestrictedIngress) Description() string {
	return "Avoid unrestricted ingress from 0.0.0.0/0"
}

func (r UnrestrictedIngress) Check(file *ast.File, fset *token.FileSet) []Issue {
	var issues []Issue

	ast.Inspect(file, func(n ast.Node) bool {
		comp, ok := n.(*ast.CompositeLit)
		if !ok {
			return true
		}

		sel, ok := comp.Type.(*ast.SelectorExpr)
		if !ok || !strings.Contains(sel.Sel.Name, "Ingress") {
			return true
		}

		for _, elt := range comp.Elts {
			kv, ok := elt.(*ast.KeyValueExpr)
			if !ok {
				continue
			}

			keyIdent, ok := kv.Key.(*ast.Ident)
			if !ok || keyIdent.Name != "CidrIp" {
				continue
			}

			lit, ok := kv.Value.(*ast.BasicLit)
			if !ok || lit.Kind != token.STRING {
				continue
			}

			if strings.Trim(lit.Value, `"`) == "0.0.0.0/0" {
				pos := fset.Position(lit.Pos())
				issues = append(issues, Issue{
					Rule:       r.ID(),
					Message:    "Ingress rule allows traffic from 0.0.0.0/0",
					Suggestion: "Restrict CidrIp to the VPC CIDR block",
					File:       pos.Filename,
					Line:       pos.Line,
					Column:     pos.Column,
					Severity:   SeverityWarning,
				})
			}
		}

		return true
	})

	return issues
}

// HardcodedAvailabilityZone detects hardcoded AZ names like
// "us-east-1a". Zone names differ per account, so templates should
// select from GetAZs instead.
//
// Example:
//
//	// Bad - hardcoded zone
//	AvailabilityZone: "us-east-1a",
//
//	// Good - region-relative selection
//	AvailabilityZone: Select{Index: 0, List: GetAZs{}},
type HardcodedAvailabilityZone struct{}

func (r HardcodedAvailabilityZone) ID() string { return "VPW009" }
func (r HardcodedAvailabilityZone) Description() string {
	return "Avoid hardcoded availability zone names"
}

var azNamePattern = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-\d[a-z]$`)

func (r HardcodedAvailabilityZone) Check(file *ast.File, fset *token.FileSet) []Issue {
	var issues []Issue

	ast.Inspect(file, func(n ast.Node) bool {
		kv, ok := n.(*ast.KeyValueExpr)
		if !ok {
			return true
		}

		keyIdent, ok := kv.Key.(*ast.Ident)
		if !ok || keyIdent.Name != "AvailabilityZone" {
			return true
		}

		lit, ok := kv.Value.(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return true
		}

		value := strings.Trim(lit.Value, `"`)
		if azNamePattern.MatchString(value) {
			pos := fset.Position(lit.Pos())
			issues = append(issues, Issue{
				Rule:       r.ID(),
				Message:    fmt.Sprintf("Hardcoded availability zone %q", value),
				Suggestion: "Use Select{Index: n, List: GetAZs{}} instead",
				File:       pos.Filename,
				Line:       pos.Line,
				Column:     pos.Column,
				Severity:   SeverityWarning,
			})
		}

		return true
	})

	return issues
}
