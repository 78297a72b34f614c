package linter

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
)

// AvoidExplicitRef detects explicit Ref{} struct literals.
// Direct variable references serialize to Ref automatically.
//
// Example:
//
//	// Bad - explicit Ref{}
//	VpcId: Ref{"VPC"},
//
//	// Good - direct reference
//	VpcId: VPC,
type AvoidExplicitRef struct{}

func (r AvoidExplicitRef) ID() string { return "VPW005" }
func (r AvoidExplicitRef) Description() string {
	return "Avoid explicit Ref{} - use direct variable references or Param()"
}

func (r AvoidExplicitRef) Check(file *ast.File, fset *token.FileSet) []Issue {
	var issues []Issue

	ast.Inspect(file, func(n ast.Node) bool {
		comp, ok := n.(*ast.CompositeLit)
		if !ok {
			return true
		}

		ident, ok := comp.Type.(*ast.Ident)
		if !ok || ident.Name != "Ref" {
			return true
		}

		refName := ""
		if len(comp.Elts) > 0 {
			if lit, ok := comp.Elts[0].(*ast.BasicLit); ok {
				refName = strings.Trim(lit.Value, `"`)
			}
		}

		pos := fset.Position(comp.Pos())
		suggestion := "Use direct variable reference for resources, Param() for parameters"
		if refName != "" {
			suggestion = fmt.Sprintf("For resources: use %s directly. For parameters: var %s = Param(\"%s\")", refName, refName, refName)
		}

		issues = append(issues, Issue{
			Rule:       r.ID(),
			Message:    "Avoid Ref{} - use direct variable reference or Param() helper",
			Suggestion: suggestion,
			File:       pos.Filename,
			Line:       pos.Line,
			Column:     pos.Column,
			Severity:   SeverityWarning,
		})

		return true
	})

	return issues
}

// AvoidExplicitGetAtt detects explicit GetAtt{} struct literals.
// Prefer resource.Attr field access.
//
// Example:
//
//	// Bad - explicit GetAtt{}
//	AllocationId: GetAtt{"NATGatewayEIP", "AllocationId"},
//
//	// Good - field access
//	AllocationId: NATGatewayEIP.AllocationId,
type AvoidExplicitGetAtt struct{}

func (r AvoidExplicitGetAtt) ID() string { return "VPW006" }
func (r AvoidExplicitGetAtt) Description() string {
	return "Avoid explicit GetAtt{} - use resource.Attr field access"
}

func (r AvoidExplicitGetAtt) Check(file *ast.File, fset *token.FileSet) []Issue {
	var issues []Issue

	ast.Inspect(file, func(n ast.Node) bool {
		comp, ok := n.(*ast.CompositeLit)
		if !ok {
			return true
		}

		ident, ok := comp.Type.(*ast.Ident)
		if !ok || ident.Name != "GetAtt" {
			return true
		}

		resourceName := ""
		attrName := ""
		if len(comp.Elts) >= 2 {
			if lit, ok := comp.Elts[0].(*ast.BasicLit); ok {
				resourceName = strings.Trim(lit.Value, `"`)
			}
			if lit, ok := comp.Elts[1].(*ast.BasicLit); ok {
				attrName = strings.Trim(lit.Value, `"`)
			}
		}

		pos := fset.Position(comp.Pos())
		suggestion := "Use Resource.Attr field access instead"
		if resourceName != "" && attrName != "" {
			suggestion = fmt.Sprintf("Use %s.%s instead", resourceName, attrName)
		}

		issues = append(issues, Issue{
			Rule:       r.ID(),
			Message:    "Avoid GetAtt{} - use resource.Attr field access",
			Suggestion: suggestion,
			File:       pos.Filename,
			Line:       pos.Line,
			Column:     pos.Column,
			Severity:   SeverityWarning,
		})

		return true
	})

	return issues
}

// AvoidPointerAssignment detects pointer assignments in top-level var
// declarations. The AST-based value extraction expects struct literals,
// not pointers.
//
// Example:
//
//	// Bad - pointer assignment
//	var VPC = &ec2.VPC{CidrBlock: "10.0.0.0/16"}
//
//	// Good - value assignment
//	var VPC = ec2.VPC{CidrBlock: "10.0.0.0/16"}
type AvoidPointerAssignment struct{}

func (r AvoidPointerAssignment) ID() string { return "VPW007" }
func (r AvoidPointerAssignment) Description() string {
	return "Avoid pointer assignments (&Type{}) - use value types"
}

func (r AvoidPointerAssignment) Check(file *ast.File, fset *token.FileSet) []Issue {
	var issues []Issue

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.VAR {
			continue
		}

		for _, spec := range genDecl.Specs {
			valueSpec, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}

			for i, value := range valueSpec.Values {
				unary, ok := value.(*ast.UnaryExpr)
				if !ok || unary.Op != token.AND {
					continue
				}

				comp, ok := unary.X.(*ast.CompositeLit)
				if !ok {
					continue
				}

				typeName := "struct"
				switch t := comp.Type.(type) {
				case *ast.SelectorExpr:
					typeName = t.Sel.Name
				case *ast.Ident:
					typeName = t.Name
				}

				varName := "_"
				if i < len(valueSpec.Names) {
					varName = valueSpec.Names[i].Name
				}

				pos := fset.Position(unary.Pos())
				issues = append(issues, Issue{
					Rule:       r.ID(),
					Message:    fmt.Sprintf("Avoid pointer assignment for %s - use value type instead of &%s{}", varName, typeName),
					Suggestion: fmt.Sprintf("var %s = %s{...} (remove &)", varName, typeName),
					File:       pos.Filename,
					Line:       pos.Line,
					Column:     pos.Column,
					Severity:   SeverityError,
				})
			}
		}
	}

	return issues
}
