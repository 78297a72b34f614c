// Package discover provides AST-based discovery of resource declarations.
//
// It parses Go source files looking for package-level variable declarations
// of the form:
//
//	var VPC = ec2.VPC{...}
//
// and extracts resource metadata including dependencies on other resources
// and attribute references (GetAtt) with the field paths they occur at.
package discover

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	vpcwire "github.com/lex00/vpcwire-go"
)

// knownResourcePackages maps resource package names to CloudFormation
// service prefixes. The topology surface is EC2 networking.
var knownResourcePackages = map[string]string{
	"ec2": "AWS::EC2",
}

// Options configures the discovery process.
type Options struct {
	// Packages to scan (e.g., "./network/...")
	Packages []string
}

// Result contains all discovered declarations and any errors.
type Result struct {
	// Resources maps logical name to discovered resource
	Resources map[string]vpcwire.DiscoveredResource
	// Parameters maps logical name to discovered parameter
	Parameters map[string]vpcwire.DiscoveredParameter
	// Outputs maps logical name to discovered output
	Outputs map[string]vpcwire.DiscoveredOutput
	// AllVars tracks all package-level var declarations (including non-resources)
	// Used to avoid false positives when checking dependencies
	AllVars map[string]bool
	// VarRefs tracks, per variable, which other variables its fields
	// reference and which attributes it reads, keyed by field path
	VarRefs map[string]VarRefInfo
	// Errors encountered during parsing
	Errors []error
}

// VarRefInfo tracks references made by a single variable's declaration.
type VarRefInfo struct {
	// AttrRefs are Resource.Attribute reads with their field paths
	AttrRefs []vpcwire.AttrRefUsage
	// Refs maps field path to the variable names referenced there.
	// Slice fields can reference several resources at one path.
	Refs map[string][]string
}

// Discover scans Go packages for resource declarations.
func Discover(opts Options) (*Result, error) {
	result := &Result{
		Resources:  make(map[string]vpcwire.DiscoveredResource),
		Parameters: make(map[string]vpcwire.DiscoveredParameter),
		Outputs:    make(map[string]vpcwire.DiscoveredOutput),
		AllVars:    make(map[string]bool),
		VarRefs:    make(map[string]VarRefInfo),
	}

	for _, pkg := range opts.Packages {
		if err := discoverPackage(pkg, result); err != nil {
			return nil, fmt.Errorf("discovering %s: %w", pkg, err)
		}
	}

	// Only flag truly undefined references; local vars (tag blocks,
	// property types, policy documents) are fine.
	for name, res := range result.Resources {
		for _, dep := range res.Dependencies {
			if _, ok := result.Resources[dep]; ok {
				continue
			}
			if _, ok := result.Parameters[dep]; ok {
				continue
			}
			if result.AllVars[dep] {
				continue
			}
			result.Errors = append(result.Errors, fmt.Errorf(
				"%s:%d: %s references undefined resource %q",
				res.File, res.Line, name, dep,
			))
		}
	}

	return result, nil
}

func discoverPackage(pattern string, result *Result) error {
	recursive := strings.HasSuffix(pattern, "/...") || pattern == "..."
	pattern = strings.TrimSuffix(pattern, "...")
	pattern = strings.TrimSuffix(pattern, "/")
	if pattern == "" {
		pattern = "."
	}

	absPath, err := filepath.Abs(pattern)
	if err != nil {
		return err
	}

	if recursive {
		return filepath.Walk(absPath, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return discoverDir(path, result)
			}
			return nil
		})
	}

	return discoverDir(absPath, result)
}

func discoverDir(dir string, result *Result) error {
	fset := token.NewFileSet()

	pkgs, err := parser.ParseDir(fset, dir, func(fi os.FileInfo) bool {
		return !strings.HasSuffix(fi.Name(), "_test.go")
	}, parser.ParseComments)
	if err != nil {
		if os.IsNotExist(err) || strings.Contains(err.Error(), "no Go files") {
			return nil
		}
		return err
	}

	for _, pkg := range pkgs {
		for filename, file := range pkg.Files {
			discoverFile(fset, filename, file, result)
		}
	}

	return nil
}

func discoverFile(fset *token.FileSet, filename string, file *ast.File, result *Result) {
	// Build import map: alias -> package path
	imports := make(map[string]string)
	for _, imp := range file.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		var name string
		if imp.Name != nil {
			name = imp.Name.Name
		} else {
			parts := strings.Split(path, "/")
			name = parts[len(parts)-1]
		}
		imports[name] = path
	}

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.VAR {
			continue
		}

		for _, spec := range genDecl.Specs {
			valueSpec, ok := spec.(*ast.ValueSpec)
			if !ok || len(valueSpec.Names) != 1 || len(valueSpec.Values) != 1 {
				continue
			}

			name := valueSpec.Names[0].Name
			value := valueSpec.Values[0]

			if name == "_" {
				continue
			}

			// Track ALL var declarations to avoid false positive undefined references
			result.AllVars[name] = true

			compLit, ok := value.(*ast.CompositeLit)
			if !ok {
				continue
			}

			typeName, pkgName := extractTypeName(compLit.Type)
			if typeName == "" {
				continue
			}

			pos := fset.Position(valueSpec.Pos())

			// Parameter and Output declarations from the intrinsics package
			if isIntrinsicPackage(pkgName, imports) || pkgName == "" {
				switch typeName {
				case "Parameter":
					result.Parameters[name] = vpcwire.DiscoveredParameter{
						Name: name,
						File: filename,
						Line: pos.Line,
					}
					continue
				case "Output":
					_, attrRefs, refs := extractRefs(compLit, imports)
					result.Outputs[name] = vpcwire.DiscoveredOutput{
						Name:          name,
						File:          filename,
						Line:          pos.Line,
						AttrRefUsages: attrRefs,
					}
					result.VarRefs[name] = VarRefInfo{
						AttrRefs: attrRefs,
						Refs:     refs,
					}
					continue
				}
			}

			// Extract references from field values for ALL composite
			// literals, so refs through property-type vars resolve too.
			deps, attrRefs, refs := extractRefs(compLit, imports)
			result.VarRefs[name] = VarRefInfo{
				AttrRefs: attrRefs,
				Refs:     refs,
			}

			if _, known := knownResourcePackages[pkgName]; !known {
				continue
			}

			// Property types (e.g., SecurityGroup_Ingress) are nested
			// declarations, not CloudFormation resources.
			if strings.Contains(typeName, "_") {
				continue
			}

			result.Resources[name] = vpcwire.DiscoveredResource{
				Name:          name,
				Type:          fmt.Sprintf("%s.%s", pkgName, typeName),
				Package:       file.Name.Name,
				File:          filename,
				Line:          pos.Line,
				Dependencies:  deps,
				AttrRefUsages: attrRefs,
			}
		}
	}
}

// isIntrinsicPackage checks if the package is the intrinsics package.
func isIntrinsicPackage(pkgName string, imports map[string]string) bool {
	if pkgName == "" {
		for alias, path := range imports {
			if alias == "." && strings.HasSuffix(path, "/intrinsics") {
				return true
			}
		}
		return false
	}
	if pkgName == "intrinsics" {
		return true
	}
	if path, ok := imports[pkgName]; ok {
		return strings.HasSuffix(path, "/intrinsics")
	}
	return false
}

// extractTypeName extracts the type name and package from a type expression.
// For ec2.Subnet, returns ("Subnet", "ec2").
func extractTypeName(expr ast.Expr) (typeName, pkgName string) {
	switch t := expr.(type) {
	case *ast.SelectorExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			return t.Sel.Name, ident.Name
		}
	case *ast.Ident:
		return t.Name, ""
	}
	return "", ""
}

// extractRefs finds references to other declarations in composite literal
// fields. It looks for:
//   - OtherResource (identifier reference, becomes Ref)
//   - OtherResource.AllocationId (selector, becomes Fn::GetAtt)
func extractRefs(lit *ast.CompositeLit, imports map[string]string) ([]string, []vpcwire.AttrRefUsage, map[string][]string) {
	var deps []string
	var attrRefs []vpcwire.AttrRefUsage
	refs := make(map[string][]string)
	seen := make(map[string]bool)

	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			continue
		}

		fieldName := ""
		if ident, ok := kv.Key.(*ast.Ident); ok {
			fieldName = ident.Name
		}

		findRefs(kv.Value, &deps, &attrRefs, refs, seen, imports, fieldName)
	}

	return deps, attrRefs, refs
}

func findRefs(expr ast.Expr, deps *[]string, attrRefs *[]vpcwire.AttrRefUsage, refs map[string][]string, seen map[string]bool, imports map[string]string, fieldPath string) {
	switch v := expr.(type) {
	case *ast.Ident:
		name := v.Name
		if _, isImport := imports[name]; isImport {
			return
		}
		if isCommonIdent(name) {
			return
		}
		// Exported identifier = likely a resource/var reference
		if len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z' {
			if !seen[name] {
				*deps = append(*deps, name)
				seen[name] = true
			}
			if fieldPath != "" {
				refs[fieldPath] = append(refs[fieldPath], name)
			}
		}

	case *ast.SelectorExpr:
		// Resource.Attribute (e.g., NATGatewayEIP.AllocationId)
		if ident, ok := v.X.(*ast.Ident); ok {
			name := ident.Name
			if _, isImport := imports[name]; isImport {
				return
			}
			if len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z' {
				if !seen[name] {
					*deps = append(*deps, name)
					seen[name] = true
				}
				*attrRefs = append(*attrRefs, vpcwire.AttrRefUsage{
					ResourceName: name,
					Attribute:    v.Sel.Name,
					FieldPath:    fieldPath,
				})
			}
		}

	case *ast.CompositeLit:
		for _, elt := range v.Elts {
			if kv, ok := elt.(*ast.KeyValueExpr); ok {
				nestedPath := fieldPath
				if ident, ok := kv.Key.(*ast.Ident); ok {
					if fieldPath != "" {
						nestedPath = fieldPath + "." + ident.Name
					} else {
						nestedPath = ident.Name
					}
				}
				findRefs(kv.Value, deps, attrRefs, refs, seen, imports, nestedPath)
			} else {
				findRefs(elt, deps, attrRefs, refs, seen, imports, fieldPath)
			}
		}

	case *ast.UnaryExpr:
		findRefs(v.X, deps, attrRefs, refs, seen, imports, fieldPath)

	case *ast.CallExpr:
		for _, arg := range v.Args {
			findRefs(arg, deps, attrRefs, refs, seen, imports, fieldPath)
		}

	case *ast.SliceExpr:
		findRefs(v.X, deps, attrRefs, refs, seen, imports, fieldPath)

	case *ast.IndexExpr:
		findRefs(v.X, deps, attrRefs, refs, seen, imports, fieldPath)
		findRefs(v.Index, deps, attrRefs, refs, seen, imports, fieldPath)
	}
}

// ResolveAttrRefs recursively collects all AttrRefUsages for a variable by
// following its variable references and prefixing paths appropriately.
// This resolves attribute reads made through intermediate property vars.
func (r *Result) ResolveAttrRefs(varName string) []vpcwire.AttrRefUsage {
	visited := make(map[string]bool)
	return r.resolveAttrRefs(varName, "", visited)
}

func (r *Result) resolveAttrRefs(varName, pathPrefix string, visited map[string]bool) []vpcwire.AttrRefUsage {
	if visited[varName] {
		return nil
	}
	visited[varName] = true

	info, ok := r.VarRefs[varName]
	if !ok {
		return nil
	}

	var result []vpcwire.AttrRefUsage

	for _, ref := range info.AttrRefs {
		fullPath := ref.FieldPath
		if pathPrefix != "" {
			fullPath = pathPrefix + "." + ref.FieldPath
		}
		result = append(result, vpcwire.AttrRefUsage{
			ResourceName: ref.ResourceName,
			Attribute:    ref.Attribute,
			FieldPath:    fullPath,
		})
	}

	for fieldPath, refNames := range info.Refs {
		fullPath := fieldPath
		if pathPrefix != "" {
			fullPath = pathPrefix + "." + fieldPath
		}
		for _, refName := range refNames {
			// Only descend into non-resource vars; resource refs become Ref
			if _, isResource := r.Resources[refName]; isResource {
				continue
			}
			nested := r.resolveAttrRefs(refName, fullPath, visited)
			result = append(result, nested...)
		}
	}

	return result
}

// isCommonIdent returns true for identifiers that are likely not resource names.
func isCommonIdent(name string) bool {
	common := map[string]bool{
		// Go built-ins
		"true": true, "false": true, "nil": true,
		"string": true, "int": true, "bool": true, "float64": true,
		"any": true, "error": true,

		// Intrinsic function types (from intrinsics package)
		"Ref": true, "Sub": true, "SubWithMap": true, "Join": true,
		"GetAtt": true, "Select": true, "Split": true, "Cidr": true,
		"GetAZs": true, "ImportValue": true, "Tag": true, "Json": true,
		"Parameter": true, "Output": true, "List": true, "Any": true,
		"PolicyDocument": true, "Statement": true,

		// Pseudo-parameter constants (from intrinsics package)
		"AWS_ACCOUNT_ID": true, "AWS_NO_VALUE": true,
		"AWS_PARTITION": true, "AWS_REGION": true, "AWS_STACK_ID": true,
		"AWS_STACK_NAME": true, "AWS_URL_SUFFIX": true,
	}
	return common[name]
}
