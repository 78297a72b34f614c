package runner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/lex00/vpcwire-go/internal/discover"
)

// extractorTemplate is the generated program that evaluates the target
// package's declarations and prints their serialized values as JSON.
// It runs in a throwaway module that replaces the target module with
// its on-disk location, so unpushed declarations still resolve.
var extractorTemplate = template.Must(template.New("extractor").Parse(`// Code generated for value extraction. DO NOT EDIT.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lex00/vpcwire-go/intrinsics"
	"github.com/lex00/vpcwire-go/serialize"
	pkg "{{.ImportPath}}"
)

func main() {
	out := make(map[string]map[string]any)

	for _, name := range os.Args[1:] {
		value := getVar(name)
		if value == nil {
			continue
		}

		switch v := value.(type) {
		case intrinsics.Parameter:
			out[name] = v.ToDefinition()
		default:
			props, err := serialize.Properties(v)
			if err != nil {
				fmt.Fprintf(os.Stderr, "serializing %s: %v\n", name, err)
				os.Exit(1)
			}
			out[name] = props
		}
	}

	data, err := json.Marshal(out)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func getVar(name string) any {
	switch name {
{{range .VarNames}}	case "{{.}}":
		return pkg.{{.}}
{{end}}	}
	return nil
}
`))

// ExtractValues evaluates the declarations in a package by generating
// and running a small Go program, and returns each declaration's
// serialized value. Declaration discovery is static; this is the one
// step that needs the real runtime values.
func ExtractValues(pkgPath string, result *discover.Result) (map[string]any, error) {
	varNames := make([]string, 0, len(result.AllVars))
	for name := range result.AllVars {
		varNames = append(varNames, name)
	}
	sort.Strings(varNames)

	if len(varNames) == 0 {
		return map[string]any{}, nil
	}

	absPath, err := filepath.Abs(strings.TrimSuffix(pkgPath, "/..."))
	if err != nil {
		return nil, fmt.Errorf("resolving package path: %w", err)
	}

	mod, err := findGoModInfo(absPath)
	if err != nil {
		return nil, fmt.Errorf("finding module info: %w", err)
	}

	// Import path is the module path plus the package's path within it.
	rel, err := filepath.Rel(mod.Dir, absPath)
	if err != nil {
		return nil, fmt.Errorf("resolving package import path: %w", err)
	}
	importPath := mod.Path
	if rel != "." {
		importPath = mod.Path + "/" + filepath.ToSlash(rel)
	}

	tmpDir, err := os.MkdirTemp("", "vpcwire-extract-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	var program bytes.Buffer
	err = extractorTemplate.Execute(&program, struct {
		ImportPath string
		VarNames   []string
	}{
		ImportPath: importPath,
		VarNames:   varNames,
	})
	if err != nil {
		return nil, fmt.Errorf("generating extractor: %w", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "main.go"), program.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing extractor: %w", err)
	}

	var replaces strings.Builder
	fmt.Fprintf(&replaces, "replace %s => %s\n", mod.Path, mod.Dir)
	for _, repl := range mod.Replaces {
		replaces.WriteString(resolveReplacePath(repl, mod.Dir) + "\n")
	}

	goMod := fmt.Sprintf(`module vpcwire-extract

go 1.23.0

require %s v0.0.0

%s`, mod.Path, replaces.String())
	if err := os.WriteFile(filepath.Join(tmpDir, "go.mod"), []byte(goMod), 0644); err != nil {
		return nil, fmt.Errorf("writing go.mod: %w", err)
	}

	goBin := findGoBinary()

	tidy := exec.Command(goBin, "mod", "tidy")
	tidy.Dir = tmpDir
	if output, err := tidy.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("go mod tidy failed: %w\n%s", err, output)
	}

	args := append([]string{"run", "main.go"}, varNames...)
	run := exec.Command(goBin, args...)
	run.Dir = tmpDir

	var stdout, stderr bytes.Buffer
	run.Stdout = &stdout
	run.Stderr = &stderr
	if err := run.Run(); err != nil {
		return nil, fmt.Errorf("running extractor: %w\n%s", err, stderr.String())
	}

	var extracted map[string]map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &extracted); err != nil {
		return nil, fmt.Errorf("parsing extractor output: %w\noutput: %s", err, stdout.String())
	}

	values := make(map[string]any, len(extracted))
	for name, props := range extracted {
		values[name] = props
	}
	return values, nil
}

// goModInfo holds the parsed pieces of a go.mod file.
type goModInfo struct {
	Path     string
	Dir      string
	Replaces []string
}

// findGoModInfo walks up from dir to the enclosing go.mod and parses
// the module path and replace directives.
func findGoModInfo(dir string) (*goModInfo, error) {
	for {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil {
			info := &goModInfo{Dir: dir}

			inReplaceBlock := false
			for _, line := range strings.Split(string(data), "\n") {
				trimmed := strings.TrimSpace(line)

				if strings.HasPrefix(trimmed, "module ") {
					info.Path = strings.TrimSpace(strings.TrimPrefix(trimmed, "module "))
				}

				if trimmed == "replace (" {
					inReplaceBlock = true
					continue
				}
				if inReplaceBlock {
					if trimmed == ")" {
						inReplaceBlock = false
					} else if trimmed != "" && !strings.HasPrefix(trimmed, "//") {
						info.Replaces = append(info.Replaces, "replace "+trimmed)
					}
					continue
				}
				if strings.HasPrefix(trimmed, "replace ") {
					info.Replaces = append(info.Replaces, trimmed)
				}
			}

			if info.Path == "" {
				return nil, fmt.Errorf("no module directive in %s/go.mod", dir)
			}
			return info, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("no go.mod found above %s", dir)
		}
		dir = parent
	}
}

// resolveReplacePath makes relative replace targets absolute so they
// survive being copied into the throwaway module.
func resolveReplacePath(replaceLine, goModDir string) string {
	parts := strings.Split(replaceLine, " => ")
	if len(parts) != 2 {
		return replaceLine
	}

	target := strings.TrimSpace(parts[1])
	if strings.HasPrefix(target, ".") {
		return parts[0] + " => " + filepath.Join(goModDir, target)
	}
	return replaceLine
}

// findGoBinary locates the go executable, falling back to common
// install locations when PATH is bare (editor integrations).
func findGoBinary() string {
	if path, err := exec.LookPath("go"); err == nil {
		return path
	}

	for _, p := range []string{
		"/usr/local/go/bin/go",
		"/opt/homebrew/bin/go",
		"/usr/bin/go",
		"/usr/local/bin/go",
	} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return "go"
}
