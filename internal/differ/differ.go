// Package differ compares a freshly built network template against a
// previously rendered one, for reviewing drift before a stack update.
package differ

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"

	vpcwire "github.com/lex00/vpcwire-go"
)

// Change describes one modification to a resource.
type Change struct {
	Path string `json:"path"`
	Kind string `json:"kind"` // "added", "removed", "modified"
}

// Entry is one resource-level difference.
type Entry struct {
	Resource string   `json:"resource"`
	Type     string   `json:"type"`
	Changes  []Change `json:"changes,omitempty"`
}

// Result holds the differences between two templates.
type Result struct {
	Added    []Entry `json:"added,omitempty"`
	Removed  []Entry `json:"removed,omitempty"`
	Modified []Entry `json:"modified,omitempty"`
}

// Empty reports whether the templates match.
func (r *Result) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Modified) == 0
}

// Total is the number of differing resources.
func (r *Result) Total() int {
	return len(r.Added) + len(r.Removed) + len(r.Modified)
}

// Compare diffs two templates. The first argument is the old (deployed)
// template, the second the new build.
func Compare(old, new *vpcwire.Template) *Result {
	result := &Result{}

	for name, def := range new.Resources {
		if _, exists := old.Resources[name]; !exists {
			result.Added = append(result.Added, Entry{Resource: name, Type: def.Type})
		}
	}

	for name, def := range old.Resources {
		if _, exists := new.Resources[name]; !exists {
			result.Removed = append(result.Removed, Entry{Resource: name, Type: def.Type})
		}
	}

	for name, oldDef := range old.Resources {
		newDef, exists := new.Resources[name]
		if !exists {
			continue
		}
		changes := compareResources(oldDef, newDef)
		if len(changes) > 0 {
			result.Modified = append(result.Modified, Entry{
				Resource: name,
				Type:     newDef.Type,
				Changes:  changes,
			})
		}
	}

	sortEntries(result.Added)
	sortEntries(result.Removed)
	sortEntries(result.Modified)

	return result
}

// CompareFiles diffs two rendered template files (JSON or YAML).
func CompareFiles(oldPath, newPath string) (*Result, error) {
	old, err := LoadTemplate(oldPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", oldPath, err)
	}

	new, err := LoadTemplate(newPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", newPath, err)
	}

	return Compare(old, new), nil
}

// LoadTemplate reads a rendered CloudFormation template.
func LoadTemplate(path string) (*vpcwire.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var t vpcwire.Template
	if err := json.Unmarshal(data, &t); err != nil {
		if yerr := yaml.Unmarshal(data, &t); yerr != nil {
			return nil, fmt.Errorf("not valid JSON or YAML: %w", err)
		}
	}

	return &t, nil
}

func compareResources(old, new vpcwire.ResourceDef) []Change {
	var changes []Change

	if old.Type != new.Type {
		changes = append(changes, Change{Path: "Type", Kind: "modified"})
	}

	changes = append(changes, compareProperties("", old.Properties, new.Properties)...)

	if !reflect.DeepEqual(old.DependsOn, new.DependsOn) {
		changes = append(changes, Change{Path: "DependsOn", Kind: "modified"})
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes
}

// compareProperties walks both property maps, descending into nested
// maps so the change path points at the leaf that moved.
func compareProperties(prefix string, old, new map[string]any) []Change {
	var changes []Change

	join := func(key string) string {
		if prefix == "" {
			return key
		}
		return prefix + "." + key
	}

	for key, newVal := range new {
		oldVal, exists := old[key]
		if !exists {
			changes = append(changes, Change{Path: join(key), Kind: "added"})
			continue
		}
		if reflect.DeepEqual(normalize(oldVal), normalize(newVal)) {
			continue
		}

		oldMap, oldIsMap := oldVal.(map[string]any)
		newMap, newIsMap := newVal.(map[string]any)
		if oldIsMap && newIsMap {
			changes = append(changes, compareProperties(join(key), oldMap, newMap)...)
		} else {
			changes = append(changes, Change{Path: join(key), Kind: "modified"})
		}
	}

	for key := range old {
		if _, exists := new[key]; !exists {
			changes = append(changes, Change{Path: join(key), Kind: "removed"})
		}
	}

	return changes
}

// normalize erases the JSON/YAML number representation difference so a
// template that round-tripped through YAML still compares equal.
func normalize(v any) any {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	default:
		return v
	}
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Resource < entries[j].Resource
	})
}
