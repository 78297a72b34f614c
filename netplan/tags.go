package netplan

import "sort"

// MergeTags merges base tags with per-resource overrides.
// Override keys win; neither input map is modified.
func MergeTags(base, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// SortedKeys returns the tag keys in lexical order, for deterministic output.
func SortedKeys(tags map[string]string) []string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NameTag builds the conventional Name tag value from a prefix and suffix.
func NameTag(prefix, suffix string) string {
	if prefix == "" {
		return suffix
	}
	return prefix + "-" + suffix
}
