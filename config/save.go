package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// WriteDefault writes a config file populated with the built-in
// defaults, as a starting point for editing. It refuses to overwrite
// an existing file.
func WriteDefault(path string) error {
	if path == "" {
		path = DefaultFileName
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}

	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		if defaults[k] != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Value: defaults[k]},
		)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
