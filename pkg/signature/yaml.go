package signature

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// tableFile is the on-disk YAML shape for a custom signature table:
//
//	rules:
//	  - vendor: cloudflare
//	    kind: header_name
//	    pattern: cf-ray
type tableFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadTable reads a custom signature table from a YAML file. Rule order in
// the file becomes table order. The file fully replaces the built-in table.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signature table: %w", err)
	}
	return ParseTable(data)
}

// ParseTable parses YAML signature table bytes.
func ParseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse signature table: %w", err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("signature table has no rules")
	}
	t, err := NewTable(f.Rules)
	if err != nil {
		return nil, fmt.Errorf("signature table: %w", err)
	}
	return t, nil
}
