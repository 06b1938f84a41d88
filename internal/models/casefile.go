package models

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed cases/mansion.yaml
var defaultCase []byte

// DefaultCase returns the mansion case compiled into the binary.
func DefaultCase() (*Case, error) {
	return ParseCase(defaultCase)
}

// ParseCase decodes a case document.
func ParseCase(data []byte) (*Case, error) {
	var c Case
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse case YAML: %w", err)
	}
	if c.Entry == "" {
		return nil, fmt.Errorf("case %q has no entry room", c.Title)
	}
	for i, a := range c.Associations {
		if a.Clue == "" || a.Suspect == "" {
			return nil, fmt.Errorf("association %d: clue and suspect are required", i)
		}
	}
	return &c, nil
}
