package faq

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Welcome     string  `yaml:"welcome"`
	Fallback    string  `yaml:"fallback"`
	Placeholder string  `yaml:"placeholder"`
	Links       []Link  `yaml:"links"`
	Topics      []Topic `yaml:"topics"`
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog document.
func Parse(raw []byte) (*Catalog, error) {
	var doc catalogFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	return NewCatalog(doc.Topics, Options{
		Welcome:     doc.Welcome,
		Fallback:    doc.Fallback,
		Placeholder: doc.Placeholder,
		Links:       doc.Links,
	})
}
