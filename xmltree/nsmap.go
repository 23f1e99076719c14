package xmltree

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NSMap maps namespace prefixes, as used in path expressions, to namespace
// URIs. Callers may swap the map per file to follow schema-version changes
// between the two upstream providers.
type NSMap map[string]string

// LoadNSMap reads a prefix-to-URI mapping from a YAML file:
//
//	document: urn:iso:std:iso:20022:tech:xsd:auth.017.001.02
//	biz_data: urn:iso:std:iso:20022:tech:xsd:head.003.001.01
func LoadNSMap(path string) (NSMap, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("xmltree: read nsmap: %w", err)
	}
	return ParseNSMap(b)
}

// ParseNSMap parses a YAML prefix-to-URI mapping.
func ParseNSMap(b []byte) (NSMap, error) {
	var m NSMap
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("xmltree: parse nsmap: %w", err)
	}
	return m, nil
}

// Merge returns a copy of m with entries from overrides applied on top.
func (m NSMap) Merge(overrides NSMap) NSMap {
	out := make(NSMap, len(m)+len(overrides))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
