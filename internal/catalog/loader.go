// Package catalog loads the emotion taxonomy used to drive the benchmark.
//
// The taxonomy is a YAML document with one mapping per category section; each
// section maps emotion tags to their list of test phrases. A copy of the
// default taxonomy ships embedded in the binary and can be overridden with an
// external file.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed emotions.yaml
var embeddedTaxonomy []byte

// categorySections lists the taxonomy sections in evaluation order.
// Official emotions and markers come before the unofficial ones.
var categorySections = []string{
	"basic_emotions",
	"advanced_emotions",
	"tone_and_special_markers",
	"unofficial_emotions",
	"unofficial_markers",
}

// Load reads the emotion taxonomy and returns a validated Catalog.
// An empty path loads the embedded default taxonomy; otherwise the file at
// path is used. Any error returned here is a configuration error and should
// abort the run before any test case executes.
func Load(path string) (*Catalog, error) {
	data := embeddedTaxonomy
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("catalog: read %q: %w", path, err)
		}
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	// Decode into a yaml.Node tree instead of a map so that the declaration
	// order of emotions within each section is preserved.
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parse taxonomy: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("catalog: taxonomy is empty")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("catalog: taxonomy root must be a mapping")
	}

	sections := make(map[string]*yaml.Node, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		sections[root.Content[i].Value] = root.Content[i+1]
	}

	cat := &Catalog{index: make(map[string]int)}
	for _, section := range categorySections {
		node, ok := sections[section]
		if !ok || node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
			continue
		}
		if node.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("catalog: section %q must be a mapping of emotions", section)
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			tag := node.Content[i].Value
			var phrases []string
			if err := node.Content[i+1].Decode(&phrases); err != nil {
				return nil, fmt.Errorf("catalog: emotion %q: %w", tag, err)
			}
			if len(phrases) == 0 {
				return nil, fmt.Errorf("catalog: emotion %q has no test phrases", tag)
			}
			cat.put(Entry{Tag: tag, Category: section, Phrases: phrases})
		}
	}

	if cat.Len() == 0 {
		return nil, fmt.Errorf("catalog: taxonomy defines no emotions")
	}
	return cat, nil
}

// put inserts or replaces an entry. A tag redeclared in a later section
// replaces the earlier definition but keeps its original position.
func (c *Catalog) put(e Entry) {
	if i, ok := c.index[e.Tag]; ok {
		c.entries[i] = e
		return
	}
	c.index[e.Tag] = len(c.entries)
	c.entries = append(c.entries, e)
}
