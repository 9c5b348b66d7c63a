/*
Package deffile implements a definition client reading route
definitions from a YAML file. The file is read again on every poll, so
edits are reflected by the next read. Expected document layout:

	routes:
	- id: catalog
	  uri: https://catalog.example.org
	  order: 1
	  predicates:
	  - Path=/catalog/**
	  filters:
	  - AddRequestHeader=X-Channel,web
*/
package deffile

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/routegate/routegate/routedef"
)

type routeDoc struct {
	ID         string                 `yaml:"id"`
	URI        string                 `yaml:"uri"`
	Order      int                    `yaml:"order"`
	Predicates []string               `yaml:"predicates"`
	Filters    []string               `yaml:"filters"`
	Metadata   map[string]interface{} `yaml:"metadata"`
}

type document struct {
	Routes []*routeDoc `yaml:"routes"`
}

// Client implements routing.DefinitionClient over a YAML file.
type Client struct {
	path string
}

// New creates a client reading the file at path.
func New(path string) *Client { return &Client{path: path} }

// Definitions reads and parses the current content of the file. The
// definitions document is one artifact: any malformed shorthand in it
// fails the whole read.
func (c *Client) Definitions() ([]*routedef.RouteDefinition, error) {
	content, err := os.ReadFile(c.path)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", c.path, err)
	}

	defs := make([]*routedef.RouteDefinition, 0, len(doc.Routes))
	for _, d := range doc.Routes {
		def, err := convert(d)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", c.path, err)
		}

		defs = append(defs, def)
	}

	return defs, nil
}

func convert(d *routeDoc) (*routedef.RouteDefinition, error) {
	predicates, err := routedef.ParseDefinitions(d.Predicates)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", d.ID, err)
	}

	filters, err := routedef.ParseDefinitions(d.Filters)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", d.ID, err)
	}

	return &routedef.RouteDefinition{
		ID:         d.ID,
		Predicates: predicates,
		Filters:    filters,
		URI:        d.URI,
		Order:      d.Order,
		Metadata:   d.Metadata,
	}, nil
}
