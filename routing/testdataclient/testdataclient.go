// Package testdataclient provides an in-memory definition client for
// tests.
package testdataclient

import (
	"sync"

	"github.com/routegate/routegate/routedef"
)

// Client implements routing.DefinitionClient over an in-memory
// definition set that tests can swap between reads.
type Client struct {
	mu      sync.Mutex
	defs    []*routedef.RouteDefinition
	failure error
}

// New creates a client serving the given definitions.
func New(defs ...*routedef.RouteDefinition) *Client {
	return &Client{defs: defs}
}

// Definitions returns the current definition set, or the configured
// failure.
func (c *Client) Definitions() ([]*routedef.RouteDefinition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failure != nil {
		return nil, c.failure
	}

	return c.defs, nil
}

// Update replaces the served definitions.
func (c *Client) Update(defs ...*routedef.RouteDefinition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defs = defs
}

// FailWith makes subsequent reads fail with err. Pass nil to recover.
func (c *Client) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failure = err
}
