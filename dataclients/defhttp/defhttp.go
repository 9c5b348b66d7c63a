/*
Package defhttp implements a definition client fetching route
definitions as JSON from a remote endpoint, e.g. an admin API or a
dynamic registry. Transient fetch failures are retried with
exponential backoff. Expected payload: a JSON array of route
definition documents with shorthand predicate and filter lists.
*/
package defhttp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/routegate/routegate/routedef"
)

const (
	defaultMaxRetries = 3
	defaultTimeout    = 10 * time.Second
)

type routeDoc struct {
	ID         string                 `json:"id"`
	URI        string                 `json:"uri"`
	Order      int                    `json:"order"`
	Predicates []string               `json:"predicates"`
	Filters    []string               `json:"filters"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// Options to initialize a client.
type Options struct {

	// Address of the endpoint returning the definition list.
	Address string

	// Client used for the requests. A client with the default timeout
	// is created when nil.
	Client *http.Client

	// MaxRetries for transient fetch failures, defaults to 3.
	MaxRetries uint64
}

// Client implements routing.DefinitionClient over a remote JSON
// endpoint.
type Client struct {
	address    string
	client     *http.Client
	maxRetries uint64
}

// New creates a client for the given options.
func New(o Options) *Client {
	c := &Client{
		address:    o.Address,
		client:     o.Client,
		maxRetries: o.MaxRetries,
	}

	if c.client == nil {
		c.client = &http.Client{Timeout: defaultTimeout}
	}

	if c.maxRetries == 0 {
		c.maxRetries = defaultMaxRetries
	}

	return c
}

// Definitions fetches the current definition list from the endpoint,
// retrying transient failures with exponential backoff.
func (c *Client) Definitions() ([]*routedef.RouteDefinition, error) {
	var docs []*routeDoc
	err := backoff.Retry(func() error {
		return c.fetch(&docs)
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries))
	if err != nil {
		return nil, err
	}

	defs := make([]*routedef.RouteDefinition, 0, len(docs))
	for _, d := range docs {
		def, err := convert(d)
		if err != nil {
			return nil, err
		}

		defs = append(defs, def)
	}

	return defs, nil
}

func (c *Client) fetch(docs *[]*routeDoc) error {
	rsp, err := c.client.Get(c.address)
	if err != nil {
		return err
	}

	defer rsp.Body.Close()
	if rsp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching definitions from %s: unexpected status %s", c.address, rsp.Status)
	}

	return json.NewDecoder(rsp.Body).Decode(docs)
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
