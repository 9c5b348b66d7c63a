// Package filtertest implements fakes for the filter model, used by
// tests of the routing and proxy packages.
package filtertest

import (
	"net/http"

	"github.com/routegate/routegate/filters"
)

// Config is the configuration object of the fake spec. It accepts two
// positional arguments and records the injected route id.
type Config struct {
	Name    string
	Value   string
	RouteID string `mapstructure:"-"`
}

func (c *Config) ShortcutFields() []string { return []string{"Name", "Value"} }
func (c *Config) SetRouteID(id string)     { c.RouteID = id }

// Filter is a noop filter recording its bound configuration.
type Filter struct {
	FilterName string
	FConfig    *Config
}

func (f *Filter) Request(filters.FilterContext)  {}
func (f *Filter) Response(filters.FilterContext) {}

// OrderedFilter is a Filter with an explicit priority.
type OrderedFilter struct {
	*Filter
	FOrder int
}

func (f *OrderedFilter) Order() int { return f.FOrder }

// Spec is a fake filter factory. When HasOrder is set, the created
// filters declare FOrder as explicit priority. CreateErr makes
// creation fail.
type Spec struct {
	FilterName string
	FOrder     int
	HasOrder   bool
	CreateErr  error
}

func (s *Spec) Name() string           { return s.FilterName }
func (s *Spec) NewConfig() interface{} { return &Config{} }

func (s *Spec) CreateFilter(config interface{}) (filters.Filter, error) {
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}

	f := &Filter{FilterName: s.FilterName, FConfig: config.(*Config)}
	if s.HasOrder {
		return &OrderedFilter{Filter: f, FOrder: s.FOrder}, nil
	}

	return f, nil
}

// Context is a fake FilterContext.
type Context struct {
	FResponseWriter http.ResponseWriter
	FRequest        *http.Request
	FResponse       *http.Response
	FServed         bool
	FStateBag       map[string]interface{}
}

func (c *Context) ResponseWriter() http.ResponseWriter { return c.FResponseWriter }
func (c *Context) Request() *http.Request              { return c.FRequest }
func (c *Context) Response() *http.Response            { return c.FResponse }
func (c *Context) MarkServed()                         { c.FServed = true }
func (c *Context) Served() bool                        { return c.FServed }

func (c *Context) StateBag() map[string]interface{} {
	if c.FStateBag == nil {
		c.FStateBag = make(map[string]interface{})
	}

	return c.FStateBag
}
