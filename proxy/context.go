package proxy

import (
	"net/http"
)

// context implements filters.FilterContext for one request.
type context struct {
	responseWriter http.ResponseWriter
	request        *http.Request
	response       *http.Response
	served         bool
	stateBag       map[string]interface{}
}

func newContext(w http.ResponseWriter, r *http.Request) *context {
	return &context{
		responseWriter: w,
		request:        r,
		stateBag:       make(map[string]interface{}),
	}
}

func (c *context) ResponseWriter() http.ResponseWriter { return c.responseWriter }
func (c *context) Request() *http.Request              { return c.request }
func (c *context) Response() *http.Response            { return c.response }
func (c *context) MarkServed()                         { c.served = true }
func (c *context) Served() bool                        { return c.served }
func (c *context) StateBag() map[string]interface{}    { return c.stateBag }
