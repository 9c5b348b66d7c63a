// Package filters contains the interfaces of the request and response
// transformation steps applied by a route once it was selected, and
// the registry the route compiler resolves filter factories from.
package filters

import "net/http"

// FilterContext object providing state and the request and response
// objects to the filters during execution.
type FilterContext interface {

	// The response writer of the request, for filters that serve the
	// request themselves.
	ResponseWriter() http.ResponseWriter

	// The incoming request.
	Request() *http.Request

	// The response received from the backend. Nil while the request
	// filters run.
	Response() *http.Response

	// MarkServed tells the executing chain that the filter served the
	// request itself and no backend call should be made.
	MarkServed()

	// Served tells if the request was already served by a filter.
	Served() bool

	// StateBag is shared state between the filters of one request.
	StateBag() map[string]interface{}
}

// Filters are instantiated from specs at route compile time. Filter
// instances are route specific and not request specific: any state
// stored with a filter is shared between all requests of the route.
type Filter interface {

	// Request is called on the incoming request, in chain order.
	Request(FilterContext)

	// Response is called after the response was received from the
	// backend, in reverse chain order.
	Response(FilterContext)
}

// Ordered is implemented by filters that declare an explicit priority
// in the route's filter chain. Filters without it get the 1-based
// position in the concatenated default-filters-then-route-filters list
// as their effective order.
type Ordered interface {
	Order() int
}

// RouteIDAware is implemented by filter configuration objects that
// need to know the id of the route they are compiled into. The route
// compiler injects the id after binding the arguments, before the
// filter is created.
type RouteIDAware interface {
	SetRouteID(id string)
}

// Spec objects are the filter factories of the route compiler,
// identified by their canonical name in the registry.
type Spec interface {

	// Name gives the canonical name of the filter produced by the
	// spec, used as the lookup key during route compilation, e.g.
	// "AddRequestHeader".
	Name() string

	// NewConfig returns a new, empty configuration object for
	// CreateFilter. Specs without configuration return nil.
	NewConfig() interface{}

	// CreateFilter builds the filter from a bound configuration
	// object.
	CreateFilter(config interface{}) (Filter, error)
}
