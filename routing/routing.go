/*
Package routing implements the compilation of declarative route
definitions into executable routes.

Route definitions come from data clients on demand. Each definition
names its matching conditions and transformation steps; the compiler
resolves the names against the predicate and filter registries, binds
the definition arguments onto factory configuration objects, folds the
matching conditions into a single predicate and assembles the ordered
filter chain. The result is an immutable Route value, rebuilt wholesale
whenever the definitions are read again.

Failures are isolated per route: an unknown factory name or a binding
failure invalidates only the owning route definition. Whether an
invalid route aborts a whole read or is dropped with a diagnostic is
selected with Options.FailOnDefinitionError.
*/
package routing

import (
	"net/url"
	"time"

	"github.com/routegate/routegate/filters"
	"github.com/routegate/routegate/logging"
	"github.com/routegate/routegate/metrics"
	"github.com/routegate/routegate/predicate"
	"github.com/routegate/routegate/routedef"
)

// DefinitionClient instances supply the current set of route
// definitions on demand. Implementations may read them from a file, a
// remote registry or keep them in memory.
type DefinitionClient interface {
	Definitions() ([]*routedef.RouteDefinition, error)
}

// Options to initialize a route source.
type Options struct {

	// FilterRegistry resolves the filter factory names of the route
	// definitions. Read-only after startup.
	FilterRegistry filters.Registry

	// PredicateRegistry resolves the matching condition factory names
	// of the route definitions. Read-only after startup.
	PredicateRegistry predicate.Registry

	// DataClients supply the route definitions. Definitions of all
	// clients are compiled in client, then definition order.
	DataClients []DefinitionClient

	// DefaultFilters are filter definitions applied to every route,
	// preceding the route's own filters in the chain.
	DefaultFilters []*routedef.Definition

	// Binder binds definition arguments onto factory configuration
	// objects. DefaultBinder is used when nil.
	Binder Binder

	// FailOnDefinitionError aborts a whole read when any one route
	// fails to compile. When unset, a failing route is dropped with a
	// warning naming the route id and cause, and the remaining routes
	// are still produced.
	FailOnDefinitionError bool

	// Listener receives the bind events of the compiler. The default
	// listener logs them at debug level.
	Listener EventListener

	// Log is used for the diagnostics of the route source.
	Log logging.Logger

	// Metrics records compile durations and invalid definitions.
	// Disabled when nil.
	Metrics metrics.Metrics
}

// RouteFilter is a compiled filter step together with its effective
// order in the chain of its route.
type RouteFilter struct {
	filters.Filter

	// Name of the spec the filter was created from.
	Name string

	// Order is the effective priority: the explicit one when the
	// filter declares it, otherwise the 1-based position in the
	// concatenated default-then-route filter list.
	Order int
}

// Route is a compiled, immutable routing rule: the combined matching
// condition, the ordered filter chain and the backend the matched
// requests are forwarded to. Routes are safely shared between
// concurrent requests.
type Route struct {
	ID        string
	Predicate predicate.Predicate
	Filters   []*RouteFilter

	// Backend is the target of the route, nil for routes that are
	// served by their filters.
	Backend *url.URL

	// Order is the priority of the route during selection, ascending.
	Order int

	Metadata map[string]interface{}
}

// Routes is the source of the compiled routes.
type Routes struct {
	o        Options
	binder   Binder
	listener EventListener
	log      logging.Logger
	metrics  metrics.Metrics
}

// New creates a route source for the given options.
func New(o Options) *Routes {
	r := &Routes{
		o:        o,
		binder:   o.Binder,
		listener: o.Listener,
		log:      o.Log,
		metrics:  o.Metrics,
	}

	if r.binder == nil {
		r.binder = DefaultBinder{}
	}

	if r.log == nil {
		r.log = &logging.DefaultLog{}
	}

	if r.listener == nil {
		r.listener = logListener{r.log}
	}

	if r.metrics == nil {
		r.metrics = metrics.Void
	}

	return r
}

// Routes re-reads the current definitions from all data clients and
// compiles them fresh, so the result always reflects the latest
// definitions. A data client failure aborts the read. Compilation
// failures are handled according to Options.FailOnDefinitionError.
func (r *Routes) Routes() ([]*Route, error) {
	start := time.Now()

	var routes []*Route
	for _, c := range r.o.DataClients {
		defs, err := c.Definitions()
		if err != nil {
			return nil, err
		}

		for _, def := range defs {
			route, err := r.compileRoute(def)
			if err != nil {
				err = &DefinitionError{RouteID: def.ID, Err: err}
				r.metrics.IncInvalidRoute(def.ID, reasonOf(err))
				if r.o.FailOnDefinitionError {
					return nil, err
				}

				r.log.Warnf("route definition %s will be ignored: %v", def.ID, err)
				continue
			}

			routes = append(routes, route)
		}
	}

	r.metrics.MeasureCompile(start)
	r.metrics.UpdateRoutes(len(routes))
	return routes, nil
}
