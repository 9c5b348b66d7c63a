/*
Package routegate ties the parts together into a runnable gateway:
the builtin predicate and filter registries, the route definition
clients, logging, metrics and the proxy listener.

Library users that only need route resolution use the routing package
directly with their own registries and definition clients.
*/
package routegate

import (
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/routegate/routegate/dataclients/deffile"
	"github.com/routegate/routegate/dataclients/defhttp"
	"github.com/routegate/routegate/filters"
	"github.com/routegate/routegate/filters/builtin"
	"github.com/routegate/routegate/logging"
	"github.com/routegate/routegate/metrics"
	"github.com/routegate/routegate/predicate"
	"github.com/routegate/routegate/predicate/primitive"
	"github.com/routegate/routegate/proxy"
	"github.com/routegate/routegate/routedef"
	"github.com/routegate/routegate/routing"
)

const defaultPollTimeout = 3 * time.Second

// Options to start the gateway.
type Options struct {

	// Address to listen on, e.g. ":9090".
	Address string

	// RoutesFile is the path of a YAML route definitions file.
	RoutesFile string

	// RoutesURL is the address of a remote JSON route definitions
	// endpoint. At least one of RoutesFile and RoutesURL must be set;
	// both can be.
	RoutesURL string

	// PollTimeout is the refresh interval of the route table. Changed
	// definitions become effective after at most this long. Defaults
	// to 3s.
	PollTimeout time.Duration

	// DefaultFilters are shorthand filter definitions applied to
	// every route, before the route's own filters.
	DefaultFilters []string

	// FailOnDefinitionError makes any invalid route definition abort
	// route resolution instead of being dropped with a warning.
	FailOnDefinitionError bool

	// MetricsListener enables the prometheus endpoint on the given
	// address. Metrics collection is disabled when empty.
	MetricsListener string

	// ApplicationLogPrefix for the application log entries.
	ApplicationLogPrefix string

	// CustomPredicates are registered in addition to the builtin
	// predicate specs.
	CustomPredicates []predicate.Spec

	// CustomFilters are registered in addition to the builtin filter
	// specs.
	CustomFilters []filters.Spec
}

// Run starts the gateway and blocks serving requests.
func Run(o Options) error {
	logging.Init(logging.Options{ApplicationLogPrefix: o.ApplicationLogPrefix})

	pr := primitive.MakeRegistry()
	pr.Register(o.CustomPredicates...)
	fr := builtin.MakeRegistry()
	fr.Register(o.CustomFilters...)

	var clients []routing.DefinitionClient
	if o.RoutesFile != "" {
		clients = append(clients, deffile.New(o.RoutesFile))
	}

	if o.RoutesURL != "" {
		clients = append(clients, defhttp.New(defhttp.Options{Address: o.RoutesURL}))
	}

	if len(clients) == 0 {
		return errors.New("no route definition source configured")
	}

	defaults, err := routedef.ParseDefinitions(o.DefaultFilters)
	if err != nil {
		return err
	}

	m := metrics.Void
	if o.MetricsListener != "" {
		pm := metrics.NewPrometheus(metrics.Options{})
		m = pm
		go func() {
			if err := http.ListenAndServe(o.MetricsListener, pm.Handler()); err != nil {
				log.Errorf("metrics listener: %v", err)
			}
		}()
	}

	rt := routing.New(routing.Options{
		FilterRegistry:        fr,
		PredicateRegistry:     pr,
		DataClients:           clients,
		DefaultFilters:        defaults,
		FailOnDefinitionError: o.FailOnDefinitionError,
		Metrics:               m,
	})

	pollTimeout := o.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = defaultPollTimeout
	}

	log.Infof("listening on %s", o.Address)
	return http.ListenAndServe(o.Address, proxy.New(proxy.Params{
		Routing:     rt,
		PollTimeout: pollTimeout,
	}))
}
