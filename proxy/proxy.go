/*
Package proxy implements the transport side consumer of the compiled
routes: it selects the first route whose predicate matches the request,
in ascending route order, runs the route's filter chain and forwards
the request to the route's backend.

The interesting logic lives in the routing package; this consumer stays
deliberately small and serves as the reference for how compiled routes
are meant to be executed.
*/
package proxy

import (
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	opentracing "github.com/opentracing/opentracing-go"

	"github.com/routegate/routegate/logging"
	"github.com/routegate/routegate/routing"
)

// Params to initialize a proxy.
type Params struct {

	// Routing is the source of the compiled routes.
	Routing *routing.Routes

	// PollTimeout is the maximum age of the compiled route table.
	// A table older than this is rebuilt from the data clients before
	// route selection; filter state, e.g. rate limiting buckets,
	// survives between rebuilds only within this window. Zero rebuilds
	// the table on every request.
	PollTimeout time.Duration

	// Roundtripper used for the backend requests,
	// http.DefaultTransport when nil.
	Roundtripper http.RoundTripper

	// Log is used for the diagnostics of the proxy.
	Log logging.Logger
}

// Proxy serves requests based on the compiled routes.
type Proxy struct {
	routing      *routing.Routes
	pollTimeout  time.Duration
	roundtripper http.RoundTripper
	log          logging.Logger

	mu        sync.Mutex
	routes    []*routing.Route
	refreshed time.Time
}

// New creates a proxy for the given params.
func New(p Params) *Proxy {
	px := &Proxy{
		routing:      p.Routing,
		pollTimeout:  p.PollTimeout,
		roundtripper: p.Roundtripper,
		log:          p.Log,
	}

	if px.roundtripper == nil {
		px.roundtripper = http.DefaultTransport
	}

	if px.log == nil {
		px.log = &logging.DefaultLog{}
	}

	return px
}

// currentRoutes returns the active route table, rebuilt from the data
// clients when it is older than the poll timeout, sorted ascending by
// route order. When a rebuild fails, the previous table keeps serving.
func (p *Proxy) currentRoutes() ([]*routing.Route, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.routes != nil && p.pollTimeout > 0 && time.Since(p.refreshed) < p.pollTimeout {
		return p.routes, nil
	}

	routes, err := p.routing.Routes()
	if err != nil {
		if p.routes == nil {
			return nil, err
		}

		p.log.Warnf("keeping the previous route table, refresh failed: %v", err)
		return p.routes, nil
	}

	if routes == nil {
		routes = []*routing.Route{}
	}

	sort.SliceStable(routes, func(i, j int) bool { return routes[i].Order < routes[j].Order })
	p.routes = routes
	p.refreshed = time.Now()
	return routes, nil
}

// selectRoute returns the first route whose predicate matches the
// request, in ascending route order. A predicate evaluation failure
// counts as no match for that route.
func (p *Proxy) selectRoute(routes []*routing.Route, r *http.Request) *routing.Route {
	for _, rt := range routes {
		match, err := rt.Predicate.Match(r.Context(), r)
		if err != nil {
			p.log.Warnf("evaluating predicate of route %s: %v", rt.ID, err)
			continue
		}

		if match {
			return rt
		}
	}

	return nil
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	routes, err := p.currentRoutes()
	if err != nil {
		p.log.Errorf("reading routes: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	span, ctx := opentracing.StartSpanFromContext(r.Context(), "route_selection")
	route := p.selectRoute(routes, r.WithContext(ctx))
	if route == nil {
		span.Finish()
		http.NotFound(w, r)
		return
	}

	span.SetTag("route.id", route.ID)
	span.Finish()

	fc := newContext(w, r)
	for _, f := range route.Filters {
		f.Request(fc)
		if fc.Served() {
			return
		}
	}

	rsp, err := p.roundtrip(r, route)
	if err != nil {
		p.log.Errorf("backend roundtrip of route %s: %v", route.ID, err)
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	defer rsp.Body.Close()
	fc.response = rsp
	for i := len(route.Filters) - 1; i >= 0; i-- {
		route.Filters[i].Response(fc)
		if fc.Served() {
			return
		}
	}

	copyHeader(w.Header(), rsp.Header)
	w.WriteHeader(rsp.StatusCode)
	if _, err := io.Copy(w, rsp.Body); err != nil {
		p.log.Errorf("copying response of route %s: %v", route.ID, err)
	}
}

// roundtrip forwards the filtered request to the backend of the route.
// Routes without a backend get the default not found response, unless
// a filter already served the request.
func (p *Proxy) roundtrip(r *http.Request, route *routing.Route) (*http.Response, error) {
	if route.Backend == nil {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Header:     make(http.Header),
			Body:       http.NoBody,
		}, nil
	}

	u := *r.URL
	u.Scheme = route.Backend.Scheme
	u.Host = route.Backend.Host

	rr, err := http.NewRequestWithContext(r.Context(), r.Method, u.String(), r.Body)
	if err != nil {
		return nil, err
	}

	rr.Header = cloneHeader(r.Header)
	rr.Host = r.Host
	return p.roundtripper.RoundTrip(rr)
}

func cloneHeader(h http.Header) http.Header {
	hh := make(http.Header, len(h))
	copyHeader(hh, h)
	return hh
}

func copyHeader(to, from http.Header) {
	for k, v := range from {
		to[k] = append(to[k][:0:0], v...)
	}
}
