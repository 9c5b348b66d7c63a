package routing

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/routegate/routegate/filters"
	"github.com/routegate/routegate/predicate"
	"github.com/routegate/routegate/routedef"
)

func (r *Routes) compileRoute(def *routedef.RouteDefinition) (*Route, error) {
	p, err := r.combinePredicates(def)
	if err != nil {
		return nil, err
	}

	fs, err := r.compileFilters(def)
	if err != nil {
		return nil, err
	}

	var backend *url.URL
	if def.URI != "" {
		backend, err = url.Parse(def.URI)
		if err != nil {
			return nil, wrapReason(ErrFailedBackendParse, err)
		}
	}

	return &Route{
		ID:        def.ID,
		Predicate: p,
		Filters:   fs,
		Backend:   backend,
		Order:     def.Order,
		Metadata:  def.Metadata,
	}, nil
}

// combinePredicates folds the matching conditions of the definition
// into a single predicate, left to right with And. A definition
// without conditions is rare but legal and matches every request.
func (r *Routes) combinePredicates(def *routedef.RouteDefinition) (predicate.Predicate, error) {
	if len(def.Predicates) == 0 {
		return predicate.True(), nil
	}

	p, err := r.createPredicate(def.ID, def.Predicates[0])
	if err != nil {
		return nil, err
	}

	for _, pd := range def.Predicates[1:] {
		next, err := r.createPredicate(def.ID, pd)
		if err != nil {
			return nil, err
		}

		p = predicate.And(p, next)
	}

	return p, nil
}

func (r *Routes) createPredicate(routeID string, d *routedef.Definition) (predicate.Predicate, error) {
	spec, ok := r.o.PredicateRegistry[d.Name]
	if !ok {
		return nil, wrapReason(ErrUnknownPredicate, fmt.Errorf("predicate not found: %q", d.Name))
	}

	config := spec.NewConfig()
	if err := r.binder.Bind(d.Name, d.Args, config); err != nil {
		return nil, wrapReason(ErrInvalidPredicateParams, err)
	}

	r.listener.PredicateArgs(ArgsEvent{RouteID: routeID, Name: d.Name, Args: d.Args})

	p, err := spec.Create(config)
	if err != nil {
		return nil, wrapReason(ErrInvalidPredicateParams, err)
	}

	return p, nil
}

// compileFilters creates the filter chain of the route: the shared
// default filters followed by the route's own filters, stable sorted
// ascending by effective order so that equal orders retain the
// declaration order.
func (r *Routes) compileFilters(def *routedef.RouteDefinition) ([]*RouteFilter, error) {
	defs := make([]*routedef.Definition, 0, len(r.o.DefaultFilters)+len(def.Filters))
	defs = append(defs, r.o.DefaultFilters...)
	defs = append(defs, def.Filters...)

	fs := make([]*RouteFilter, 0, len(defs))
	for i, fd := range defs {
		f, err := r.createFilter(def.ID, fd)
		if err != nil {
			return nil, err
		}

		order := i + 1
		if o, ok := f.(filters.Ordered); ok {
			order = o.Order()
		}

		fs = append(fs, &RouteFilter{Filter: f, Name: fd.Name, Order: order})
	}

	sort.SliceStable(fs, func(i, j int) bool { return fs[i].Order < fs[j].Order })
	return fs, nil
}

func (r *Routes) createFilter(routeID string, d *routedef.Definition) (filters.Filter, error) {
	spec, ok := r.o.FilterRegistry[d.Name]
	if !ok {
		return nil, wrapReason(ErrUnknownFilter, fmt.Errorf("filter not found: %q", d.Name))
	}

	config := spec.NewConfig()
	if err := r.binder.Bind(d.Name, d.Args, config); err != nil {
		return nil, wrapReason(ErrInvalidFilterParams, err)
	}

	// some filters need to know their route
	if aware, ok := config.(filters.RouteIDAware); ok {
		aware.SetRouteID(routeID)
	}

	r.listener.FilterArgs(ArgsEvent{RouteID: routeID, Name: d.Name, Args: d.Args})

	f, err := spec.CreateFilter(config)
	if err != nil {
		return nil, wrapReason(ErrInvalidFilterParams, err)
	}

	return f, nil
}
