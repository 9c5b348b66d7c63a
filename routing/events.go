package routing

import (
	"github.com/routegate/routegate/logging"
	"github.com/routegate/routegate/routedef"
)

// ArgsEvent is published when a predicate or filter definition was
// successfully bound onto its factory configuration during route
// compilation. Events are informational, listeners cannot affect the
// compilation outcome.
type ArgsEvent struct {
	RouteID string
	Name    string
	Args    routedef.Args
}

// EventListener receives the bind events of the route compiler, e.g.
// for auditing the resolved arguments.
type EventListener interface {
	PredicateArgs(ArgsEvent)
	FilterArgs(ArgsEvent)
}

// logListener is the default listener, logging the bind events at
// debug level.
type logListener struct {
	log logging.Logger
}

func (l logListener) PredicateArgs(e ArgsEvent) {
	l.log.Debugf("route %s applying predicate %s with args %v", e.RouteID, e.Name, e.Args)
}

func (l logListener) FilterArgs(e ArgsEvent) {
	l.log.Debugf("route %s applying filter %s with args %v", e.RouteID, e.Name, e.Args)
}
