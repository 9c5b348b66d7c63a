// Package metrics implements collection of the observable events of
// route compilation: compile duration, invalid route definitions by
// failure reason and the number of routes produced by the last read.
package metrics

import "time"

// Metrics collects the observable events of route compilation.
// Implementations must be safe for concurrent use.
type Metrics interface {

	// MeasureCompile records the duration of one full compilation of
	// the current definitions.
	MeasureCompile(start time.Time)

	// IncInvalidRoute counts a route definition that failed to
	// compile, by failure reason.
	IncInvalidRoute(routeID, reason string)

	// UpdateRoutes records the number of routes produced by the last
	// read.
	UpdateRoutes(n int)
}

type voidMetrics struct{}

// Void is a Metrics implementation that discards all values. Used when
// metrics collection is disabled.
var Void Metrics = voidMetrics{}

func (voidMetrics) MeasureCompile(time.Time)       {}
func (voidMetrics) IncInvalidRoute(string, string) {}
func (voidMetrics) UpdateRoutes(int)               {}
