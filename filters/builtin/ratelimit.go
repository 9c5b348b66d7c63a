package builtin

import (
	"errors"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/routegate/routegate/filters"
)

// RateLimitConfig holds the bound arguments of the RateLimit filter.
// It receives the id of its owning route, so rejected requests can be
// attributed to the route in the response.
type RateLimitConfig struct {

	// Rate is the sustained number of allowed requests per second.
	Rate float64

	// Burst is the number of requests allowed to exceed the rate
	// momentarily. Defaults to the rounded rate.
	Burst int

	routeID string
}

func (c *RateLimitConfig) ShortcutFields() []string { return []string{"Rate", "Burst"} }

// SetRouteID receives the owning route's id from the compiler.
func (c *RateLimitConfig) SetRouteID(id string) { c.routeID = id }

type rateLimitSpec struct{}

type rateLimitFilter struct {
	limiter *rate.Limiter
	routeID string
}

// NewRateLimit creates the spec of the RateLimit filter, rejecting
// requests above the configured rate with 429. The token bucket is
// shared by all requests of the route.
func NewRateLimit() filters.Spec { return rateLimitSpec{} }

func (rateLimitSpec) Name() string           { return "RateLimit" }
func (rateLimitSpec) NewConfig() interface{} { return &RateLimitConfig{} }

func (rateLimitSpec) CreateFilter(config interface{}) (filters.Filter, error) {
	c, ok := config.(*RateLimitConfig)
	if !ok || c.Rate <= 0 {
		return nil, errors.New("invalid rate limit parameters, expecting a positive rate")
	}

	burst := c.Burst
	if burst <= 0 {
		burst = int(c.Rate)
		if burst < 1 {
			burst = 1
		}
	}

	return &rateLimitFilter{
		limiter: rate.NewLimiter(rate.Limit(c.Rate), burst),
		routeID: c.routeID,
	}, nil
}

func (f *rateLimitFilter) Request(ctx filters.FilterContext) {
	if f.limiter.Allow() {
		return
	}

	w := ctx.ResponseWriter()
	w.Header().Set("X-Rate-Limited-Route", f.routeID)
	http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
	ctx.MarkServed()
}

func (f *rateLimitFilter) Response(filters.FilterContext) {}
