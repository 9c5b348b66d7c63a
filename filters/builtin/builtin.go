/*
Package builtin provides the builtin filter factories: request and
response header manipulation, path rewriting and in-process rate
limiting.
*/
package builtin

import (
	"github.com/routegate/routegate/filters"
)

// Register adds all builtin filter specs to the registry.
func Register(r filters.Registry) {
	r.Register(
		NewAddRequestHeader(),
		NewSetRequestHeader(),
		NewSetResponseHeader(),
		NewSetPath(),
		NewStripPrefix(),
		NewRateLimit(),
	)
}

// MakeRegistry returns a registry with all builtin filter specs
// registered.
func MakeRegistry() filters.Registry {
	r := make(filters.Registry)
	Register(r)
	return r
}
