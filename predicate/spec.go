package predicate

import (
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ErrInvalidPredicateParameters is used by predicate specs in case of
// invalid configuration values.
var ErrInvalidPredicateParameters = errors.New("invalid predicate parameters")

// Spec objects are the predicate factories of the route compiler. They
// are identified by their canonical name in the registry; the compiler
// binds a definition's arguments onto a fresh configuration object and
// calls Create with it.
type Spec interface {

	// Name gives the canonical name of the predicate produced by the
	// spec, used as the lookup key during route compilation, e.g.
	// "Path" or "Host".
	Name() string

	// NewConfig returns a new, empty configuration object for Create.
	// Specs without configuration return nil.
	NewConfig() interface{}

	// Create builds the predicate from a bound configuration object.
	Create(config interface{}) (Predicate, error)
}

// Registry is used to look up predicate specs by name during route
// compilation.
type Registry map[string]Spec

// Register adds specs to the registry. On a name collision the last
// registered spec wins and the replacement is logged as a warning.
func (r Registry) Register(specs ...Spec) {
	for _, s := range specs {
		name := s.Name()
		if _, ok := r[name]; ok {
			log.Warnf("replacing existing predicate specification: %s", name)
		}

		r[name] = s
	}
}

// NormalizeName derives the canonical registry name from an
// implementation type name by stripping the conventional suffix, e.g.
// "HostPredicate" becomes "Host".
func NormalizeName(name string) string {
	for _, suffix := range []string{"PredicateSpec", "Predicate", "Spec"} {
		if t := strings.TrimSuffix(name, suffix); t != name && t != "" {
			return t
		}
	}

	return name
}
