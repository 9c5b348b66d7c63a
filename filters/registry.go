package filters

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// Registry is used to look up filter specs by name during route
// compilation. It is populated once at startup and read-only while
// serving.
type Registry map[string]Spec

// Register adds specs to the registry. On a name collision the last
// registered spec wins and the replacement is logged as a warning.
func (r Registry) Register(specs ...Spec) {
	for _, s := range specs {
		name := s.Name()
		if _, ok := r[name]; ok {
			log.Warnf("replacing existing filter specification: %s", name)
		}

		r[name] = s
	}
}

// NormalizeName derives the canonical registry name from an
// implementation type name by stripping the conventional suffix, e.g.
// "AddRequestHeaderFilter" becomes "AddRequestHeader".
func NormalizeName(name string) string {
	for _, suffix := range []string{"FilterSpec", "Filter", "Spec"} {
		if t := strings.TrimSuffix(name, suffix); t != name && t != "" {
			return t
		}
	}

	return name
}
