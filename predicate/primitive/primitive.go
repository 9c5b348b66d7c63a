/*
Package primitive provides the builtin matching condition factories:
Path, Host, Method, Header and Query.

The specs register under their canonical short names and bind their
positional shorthand arguments through the configuration objects'
shortcut field declarations, e.g. Path=/api/** or Header=Accept,text/html.
*/
package primitive

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/routegate/routegate/predicate"
)

// Register adds all builtin predicate specs to the registry.
func Register(r predicate.Registry) {
	r.Register(
		NewPath(),
		NewHost(),
		NewMethod(),
		NewHeader(),
		NewQuery(),
	)
}

// MakeRegistry returns a registry with all builtin predicate specs
// registered.
func MakeRegistry() predicate.Registry {
	r := make(predicate.Registry)
	Register(r)
	return r
}

// PathConfig holds the bound arguments of the Path predicate.
type PathConfig struct {

	// Pattern is the path pattern to match. A trailing "/**" segment
	// matches any number of further segments, "*" matches within a
	// single segment.
	Pattern string
}

func (c *PathConfig) ShortcutFields() []string { return []string{"Pattern"} }

type pathSpec struct{}

// NewPath creates the spec of the Path predicate, matching the request
// path against a pattern with segment globbing.
func NewPath() predicate.Spec { return pathSpec{} }

func (pathSpec) Name() string           { return "Path" }
func (pathSpec) NewConfig() interface{} { return &PathConfig{} }

func (pathSpec) Create(config interface{}) (predicate.Predicate, error) {
	c, ok := config.(*PathConfig)
	if !ok || c.Pattern == "" {
		return nil, predicate.ErrInvalidPredicateParameters
	}

	rx, err := compilePathPattern(c.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", predicate.ErrInvalidPredicateParameters, err)
	}

	return &pathPredicate{pattern: c.Pattern, rx: rx}, nil
}

type pathPredicate struct {
	pattern string
	rx      *regexp.Regexp
}

func (p *pathPredicate) Match(_ context.Context, req *http.Request) (bool, error) {
	return p.rx.MatchString(req.URL.Path), nil
}

func (p *pathPredicate) String() string { return fmt.Sprintf("Path(%s)", p.pattern) }

// compilePathPattern translates a path pattern to an anchored regexp.
// "**" is only allowed as the last segment and matches the segment
// boundary too, so /foo/** matches both /foo and /foo/bar.
func compilePathPattern(pattern string) (*regexp.Regexp, error) {
	segments := strings.Split(pattern, "/")
	var b strings.Builder
	b.WriteString("^")
	for i, segment := range segments {
		if segment == "" && i == 0 {
			continue
		}

		if segment == "**" {
			if i != len(segments)-1 {
				return nil, fmt.Errorf("'**' is only allowed as the last segment: %s", pattern)
			}

			b.WriteString("(/.*)?$")
			return regexp.Compile(b.String())
		}

		b.WriteString("/")
		for j, literal := range strings.Split(segment, "*") {
			if j > 0 {
				b.WriteString("[^/]*")
			}

			b.WriteString(regexp.QuoteMeta(literal))
		}
	}

	b.WriteString("$")
	return regexp.Compile(b.String())
}

// HostConfig holds the bound arguments of the Host predicate.
type HostConfig struct {

	// Pattern is a regular expression matched against the request
	// host, without the port.
	Pattern string
}

func (c *HostConfig) ShortcutFields() []string { return []string{"Pattern"} }

type hostSpec struct{}

// NewHost creates the spec of the Host predicate, matching the request
// host against a regular expression.
func NewHost() predicate.Spec { return hostSpec{} }

func (hostSpec) Name() string           { return "Host" }
func (hostSpec) NewConfig() interface{} { return &HostConfig{} }

func (hostSpec) Create(config interface{}) (predicate.Predicate, error) {
	c, ok := config.(*HostConfig)
	if !ok || c.Pattern == "" {
		return nil, predicate.ErrInvalidPredicateParameters
	}

	rx, err := regexp.Compile(c.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", predicate.ErrInvalidPredicateParameters, err)
	}

	return &hostPredicate{pattern: c.Pattern, rx: rx}, nil
}

type hostPredicate struct {
	pattern string
	rx      *regexp.Regexp
}

func (p *hostPredicate) Match(_ context.Context, req *http.Request) (bool, error) {
	host := req.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	return p.rx.MatchString(host), nil
}

func (p *hostPredicate) String() string { return fmt.Sprintf("Host(%s)", p.pattern) }

// MethodConfig holds the bound arguments of the Method predicate.
type MethodConfig struct {
	Method string
}

func (c *MethodConfig) ShortcutFields() []string { return []string{"Method"} }

type methodSpec struct{}

// NewMethod creates the spec of the Method predicate, matching the
// request method case insensitively.
func NewMethod() predicate.Spec { return methodSpec{} }

func (methodSpec) Name() string           { return "Method" }
func (methodSpec) NewConfig() interface{} { return &MethodConfig{} }

func (methodSpec) Create(config interface{}) (predicate.Predicate, error) {
	c, ok := config.(*MethodConfig)
	if !ok || c.Method == "" {
		return nil, predicate.ErrInvalidPredicateParameters
	}

	method := strings.ToUpper(c.Method)
	return &methodPredicate{method}, nil
}

type methodPredicate struct{ method string }

func (p *methodPredicate) Match(_ context.Context, req *http.Request) (bool, error) {
	return strings.ToUpper(req.Method) == p.method, nil
}

func (p *methodPredicate) String() string { return fmt.Sprintf("Method(%s)", p.method) }

// HeaderConfig holds the bound arguments of the Header predicate.
type HeaderConfig struct {
	Name  string
	Value string
}

func (c *HeaderConfig) ShortcutFields() []string { return []string{"Name", "Value"} }

type headerSpec struct{}

// NewHeader creates the spec of the Header predicate, matching when
// the request carries the header with exactly the configured value.
// Without a configured value the presence of the header is enough.
func NewHeader() predicate.Spec { return headerSpec{} }

func (headerSpec) Name() string           { return "Header" }
func (headerSpec) NewConfig() interface{} { return &HeaderConfig{} }

func (headerSpec) Create(config interface{}) (predicate.Predicate, error) {
	c, ok := config.(*HeaderConfig)
	if !ok || c.Name == "" {
		return nil, predicate.ErrInvalidPredicateParameters
	}

	return &headerPredicate{name: c.Name, value: c.Value}, nil
}

type headerPredicate struct{ name, value string }

func (p *headerPredicate) Match(_ context.Context, req *http.Request) (bool, error) {
	values, ok := req.Header[http.CanonicalHeaderKey(p.name)]
	if !ok {
		return false, nil
	}

	if p.value == "" {
		return true, nil
	}

	for _, v := range values {
		if v == p.value {
			return true, nil
		}
	}

	return false, nil
}

func (p *headerPredicate) String() string {
	if p.value == "" {
		return fmt.Sprintf("Header(%s)", p.name)
	}

	return fmt.Sprintf("Header(%s, %s)", p.name, p.value)
}

// QueryConfig holds the bound arguments of the Query predicate.
type QueryConfig struct {
	Name  string
	Value string
}

func (c *QueryConfig) ShortcutFields() []string { return []string{"Name", "Value"} }

type querySpec struct{}

// NewQuery creates the spec of the Query predicate, matching when the
// request URL carries the query parameter, optionally with exactly the
// configured value.
func NewQuery() predicate.Spec { return querySpec{} }

func (querySpec) Name() string           { return "Query" }
func (querySpec) NewConfig() interface{} { return &QueryConfig{} }

func (querySpec) Create(config interface{}) (predicate.Predicate, error) {
	c, ok := config.(*QueryConfig)
	if !ok || c.Name == "" {
		return nil, predicate.ErrInvalidPredicateParameters
	}

	return &queryPredicate{name: c.Name, value: c.Value}, nil
}

type queryPredicate struct{ name, value string }

func (p *queryPredicate) Match(_ context.Context, req *http.Request) (bool, error) {
	values, ok := req.URL.Query()[p.name]
	if !ok {
		return false, nil
	}

	if p.value == "" {
		return true, nil
	}

	for _, v := range values {
		if v == p.value {
			return true, nil
		}
	}

	return false, nil
}

func (p *queryPredicate) String() string {
	if p.value == "" {
		return fmt.Sprintf("Query(%s)", p.name)
	}

	return fmt.Sprintf("Query(%s, %s)", p.name, p.value)
}
