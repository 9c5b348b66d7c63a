/*
Package routedef contains the data model of the declarative route
definitions consumed by the route compiler, and the parser for the
compact shorthand form used to write predicate and filter definitions:

	Name
	Name=value1,value2

A definition names a factory and carries its arguments. Arguments
parsed from the shorthand form are positional and stored under
synthesized keys ("_genkey_0", "_genkey_1", ...), in token order.
Definitions can also be constructed directly with named arguments.
*/
package routedef

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// GenKeyPrefix is the prefix of the synthesized keys of positional
// arguments.
const GenKeyPrefix = "_genkey_"

// ErrMalformedDefinition marks shorthand text that cannot be parsed,
// e.g. a leading '=' with an empty name.
var ErrMalformedDefinition = errors.New("malformed definition")

// Args hold the arguments of a predicate or filter definition. Keys are
// unique within one definition. Positional arguments use synthesized
// keys, see GenKey.
type Args map[string]string

// Definition is the declarative, name plus arguments description of a
// predicate or filter before it is compiled into an executable
// instance. The name identifies a factory in the matching registry.
type Definition struct {
	Name string
	Args Args
}

// RouteDefinition describes one route: the ordered matching conditions,
// the ordered transformation steps, the target URI and the priority
// used as tie-break during route selection. The source of truth is
// external, instances are not modified after compilation.
type RouteDefinition struct {
	ID         string
	Predicates []*Definition
	Filters    []*Definition
	URI        string
	Order      int
	Metadata   map[string]interface{}
}

// GenKey returns the synthesized argument key of the positional
// argument with index i.
func GenKey(i int) string {
	return GenKeyPrefix + strconv.Itoa(i)
}

// Parse parses the shorthand form of a definition. The text before the
// first '=' becomes the name, the text after it is tokenized on ',',
// tokens are trimmed of surrounding space and empty tokens are dropped.
// Text without '=' is a name with no arguments. An empty name before
// '=' fails with ErrMalformedDefinition.
func Parse(text string) (*Definition, error) {
	eq := strings.Index(text, "=")
	if eq == 0 {
		return nil, fmt.Errorf("%w: missing name in %q", ErrMalformedDefinition, text)
	}

	if eq < 0 {
		return &Definition{Name: text, Args: make(Args)}, nil
	}

	d := &Definition{Name: text[:eq], Args: make(Args)}
	i := 0
	for _, token := range strings.Split(text[eq+1:], ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		d.Args[GenKey(i)] = token
		i++
	}

	return d, nil
}

// ParseDefinitions parses a list of shorthand definitions.
func ParseDefinitions(texts []string) ([]*Definition, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	defs := make([]*Definition, len(texts))
	for i, text := range texts {
		d, err := Parse(text)
		if err != nil {
			return nil, err
		}

		defs[i] = d
	}

	return defs, nil
}

// Equal tells if two definitions describe the same factory application:
// same name and same argument mapping.
func (d *Definition) Equal(o *Definition) bool {
	if d == nil || o == nil {
		return d == o
	}

	if d.Name != o.Name || len(d.Args) != len(o.Args) {
		return false
	}

	for k, v := range d.Args {
		if ov, ok := o.Args[k]; !ok || ov != v {
			return false
		}
	}

	return true
}

// String renders the definition in its shorthand form when possible.
// Definitions with named arguments render them as key=value pairs,
// which is not parseable input, only meant for diagnostics.
func (d *Definition) String() string {
	if len(d.Args) == 0 {
		return d.Name
	}

	values := d.Args.Positional()
	if len(values) == len(d.Args) {
		return d.Name + "=" + strings.Join(values, ",")
	}

	named := d.Args.Named()
	keys := make([]string, 0, len(named))
	for k := range named {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	pairs := make([]string, 0, len(d.Args))
	pairs = append(pairs, values...)
	for _, k := range keys {
		pairs = append(pairs, k+"="+named[k])
	}

	return d.Name + "=" + strings.Join(pairs, ",")
}

// Positional returns the values stored under synthesized keys, in
// positional order. Named arguments are not included.
func (a Args) Positional() []string {
	type indexed struct {
		i int
		v string
	}

	var ordered []indexed
	for k, v := range a {
		if !strings.HasPrefix(k, GenKeyPrefix) {
			continue
		}

		i, err := strconv.Atoi(k[len(GenKeyPrefix):])
		if err != nil {
			continue
		}

		ordered = append(ordered, indexed{i, v})
	}

	sort.Slice(ordered, func(i, j int) bool { return ordered[i].i < ordered[j].i })
	values := make([]string, len(ordered))
	for i, o := range ordered {
		values[i] = o.v
	}

	return values
}

// Named returns the arguments that do not use synthesized positional
// keys.
func (a Args) Named() map[string]string {
	named := make(map[string]string)
	for k, v := range a {
		if strings.HasPrefix(k, GenKeyPrefix) {
			if _, err := strconv.Atoi(k[len(GenKeyPrefix):]); err == nil {
				continue
			}
		}

		named[k] = v
	}

	return named
}

// Shortcut is implemented by factory configuration objects that accept
// positional shorthand arguments. ShortcutFields declares the config
// field names the positional values bind to, in order.
type Shortcut interface {
	ShortcutFields() []string
}
