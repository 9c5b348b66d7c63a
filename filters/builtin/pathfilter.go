package builtin

import (
	"errors"
	"strings"

	"github.com/routegate/routegate/filters"
)

// SetPathConfig holds the bound arguments of the SetPath filter.
type SetPathConfig struct {
	Path string
}

func (c *SetPathConfig) ShortcutFields() []string { return []string{"Path"} }

type setPathSpec struct{}

type setPathFilter struct {
	path string
}

// NewSetPath creates the spec of the SetPath filter, replacing the
// path of the outgoing request.
func NewSetPath() filters.Spec { return setPathSpec{} }

func (setPathSpec) Name() string           { return "SetPath" }
func (setPathSpec) NewConfig() interface{} { return &SetPathConfig{} }

func (setPathSpec) CreateFilter(config interface{}) (filters.Filter, error) {
	c, ok := config.(*SetPathConfig)
	if !ok || c.Path == "" {
		return nil, errors.New("invalid set path parameters, expecting path")
	}

	return &setPathFilter{path: c.Path}, nil
}

func (f *setPathFilter) Request(ctx filters.FilterContext) {
	ctx.Request().URL.Path = f.path
}

func (f *setPathFilter) Response(filters.FilterContext) {}

// StripPrefixConfig holds the bound arguments of the StripPrefix
// filter.
type StripPrefixConfig struct {

	// Parts is the number of leading path segments to strip.
	Parts int
}

func (c *StripPrefixConfig) ShortcutFields() []string { return []string{"Parts"} }

type stripPrefixSpec struct{}

type stripPrefixFilter struct {
	parts int
}

// NewStripPrefix creates the spec of the StripPrefix filter, removing
// the configured number of leading path segments from the outgoing
// request.
func NewStripPrefix() filters.Spec { return stripPrefixSpec{} }

func (stripPrefixSpec) Name() string           { return "StripPrefix" }
func (stripPrefixSpec) NewConfig() interface{} { return &StripPrefixConfig{} }

func (stripPrefixSpec) CreateFilter(config interface{}) (filters.Filter, error) {
	c, ok := config.(*StripPrefixConfig)
	if !ok || c.Parts <= 0 {
		return nil, errors.New("invalid strip prefix parameters, expecting a positive segment count")
	}

	return &stripPrefixFilter{parts: c.Parts}, nil
}

func (f *stripPrefixFilter) Request(ctx filters.FilterContext) {
	req := ctx.Request()
	segments := strings.Split(strings.TrimPrefix(req.URL.Path, "/"), "/")
	if len(segments) <= f.parts {
		req.URL.Path = "/"
		return
	}

	req.URL.Path = "/" + strings.Join(segments[f.parts:], "/")
}

func (f *stripPrefixFilter) Response(filters.FilterContext) {}
