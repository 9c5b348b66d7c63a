package builtin

import (
	"errors"
	"strings"

	"github.com/routegate/routegate/filters"
)

type headerType int

const (
	addRequestHeader headerType = iota
	setRequestHeader
	setResponseHeader
)

// HeaderConfig holds the bound arguments of the header filters.
type HeaderConfig struct {
	Name  string
	Value string
}

func (c *HeaderConfig) ShortcutFields() []string { return []string{"Name", "Value"} }

type headerSpec struct {
	typ  headerType
	name string
}

type headerFilter struct {
	typ         headerType
	name, value string
}

// NewAddRequestHeader creates the spec of the AddRequestHeader filter,
// appending a header to the outgoing request.
func NewAddRequestHeader() filters.Spec {
	return &headerSpec{typ: addRequestHeader, name: "AddRequestHeader"}
}

// NewSetRequestHeader creates the spec of the SetRequestHeader filter,
// replacing a header of the outgoing request.
func NewSetRequestHeader() filters.Spec {
	return &headerSpec{typ: setRequestHeader, name: "SetRequestHeader"}
}

// NewSetResponseHeader creates the spec of the SetResponseHeader
// filter, replacing a header of the outgoing response.
func NewSetResponseHeader() filters.Spec {
	return &headerSpec{typ: setResponseHeader, name: "SetResponseHeader"}
}

func (s *headerSpec) Name() string           { return s.name }
func (s *headerSpec) NewConfig() interface{} { return &HeaderConfig{} }

func (s *headerSpec) CreateFilter(config interface{}) (filters.Filter, error) {
	c, ok := config.(*HeaderConfig)
	if !ok || c.Name == "" {
		return nil, errors.New("invalid header filter parameters, expecting name and value")
	}

	return &headerFilter{typ: s.typ, name: c.Name, value: c.Value}, nil
}

func (f *headerFilter) Request(ctx filters.FilterContext) {
	req := ctx.Request()
	switch f.typ {
	case addRequestHeader:
		if strings.EqualFold(f.name, "host") {
			req.Host = f.value
		}

		req.Header.Add(f.name, f.value)
	case setRequestHeader:
		if strings.EqualFold(f.name, "host") {
			req.Host = f.value
		}

		req.Header.Set(f.name, f.value)
	}
}

func (f *headerFilter) Response(ctx filters.FilterContext) {
	if f.typ == setResponseHeader && ctx.Response() != nil {
		ctx.Response().Header.Set(f.name, f.value)
	}
}
