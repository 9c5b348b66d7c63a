package routedef

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	for _, test := range []struct {
		text string
		name string
		args Args
	}{{
		text: "Foo",
		name: "Foo",
		args: Args{},
	}, {
		text: "Foo=a,b,c",
		name: "Foo",
		args: Args{"_genkey_0": "a", "_genkey_1": "b", "_genkey_2": "c"},
	}, {
		text: "AddRequestHeader=X-Request-Foo, Bar",
		name: "AddRequestHeader",
		args: Args{"_genkey_0": "X-Request-Foo", "_genkey_1": "Bar"},
	}, {
		text: "Foo=",
		name: "Foo",
		args: Args{},
	}, {
		text: "Foo=a,,b",
		name: "Foo",
		args: Args{"_genkey_0": "a", "_genkey_1": "b"},
	}, {
		text: "Path=/foo/**",
		name: "Path",
		args: Args{"_genkey_0": "/foo/**"},
	}} {
		t.Run(test.text, func(t *testing.T) {
			d, err := Parse(test.text)
			if err != nil {
				t.Fatal(err)
			}

			if d.Name != test.name {
				t.Errorf("wrong name: got %q, expected %q", d.Name, test.name)
			}

			if diff := cmp.Diff(test.args, d.Args); diff != "" {
				t.Errorf("wrong args (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestParseEmptyName(t *testing.T) {
	_, err := Parse("=x")
	if !errors.Is(err, ErrMalformedDefinition) {
		t.Errorf("expected ErrMalformedDefinition, got %v", err)
	}
}

func TestParseDefinitions(t *testing.T) {
	defs, err := ParseDefinitions([]string{"Foo", "Bar=1"})
	if err != nil {
		t.Fatal(err)
	}

	if len(defs) != 2 || defs[0].Name != "Foo" || defs[1].Name != "Bar" {
		t.Errorf("wrong definitions: %v", defs)
	}

	if _, err := ParseDefinitions([]string{"Foo", "=x"}); !errors.Is(err, ErrMalformedDefinition) {
		t.Errorf("expected ErrMalformedDefinition, got %v", err)
	}
}

func TestEqual(t *testing.T) {
	parse := func(text string) *Definition {
		d, err := Parse(text)
		if err != nil {
			t.Fatal(err)
		}

		return d
	}

	for _, test := range []struct {
		title    string
		left     *Definition
		right    *Definition
		expected bool
	}{{
		title:    "same text",
		left:     parse("Foo=a,b"),
		right:    parse("Foo=a,b"),
		expected: true,
	}, {
		title:    "different name",
		left:     parse("Foo=a,b"),
		right:    parse("Bar=a,b"),
		expected: false,
	}, {
		title:    "different args",
		left:     parse("Foo=a,b"),
		right:    parse("Foo=a,c"),
		expected: false,
	}, {
		title:    "different arg count",
		left:     parse("Foo=a,b"),
		right:    parse("Foo=a"),
		expected: false,
	}, {
		title:    "no args",
		left:     parse("Foo"),
		right:    parse("Foo"),
		expected: true,
	}} {
		t.Run(test.title, func(t *testing.T) {
			if test.left.Equal(test.right) != test.expected {
				t.Errorf("expected equality to be %v", test.expected)
			}
		})
	}
}

func TestPositional(t *testing.T) {
	d, err := Parse("Foo=a,b,c")
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"a", "b", "c"}, d.Args.Positional()); diff != "" {
		t.Errorf("wrong positional values (-expected +got):\n%s", diff)
	}
}

func TestNamed(t *testing.T) {
	args := Args{"_genkey_0": "a", "pattern": "/foo"}
	if diff := cmp.Diff(map[string]string{"pattern": "/foo"}, args.Named()); diff != "" {
		t.Errorf("wrong named values (-expected +got):\n%s", diff)
	}
}

func TestString(t *testing.T) {
	for _, text := range []string{"Foo", "Foo=a,b,c"} {
		d, err := Parse(text)
		if err != nil {
			t.Fatal(err)
		}

		if d.String() != text {
			t.Errorf("wrong rendering: got %q, expected %q", d.String(), text)
		}
	}

	named := &Definition{Name: "Foo", Args: Args{"pattern": "/foo"}}
	if named.String() != "Foo=pattern=/foo" {
		t.Errorf("wrong rendering of named args: %q", named.String())
	}
}
