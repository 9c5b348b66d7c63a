package primitive

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/routegate/routegate/predicate"
)

func createPredicate(t *testing.T, spec predicate.Spec, config interface{}) predicate.Predicate {
	p, err := spec.Create(config)
	if err != nil {
		t.Fatal(err)
	}

	return p
}

func match(t *testing.T, p predicate.Predicate, req *http.Request) bool {
	m, err := p.Match(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	return m
}

func get(t *testing.T, url string) *http.Request {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		t.Fatal(err)
	}

	return req
}

func TestPath(t *testing.T) {
	for _, test := range []struct {
		pattern string
		path    string
		matches bool
	}{
		{"/foo", "/foo", true},
		{"/foo", "/foo/bar", false},
		{"/foo", "/bar", false},
		{"/foo/**", "/foo", true},
		{"/foo/**", "/foo/bar", true},
		{"/foo/**", "/foo/bar/baz", true},
		{"/foo/**", "/foobar", false},
		{"/foo/*/baz", "/foo/bar/baz", true},
		{"/foo/*/baz", "/foo/bar/qux/baz", false},
		{"/*.html", "/index.html", true},
		{"/*.html", "/index.txt", false},
		{"/", "/", true},
	} {
		p := createPredicate(t, NewPath(), &PathConfig{Pattern: test.pattern})
		if match(t, p, get(t, "https://www.example.org"+test.path)) != test.matches {
			t.Errorf("pattern %q, path %q: expected match to be %v", test.pattern, test.path, test.matches)
		}
	}
}

func TestPathPatternErrors(t *testing.T) {
	if _, err := NewPath().Create(&PathConfig{}); !errors.Is(err, predicate.ErrInvalidPredicateParameters) {
		t.Errorf("empty pattern: expected invalid parameters, got %v", err)
	}

	if _, err := NewPath().Create(&PathConfig{Pattern: "/foo/**/bar"}); !errors.Is(err, predicate.ErrInvalidPredicateParameters) {
		t.Errorf("infix globstar: expected invalid parameters, got %v", err)
	}
}

func TestHost(t *testing.T) {
	p := createPredicate(t, NewHost(), &HostConfig{Pattern: `[.]example[.]org$`})
	for _, test := range []struct {
		host    string
		matches bool
	}{
		{"www.example.org", true},
		{"www.example.org:443", true},
		{"www.example.com", false},
	} {
		req := get(t, "https://"+test.host+"/")
		if match(t, p, req) != test.matches {
			t.Errorf("host %q: expected match to be %v", test.host, test.matches)
		}
	}
}

func TestMethod(t *testing.T) {
	p := createPredicate(t, NewMethod(), &MethodConfig{Method: "get"})
	if !match(t, p, get(t, "https://www.example.org/")) {
		t.Error("failed to match GET case insensitively")
	}

	post, err := http.NewRequest("POST", "https://www.example.org/", nil)
	if err != nil {
		t.Fatal(err)
	}

	if match(t, p, post) {
		t.Error("failed not to match POST")
	}
}

func TestHeader(t *testing.T) {
	exact := createPredicate(t, NewHeader(), &HeaderConfig{Name: "X-Channel", Value: "web"})
	presence := createPredicate(t, NewHeader(), &HeaderConfig{Name: "X-Channel"})

	req := get(t, "https://www.example.org/")
	if match(t, exact, req) || match(t, presence, req) {
		t.Error("failed not to match a missing header")
	}

	req.Header.Set("X-Channel", "mobile")
	if match(t, exact, req) {
		t.Error("failed not to match the wrong value")
	}

	if !match(t, presence, req) {
		t.Error("failed to match on presence")
	}

	req.Header.Add("X-Channel", "web")
	if !match(t, exact, req) {
		t.Error("failed to match the exact value")
	}
}

func TestQuery(t *testing.T) {
	exact := createPredicate(t, NewQuery(), &QueryConfig{Name: "channel", Value: "web"})
	presence := createPredicate(t, NewQuery(), &QueryConfig{Name: "channel"})

	if match(t, exact, get(t, "https://www.example.org/")) {
		t.Error("failed not to match a missing parameter")
	}

	if !match(t, presence, get(t, "https://www.example.org/?channel=mobile")) {
		t.Error("failed to match on presence")
	}

	if !match(t, exact, get(t, "https://www.example.org/?channel=web")) {
		t.Error("failed to match the exact value")
	}
}

func TestMakeRegistry(t *testing.T) {
	r := MakeRegistry()
	for _, name := range []string{"Path", "Host", "Method", "Header", "Query"} {
		if _, ok := r[name]; !ok {
			t.Errorf("missing builtin predicate spec: %s", name)
		}
	}
}
