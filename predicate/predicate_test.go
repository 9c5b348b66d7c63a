package predicate

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

// countingPredicate records how often it was evaluated.
type countingPredicate struct {
	result bool
	err    error
	calls  int
}

func (p *countingPredicate) Match(context.Context, *http.Request) (bool, error) {
	p.calls++
	return p.result, p.err
}

func request(t *testing.T) *http.Request {
	r, err := http.NewRequest("GET", "https://www.example.org/foo", nil)
	if err != nil {
		t.Fatal(err)
	}

	return r
}

func evaluate(t *testing.T, p Predicate) bool {
	match, err := p.Match(context.Background(), request(t))
	if err != nil {
		t.Fatal(err)
	}

	return match
}

func TestAndShortCircuit(t *testing.T) {
	left := &countingPredicate{result: false}
	right := &countingPredicate{result: true}
	if evaluate(t, And(left, right)) {
		t.Error("failed not to match")
	}

	if right.calls != 0 {
		t.Errorf("right operand evaluated %d times", right.calls)
	}
}

func TestOrShortCircuit(t *testing.T) {
	left := &countingPredicate{result: true}
	right := &countingPredicate{result: false}
	if !evaluate(t, Or(left, right)) {
		t.Error("failed to match")
	}

	if right.calls != 0 {
		t.Errorf("right operand evaluated %d times", right.calls)
	}
}

func TestAndEvaluatesRight(t *testing.T) {
	left := &countingPredicate{result: true}
	right := &countingPredicate{result: true}
	if !evaluate(t, And(left, right)) {
		t.Error("failed to match")
	}

	if left.calls != 1 || right.calls != 1 {
		t.Errorf("wrong evaluation counts: %d, %d", left.calls, right.calls)
	}
}

func TestBooleanLaws(t *testing.T) {
	bools := []bool{false, true}
	for _, p := range bools {
		for _, q := range bools {
			for _, r := range bools {
				pp := Func(func(*http.Request) bool { return p })
				qp := Func(func(*http.Request) bool { return q })
				rp := Func(func(*http.Request) bool { return r })

				if evaluate(t, And(And(pp, qp), rp)) != (p && q && r) {
					t.Errorf("and: wrong result for %v, %v, %v", p, q, r)
				}

				if evaluate(t, Or(Or(pp, qp), rp)) != (p || q || r) {
					t.Errorf("or: wrong result for %v, %v, %v", p, q, r)
				}

				if evaluate(t, Not(Not(pp))) != p {
					t.Errorf("double negation: wrong result for %v", p)
				}
			}
		}
	}
}

func TestErrorPropagation(t *testing.T) {
	failure := errors.New("check failed")
	failing := &countingPredicate{err: failure}
	right := &countingPredicate{result: true}

	for _, p := range []Predicate{
		And(failing, right),
		Or(failing, right),
		Not(failing),
	} {
		if _, err := p.Match(context.Background(), request(t)); !errors.Is(err, failure) {
			t.Errorf("expected the leaf failure, got %v", err)
		}
	}

	if right.calls != 0 {
		t.Errorf("right operand evaluated %d times after failure", right.calls)
	}
}

func TestTrue(t *testing.T) {
	if !evaluate(t, True()) {
		t.Error("failed to match")
	}
}

// blockingPredicate waits for its context to be done.
type blockingPredicate struct{}

func (blockingPredicate) Match(ctx context.Context, _ *http.Request) (bool, error) {
	<-ctx.Done()
	return false, ctx.Err()
}

func TestLeafCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := And(True(), blockingPredicate{})
	if _, err := p.Match(ctx, request(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type leafCollector struct {
	leaves []Predicate
}

func (c *leafCollector) Visit(p Predicate) {
	c.leaves = append(c.leaves, p)
}

func TestVisitor(t *testing.T) {
	p := &countingPredicate{}
	q := &countingPredicate{}
	r := &countingPredicate{}

	c := &leafCollector{}
	accept(c, And(Or(p, Not(q)), r))
	if len(c.leaves) != 3 {
		t.Fatalf("expected 3 leaves, got %d", len(c.leaves))
	}

	if c.leaves[0] != Predicate(p) || c.leaves[1] != Predicate(q) || c.leaves[2] != Predicate(r) {
		t.Error("wrong traversal order")
	}
}

// structuredLeaf exposes an inner predicate to visitors.
type structuredLeaf struct {
	inner Predicate
}

func (p *structuredLeaf) Match(ctx context.Context, req *http.Request) (bool, error) {
	return p.inner.Match(ctx, req)
}

func (p *structuredLeaf) Accept(v Visitor) { accept(v, p.inner) }

func TestVisitorDescendsIntoStructuredLeaves(t *testing.T) {
	inner := &countingPredicate{}
	c := &leafCollector{}
	accept(c, And(&structuredLeaf{inner}, True()))
	if len(c.leaves) != 2 || c.leaves[0] != Predicate(inner) {
		t.Errorf("failed to descend into the structured leaf: %v", c.leaves)
	}
}

func TestString(t *testing.T) {
	p := Func(func(*http.Request) bool { return true })
	for _, test := range []struct {
		predicate Predicate
		expected  string
	}{
		{Not(p), "!(Func())"},
		{And(p, p), "(Func() && Func())"},
		{Or(p, p), "(Func() || Func())"},
		{And(Or(p, Not(p)), p), "((Func() || !(Func())) && Func())"},
		{True(), "True()"},
	} {
		if got := test.predicate.(interface{ String() string }).String(); got != test.expected {
			t.Errorf("wrong rendering: got %q, expected %q", got, test.expected)
		}
	}
}
