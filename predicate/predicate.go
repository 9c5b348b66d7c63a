/*
Package predicate implements the boolean expression algebra over route
matching conditions.

A predicate decides whether a route applies to a request. Leaf
predicates come from the registered factories and may need to wait for
out-of-process checks, which is why Match takes a context and returns
an error besides the boolean result. The combinators And, Or and Not
compose predicates into expression trees with the usual short-circuit
laws: the right operand of And is not evaluated when the left one does
not match, and the right operand of Or is not evaluated when the left
one matches. Compiled trees are immutable and safely shared between
concurrent evaluations.
*/
package predicate

import (
	"context"
	"fmt"
	"net/http"
)

// Predicate instances decide whether a route applies to a request.
// Match may block on external checks and has to honor cancellation of
// the passed context. Implementations must not keep request scoped
// state: the same compiled predicate is evaluated by concurrent
// requests.
type Predicate interface {
	Match(ctx context.Context, req *http.Request) (bool, error)
}

// Visitor walks a compiled predicate tree, e.g. from introspection or
// debugging tooling. Visit is called with the leaves of the tree.
type Visitor interface {
	Visit(Predicate)
}

// Visitable is implemented by predicates that carry structure a
// Visitor can descend into. The combinators implement it; leaf
// predicates may implement it to expose their own internals.
type Visitable interface {
	Accept(Visitor)
}

// Func adapts a synchronous boolean test to the Predicate contract.
// Values that already implement Predicate are used directly, they
// don't need this wrapper.
type Func func(*http.Request) bool

// Match calls the wrapped test. It never fails.
func (f Func) Match(_ context.Context, req *http.Request) (bool, error) {
	return f(req), nil
}

func (f Func) String() string { return "Func()" }

type truePredicate struct{}

// True returns the constant predicate matching every request. Routes
// compiled from definitions without matching conditions use it.
func True() Predicate { return truePredicate{} }

func (truePredicate) Match(context.Context, *http.Request) (bool, error) { return true, nil }
func (truePredicate) String() string                                     { return "True()" }

type andPredicate struct{ left, right Predicate }
type orPredicate struct{ left, right Predicate }
type notPredicate struct{ inner Predicate }

// And combines two predicates into one that matches when both match.
// The right operand is not evaluated when the left one fails or does
// not match.
func And(left, right Predicate) Predicate { return &andPredicate{left, right} }

// Or combines two predicates into one that matches when either
// matches. The right operand is not evaluated when the left one
// matches or fails.
func Or(left, right Predicate) Predicate { return &orPredicate{left, right} }

// Not negates its argument.
func Not(p Predicate) Predicate { return &notPredicate{p} }

func (p *andPredicate) Match(ctx context.Context, req *http.Request) (bool, error) {
	match, err := p.left.Match(ctx, req)
	if err != nil || !match {
		return false, err
	}

	return p.right.Match(ctx, req)
}

func (p *orPredicate) Match(ctx context.Context, req *http.Request) (bool, error) {
	match, err := p.left.Match(ctx, req)
	if err != nil || match {
		return match, err
	}

	return p.right.Match(ctx, req)
}

func (p *notPredicate) Match(ctx context.Context, req *http.Request) (bool, error) {
	match, err := p.inner.Match(ctx, req)
	if err != nil {
		return false, err
	}

	return !match, nil
}

// accept descends into p when it has structure, otherwise reports it
// to the visitor as a terminal.
func accept(v Visitor, p Predicate) {
	if vp, ok := p.(Visitable); ok {
		vp.Accept(v)
		return
	}

	v.Visit(p)
}

func (p *andPredicate) Accept(v Visitor) {
	accept(v, p.left)
	accept(v, p.right)
}

func (p *orPredicate) Accept(v Visitor) {
	accept(v, p.left)
	accept(v, p.right)
}

func (p *notPredicate) Accept(v Visitor) {
	accept(v, p.inner)
}

func (p *andPredicate) String() string { return fmt.Sprintf("(%v && %v)", p.left, p.right) }
func (p *orPredicate) String() string  { return fmt.Sprintf("(%v || %v)", p.left, p.right) }
func (p *notPredicate) String() string { return fmt.Sprintf("!(%v)", p.inner) }
