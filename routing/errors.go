package routing

import (
	"errors"
	"fmt"
)

type invalidDefinitionError string

func (e invalidDefinitionError) Error() string { return string(e) }

// Code gives the stable reason code of the error, used as the metrics
// label of failed compilations.
func (e invalidDefinitionError) Code() string { return string(e) }

// Reason coded sentinel errors of route compilation. Every compilation
// failure wraps exactly one of them, check with errors.Is.
var (
	// ErrUnknownFilter marks a filter definition whose name does not
	// resolve to a registered filter spec.
	ErrUnknownFilter = invalidDefinitionError("unknown_filter")

	// ErrUnknownPredicate marks a predicate definition whose name
	// does not resolve to a registered predicate spec.
	ErrUnknownPredicate = invalidDefinitionError("unknown_predicate")

	// ErrInvalidFilterParams marks a filter definition whose
	// arguments could not be bound or whose spec rejected the bound
	// configuration.
	ErrInvalidFilterParams = invalidDefinitionError("invalid_filter_params")

	// ErrInvalidPredicateParams marks a predicate definition whose
	// arguments could not be bound or whose spec rejected the bound
	// configuration.
	ErrInvalidPredicateParams = invalidDefinitionError("invalid_predicate_params")

	// ErrFailedBackendParse marks a route definition whose target URI
	// could not be parsed.
	ErrFailedBackendParse = invalidDefinitionError("failed_backend_parse")
)

// BindError is returned when binding definition arguments onto a
// factory configuration object fails.
type BindError struct {
	Name string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("binding args of %s: %v", e.Name, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// DefinitionError wraps a compilation failure with the id of the route
// definition it belongs to. Failures never cross route boundaries: a
// DefinitionError invalidates one route only.
type DefinitionError struct {
	RouteID string
	Err     error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("route %s: %v", e.RouteID, e.Err)
}

func (e *DefinitionError) Unwrap() error { return e.Err }

func wrapReason(reason invalidDefinitionError, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", reason, err)
}

func reasonOf(err error) string {
	var defErr invalidDefinitionError
	if errors.As(err, &defErr) {
		return defErr.Code()
	}

	return "other"
}
