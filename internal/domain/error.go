package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPercent indicates that a percentage argument is not an integer in 0-100.
	ErrInvalidPercent = errors.New("must be a number between 0 and 100")

	// ErrNotFound indicates that no entity matched a user-supplied ID or name.
	ErrNotFound = errors.New("not found")

	// ErrNotInMix indicates that a channel has no assignment in the requested mix.
	ErrNotInMix = errors.New("not available in mix")
)

// Kind names an entity kind in user-facing messages.
type Kind string

const (
	KindMix     Kind = "Mix"
	KindOutput  Kind = "Output"
	KindChannel Kind = "Channel"
	KindInput   Kind = "Input"
)

// NotFoundError reports a failed identifier resolution.
type NotFoundError struct {
	Kind  Kind
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.Query)
}

// Is makes errors.Is(err, ErrNotFound) match any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotInMixError reports a channel lacking an assignment in a mix.
type NotInMixError struct {
	Channel string
	Mix     string
}

func (e *NotInMixError) Error() string {
	return fmt.Sprintf("Channel '%s' is not available in mix '%s'", e.Channel, e.Mix)
}

func (e *NotInMixError) Unwrap() error {
	return ErrNotInMix
}
