package critique

import "errors"

var (
	// ErrNoObject means the model text holds no {...} span.
	ErrNoObject = errors.New("no json object in response")
	// ErrUnparseable means the {...} span could not be parsed even after repair.
	ErrUnparseable = errors.New("unparseable model response")
	// ErrEmptyResponse means the provider answered without any text.
	ErrEmptyResponse = errors.New("empty model response")
)
