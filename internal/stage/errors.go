package stage

import "errors"

// Domain errors for orchestrator setup.
var (
	// ErrNoScenes indicates an empty scene registry.
	ErrNoScenes = errors.New("stage: scene registry is empty")

	// ErrNilFactory indicates a scene without a driver factory.
	ErrNilFactory = errors.New("stage: scene has no factory")

	// ErrAlreadyStarted indicates Start was called twice.
	ErrAlreadyStarted = errors.New("stage: orchestrator already started")

	// ErrNotStarted indicates an operation that needs a running orchestrator.
	ErrNotStarted = errors.New("stage: orchestrator not started")
)
