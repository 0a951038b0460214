package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrDeadlinePassed rejects a pick write at or after the game's deadline.
	ErrDeadlinePassed = errors.New("submission deadline has passed")

	// ErrGameNotFinal means settlement was asked to score a game that has no
	// final score yet. Callers retry later; it is a "not ready" signal, not a
	// failure.
	ErrGameNotFinal = errors.New("game is not final")

	// ErrIncompleteWeek means the weekly ranking refused to run because at
	// least one game of the week is not final. Distinct from a completed week
	// that simply has no winner.
	ErrIncompleteWeek = errors.New("week is not complete")
)
