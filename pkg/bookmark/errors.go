package bookmark

import (
	"errors"
	"fmt"

	"github.com/dtnitsch/mindsync/models"
)

// SaveErrorKind classifies a failed save or update.
type SaveErrorKind string

const (
	AuthRequired      SaveErrorKind = "auth_required"
	PersistenceFailed SaveErrorKind = "persistence_failed"
)

// Sentinels for errors.Is against a *SaveError of the matching kind.
var (
	ErrAuthRequired      = errors.New("authentication required")
	ErrPersistenceFailed = errors.New("persistence failed")
)

// ErrWatchUnsupported is returned by Subscribe when the store cannot
// report changes.
var ErrWatchUnsupported = errors.New("store does not support watching")

// SaveError is returned by operations that need a user or touch storage.
// Op names the failed operation ("save", "get", ...) and defaults to save.
type SaveError struct {
	Kind SaveErrorKind
	Op   string
	Err  error
}

func (e *SaveError) Error() string {
	switch e.Kind {
	case AuthRequired:
		return "Authentication required"
	case PersistenceFailed:
		op := e.Op
		if op == "" {
			op = "save"
		}
		if e.Err != nil {
			return fmt.Sprintf("Failed to %s bookmark: %v", op, e.Err)
		}
		return fmt.Sprintf("Failed to %s bookmark", op)
	}
	return fmt.Sprintf("bookmark error (%s): %v", e.Kind, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

func (e *SaveError) Is(target error) bool {
	switch target {
	case ErrAuthRequired:
		return e.Kind == AuthRequired
	case ErrPersistenceFailed:
		return e.Kind == PersistenceFailed
	}
	return false
}

func authRequired(err error) error {
	return &SaveError{Kind: AuthRequired, Err: err}
}

func persistenceFailed(op string, err error) error {
	return &SaveError{Kind: PersistenceFailed, Op: op, Err: err}
}

// storeError reports a missing item as models.ErrNotFound and anything
// else as a PersistenceFailed error for op.
func storeError(op, id string, err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("bookmark %q: %w", id, models.ErrNotFound)
	}
	return persistenceFailed(op, err)
}
