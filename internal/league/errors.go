package league

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("requested resource not found")
	// ErrStorage marks a failed storage round trip. Nothing was committed and the caller may retry.
	ErrStorage = errors.New("storage unavailable")

	ErrSamePlayer               = errors.New("players must differ")
	ErrScoreOutOfRange          = errors.New("score out of range")
	ErrNoWinnerReached          = errors.New("no side reached the winning threshold")
	ErrBothReachedThreshold     = errors.New("both sides reached the winning threshold")
	ErrInsufficientParticipants = errors.New("not enough participants")
	ErrInvalidStatus            = errors.New("operation not allowed in the current tournament status")
	ErrDuplicateParticipant     = errors.New("player is already a participant")
	ErrNameRequired             = errors.New("name is required")
	ErrNameTaken                = errors.New("name is already taken")
	ErrUnknownPlayer            = errors.New("unknown player")
	ErrInvalidGameIndex         = errors.New("invalid game index")
	ErrInvalidTeam              = errors.New("invalid team composition")
	ErrMatchNotReady            = errors.New("playoff match is not ready")
	ErrMatchCompleted           = errors.New("playoff match is already completed")
	ErrUnknownSlot              = errors.New("unknown playoff match")
	ErrAmbiguousPlayer          = errors.New("player name is ambiguous")
)

// ValidationError is a rejected request. Msg is safe to show to users.
type ValidationError struct {
	Err error
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(err error, format string, args ...any) error {
	return &ValidationError{Err: err, Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
