package votes

import (
	"errors"
	"fmt"
)

// ErrInvalidCandidate marks a submitted candidate outside the allowed set,
// e.g. a prediction that is not home_win/away_win/draw. Surfaced as 400.
var ErrInvalidCandidate = errors.New("invalid candidate")

// NotFoundError marks a missing scope or candidate entity. Surfaced as 404.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
