package conv

import "github.com/pkg/errors"

// ErrInvalidArgument is wrapped by every validation failure of Conv1D and
// NewPlan. Validation always happens before any executor call.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
