package padding

import "github.com/pkg/errors"

// Normalization failures. Each returned error wraps exactly one of these and
// carries the offending descriptor in its message; test with errors.Is.
var (
	ErrInvalidPaddingMode           = errors.New("invalid padding mode")
	ErrInvalidPaddingShape          = errors.New("invalid padding shape")
	ErrNonZeroBatchOrChannelPadding = errors.New("non-zero padding in the batch or channel dimensions")
	ErrNegativePadding              = errors.New("negative padding")
)
