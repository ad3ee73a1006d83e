package padding

import (
	"strings"

	"github.com/pkg/errors"
)

// Normalize maps a padding descriptor for a convolution over rank spatial
// dimensions to its canonical form.
//
// The returned slice has rank entries when the padding is symmetric and
// 2*rank flattened (before, after) pairs otherwise. Same and Valid always come
// with rank zeros. channelLast selects where the channel pair sits in the
// full-tensor Pairs notation: last when true, second otherwise.
//
// The descriptor is never modified; the result is always a fresh slice.
func Normalize(d Descriptor, channelLast bool, rank int) ([]int, Algorithm, error) {
	if rank < 1 {
		return nil, Explicit, errors.Wrapf(ErrInvalidPaddingShape, "rank must be positive, got %d", rank)
	}

	switch d := d.(type) {
	case Mode:
		switch strings.ToUpper(string(d)) {
		case "SAME":
			return make([]int, rank), Same, nil
		case "VALID":
			return make([]int, rank), Valid, nil
		}
		return nil, Explicit, errors.Wrapf(ErrInvalidPaddingMode, "unknown padding %s: it can only be 'SAME' or 'VALID'", d)

	case Pairs:
		var pairs Pairs
		switch len(d) {
		case rank + 2:
			if err := checkBatchAndChannel(d, channelLast); err != nil {
				return nil, Explicit, err
			}
			pairs = spatialPairs(d, channelLast)
		case rank:
			pairs = d
		default:
			return nil, Explicit, errors.Wrapf(ErrInvalidPaddingShape,
				"%d pairs %s for rank %d: want %d or %d pairs", len(d), d, rank, rank, rank+2)
		}
		flat := make([]int, 0, 2*rank)
		for _, pair := range pairs {
			flat = append(flat, pair[0], pair[1])
		}
		return explicit(flat, rank, d)

	case List:
		switch len(d) {
		case 2 * rank:
			return explicit(append([]int(nil), d...), rank, d)
		case rank:
			if err := checkNonNegative(d, d); err != nil {
				return nil, Explicit, err
			}
			return append([]int(nil), d...), Explicit, nil
		}
		return nil, Explicit, errors.Wrapf(ErrInvalidPaddingShape,
			"%d values %s for rank %d: want %d or %d values", len(d), d, rank, rank, 2*rank)

	case Scalar:
		if d < 0 {
			return nil, Explicit, errors.Wrapf(ErrNegativePadding, "padding %d", int(d))
		}
		pads := make([]int, rank)
		for i := range pads {
			pads[i] = int(d)
		}
		return pads, Explicit, nil
	}

	return nil, Explicit, errors.Wrapf(ErrInvalidPaddingShape, "unsupported padding descriptor %T", d)
}

// explicit finishes a flattened pair sequence: negative values are rejected
// and all-symmetric sequences collapse to their before values.
func explicit(flat []int, rank int, d Descriptor) ([]int, Algorithm, error) {
	if err := checkNonNegative(flat, d); err != nil {
		return nil, Explicit, err
	}
	if IsSymmetric(flat, rank) {
		return Collapse(flat), Explicit, nil
	}
	return flat, Explicit, nil
}

// IsSymmetric reports whether a 2*rank flattened pair sequence has
// before == after for every dimension.
func IsSymmetric(flat []int, rank int) bool {
	if len(flat) != 2*rank {
		return false
	}
	for i := 0; i < rank; i++ {
		if flat[2*i] != flat[2*i+1] {
			return false
		}
	}
	return true
}

// Collapse keeps the before value of every flattened pair.
func Collapse(flat []int) []int {
	out := make([]int, len(flat)/2)
	for i := range out {
		out[i] = flat[2*i]
	}
	return out
}

func checkBatchAndChannel(p Pairs, channelLast bool) error {
	channel := 1
	if channelLast {
		channel = len(p) - 1
	}
	if p[0] != [2]int{0, 0} || p[channel] != [2]int{0, 0} {
		return errors.Wrapf(ErrNonZeroBatchOrChannelPadding,
			"padding %s (batch pair at 0, channel pair at %d)", p, channel)
	}
	return nil
}

func spatialPairs(p Pairs, channelLast bool) Pairs {
	if channelLast {
		return p[1 : len(p)-1]
	}
	return p[2:]
}

func checkNonNegative(values []int, d Descriptor) error {
	for _, v := range values {
		if v < 0 {
			return errors.Wrapf(ErrNegativePadding, "padding %s contains %d", d, v)
		}
	}
	return nil
}
