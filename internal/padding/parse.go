package padding

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parse reads a descriptor from its text form:
//
//	same | valid            Mode
//	3                       Scalar
//	[1, 2]                  List
//	[[1, 2]]                Pairs
//
// The result is not validated against a rank; pass it to Normalize.
func Parse(text string) (Descriptor, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.Wrap(ErrInvalidPaddingShape, "empty padding")
	}

	if !strings.HasPrefix(text, "[") {
		if n, err := strconv.Atoi(text); err == nil {
			return Scalar(n), nil
		}
		return Mode(text), nil
	}

	var ints []int
	if err := json.Unmarshal([]byte(text), &ints); err == nil {
		return List(ints), nil
	}
	var nested [][]int
	if err := json.Unmarshal([]byte(text), &nested); err != nil {
		return nil, errors.Wrapf(ErrInvalidPaddingShape, "cannot parse padding %q: want a list of ints or of int pairs", text)
	}
	pairs := make(Pairs, len(nested))
	for i, pair := range nested {
		if len(pair) != 2 {
			return nil, errors.Wrapf(ErrInvalidPaddingShape, "padding %q: element %d has %d values, want a (before, after) pair", text, i, len(pair))
		}
		pairs[i] = [2]int{pair[0], pair[1]}
	}
	return pairs, nil
}
