package padding

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Modes(t *testing.T) {
	tests := []struct {
		mode Mode
		want Algorithm
	}{
		{"SAME", Same},
		{"same", Same},
		{"Valid", Valid},
		{"VALID", Valid},
	}
	for _, tt := range tests {
		for rank := 1; rank <= 3; rank++ {
			pads, alg, err := Normalize(tt.mode, false, rank)
			require.NoError(t, err)
			assert.Equal(t, tt.want, alg)
			assert.Equal(t, make([]int, rank), pads, "mode %s rank %d", tt.mode, rank)
		}
	}
}

func TestNormalize_InvalidMode(t *testing.T) {
	_, _, err := Normalize(Mode("full"), false, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPaddingMode))
	assert.Contains(t, err.Error(), "full")
}

func TestNormalize_Explicit(t *testing.T) {
	tests := []struct {
		name        string
		d           Descriptor
		channelLast bool
		rank        int
		want        []int
	}{
		{"scalar", Scalar(2), false, 1, []int{2}},
		{"scalar rank 3", Scalar(1), false, 3, []int{1, 1, 1}},
		{"per dim", List{1, 2}, false, 2, []int{1, 2}},
		{"flat symmetric", List{1, 1, 2, 2}, false, 2, []int{1, 2}},
		{"flat asymmetric", List{1, 2, 3, 3}, false, 2, []int{1, 2, 3, 3}},
		{"flat rank 1", List{1, 2}, false, 1, []int{1, 2}},
		{"pairs rank 1", Pairs{{1, 2}}, false, 1, []int{1, 2}},
		{"pairs symmetric", Pairs{{3, 3}}, false, 1, []int{3}},
		{"full tensor NCT", Pairs{{0, 0}, {0, 0}, {1, 2}}, false, 1, []int{1, 2}},
		{"full tensor NTC", Pairs{{0, 0}, {1, 2}, {0, 0}}, true, 1, []int{1, 2}},
		{"full tensor collapse", Pairs{{0, 0}, {0, 0}, {2, 2}, {1, 1}}, false, 2, []int{2, 1}},
		{"partial symmetry kept", Pairs{{0, 0}, {0, 0}, {2, 2}, {1, 0}}, false, 2, []int{2, 2, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pads, alg, err := Normalize(tt.d, tt.channelLast, tt.rank)
			require.NoError(t, err)
			assert.Equal(t, Explicit, alg)
			assert.Equal(t, tt.want, pads)
		})
	}
}

// Length-4 descriptors for rank 2 are told apart by element kind: four
// scalars are flattened pairs, four pairs are full-tensor notation.
func TestNormalize_DisambiguatesByElementKind(t *testing.T) {
	pads, _, err := Normalize(List{0, 0, 1, 2}, false, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 2}, pads)

	pads, _, err = Normalize(Pairs{{0, 0}, {0, 0}, {1, 2}, {3, 4}}, false, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, pads)
}

func TestNormalize_OutputLengths(t *testing.T) {
	for rank := 1; rank <= 4; rank++ {
		sym := make(List, rank)
		flat := make(List, 2*rank)
		perDim := make(Pairs, rank)
		full := make(Pairs, rank+2)
		for i := 0; i < rank; i++ {
			sym[i] = i + 1
			flat[2*i], flat[2*i+1] = i, i+1
			perDim[i] = [2]int{i, i + 1}
			full[i+2] = [2]int{i, i + 1}
		}

		cases := map[string]struct {
			d    Descriptor
			want int
		}{
			"mode":   {Mode("same"), rank},
			"scalar": {Scalar(1), rank},
			"list":   {sym, rank},
			"flat":   {flat, 2 * rank},
			"pairs":  {perDim, 2 * rank},
			"full":   {full, 2 * rank},
		}
		for name, c := range cases {
			pads, _, err := Normalize(c.d, false, rank)
			require.NoError(t, err, "%s rank %d", name, rank)
			assert.Len(t, pads, c.want, "%s rank %d", name, rank)
		}
	}
}

func TestNormalize_CollapseMatchesShortForm(t *testing.T) {
	for rank := 1; rank <= 4; rank++ {
		short := make(List, rank)
		long := make(List, 0, 2*rank)
		pairs := make(Pairs, rank)
		for i := range short {
			short[i] = 2*i + 1
			long = append(long, short[i], short[i])
			pairs[i] = [2]int{short[i], short[i]}
		}

		want, _, err := Normalize(short, false, rank)
		require.NoError(t, err)
		got, _, err := Normalize(long, false, rank)
		require.NoError(t, err)
		assert.Equal(t, want, got, "rank %d", rank)
		got, _, err = Normalize(pairs, false, rank)
		require.NoError(t, err)
		assert.Equal(t, want, got, "rank %d", rank)
	}
}

func TestNormalize_Pure(t *testing.T) {
	d := List{1, 1, 2, 2}
	first, alg1, err1 := Normalize(d, false, 2)
	second, alg2, err2 := Normalize(d, false, 2)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
	assert.Equal(t, alg1, alg2)
	assert.Equal(t, List{1, 1, 2, 2}, d, "descriptor must not be modified")

	first[0] = 99
	again, _, _ := Normalize(d, false, 2)
	assert.Equal(t, []int{1, 2}, again, "results must not alias each other")

	list := List{4}
	pads, _, _ := Normalize(list, false, 1)
	pads[0] = 0
	assert.Equal(t, List{4}, list)
}

func TestNormalize_NonZeroBatchOrChannel(t *testing.T) {
	tests := []struct {
		name        string
		d           Pairs
		channelLast bool
	}{
		{"batch NCT", Pairs{{1, 0}, {0, 0}, {0, 0}}, false},
		{"channel NCT", Pairs{{0, 0}, {0, 1}, {0, 0}}, false},
		{"batch NTC", Pairs{{0, 1}, {0, 0}, {0, 0}}, true},
		{"channel NTC", Pairs{{0, 0}, {0, 0}, {2, 0}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Normalize(tt.d, tt.channelLast, 1)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNonZeroBatchOrChannelPadding), err.Error())
		})
	}
}

func TestNormalize_InvalidShape(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
		rank int
	}{
		{"list too long", List{1, 2, 3}, 1},
		{"empty list", List{}, 1},
		{"pairs wrong count", Pairs{{0, 0}, {1, 1}}, 1},
		{"nil", nil, 1},
		{"zero rank", Scalar(1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Normalize(tt.d, false, tt.rank)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPaddingShape), err.Error())
		})
	}
}

func TestNormalize_Negative(t *testing.T) {
	for _, d := range []Descriptor{Scalar(-1), List{-1}, List{1, -1}, Pairs{{0, -2}}} {
		_, _, err := Normalize(d, false, 1)
		require.Error(t, err, fmt.Sprint(d))
		assert.True(t, errors.Is(err, ErrNegativePadding), err.Error())
	}
}

func TestAlgorithm_String(t *testing.T) {
	assert.Equal(t, "SAME", Same.String())
	assert.Equal(t, "VALID", Valid.String())
	assert.Equal(t, "EXPLICIT", Explicit.String())
}
