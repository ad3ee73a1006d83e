package conv

import "strings"

// DataFormat is the memory layout of a rank-3 sequence tensor.
type DataFormat string

// Sequence layouts. The zero value means NCT.
const (
	NCT DataFormat = "NCT" // [batch, channels, time], channels-first
	NTC DataFormat = "NTC" // [batch, time, channels], channels-last
)

// Layout2D is the memory layout handed to the 2-D primitive.
type Layout2D string

// Image layouts.
const (
	NCHW Layout2D = "NCHW"
	NHWC Layout2D = "NHWC"
)

// ParseDataFormat accepts NCT/NTC as well as the channels-first and
// channels-last spellings (with '-' or '_').
func ParseDataFormat(s string) (DataFormat, error) {
	switch strings.ReplaceAll(strings.ToLower(s), "-", "_") {
	case "nct", "channels_first":
		return NCT, nil
	case "ntc", "channels_last":
		return NTC, nil
	}
	return "", invalidf("data format should be 'NCT' or 'NTC', received %q", s)
}

func (f DataFormat) resolve() (DataFormat, error) {
	switch f {
	case "":
		return NCT, nil
	case NCT, NTC:
		return f, nil
	}
	return "", invalidf("data format should be 'NCT' or 'NTC', received %q", string(f))
}

// ChannelLast reports whether channels are the innermost dimension.
func (f DataFormat) ChannelLast() bool {
	return f == NTC
}

// Layout2D returns the image layout that f lifts to.
func (f DataFormat) Layout2D() Layout2D {
	if f.ChannelLast() {
		return NHWC
	}
	return NCHW
}

// ChannelAxis is the channel axis of a tensor with the given rank in this layout.
func (l Layout2D) ChannelAxis(rank int) int {
	if l == NHWC {
		return rank - 1
	}
	return 1
}
