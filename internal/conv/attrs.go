package conv

import (
	"github.com/born-ml/seqconv/internal/padding"
	"github.com/born-ml/seqconv/internal/tensor"
	"github.com/pkg/errors"
)

// Variant selects the 2-D convolution kernel.
type Variant int

// Convolution variants.
const (
	Standard  Variant = iota // grouped convolution
	Depthwise                // one group per input channel
)

// String returns the primitive's op name for the variant.
func (v Variant) String() string {
	if v == Depthwise {
		return "depthwise_conv2d"
	}
	return "conv2d"
}

// Conv2DAttrs is the canonical parameter set of the 2-D primitive.
//
// Paddings holds either two symmetric values (height, width) or four values
// (top, bottom, left, right). Algorithm decides whether they are used at all.
type Conv2DAttrs struct {
	Strides     [2]int
	Paddings    []int
	Dilations   [2]int
	Groups      int
	Algorithm   padding.Algorithm
	Variant     Variant
	Layout      Layout2D
	UseFastPath bool
}

// Pads resolves the padding actually applied around an input of spatial size
// in for a kernel of spatial size kernel. Result: [top, bottom, left, right].
//
// SAME splits the total padding needed for ceil(in/stride) outputs, with the
// extra element, if any, after. VALID pads nothing.
func (a Conv2DAttrs) Pads(in, kernel [2]int) ([4]int, error) {
	var pads [4]int
	switch a.Algorithm {
	case padding.Valid:
		return pads, nil
	case padding.Same:
		for i := 0; i < 2; i++ {
			if in[i] == tensor.Dynamic {
				return pads, errors.Errorf("conv2d: SAME padding needs a static input size, got %v", in)
			}
			eff := (kernel[i]-1)*a.Dilations[i] + 1
			out := (in[i] + a.Strides[i] - 1) / a.Strides[i]
			total := max((out-1)*a.Strides[i]+eff-in[i], 0)
			pads[2*i] = total / 2
			pads[2*i+1] = total - total/2
		}
		return pads, nil
	}

	switch len(a.Paddings) {
	case 2:
		pads = [4]int{a.Paddings[0], a.Paddings[0], a.Paddings[1], a.Paddings[1]}
	case 4:
		copy(pads[:], a.Paddings)
	default:
		return pads, errors.Errorf("conv2d: paddings must have 2 or 4 values, got %v", a.Paddings)
	}
	for _, p := range pads {
		if p < 0 {
			return pads, errors.Errorf("conv2d: negative padding %v", a.Paddings)
		}
	}
	return pads, nil
}

// OutputSpatial computes the output height and width. Dynamic inputs yield
// Dynamic outputs.
func (a Conv2DAttrs) OutputSpatial(in, kernel [2]int) ([2]int, error) {
	var out [2]int
	if a.Algorithm == padding.Same {
		for i := 0; i < 2; i++ {
			if in[i] == tensor.Dynamic {
				out[i] = tensor.Dynamic
				continue
			}
			out[i] = (in[i] + a.Strides[i] - 1) / a.Strides[i]
		}
		return out, nil
	}

	pads, err := a.Pads(in, kernel)
	if err != nil {
		return out, err
	}
	for i := 0; i < 2; i++ {
		if in[i] == tensor.Dynamic {
			out[i] = tensor.Dynamic
			continue
		}
		eff := (kernel[i]-1)*a.Dilations[i] + 1
		out[i] = (in[i]+pads[2*i]+pads[2*i+1]-eff)/a.Strides[i] + 1
		if in[i]+pads[2*i]+pads[2*i+1] < eff {
			out[i] = 0
		}
	}
	if out[0] == 0 || out[1] == 0 {
		return out, errors.Errorf("conv2d: empty output %v for input %v, kernel %v, paddings %v", out, in, kernel, pads)
	}
	return out, nil
}

// Geometry is a rank-4 convolution problem unpacked from its layout.
type Geometry struct {
	Batch, Channels int
	In              [2]int
	Filters         int
	Kernel          [2]int
	Out             [2]int
}

// InferGeometry checks input/filter shapes against the attributes and
// computes the output geometry. Dynamic input dimensions are allowed; the
// filter must be static.
func InferGeometry(input, filter tensor.Shape, a Conv2DAttrs) (Geometry, error) {
	var g Geometry
	if len(input) != 4 {
		return g, errors.Errorf("conv2d: input must be 4D, got shape %v", input)
	}
	if len(filter) != 4 || !filter.IsStatic() {
		return g, errors.Errorf("conv2d: filter must be a static 4D [out, in/groups, kh, kw] shape, got %v", filter)
	}
	if a.Groups < 1 || a.Strides[0] < 1 || a.Strides[1] < 1 || a.Dilations[0] < 1 || a.Dilations[1] < 1 {
		return g, errors.Errorf("conv2d: strides %v, dilations %v and groups %d must be positive", a.Strides, a.Dilations, a.Groups)
	}

	g.Batch = input[0]
	if a.Layout == NHWC {
		g.In = [2]int{input[1], input[2]}
		g.Channels = input[3]
	} else {
		g.In = [2]int{input[2], input[3]}
		g.Channels = input[1]
	}
	g.Filters = filter[0]
	g.Kernel = [2]int{filter[2], filter[3]}

	if g.Channels != tensor.Dynamic && g.Channels != filter[1]*a.Groups {
		return g, errors.Errorf("conv2d: input has %d channels but filter %v with %d groups expects %d",
			g.Channels, filter, a.Groups, filter[1]*a.Groups)
	}
	if g.Filters%a.Groups != 0 {
		return g, errors.Errorf("conv2d: %d filters not divisible by %d groups", g.Filters, a.Groups)
	}
	if a.Variant == Depthwise && g.Channels != tensor.Dynamic && g.Channels != a.Groups {
		return g, errors.Errorf("depthwise_conv2d: needs one group per channel, got %d channels and %d groups", g.Channels, a.Groups)
	}

	out, err := a.OutputSpatial(g.In, g.Kernel)
	if err != nil {
		return g, err
	}
	g.Out = out
	return g, nil
}

// OutputShape is the rank-4 output shape in the attributes' layout.
func (g Geometry) OutputShape(layout Layout2D) tensor.Shape {
	if layout == NHWC {
		return tensor.Shape{g.Batch, g.Out[0], g.Out[1], g.Filters}
	}
	return tensor.Shape{g.Batch, g.Filters, g.Out[0], g.Out[1]}
}
