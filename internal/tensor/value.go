package tensor

// Value is anything an executor can compute on: a concrete *RawTensor for
// immediate execution or a symbolic node for deferred execution.
type Value interface {
	Shape() Shape
}

var _ Value = (*RawTensor)(nil)
