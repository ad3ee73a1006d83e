// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/seqconv/internal/tensor"

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// Dynamic marks a dimension whose size is only known when a graph is run.
const Dynamic = tensor.Dynamic

// DType is the constraint for element types: float32 or float64.
type DType = tensor.DType

// DataType is the runtime element type of a tensor.
type DataType = tensor.DataType

// Data types.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
)

// ParseDataType maps "float32"/"float64" to a DataType.
func ParseDataType(s string) (DataType, error) {
	return tensor.ParseDataType(s)
}

// Device is where a tensor's data lives.
type Device = tensor.Device

// CPU is the host device.
const CPU = tensor.CPU

// Value is anything with a shape: a RawTensor or a graph node.
type Value = tensor.Value
