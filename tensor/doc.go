// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the tensor types shared by the seqconv executors.
//
// # Overview
//
// Two kinds of values flow through a convolution:
//   - RawTensor: a concrete, row-major buffer computed immediately on the CPU
//   - graph.Node: a symbolic value recorded by the graph builder
//
// Both implement Value, so the dispatcher inspects shapes the same way for
// either. Symbolic shapes may hold Dynamic dimensions; concrete ones never do.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/seqconv/tensor"
//	)
//
//	func main() {
//	    x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{1, 2, 3})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(x.Shape()) // (1, 2, 3)
//	}
//
// # Supported Data Types
//
// Executors compute on float32 and float64 (the DType constraint).
package tensor
