// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph provides the deferred executor: convolutions are recorded as
// a graph of symbolic nodes and computed later, any number of times, on an
// immediate backend.
//
// # Basic Usage
//
//	g := graph.New()
//	x, _ := g.Placeholder("x", tensor.Shape{tensor.Dynamic, 4, 100}, tensor.Float32)
//	y, _ := nn.Convolve1D(g, x, g.Constant(weight), nn.Conv1DOptions{Padding: nn.PaddingMode("SAME")})
//
//	out, err := g.Run(cpu.New(), y.(*graph.Node), graph.Feeds{"x": batch})
//
// Placeholder dimensions may be tensor.Dynamic; they propagate through shape
// inference and are bound when Run is given concrete feeds.
package graph

import (
	"github.com/born-ml/seqconv/internal/graph"
)

// Builder records operations as nodes. It implements nn.Executor.
type Builder = graph.Builder

// Node is a symbolic value recorded by a Builder.
type Node = graph.Node

// Op identifies what a node computes.
type Op = graph.Op

// Feeds binds placeholder names to concrete tensors for one Run.
type Feeds = graph.Feeds

// Graph errors.
var (
	ErrForeignNode  = graph.ErrForeignNode
	ErrFeedMismatch = graph.ErrFeedMismatch
)

// New creates an empty graph.
func New() *Builder {
	return graph.New()
}
