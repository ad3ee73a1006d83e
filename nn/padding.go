// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import "github.com/born-ml/seqconv/internal/padding"

// Padding is a padding descriptor: PaddingMode, PaddingList, PaddingPairs or
// PaddingScalar.
type Padding = padding.Descriptor

// PaddingMode selects "SAME" or "VALID" padding (case-insensitive).
type PaddingMode = padding.Mode

// PaddingList holds one value per spatial dimension or flattened
// (before, after) pairs.
type PaddingList = padding.List

// PaddingPairs holds (before, after) pairs per spatial dimension, or per
// tensor dimension including batch and channel.
type PaddingPairs = padding.Pairs

// PaddingScalar pads every spatial dimension by the same amount.
type PaddingScalar = padding.Scalar

// PaddingAlgorithm tells the primitive how to read canonical padding.
type PaddingAlgorithm = padding.Algorithm

// Padding algorithms.
const (
	PaddingExplicit = padding.Explicit
	PaddingSame     = padding.Same
	PaddingValid    = padding.Valid
)

// Padding errors.
var (
	ErrInvalidPaddingMode           = padding.ErrInvalidPaddingMode
	ErrInvalidPaddingShape          = padding.ErrInvalidPaddingShape
	ErrNonZeroBatchOrChannelPadding = padding.ErrNonZeroBatchOrChannelPadding
	ErrNegativePadding              = padding.ErrNegativePadding
)

// NormalizePadding converts a descriptor into canonical padding for rank
// spatial dimensions: rank symmetric values or 2*rank (before, after) values.
//
// Example:
//
//	pads, alg, err := nn.NormalizePadding(nn.PaddingList{1, 1, 2, 2}, false, 2)
//	// pads = [1 2], alg = EXPLICIT
func NormalizePadding(d Padding, channelLast bool, rank int) ([]int, PaddingAlgorithm, error) {
	return padding.Normalize(d, channelLast, rank)
}

// ParsePadding reads a descriptor from text: "same", "valid", an integer,
// a JSON list of integers or a JSON list of integer pairs.
func ParsePadding(text string) (Padding, error) {
	return padding.Parse(text)
}
