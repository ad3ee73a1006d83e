package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/seqconv/internal/tensor"
)

// HeNormal (Kaiming) initialization for weights feeding rectifiers.
//
// Values are drawn from N(0, 2/fan_in). A nil rng uses the global source.
func HeNormal(fanIn int, shape tensor.Shape, rng *rand.Rand) *tensor.RawTensor {
	std := math.Sqrt(2.0 / float64(fanIn))

	t, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		panic(err)
	}

	data := t.AsFloat32()
	for i := range data {
		//nolint:gosec // Using math/rand for weight initialization (not security-critical)
		sample := rand.NormFloat64()
		if rng != nil {
			sample = rng.NormFloat64()
		}
		data[i] = float32(sample * std)
	}
	return t
}

// Zeros creates a float32 tensor filled with zeros.
//
// This is commonly used for bias initialization.
func Zeros(shape tensor.Shape) *tensor.RawTensor {
	t, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		panic(err)
	}
	return t
}
