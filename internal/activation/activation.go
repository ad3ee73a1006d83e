// Package activation is the registry of elementwise activation functions that
// convolution layers refer to by tag (for example "relu" or "tanh").
package activation

import (
	"math"
	"sort"
	"strings"
	"sync"
)

// Func is an elementwise activation transform.
type Func func(x float64) float64

var (
	mu       sync.RWMutex
	registry = map[string]Func{}
)

func init() {
	Register("identity", func(x float64) float64 { return x })
	Register("relu", func(x float64) float64 { return math.Max(0, x) })
	Register("relu6", func(x float64) float64 { return math.Min(math.Max(0, x), 6) })
	Register("leaky_relu", func(x float64) float64 {
		if x < 0 {
			return 0.02 * x
		}
		return x
	})
	Register("sigmoid", sigmoid)
	Register("tanh", math.Tanh)
	Register("softsign", func(x float64) float64 { return x / (1 + math.Abs(x)) })
	Register("softplus", func(x float64) float64 {
		// log(1 + e^x) without overflow for large x.
		if x > 20 {
			return x
		}
		return math.Log1p(math.Exp(x))
	})
	Register("elu", func(x float64) float64 {
		if x < 0 {
			return math.Expm1(x)
		}
		return x
	})
	// GELU, tanh approximation.
	Register("gelu", func(x float64) float64 {
		return 0.5 * x * (1 + math.Tanh(math.Sqrt(2/math.Pi)*(x+0.044715*x*x*x)))
	})
	Register("swish", func(x float64) float64 { return x * sigmoid(x) })
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Register adds or replaces the activation stored under name.
// Names are case-insensitive.
func Register(name string, fn Func) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(name)] = fn
}

// Lookup returns the activation registered under name.
func Lookup(name string) (Func, bool) {
	mu.RLock()
	defer mu.RUnlock()
	fn, ok := registry[strings.ToLower(name)]
	return fn, ok
}

// Names lists the registered activation tags in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
