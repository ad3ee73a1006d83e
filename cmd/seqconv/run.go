package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"time"

	"github.com/born-ml/seqconv/backend/cpu"
	"github.com/born-ml/seqconv/graph"
	"github.com/born-ml/seqconv/nn"
	"github.com/born-ml/seqconv/tensor"
)

type runConfig struct {
	batch, channels, length int
	filters, kernel         int
	stride, dilation        int
	groups                  int
	layers                  int
	padding                 string
	format                  string
	activation              string
	noBias                  bool
	fast                    string
	deferred                bool
	workers                 int
	seed                    int64
}

func runConv(args []string, out io.Writer) error {
	var cfg runConfig
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.IntVar(&cfg.batch, "batch", 2, "batch size")
	fs.IntVar(&cfg.channels, "channels", 4, "input channels")
	fs.IntVar(&cfg.length, "length", 32, "sequence length")
	fs.IntVar(&cfg.filters, "filters", 8, "output channels")
	fs.IntVar(&cfg.kernel, "kernel", 3, "kernel size")
	fs.IntVar(&cfg.stride, "stride", 1, "stride")
	fs.IntVar(&cfg.dilation, "dilation", 1, "dilation")
	fs.IntVar(&cfg.groups, "groups", 1, "groups")
	fs.IntVar(&cfg.layers, "layers", 1, "number of stacked Conv1D layers; layers after the first map filters to filters")
	fs.StringVar(&cfg.padding, "padding", "same", "padding descriptor (see normalize)")
	fs.StringVar(&cfg.format, "format", "NCT", "data format: NCT or NTC")
	fs.StringVar(&cfg.activation, "activation", "", "activation tag (see activations)")
	fs.BoolVar(&cfg.noBias, "no-bias", false, "disable the bias")
	fs.StringVar(&cfg.fast, "fast", "auto", "fast path: auto, on or off")
	fs.BoolVar(&cfg.deferred, "graph", false, "record a graph and run it instead of computing immediately")
	fs.IntVar(&cfg.workers, "workers", runtime.NumCPU(), "CPU workers")
	fs.Int64Var(&cfg.seed, "seed", 1, "random seed for weights and input")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return execute(cfg, out)
}

func execute(cfg runConfig, out io.Writer) error {
	format, err := nn.ParseDataFormat(cfg.format)
	if err != nil {
		return err
	}
	pad, err := nn.ParsePadding(cfg.padding)
	if err != nil {
		return err
	}

	par := cpu.DefaultParallelConfig()
	par.NumWorkers = cfg.workers
	par.Enabled = cfg.workers > 1
	backend := cpu.New(cpu.WithParallel(par))

	rng := rand.New(rand.NewSource(cfg.seed))
	layerCfg := nn.Conv1DConfig{
		InChannels:  cfg.channels,
		OutChannels: cfg.filters,
		KernelSize:  cfg.kernel,
		Stride:      cfg.stride,
		Dilation:    cfg.dilation,
		Groups:      cfg.groups,
		Padding:     pad,
		Activation:  cfg.activation,
		DataFormat:  format,
		NoBias:      cfg.noBias,
		Rand:        rng,
	}
	switch cfg.fast {
	case "auto":
	case "on", "off":
		on := cfg.fast == "on"
		layerCfg.FastPath = &on
	default:
		return fmt.Errorf("-fast must be auto, on or off, got %q", cfg.fast)
	}

	if cfg.layers < 1 {
		return fmt.Errorf("-layers must be positive, got %d", cfg.layers)
	}
	layers := make([]*nn.Conv1D, cfg.layers)
	model := nn.NewSequential()
	for i := range layers {
		if i > 0 {
			layerCfg.InChannels = cfg.filters
		}
		if layers[i], err = nn.NewConv1D(layerCfg, backend); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
		model.Add(layers[i])
	}
	layer := layers[0]

	shape := tensor.Shape{cfg.batch, cfg.channels, cfg.length}
	if format == nn.NTC {
		shape = tensor.Shape{cfg.batch, cfg.length, cfg.channels}
	}
	plan, err := nn.PlanConv1D(shape, layer.Weight().Tensor().Shape(), layer.Options())
	if err != nil {
		return err
	}
	input, err := randomInput(rng, shape)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "backend:    %s (accelerated=%v, workers=%d)\n", backend.Name(), backend.Accelerated(), cfg.workers)
	fmt.Fprintf(out, "layer:      %s x%d (%d parameters)\n", layer, len(layers), len(model.Parameters()))
	fmt.Fprintf(out, "input:      %v %s\n", input.Shape(), format)
	fmt.Fprintf(out, "padding:    %v (%s)\n", plan.Padding, plan.Attrs.Algorithm)
	fmt.Fprintf(out, "primitive:  %s %s strides=%v dilations=%v paddings=%v groups=%d\n",
		plan.Attrs.Variant, plan.Attrs.Layout, plan.Attrs.Strides, plan.Attrs.Dilations, plan.Attrs.Paddings, plan.Attrs.Groups)

	start := time.Now()
	var result *tensor.RawTensor
	if cfg.deferred {
		result, err = runDeferred(backend, layers, input)
	} else {
		var v tensor.Value
		v, err = model.Forward(input)
		if err == nil {
			result = v.(*tensor.RawTensor)
		}
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	mode := "immediate"
	if cfg.deferred {
		mode = "graph"
	}
	fmt.Fprintf(out, "output:     %v (%s, %v)\n", result.Shape(), mode, elapsed.Round(time.Microsecond))
	fmt.Fprintf(out, "values:     %v\n", head(result.Float64s(), 8))
	return nil
}

// runDeferred records the layers' convolutions with a dynamic batch and runs
// the graph once on the backend.
func runDeferred(backend *cpu.Backend, layers []*nn.Conv1D, input *tensor.RawTensor) (*tensor.RawTensor, error) {
	g := graph.New()
	shape := input.Shape().Clone()
	shape[0] = tensor.Dynamic
	x, err := g.Placeholder("input", shape, input.DType())
	if err != nil {
		return nil, err
	}

	var y tensor.Value = x
	for i, layer := range layers {
		opts := layer.Options()
		if b := layer.Bias(); b != nil {
			opts.Bias = g.Constant(b.Tensor())
		}
		if y, err = nn.Convolve1D(g, y, g.Constant(layer.Weight().Tensor()), opts); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return g.Run(backend, y.(*graph.Node), graph.Feeds{"input": input})
}

func randomInput(rng *rand.Rand, shape tensor.Shape) (*tensor.RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("input shape %v: %w", shape, err)
	}
	data := make([]float32, shape.NumElements())
	for i := range data {
		data[i] = float32(rng.NormFloat64())
	}
	return tensor.FromSlice(data, shape)
}

func head(values []float64, n int) []float64 {
	if len(values) > n {
		return values[:n]
	}
	return values
}
