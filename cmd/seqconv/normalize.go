package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/born-ml/seqconv/nn"
)

func runNormalize(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	fs.SetOutput(out)
	text := fs.String("padding", "0", `padding: same|valid, an integer, [1,2] or [[0,0],[0,0],[1,2]]`)
	rank := fs.Int("rank", 1, "number of spatial dimensions")
	format := fs.String("format", "NCT", "data format, decides where the channel pair sits in full-tensor notation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	df, err := nn.ParseDataFormat(*format)
	if err != nil {
		return err
	}
	d, err := nn.ParsePadding(*text)
	if err != nil {
		return err
	}
	pads, alg, err := nn.NormalizePadding(d, df == nn.NTC, *rank)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "descriptor: %s\n", d)
	fmt.Fprintf(out, "algorithm:  %s\n", alg)
	fmt.Fprintf(out, "padding:    %v\n", pads)
	return nil
}
