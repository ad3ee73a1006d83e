// Package main provides the seqconv CLI.
//
// Usage:
//
//	seqconv normalize -padding '[[0,0],[0,0],[1,2]]' -rank 1
//	seqconv run -channels 4 -filters 8 -kernel 3 -padding same -graph
//	seqconv activations
//	seqconv version
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/born-ml/seqconv/nn"
)

const version = "v0.1.0"

func main() {
	log.SetFlags(0)
	log.SetPrefix("seqconv: ")

	if err := dispatch(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func dispatch(args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return nil
	}

	switch args[0] {
	case "normalize":
		return runNormalize(args[1:], out)
	case "run":
		return runConv(args[1:], out)
	case "activations":
		fmt.Fprintln(out, strings.Join(nn.Activations(), "\n"))
		return nil
	case "version":
		fmt.Fprintf(out, "seqconv %s\n", version)
		return nil
	case "help", "-h", "--help":
		usage(out)
		return nil
	}
	return fmt.Errorf("unknown command %q (run 'seqconv help')", args[0])
}

func usage(out io.Writer) {
	fmt.Fprintln(out, "seqconv - 1-D convolution over a 2-D primitive")
	fmt.Fprintf(out, "Version: %s\n\n", version)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  normalize    Normalize a padding descriptor")
	fmt.Fprintln(out, "  run          Run a Conv1D layer on random data")
	fmt.Fprintln(out, "  activations  List activation tags")
	fmt.Fprintln(out, "  version      Show version")
}
