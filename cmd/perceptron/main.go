// Command perceptron trains, queries and inspects single-neuron perceptron models.
package main

import (
	"fmt"
	"os"

	"github.com/gonuts/commander"
)

func root() *commander.Command {
	return &commander.Command{
		UsageLine: "perceptron",
		Short:     "train a perceptron on truth tables and plot its decision regions",
		Subcommands: []*commander.Command{
			trainCmd(),
			predictCmd(),
			inspectCmd(),
		},
	}
}

func main() {
	if err := root().Dispatch(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "**err**: %v\n", err)
		os.Exit(1)
	}
}
