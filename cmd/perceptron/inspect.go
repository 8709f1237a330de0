package main

import (
	"fmt"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/app"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/persist"
)

func inspectCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runInspect,
		UsageLine: "inspect <model file>...",
		Short:     "print the parameters and loss history of saved models",
		Flag:      *flag.NewFlagSet("inspect", flag.ExitOnError),
	}
	return cmd
}

func runInspect(cmd *commander.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("inspect: no model file given")
	}
	for _, path := range args {
		model, err := persist.Load(path)
		if err != nil {
			return err
		}
		fmt.Printf("== %s\n%s", path, app.Describe(model))
	}
	return nil
}
