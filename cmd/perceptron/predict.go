package main

import (
	"fmt"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/app"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/dataset"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/persist"
)

var (
	predictModel string
	predictRows  string
	predictCSV   string
)

func predictCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runPredict,
		UsageLine: "predict -model <file> (-x <rows> | -csv <file>)",
		Short:     "classify inputs with a saved model",
		Long: `
predict loads a saved model and prints one class per input row.

ex:
 $ perceptron predict -model models/and.model -x "0,0;0,1;1,0;1,1"
`,
		Flag: *flag.NewFlagSet("predict", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&predictModel, "model", "", "saved model file")
	cmd.Flag.StringVar(&predictRows, "x", "", "rows to classify, e.g. \"0,1;1,1\"")
	cmd.Flag.StringVar(&predictCSV, "csv", "", "CSV file of rows to classify; a y column is ignored")
	return cmd
}

func runPredict(cmd *commander.Command, args []string) error {
	if predictModel == "" {
		return errors.New("predict: -model is required")
	}
	if (predictRows == "") == (predictCSV == "") {
		return errors.New("predict: exactly one of -x or -csv is required")
	}

	model, err := persist.Load(predictModel)
	if err != nil {
		return err
	}

	var X *mat.Dense
	if predictRows != "" {
		X, err = app.ParseRows(predictRows)
	} else {
		var tbl *dataset.Table
		if tbl, err = dataset.LoadCSVFile(predictCSV); err == nil {
			X, err = dataset.Features(tbl)
		}
	}
	if err != nil {
		return err
	}

	preds, err := model.Predict(X)
	if err != nil {
		return err
	}
	for i, p := range preds {
		fmt.Printf("%v -> %g\n", mat.Row(nil, i, X), p)
	}
	return nil
}
