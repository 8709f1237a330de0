package main

import (
	"os"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/app"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/config"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/logging"
)

func trainCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runTrain,
		UsageLine: "train [options]",
		Short:     "train a perceptron, save the model and plot its decision regions",
		Long: `
train fits a perceptron to a truth table, a CSV file or the runs of a YAML
config file. Flags given on the command line override every run of the config.

ex:
 $ perceptron train -data and -eta 0.3 -epochs 10
 $ perceptron train -csv points.csv -eta 0.1 -epochs 50 -seed 7 -loss-plot points_loss.png
 $ perceptron train -config runs.yaml -epochs 20
`,
		Flag: *flag.NewFlagSet("train", flag.ExitOnError),
	}
	cmd.Flag.String("config", "", "YAML file describing one or more runs")
	cmd.Flag.String("name", "", "run name, used for default model and plot names")
	cmd.Flag.String("data", "", "truth table: and, or, xor, nand")
	cmd.Flag.String("csv", "", "CSV input with a header row and a y column")
	cmd.Flag.Float64("eta", 0, "learning rate in (0, 1]")
	cmd.Flag.Int("epochs", 0, "number of passes over the data (required)")
	cmd.Flag.Int64("seed", 0, "seed for the weight initialization")
	cmd.Flag.String("loss", "", "epoch loss: absolute or squared")
	cmd.Flag.String("model-dir", "", "model output directory")
	cmd.Flag.String("model", "", "model file name; a .xz suffix compresses it")
	cmd.Flag.String("plot-dir", "", "plot output directory")
	cmd.Flag.String("plot", "", "decision regions plot file name")
	cmd.Flag.String("loss-plot", "", "optional loss curve plot file name")
	cmd.Flag.String("history-csv", "", "optional CSV file receiving one row per epoch")
	cmd.Flag.String("history-db", "", "optional SQLite database recording runs and epochs")
	cmd.Flag.String("log-dir", "", "log directory (default logs)")
	cmd.Flag.String("log-level", "", "log level (default info)")
	return cmd
}

func runTrain(cmd *commander.Command, args []string) error {
	set := map[string]*flag.Flag{}
	cmd.Flag.Visit(func(f *flag.Flag) { set[f.Name] = f })

	file := &config.File{}
	if f, ok := set["config"]; ok {
		var err error
		if file, err = config.Load(f.Value.String()); err != nil {
			return err
		}
	} else {
		file.Runs = []config.Run{{}}
	}
	if f, ok := set["log-dir"]; ok {
		file.LogDir = f.Value.String()
	}
	if f, ok := set["log-level"]; ok {
		file.LogLevel = f.Value.String()
	}
	for i := range file.Runs {
		if err := override(&file.Runs[i], set); err != nil {
			return err
		}
	}

	if _, err := file.Level(); err != nil {
		return err
	}
	opts := file.LogOptions()
	opts.Console = os.Stderr
	log, err := logging.New(opts)
	if err != nil {
		return err
	}
	defer log.Close()

	results, err := app.RunAll(file.Runs, log)
	if err != nil {
		return err
	}
	for _, res := range results {
		log.Module("main").WithFields(logrus.Fields{
			"run":   res.Name,
			"model": res.ModelPath,
			"plot":  res.PlotPath,
		}).Info("Run finished")
	}
	return nil
}

// override applies the flags set on the command line to r.
func override(r *config.Run, set map[string]*flag.Flag) error {
	get := func(name string) interface{} { return set[name].Value.Get() }
	strs := map[string]*string{
		"name":        &r.Name,
		"loss":        &r.Loss,
		"model-dir":   &r.ModelDir,
		"model":       &r.ModelFile,
		"plot-dir":    &r.PlotDir,
		"plot":        &r.PlotFile,
		"loss-plot":   &r.LossPlotFile,
		"history-csv": &r.HistoryCSV,
		"history-db":  &r.HistoryDB,
	}
	for name, dst := range strs {
		if _, ok := set[name]; ok {
			*dst = get(name).(string)
		}
	}

	// A source flag replaces the configured source.
	if _, ok := set["data"]; ok {
		r.Dataset, r.CSV, r.Data, r.Columns = get("data").(string), "", nil, nil
	}
	if _, ok := set["csv"]; ok {
		if _, both := set["data"]; both {
			return errors.Wrap(config.ErrInvalidConfig, "-data and -csv are mutually exclusive")
		}
		r.Dataset, r.CSV, r.Data, r.Columns = "", get("csv").(string), nil, nil
	}

	if _, ok := set["eta"]; ok {
		r.Eta = get("eta").(float64)
	}
	if _, ok := set["epochs"]; ok {
		r.Epochs = get("epochs").(int)
	}
	if _, ok := set["seed"]; ok {
		seed := get("seed").(int64)
		r.Seed = &seed
	}
	return nil
}
