// Package app is the training driver: dataset in, model and plots out.
package app

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/config"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/dataset"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/history"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/loss"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/perceptron"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/persist"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/viz"
)

// Logger hands out per-module log entries. *logging.Logger implements it.
type Logger interface {
	Module(name string) *logrus.Entry
}

// Result describes the outputs of one run.
type Result struct {
	Name         string
	Model        *perceptron.Perceptron
	Loss         []float64
	ModelPath    string
	PlotPath     string // empty when the table cannot be drawn in 2D
	LossPlotPath string
}

// Run trains one configured job and writes its model and plots.
// Any failure is logged with its stack trace before being returned.
func Run(cfg config.Run, log Logger) (res *Result, err error) {
	entry := log.Module("app")
	defer func() {
		if err != nil {
			entry.Errorf("%+v", err)
		}
	}()

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	entry = entry.WithField("run", cfg.Name)

	tbl, err := cfg.Table()
	if err != nil {
		return nil, errors.Wrap(err, "build dataset")
	}
	entry.Infof("Dataset:\n%s", tbl)

	X, y, err := dataset.Prepare(tbl, log.Module("dataset"))
	if err != nil {
		return nil, err
	}

	callbacks := []perceptron.Callback{perceptron.NewLogCallback(log.Module("perceptron"))}
	if cfg.HistoryCSV != "" {
		callbacks = append(callbacks, history.NewCSVRecorder(cfg.HistoryCSV, true))
	}
	if cfg.HistoryDB != "" {
		store, err := history.OpenStore(cfg.HistoryDB)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		callbacks = append(callbacks, store.Recorder(cfg.Name))
	}

	l, err := loss.ByName(cfg.Loss)
	if err != nil {
		return nil, err
	}
	opts := []perceptron.Option{perceptron.WithLoss(l), perceptron.WithCallbacks(callbacks...)}
	if cfg.Seed != nil {
		opts = append(opts, perceptron.WithSeed(*cfg.Seed))
	}

	model, err := perceptron.New(cfg.Eta, cfg.Epochs, opts...)
	if err != nil {
		return nil, err
	}
	if err = model.Fit(X, y); err != nil {
		return nil, errors.Wrap(err, "fit")
	}

	res = &Result{Name: cfg.Name, Model: model, Loss: model.TotalLoss()}
	entry.WithField("total_loss", res.Loss).Info("Training complete")

	if res.ModelPath, err = persist.Save(cfg.ModelDir, cfg.ModelFile, model); err != nil {
		return nil, err
	}
	entry.Infof("Saved the trained model %s", res.ModelPath)

	if len(dataset.FeatureColumns(tbl)) == 2 {
		if res.PlotPath, err = viz.DecisionRegions(tbl, cfg.PlotDir, cfg.PlotFile, model); err != nil {
			return nil, err
		}
		entry.Infof("Saving the plots at %s", res.PlotPath)
	} else {
		entry.Warn("Skipping decision regions: the table does not have exactly 2 features")
	}

	if cfg.LossPlotFile != "" {
		if res.LossPlotPath, err = viz.LossCurve(res.Loss, cfg.PlotDir, cfg.LossPlotFile); err != nil {
			return nil, err
		}
		entry.Infof("Saving the loss curve at %s", res.LossPlotPath)
	}
	return res, nil
}

// RunAll runs every job in order and stops at the first failure.
func RunAll(runs []config.Run, log Logger) ([]*Result, error) {
	results := make([]*Result, 0, len(runs))
	for _, cfg := range runs {
		res, err := Run(cfg, log)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
