// Package config describes training runs and loads them from YAML.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/dataset"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/logging"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/loss"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/persist"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/viz"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Run is one training job. Exactly one of Dataset, CSV or Data selects the input.
// Epochs and Eta have no defaults.
type Run struct {
	Name string `yaml:"name"`

	Dataset string               `yaml:"dataset"` // truth table: and, or, xor, nand
	CSV     string               `yaml:"csv"`     // CSV file with a header row
	Data    map[string][]float64 `yaml:"data"`    // inline columns
	Columns []string             `yaml:"columns"` // order of Data columns; sorted by name if empty

	Eta    float64 `yaml:"eta"`
	Epochs int     `yaml:"epochs"`
	Seed   *int64  `yaml:"seed"` // nil seeds from the clock
	Loss   string  `yaml:"loss"` // absolute (default) or squared

	ModelDir     string `yaml:"model_dir"`
	ModelFile    string `yaml:"model_file"`
	PlotDir      string `yaml:"plot_dir"`
	PlotFile     string `yaml:"plot_file"`
	LossPlotFile string `yaml:"loss_plot_file"` // optional
	HistoryCSV   string `yaml:"history_csv"`    // optional
	HistoryDB    string `yaml:"history_db"`     // optional
}

// File is the YAML document layout: shared logging settings and a list of runs.
type File struct {
	LogDir   string `yaml:"log_dir"`
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
	Runs     []Run  `yaml:"runs"`
}

// Load reads a YAML run file.
func Load(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open config")
	}
	defer file.Close()

	f, err := Parse(file)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return f, nil
}

// Parse decodes a YAML run file, rejecting unknown keys, and validates every run.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if len(f.Runs) == 0 {
		return nil, errors.Wrap(ErrInvalidConfig, "no runs")
	}
	for i := range f.Runs {
		if err := f.Runs[i].Validate(); err != nil {
			return nil, errors.Wrapf(err, "run %d", i)
		}
	}
	if _, err := f.Level(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Level returns the configured log level, info if unset.
func (f *File) Level() (logrus.Level, error) {
	if f.LogLevel == "" {
		return logrus.InfoLevel, nil
	}
	lvl, err := logrus.ParseLevel(f.LogLevel)
	if err != nil {
		return 0, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	return lvl, nil
}

// LogOptions returns the logger settings with conventional defaults.
func (f *File) LogOptions() logging.Options {
	lvl, _ := f.Level()
	return logging.Options{Dir: f.LogDir, File: f.LogFile, Level: lvl}
}

// Validate checks required fields and fills in derived defaults.
func (r *Run) Validate() error {
	sources := 0
	for _, set := range []bool{r.Dataset != "", r.CSV != "", len(r.Data) > 0} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return errors.Wrap(ErrInvalidConfig, "exactly one of dataset, csv or data is required")
	}
	if r.Dataset != "" {
		if _, err := dataset.TruthTable(r.Dataset); err != nil {
			return errors.Wrap(ErrInvalidConfig, err.Error())
		}
	}
	if !(r.Eta > 0 && r.Eta <= 1) {
		return errors.Wrapf(ErrInvalidConfig, "eta %v outside (0, 1]", r.Eta)
	}
	if r.Epochs <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "epochs must be set to a positive value, got %d", r.Epochs)
	}
	if _, err := loss.ByName(r.Loss); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	if r.Name == "" {
		switch {
		case r.Dataset != "":
			r.Name = strings.ToLower(r.Dataset)
		case r.CSV != "":
			r.Name = strings.TrimSuffix(filepath.Base(r.CSV), filepath.Ext(r.CSV))
		default:
			r.Name = "custom"
		}
	}
	if r.ModelDir == "" {
		r.ModelDir = persist.DefaultDir
	}
	if r.ModelFile == "" {
		r.ModelFile = r.Name + ".model"
	}
	if r.PlotDir == "" {
		r.PlotDir = viz.DefaultDir
	}
	if r.PlotFile == "" {
		r.PlotFile = r.Name + ".png"
	}
	return nil
}

// Table builds the input table selected by the run.
func (r *Run) Table() (*dataset.Table, error) {
	switch {
	case r.Dataset != "":
		return dataset.TruthTable(r.Dataset)
	case r.CSV != "":
		return dataset.LoadCSVFile(r.CSV)
	case len(r.Columns) > 0:
		return dataset.NewTable(r.Columns, r.Data)
	default:
		return dataset.FromMap(r.Data)
	}
}
