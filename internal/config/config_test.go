package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

const gates = `
log_dir: out/logs
log_level: debug
runs:
  - dataset: AND
    eta: 0.3
    epochs: 10
    seed: 7
  - dataset: xor
    eta: 0.3
    epochs: 100
    model_file: xor.model.xz
    loss: squared
  - name: inline
    columns: [x1, x2, y]
    data:
      x1: [0, 0, 1, 1]
      x2: [0, 1, 0, 1]
      y:  [0, 1, 1, 1]
    eta: 1
    epochs: 5
`

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(gates))
	assert.NilError(t, err)
	assert.Assert(t, is.Len(f.Runs, 3))

	lvl, err := f.Level()
	assert.NilError(t, err)
	assert.Equal(t, lvl, logrus.DebugLevel)
	opts := f.LogOptions()
	assert.Equal(t, opts.Dir, "out/logs")
	assert.Equal(t, opts.Level, logrus.DebugLevel)

	and := f.Runs[0]
	assert.Equal(t, and.Name, "and")
	assert.Equal(t, and.ModelDir, "models")
	assert.Equal(t, and.ModelFile, "and.model")
	assert.Equal(t, and.PlotDir, "plots")
	assert.Equal(t, and.PlotFile, "and.png")
	assert.Equal(t, *and.Seed, int64(7))

	xor := f.Runs[1]
	assert.Equal(t, xor.ModelFile, "xor.model.xz")
	assert.Equal(t, xor.Epochs, 100)
	assert.Assert(t, xor.Seed == nil)

	tbl, err := f.Runs[2].Table()
	assert.NilError(t, err)
	assert.DeepEqual(t, tbl.Columns(), []string{"x1", "x2", "y"})
	assert.DeepEqual(t, tbl.Column("y"), []float64{0, 1, 1, 1})
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		run    Run
		errMsg string
	}{
		{"no source", Run{Eta: 0.3, Epochs: 10}, "exactly one of"},
		{"two sources", Run{Dataset: "and", CSV: "a.csv", Eta: 0.3, Epochs: 10}, "exactly one of"},
		{"unknown table", Run{Dataset: "xnor", Eta: 0.3, Epochs: 10}, "unknown truth table"},
		{"missing epochs", Run{Dataset: "and", Eta: 0.3}, "epochs must be set"},
		{"missing eta", Run{Dataset: "and", Epochs: 10}, "eta 0 outside"},
		{"eta too large", Run{Dataset: "and", Eta: 1.2, Epochs: 10}, "outside (0, 1]"},
		{"bad loss", Run{Dataset: "and", Eta: 0.3, Epochs: 10, Loss: "hinge"}, "unknown loss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run.Validate()
			assert.ErrorContains(t, err, tt.errMsg)
			assert.Assert(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		errMsg string
	}{
		{"no runs", "log_dir: logs\n", "no runs"},
		{"unknown key", "runs:\n  - dataset: and\n    eta: 0.3\n    epochs: 1\n    epoch: 3\n", "epoch"},
		{"bad level", "log_level: loud\nruns:\n  - dataset: and\n    eta: 0.3\n    epochs: 1\n", "loud"},
		{"bad run", "runs:\n  - dataset: and\n    eta: 0.3\n", "run 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			assert.ErrorContains(t, err, tt.errMsg)
			assert.Assert(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestLoadAndCSVName(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "gates.csv")
	assert.NilError(t, os.WriteFile(csvPath, []byte("x1,x2,y\n0,0,1\n1,1,0\n"), 0644))

	cfgPath := filepath.Join(dir, "run.yaml")
	doc := "runs:\n  - csv: " + csvPath + "\n    eta: 0.5\n    epochs: 3\n"
	assert.NilError(t, os.WriteFile(cfgPath, []byte(doc), 0644))

	f, err := Load(cfgPath)
	assert.NilError(t, err)
	run := f.Runs[0]
	assert.Equal(t, run.Name, "gates")
	assert.Equal(t, run.ModelFile, "gates.model")

	tbl, err := run.Table()
	assert.NilError(t, err)
	assert.Equal(t, tbl.Len(), 2)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to open config")
}
