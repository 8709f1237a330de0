// Package history records per-epoch training progress outside the process.
package history

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/perceptron"
)

// CSVRecorder logs training progress to a CSV file, one row per epoch.
type CSVRecorder struct {
	perceptron.BaseCallback
	Filename string
	Append   bool

	file   *os.File
	writer *csv.Writer
	start  time.Time
	err    error
}

// NewCSVRecorder creates a new CSVRecorder.
func NewCSVRecorder(filename string, append bool) *CSVRecorder {
	return &CSVRecorder{
		Filename: filename,
		Append:   append,
	}
}

// header names the epoch, loss, one column per feature weight, the bias and elapsed time.
func header(dim int) []string {
	cols := []string{"epoch", "loss"}
	for i := 1; i <= dim; i++ {
		cols = append(cols, fmt.Sprintf("w%d", i))
	}
	return append(cols, "bias", "time_seconds")
}

func (c *CSVRecorder) OnTrainBegin(p *perceptron.Perceptron) {
	mode := os.O_CREATE | os.O_WRONLY
	if c.Append {
		mode |= os.O_APPEND
	} else {
		mode |= os.O_TRUNC
	}

	file, err := os.OpenFile(c.Filename, mode, 0644)
	if err != nil {
		c.fail(errors.Wrapf(err, "CSVRecorder: failed to open file %s", c.Filename))
		return
	}
	c.file = file
	c.writer = csv.NewWriter(file)
	c.start = time.Now()

	// Write header if not appending or if file is empty
	info, err := file.Stat()
	if err == nil && (info.Size() == 0 || !c.Append) {
		c.writer.Write(header(p.Dim()))
		c.writer.Flush()
		c.fail(c.writer.Error())
	}
}

func (c *CSVRecorder) OnEpochEnd(epoch int, loss float64, p *perceptron.Perceptron) {
	if c.writer == nil {
		return
	}

	elapsed := time.Since(c.start).Seconds()
	record := []string{
		strconv.Itoa(epoch),
		strconv.FormatFloat(loss, 'g', -1, 64),
	}
	for _, w := range p.Params() {
		record = append(record, strconv.FormatFloat(w, 'g', -1, 64))
	}
	record = append(record, fmt.Sprintf("%.4f", elapsed))

	if err := c.writer.Write(record); err != nil {
		c.fail(errors.Wrap(err, "CSVRecorder: failed to write record"))
	}
	c.writer.Flush()
}

func (c *CSVRecorder) OnTrainEnd(p *perceptron.Perceptron) {
	if c.file != nil {
		c.writer.Flush()
		c.fail(c.writer.Error())
		c.fail(c.file.Close())
		c.file = nil
		c.writer = nil
	}
}

// Err returns the first error met while recording.
func (c *CSVRecorder) Err() error {
	return c.err
}

func (c *CSVRecorder) fail(err error) {
	if c.err == nil && err != nil {
		c.err = err
	}
}
