package perceptron

import (
	"github.com/sirupsen/logrus"
)

// Callback defines the interface for training callbacks.
type Callback interface {
	OnTrainBegin(p *Perceptron)
	OnTrainEnd(p *Perceptron)
	OnEpochBegin(epoch int, p *Perceptron)
	OnEpochEnd(epoch int, loss float64, p *Perceptron)
	// OnSampleEnd runs after the weight update for sample i; e is target - prediction.
	OnSampleEnd(i int, e float64, p *Perceptron)
}

// ErrReporter is implemented by callbacks that can fail, such as recorders
// writing to disk. Fit returns the first reported error.
type ErrReporter interface {
	Err() error
}

func callbackErr(cbs []Callback) error {
	for _, cb := range cbs {
		if r, ok := cb.(ErrReporter); ok {
			if err := r.Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

// BaseCallback provides default empty implementations for Callback.
type BaseCallback struct{}

func (c BaseCallback) OnTrainBegin(p *Perceptron)                        {}
func (c BaseCallback) OnTrainEnd(p *Perceptron)                          {}
func (c BaseCallback) OnEpochBegin(epoch int, p *Perceptron)             {}
func (c BaseCallback) OnEpochEnd(epoch int, loss float64, p *Perceptron) {}
func (c BaseCallback) OnSampleEnd(i int, e float64, p *Perceptron)       {}

// LogCallback logs training progress through a logrus logger.
// Epoch losses are logged every Interval epochs at info level;
// per-sample errors at debug level.
type LogCallback struct {
	BaseCallback
	Log      logrus.FieldLogger
	Interval int
}

// NewLogCallback logs every epoch.
func NewLogCallback(log logrus.FieldLogger) *LogCallback {
	return &LogCallback{Log: log, Interval: 1}
}

func (c *LogCallback) OnTrainBegin(p *Perceptron) {
	c.Log.WithFields(logrus.Fields{
		"eta":     p.Eta(),
		"epochs":  p.Epochs(),
		"weights": p.Params(),
	}).Info("Training started")
}

func (c *LogCallback) OnEpochEnd(epoch int, loss float64, p *Perceptron) {
	if c.Interval > 0 && epoch%c.Interval == 0 {
		c.Log.WithFields(logrus.Fields{
			"epoch":   epoch,
			"loss":    loss,
			"weights": p.Params(),
		}).Info("Epoch finished")
	}
}

func (c *LogCallback) OnSampleEnd(i int, e float64, p *Perceptron) {
	c.Log.WithFields(logrus.Fields{"sample": i, "error": e}).Debug("Sample update")
}

func (c *LogCallback) OnTrainEnd(p *Perceptron) {
	c.Log.WithFields(logrus.Fields{
		"weights":    p.Params(),
		"total_loss": p.TotalLoss(),
	}).Info("Training finished")
}
