// Package persist stores trained perceptrons in a fixed binary layout.
//
// All values are little endian:
//
//	uint32   magic "PCPT"
//	uint32   format version (1)
//	float64  learning rate
//	uint32   epochs per fit
//	uint8    state (0 uninitialized, 1 initialized, 2 trained)
//	uint8    loss (0 absolute, 1 squared)
//	uint32   feature dimension d (0 when uninitialized)
//	float64  d+1 weights, bias last (absent when d is 0)
//	uint32   history length n
//	float64  n per-epoch losses
package persist

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/perceptron"
)

// Format constants
const (
	Magic   = 0x54504350 // "PCPT" in little-endian
	Version = 1

	// maxCount bounds decoded lengths so a corrupt header cannot force a huge allocation.
	maxCount = 1 << 24
)

// ErrBadFormat is returned when decoding data that is not a valid model file.
var ErrBadFormat = errors.New("bad model format")

var lossCodes = map[string]uint8{
	"absolute": 0,
	"squared":  1,
}

func lossName(code uint8) (string, bool) {
	for name, c := range lossCodes {
		if c == code {
			return name, true
		}
	}
	return "", false
}

// binWriter writes little-endian values and keeps the first error.
type binWriter struct {
	w   io.Writer
	err error
}

func (bw *binWriter) write(v interface{}) {
	if bw.err != nil {
		return
	}
	bw.err = binary.Write(bw.w, binary.LittleEndian, v)
}

// binReader reads little-endian values and keeps the first error.
type binReader struct {
	r   io.Reader
	err error
}

func (br *binReader) read(v interface{}) {
	if br.err != nil {
		return
	}
	br.err = binary.Read(br.r, binary.LittleEndian, v)
}

// Encode writes p in the model format.
func Encode(w io.Writer, p *perceptron.Perceptron) error {
	s := p.Snapshot()
	code, ok := lossCodes[s.Loss]
	if !ok {
		return errors.Errorf("loss %q has no format code", s.Loss)
	}

	dim := 0
	if len(s.Weights) > 0 {
		dim = len(s.Weights) - 1
	}

	bw := &binWriter{w: w}
	bw.write(uint32(Magic))
	bw.write(uint32(Version))
	bw.write(s.Eta)
	bw.write(uint32(s.Epochs))
	bw.write(uint8(s.State))
	bw.write(code)
	bw.write(uint32(dim))
	if dim > 0 {
		bw.write(s.Weights)
	}
	bw.write(uint32(len(s.History)))
	bw.write(s.History)
	return errors.Wrap(bw.err, "failed to encode model")
}

// Decode reads a model written by Encode.
func Decode(r io.Reader) (*perceptron.Perceptron, error) {
	br := &binReader{r: r}

	var magic, version uint32
	br.read(&magic)
	br.read(&version)
	if br.err != nil {
		return nil, errors.Wrap(ErrBadFormat, br.err.Error())
	}
	if magic != Magic {
		return nil, errors.Wrapf(ErrBadFormat, "magic %#x", magic)
	}
	if version != Version {
		return nil, errors.Wrapf(ErrBadFormat, "unsupported version %d", version)
	}

	var (
		s      perceptron.Snapshot
		epochs uint32
		state  uint8
		code   uint8
		dim    uint32
		n      uint32
	)
	br.read(&s.Eta)
	br.read(&epochs)
	br.read(&state)
	br.read(&code)
	br.read(&dim)
	if br.err != nil {
		return nil, errors.Wrap(ErrBadFormat, br.err.Error())
	}
	if dim > maxCount {
		return nil, errors.Wrapf(ErrBadFormat, "dimension %d too large", dim)
	}
	if state > uint8(perceptron.Trained) {
		return nil, errors.Wrapf(ErrBadFormat, "unknown state %d", state)
	}
	if (dim == 0) != (state == uint8(perceptron.Uninitialized)) {
		return nil, errors.Wrapf(ErrBadFormat, "dimension %d inconsistent with state %d", dim, state)
	}
	name, ok := lossName(code)
	if !ok {
		return nil, errors.Wrapf(ErrBadFormat, "unknown loss code %d", code)
	}

	if dim > 0 {
		s.Weights = make([]float64, dim+1)
		br.read(s.Weights)
	}
	br.read(&n)
	if br.err == nil && n > maxCount {
		return nil, errors.Wrapf(ErrBadFormat, "history length %d too large", n)
	}
	if br.err == nil {
		s.History = make([]float64, n)
		br.read(s.History)
	}
	if br.err != nil {
		return nil, errors.Wrap(ErrBadFormat, br.err.Error())
	}

	for _, w := range s.Weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, errors.Wrapf(ErrBadFormat, "non-finite weight %v", w)
		}
	}

	s.Epochs = int(epochs)
	s.State = perceptron.State(state)
	s.Loss = name
	p, err := perceptron.FromSnapshot(s)
	if err != nil {
		return nil, errors.Wrap(ErrBadFormat, err.Error())
	}
	return p, nil
}
