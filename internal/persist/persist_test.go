package persist

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gotest.tools/v3/assert"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/loss"
	"github.com/FlavioCFOliveira/GoPerceptron/internal/perceptron"
)

var inputs = mat.NewDense(4, 2, []float64{0, 0, 0, 1, 1, 0, 1, 1})

func trained(t *testing.T, labels []float64, opts ...perceptron.Option) *perceptron.Perceptron {
	t.Helper()
	p, err := perceptron.New(0.3, 10, append([]perceptron.Option{perceptron.WithSeed(4)}, opts...)...)
	assert.NilError(t, err)
	assert.NilError(t, p.Fit(inputs, labels))
	return p
}

// grid returns points around the unit square, not just training rows.
func grid() *mat.Dense {
	var data []float64
	for x := -1.0; x <= 2; x += 0.25 {
		for y := -1.0; y <= 2; y += 0.25 {
			data = append(data, x, y)
		}
	}
	return mat.NewDense(len(data)/2, 2, data)
}

func assertSameModel(t *testing.T, got, want *perceptron.Perceptron) {
	t.Helper()
	assert.DeepEqual(t, got.Params(), want.Params())
	assert.DeepEqual(t, got.TotalLoss(), want.TotalLoss())
	assert.Equal(t, got.Eta(), want.Eta())
	assert.Equal(t, got.Epochs(), want.Epochs())
	assert.Equal(t, got.State(), want.State())
	assert.Equal(t, got.Loss().Name(), want.Loss().Name())

	g := grid()
	wantPred, err := want.Predict(g)
	assert.NilError(t, err)
	gotPred, err := got.Predict(g)
	assert.NilError(t, err)
	assert.DeepEqual(t, gotPred, wantPred)
}

func TestEncodeDecode(t *testing.T) {
	p := trained(t, []float64{0, 1, 1, 1}, perceptron.WithLoss(loss.Squared{}))

	var buf bytes.Buffer
	assert.NilError(t, Encode(&buf, p))

	// Header + eta + epochs + state + loss + dim + 3 weights + count + 10 losses
	assert.Equal(t, buf.Len(), 4+4+8+4+1+1+4+3*8+4+10*8)

	q, err := Decode(&buf)
	assert.NilError(t, err)
	assertSameModel(t, q, p)
}

func TestEncodeUninitialized(t *testing.T) {
	p, err := perceptron.New(0.5, 3)
	assert.NilError(t, err)

	var buf bytes.Buffer
	assert.NilError(t, Encode(&buf, p))

	q, err := Decode(&buf)
	assert.NilError(t, err)
	assert.Equal(t, q.State(), perceptron.Uninitialized)
	assert.Equal(t, q.Eta(), 0.5)
	assert.Equal(t, len(q.TotalLoss()), 0)
}

func TestDecodeBadFormat(t *testing.T) {
	p := trained(t, []float64{0, 0, 0, 1})
	var good bytes.Buffer
	assert.NilError(t, Encode(&good, p))
	raw := good.Bytes()

	corrupt := func(offset int, v uint32) []byte {
		b := append([]byte(nil), raw...)
		binary.LittleEndian.PutUint32(b[offset:], v)
		return b
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", corrupt(0, 0xdeadbeef)},
		{"bad version", corrupt(4, 99)},
		{"truncated", raw[:len(raw)-3]},
		{"huge dim", corrupt(22, maxCount+1)},
		{"bad loss", func() []byte { b := append([]byte(nil), raw...); b[21] = 7; return b }()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrBadFormat) {
				t.Errorf("Decode error = %v, want ErrBadFormat", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	for _, name := range []string{"or.model", "or.model.xz"} {
		t.Run(name, func(t *testing.T) {
			p := trained(t, []float64{0, 1, 1, 1})
			dir := filepath.Join(t.TempDir(), "models")

			path, err := Save(dir, name, p)
			assert.NilError(t, err)
			assert.Equal(t, path, filepath.Join(dir, name))

			info, err := os.Stat(path)
			assert.NilError(t, err)
			assert.Assert(t, info.Size() > 0)

			q, err := Load(path)
			assert.NilError(t, err)
			assertSameModel(t, q, p)
		})
	}
}

func TestSaveCompresses(t *testing.T) {
	p := trained(t, []float64{0, 1, 1, 0})
	dir := t.TempDir()

	plain, err := Save(dir, "xor.model", p)
	assert.NilError(t, err)
	packed, err := Save(dir, "xor.model.xz", p)
	assert.NilError(t, err)

	raw, err := os.ReadFile(packed)
	assert.NilError(t, err)
	// xz stream header magic
	assert.Assert(t, bytes.HasPrefix(raw, []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}))

	// Loading a compressed file under a plain name fails cleanly
	renamed := filepath.Join(dir, "renamed.model")
	assert.NilError(t, os.Rename(packed, renamed))
	_, err = Load(renamed)
	assert.Assert(t, errors.Is(err, ErrBadFormat), "got %v", err)

	_, err = Load(plain)
	assert.NilError(t, err)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.model"))
	assert.ErrorContains(t, err, "failed to open file")
}
