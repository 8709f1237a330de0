package persist

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/perceptron"
)

// DefaultDir is the conventional directory for saved models.
const DefaultDir = "models"

// compressed reports whether filename selects xz compression.
func compressed(filename string) bool {
	return strings.HasSuffix(filename, ".xz")
}

// Save writes p to dir/filename, creating dir if needed, and returns the path.
// A ".xz" suffix stores the model xz-compressed.
func Save(dir, filename string, p *perceptron.Perceptron) (string, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create model directory")
	}

	path := filepath.Join(dir, filename)
	if err := SaveFile(path, p); err != nil {
		return "", err
	}
	return path, nil
}

// SaveFile writes p to path. A ".xz" suffix stores the model xz-compressed.
func SaveFile(path string, p *perceptron.Perceptron) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "failed to close file")
		}
	}()

	buf := bufio.NewWriter(file)
	var w io.Writer = buf
	var zw *xz.Writer
	if compressed(path) {
		if zw, err = xz.NewWriter(buf); err != nil {
			return errors.Wrap(err, "failed to create xz writer")
		}
		w = zw
	}

	if err = Encode(w, p); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	if zw != nil {
		if err = zw.Close(); err != nil {
			return errors.Wrap(err, "failed to finish xz stream")
		}
	}
	return errors.Wrap(buf.Flush(), "failed to flush model")
}

// Load reads a model file written by Save or SaveFile.
func Load(path string) (*perceptron.Perceptron, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	var r io.Reader = bufio.NewReader(file)
	if compressed(path) {
		if r, err = xz.NewReader(r); err != nil {
			return nil, errors.Wrap(ErrBadFormat, err.Error())
		}
	}

	p, err := Decode(r)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return p, nil
}
