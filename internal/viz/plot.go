package viz

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/FlavioCFOliveira/GoPerceptron/internal/dataset"
)

// DefaultDir is the conventional directory for rendered plots.
const DefaultDir = "plots"

// regionColors shades predicted class 0 and 1 at 20% opacity.
type regionColors []color.Color

func (p regionColors) Colors() []color.Color { return p }

var (
	regions = regionColors{
		color.NRGBA{R: 255, A: 51},
		color.NRGBA{B: 255, A: 51},
	}
	// Sample colors for labels 0 and 1.
	labelColors = []color.Color{
		color.RGBA{B: 255, A: 255},
		color.RGBA{G: 255, B: 128, A: 255},
	}
)

func ensureDir(dir string) (string, error) {
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create plot directory")
	}
	return dir, nil
}

// DecisionRegions renders the samples of t colored by label over the regions m
// predicts, and saves the figure to dir/filename. The image format follows the
// file extension.
func DecisionRegions(t *dataset.Table, dir, filename string, m Predictor) (string, error) {
	g, err := NewGrid(t, m, Resolution)
	if err != nil {
		return "", err
	}
	features := dataset.FeatureColumns(t)

	p := plot.New()
	p.Title.Text = "Decision regions"
	p.X.Label.Text = features[0]
	p.Y.Label.Text = features[1]

	hm := plotter.NewHeatMap(g, regions)
	hm.Min, hm.Max = 0, 1
	hm.Rasterized = true
	p.Add(hm)

	cols, rows := g.Dims()
	xMin, xMax := g.X(0), g.X(cols-1)
	yMin, yMax := g.Y(0), g.Y(rows-1)

	for _, axis := range []plotter.XYs{
		{{X: xMin, Y: 0}, {X: xMax, Y: 0}},
		{{X: 0, Y: yMin}, {X: 0, Y: yMax}},
	} {
		line, err := plotter.NewLine(axis)
		if err != nil {
			return "", errors.Wrap(err, "axis line")
		}
		line.Color = color.Black
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(line)
	}

	x1 := t.Column(features[0])
	x2 := t.Column(features[1])
	labels := t.Column(dataset.LabelColumn)
	for class, c := range labelColors {
		var points plotter.XYs
		for i := range labels {
			if labels[i] == float64(class) {
				points = append(points, plotter.XY{X: x1[i], Y: x2[i]})
			}
		}
		if len(points) == 0 {
			continue
		}
		scatter, err := plotter.NewScatter(points)
		if err != nil {
			return "", errors.Wrap(err, "scatter")
		}
		scatter.GlyphStyle.Color = c
		scatter.GlyphStyle.Radius = vg.Points(6)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
		p.Legend.Add(fmt.Sprintf("%s=%d", dataset.LabelColumn, class), scatter)
	}

	p.X.Min, p.X.Max = xMin, xMax
	p.Y.Min, p.Y.Max = yMin, yMax

	return save(p, dir, filename, 10*vg.Inch, 8*vg.Inch)
}

// LossCurve plots the per-epoch loss history and saves it to dir/filename.
func LossCurve(history []float64, dir, filename string) (string, error) {
	if len(history) == 0 {
		return "", errors.New("empty loss history")
	}

	points := make(plotter.XYs, len(history))
	for i, l := range history {
		points[i] = plotter.XY{X: float64(i), Y: l}
	}

	p := plot.New()
	p.Title.Text = "Training loss"
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = "total error"

	line, scatter, err := plotter.NewLinePoints(points)
	if err != nil {
		return "", errors.Wrap(err, "loss curve")
	}
	scatter.GlyphStyle.Radius = vg.Length(2)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(line, scatter)
	p.Y.Min = 0

	return save(p, dir, filename, 8*vg.Inch, 5*vg.Inch)
}

func save(p *plot.Plot, dir, filename string, w, h vg.Length) (string, error) {
	dir, err := ensureDir(dir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, filename)
	if err := p.Save(w, h, path); err != nil {
		return "", errors.Wrapf(err, "save plot %s", path)
	}
	return path, nil
}
