// Package spy plots the sparsity pattern of an operator.
package spy

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/fumin/quijy/mat"
)

const size = 5 * vg.Inch

// Plot returns a plot with a marker at every non-zero element of m.
// Columns run along x, and rows run down y so that row 0 is at the top.
func Plot(m *mat.COO, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"
	p.X.Min, p.X.Max = -0.5, float64(m.Cols())-0.5
	p.Y.Min, p.Y.Max = -float64(m.Rows())+0.5, 0.5
	p.Y.Tick.Marker = rowTicks{}

	if m.NumNonZero() == 0 {
		return p, nil
	}
	xys := make(plotter.XYs, 0, m.NumNonZero())
	for ij := range m.All() {
		xys = append(xys, plotter.XY{X: float64(ij[1]), Y: -float64(ij[0])})
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	s.GlyphStyle.Shape = draw.BoxGlyph{}
	// Markers shrink with the matrix until they are single points.
	s.GlyphStyle.Radius = vg.Length(math.Max(0.5, float64(size)/float64(max(m.Rows(), m.Cols()))/3))
	p.Add(s)
	return p, nil
}

// Save writes the plot of m to path, in the format given by its extension such as png, svg or pdf.
func Save(path string, m *mat.COO, title string) error {
	p, err := Plot(m, title)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if err := p.Save(size, size, path); err != nil {
		return errors.Wrap(err, path)
	}
	return nil
}

// rowTicks labels the negated y axis with positive row numbers.
type rowTicks struct{}

func (rowTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			// Adding zero turns -0 into 0.
			ticks[i].Label = strconv.FormatFloat(-ticks[i].Value+0, 'g', -1, 64)
		}
	}
	return ticks
}
