package chart

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Slice is one wedge of a pie.
type Slice struct {
	Label string
	Value float64
	Color color.Color
	// Explode pushes the wedge outward by this fraction of the radius.
	Explode float64
}

// Pie draws labelled wedges proportional to each slice's value. It ignores
// the plot's axes, so callers should hide them.
type Pie struct {
	Slices []Slice
	// StartAngle is where the first wedge begins, in radians
	// counterclockwise from three o'clock.
	StartAngle float64
	// Radius as a fraction of half the smaller canvas side.
	Radius float64
	// Labels controls the count drawn inside each wedge.
	Labels    bool
	TextStyle text.Style
}

// NewPie returns a pie over the given slices starting at twelve o'clock.
func NewPie(slices ...Slice) (*Pie, error) {
	var total float64
	for _, s := range slices {
		if s.Value < 0 || math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
			return nil, fmt.Errorf("pie slice %q: invalid value %v", s.Label, s.Value)
		}
		total += s.Value
	}
	if total == 0 {
		return nil, fmt.Errorf("pie: no data")
	}
	sty := plot.NewLegend().TextStyle
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YCenter
	return &Pie{
		Slices:     slices,
		StartAngle: math.Pi / 2,
		Radius:     0.8,
		Labels:     true,
		TextStyle:  sty,
	}, nil
}

func (p *Pie) total() float64 {
	var t float64
	for _, s := range p.Slices {
		t += s.Value
	}
	return t
}

// Plot implements the plot.Plotter interface.
func (p *Pie) Plot(c draw.Canvas, _ *plot.Plot) {
	size := c.Size()
	r := vg.Length(math.Min(float64(size.X), float64(size.Y))) / 2 * vg.Length(p.Radius)
	center := c.Center()
	total := p.total()

	// wedges run clockwise from the start angle
	angle := p.StartAngle
	for _, s := range p.Slices {
		if s.Value == 0 {
			continue
		}
		sweep := -2 * math.Pi * s.Value / total
		mid := angle + sweep/2
		o := center
		if s.Explode > 0 {
			o = polar(center, r*vg.Length(s.Explode), mid)
		}

		var path vg.Path
		path.Move(o)
		path.Arc(o, r, angle, sweep)
		path.Close()
		c.SetColor(s.Color)
		c.Fill(path)

		if p.Labels {
			c.FillText(p.TextStyle, polar(o, r*0.6, mid), strconv.FormatFloat(s.Value, 'f', -1, 64))
		}
		angle += sweep
	}
}

func polar(o vg.Point, r vg.Length, theta float64) vg.Point {
	return vg.Point{
		X: o.X + r*vg.Length(math.Cos(theta)),
		Y: o.Y + r*vg.Length(math.Sin(theta)),
	}
}

// Thumbnailers returns one legend swatch per slice, in slice order.
func (p *Pie) Thumbnailers() []plot.Thumbnailer {
	out := make([]plot.Thumbnailer, len(p.Slices))
	for i, s := range p.Slices {
		out[i] = swatch{s.Color}
	}
	return out
}

type swatch struct{ color.Color }

// Thumbnail implements the plot.Thumbnailer interface.
func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.Color, pts)
}
