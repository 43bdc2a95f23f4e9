package chart

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strconv"

	"github.com/KaramelBytes/peakpick-cli/internal/analysis"
	"github.com/KaramelBytes/peakpick-cli/internal/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Output file names inside the renderer's directory.
const (
	ProminenceFile = "prominence.png"
	ElevationFile  = "elevation.png"
	DifficultyFile = "difficulty.png"
)

var (
	green     = color.RGBA{R: 0, G: 128, B: 0, A: 255}
	gray      = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	red       = color.RGBA{R: 255, A: 255}
	classPens = []color.Color{
		color.RGBA{R: 34, G: 139, B: 34, A: 255},  // forestgreen
		color.RGBA{R: 70, G: 130, B: 180, A: 255}, // steelblue
		color.RGBA{R: 255, G: 140, B: 0, A: 255},  // darkorange
		color.RGBA{R: 178, G: 34, B: 34, A: 255},  // firebrick
	}
)

// Renderer writes each chart as a PNG under Dir.
type Renderer struct {
	Dir string
}

// NewRenderer returns a renderer that writes into dir, creating it if needed.
func NewRenderer(dir string) (*Renderer, error) {
	if dir == "" {
		return nil, fmt.Errorf("chart dir is empty")
	}
	if err := utils.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	return &Renderer{Dir: dir}, nil
}

var _ analysis.ChartRenderer = (*Renderer)(nil)

// Prominence draws the share of peaks that follow the prominence rule.
func (r *Renderer) Prominence(c analysis.FourteenerCounts) (string, error) {
	pie, err := NewPie(
		Slice{Label: "Yes", Value: float64(c.Yes), Color: green},
		Slice{Label: "No", Value: float64(c.No), Color: gray},
	)
	if err != nil {
		return "", fmt.Errorf("prominence: %w", err)
	}
	p := piePlot("Does the Mountain follow the Prominence Rule?", pie)
	return r.save(ProminenceFile, p, 5*vg.Inch, 5*vg.Inch)
}

// Difficulty draws the class distribution with the hardest class pulled out.
func (r *Renderer) Difficulty(counts []analysis.ClassCount) (string, error) {
	slices := make([]Slice, 0, len(counts))
	for _, cc := range counts {
		s := Slice{
			Label: "Class " + strconv.Itoa(cc.Class),
			Value: float64(cc.Count),
			Color: classColor(cc.Class),
		}
		if cc.Class == analysis.MaxDifficultyClass {
			s.Explode = 0.1
		}
		slices = append(slices, s)
	}
	pie, err := NewPie(slices...)
	if err != nil {
		return "", fmt.Errorf("difficulty: %w", err)
	}
	p := piePlot("Difficulty Classes", pie)
	return r.save(DifficultyFile, p, 5*vg.Inch, 5*vg.Inch)
}

func classColor(class int) color.Color {
	if class >= 1 && class <= len(classPens) {
		return classPens[class-1]
	}
	return gray
}

func piePlot(title string, pie *Pie) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()
	p.Add(pie)
	thumbs := pie.Thumbnailers()
	for i, s := range pie.Slices {
		p.Legend.Add(s.Label, thumbs[i])
	}
	p.Legend.Top = true
	return p
}

// Elevation draws the elevation profile next to the elevation vs traffic
// scatter and its regression line.
func (r *Renderer) Elevation(panel analysis.ElevationPanel) (string, error) {
	left, err := elevationLine(panel)
	if err != nil {
		return "", fmt.Errorf("elevation: %w", err)
	}
	right, err := trafficScatter(panel.Scatter)
	if err != nil {
		return "", fmt.Errorf("elevation vs traffic: %w", err)
	}

	img := vgimg.New(12*vg.Inch, 4*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Millimeter * 8,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	plots := [][]*plot.Plot{{left, right}}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		for i, p := range plots[j] {
			p.Draw(canvases[j][i])
		}
	}

	path := filepath.Join(r.Dir, ElevationFile)
	err = utils.SafeWrite(path, func(w io.Writer) error {
		_, err := vgimg.PngCanvas{Canvas: img}.WriteTo(w)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("save %s: %w", ElevationFile, err)
	}
	return path, nil
}

func elevationLine(panel analysis.ElevationPanel) (*plot.Plot, error) {
	pts := make(plotter.XYs, len(panel.ElevationFt))
	for i, ft := range panel.ElevationFt {
		pts[i].X = float64(i)
		pts[i].Y = ft
	}
	p := plot.New()
	p.Title.Text = "Elevation"
	p.X.Label.Text = fmt.Sprintf("Average Height: %d ft", panel.MeanFt)
	p.Y.Label.Text = "Elevation ft"
	if len(pts) == 0 {
		return p, nil
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	p.Add(line)
	return p, nil
}

func trafficScatter(et analysis.ElevationTraffic) (*plot.Plot, error) {
	n := len(et.ElevationM)
	if len(et.TrafficAvg) < n {
		n = len(et.TrafficAvg)
	}
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X = et.ElevationM[i]
		pts[i].Y = et.TrafficAvg[i]
	}
	p := plot.New()
	p.Title.Text = "Elevation vs Traffic"
	p.X.Label.Text = "Elevation m"
	p.Y.Label.Text = "Estimated Visits (2017)"
	if n == 0 {
		return p, nil
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc)

	if et.Fit != nil {
		fit := *et.Fit
		line := plotter.NewFunction(fit.Predict)
		line.Color = red
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("y = %.3gx + %.3g", fit.Beta, fit.Alpha), line)
		p.Legend.Top = true
	}
	return p, nil
}

func (r *Renderer) save(name string, p *plot.Plot, w, h vg.Length) (string, error) {
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	path := filepath.Join(r.Dir, name)
	err = utils.SafeWrite(path, func(out io.Writer) error {
		_, err := wt.WriteTo(out)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}
	return path, nil
}
