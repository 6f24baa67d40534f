// Package charts draws the report series as PNG files.
package charts

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"time"

	"github.com/rustyeddy/walletstats/internal/fileutil"
	"github.com/rustyeddy/walletstats/report"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Output file names, in the order Render returns them.
const (
	BalanceTrendPNG     = "balance_trend.png"
	PNLCumulativePNG    = "pnl_cumulative.png"
	MonthlyPNLPNG       = "monthly_pnl.png"
	TransactionTypesPNG = "transaction_types.png"
	DrawdownPNG         = "drawdown_analysis.png"
)

var (
	blue   = color.RGBA{R: 0x2E, G: 0x86, B: 0xDE, A: 0xFF}
	green  = color.RGBA{R: 0x00, G: 0xB8, B: 0x94, A: 0xFF}
	red    = color.RGBA{R: 0xD6, G: 0x30, B: 0x31, A: 0xFF}
	orange = color.RGBA{R: 0xE1, G: 0x70, B: 0x55, A: 0xFF}
	purple = color.RGBA{R: 0x6C, G: 0x5C, B: 0xE7, A: 0xFF}
	gray   = color.RGBA{R: 0x63, G: 0x6E, B: 0x72, A: 0xFF}
)

// Options sizes the images. Width and Height are in inches.
type Options struct {
	Width  float64
	Height float64
	DPI    int
}

func DefaultOptions() Options {
	return Options{Width: 14, Height: 7, DPI: 150}
}

// Render writes every chart into dir and returns the written paths. The
// charts replace earlier ones only when all of them were drawn.
func Render(dir string, r *report.Report, opts Options) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("charts: nil report")
	}
	if opts.Width <= 0 || opts.Height <= 0 || opts.DPI <= 0 {
		opts = DefaultOptions()
	}

	type job struct {
		name   string
		render func(*report.Report) (func(draw.Canvas), error)
	}
	jobs := []job{
		{BalanceTrendPNG, balanceTrend},
		{PNLCumulativePNG, pnlCumulative},
		{MonthlyPNLPNG, monthlyPNL},
		{TransactionTypesPNG, transactionTypes},
		{DrawdownPNG, drawdownAnalysis},
	}

	var (
		b     fileutil.Batch
		paths []string
	)
	for _, j := range jobs {
		fn, err := j.render(r)
		if err == nil {
			path := filepath.Join(dir, j.name)
			err = stagePNG(&b, path, opts, fn)
			paths = append(paths, path)
		}
		if err != nil {
			b.Abort()
			return nil, fmt.Errorf("%s: %w", j.name, err)
		}
	}
	if err := b.Commit(); err != nil {
		return nil, err
	}
	return paths, nil
}

func stagePNG(b *fileutil.Batch, path string, opts Options, fn func(draw.Canvas)) error {
	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(opts.Width)*vg.Inch, vg.Length(opts.Height)*vg.Inch),
		vgimg.UseDPI(opts.DPI),
	)
	fn(draw.New(img))
	return b.Add(path, func(w io.Writer) error {
		_, err := vgimg.PngCanvas{Canvas: img}.WriteTo(w)
		return err
	})
}

func newTimePlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = ylabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

func line(xys plotter.XYs, c color.Color, width vg.Length) (*plotter.Line, error) {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = width
	return l, nil
}

func marker(xys plotter.XYs, c color.Color, shape draw.GlyphDrawer, radius vg.Length) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Shape = shape
	s.GlyphStyle.Radius = radius
	return s, nil
}

func zeroLine() *plotter.Function {
	f := plotter.NewFunction(func(float64) float64 { return 0 })
	f.Color = gray
	f.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	return f
}

func balanceTrend(r *report.Report) (func(draw.Canvas), error) {
	p := newTimePlot("Wallet Balance Trend", "Balance (BTC)")

	var xys plotter.XYs
	for _, b := range r.Series.Balance {
		x, err := unix(report.TimeLayout, b.Timestamp)
		if err != nil {
			return nil, err
		}
		xys = append(xys, plotter.XY{X: x, Y: b.Balance})
	}
	if len(xys) > 0 {
		l, err := line(xys, blue, vg.Points(1.5))
		if err != nil {
			return nil, err
		}
		p.Add(l)
		p.Legend.Add("Balance", l)
	}

	flows := []struct {
		label string
		rows  []report.FlowRow
		color color.Color
		shape draw.GlyphDrawer
	}{
		{"Deposit", r.Series.Deposits, green, draw.TriangleGlyph{}},
		{"Withdrawal", r.Series.Withdrawals, red, draw.PyramidGlyph{}},
	}
	for _, f := range flows {
		if len(f.rows) == 0 {
			continue
		}
		var pts plotter.XYs
		for _, e := range f.rows {
			x, err := unix(report.DateLayout, e.Timestamp)
			if err != nil {
				return nil, err
			}
			pts = append(pts, plotter.XY{X: x, Y: e.Balance})
		}
		s, err := marker(pts, f.color, f.shape, vg.Points(4))
		if err != nil {
			return nil, err
		}
		p.Add(s)
		p.Legend.Add(f.label, s)
	}

	extremes := []struct {
		label   string
		date    string
		balance float64
		color   color.Color
	}{
		{"Peak", r.Stats.MaxTime, r.Stats.MaxBalance, orange},
		{"Bottom", r.Stats.MinTime, r.Stats.MinBalance, purple},
	}
	for _, e := range extremes {
		if e.date == "" {
			continue
		}
		x, err := unix(report.DateLayout, e.date)
		if err != nil {
			return nil, err
		}
		s, err := marker(plotter.XYs{{X: x, Y: e.balance}}, e.color, draw.CircleGlyph{}, vg.Points(6))
		if err != nil {
			return nil, err
		}
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("%s %.4f", e.label, e.balance), s)
	}

	return p.Draw, nil
}

func pnlCumulative(r *report.Report) (func(draw.Canvas), error) {
	p := newTimePlot("Cumulative Realized PNL", "Cumulative PNL (BTC)")
	p.Add(zeroLine())

	var xys plotter.XYs
	for _, row := range r.Series.PNLCumsum {
		x, err := unix(report.TimeLayout, row.Timestamp)
		if err != nil {
			return nil, err
		}
		xys = append(xys, plotter.XY{X: x, Y: row.Cumulative})
	}
	if len(xys) > 0 {
		l, err := line(xys, green, vg.Points(1.5))
		if err != nil {
			return nil, err
		}
		p.Add(l)
		p.Legend.Add("Cumulative PNL", l)
	}
	return p.Draw, nil
}

func monthlyPNL(r *report.Report) (func(draw.Canvas), error) {
	p := plot.New()
	p.Title.Text = "Monthly Realized PNL"
	p.X.Label.Text = "Month"
	p.Y.Label.Text = "PNL (BTC)"
	p.Add(plotter.NewGrid())

	rows := r.Series.MonthlyPNL
	if len(rows) == 0 {
		return p.Draw, nil
	}

	// gains and losses are separate bar sets so each gets its own color
	gains := make(plotter.Values, len(rows))
	losses := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, m := range rows {
		labels[i] = m.YearMonth
		if m.Amount >= 0 {
			gains[i] = m.Amount
		} else {
			losses[i] = m.Amount
		}
	}

	width := vg.Points(12)
	for _, set := range []struct {
		values plotter.Values
		color  color.Color
	}{{gains, green}, {losses, red}} {
		bars, err := plotter.NewBarChart(set.values, width)
		if err != nil {
			return nil, err
		}
		bars.Color = set.color
		bars.LineStyle.Width = 0
		p.Add(bars)
	}
	p.NominalX(labels...)
	return p.Draw, nil
}

func transactionTypes(r *report.Report) (func(draw.Canvas), error) {
	p := plot.New()
	p.Title.Text = "Transaction Type Distribution"
	p.Y.Label.Text = "Count"
	p.Add(plotter.NewGrid())

	rows := r.Series.TypeMix
	if len(rows) == 0 {
		return p.Draw, nil
	}

	values := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	for i, t := range rows {
		values[i] = float64(t.Count)
		labels[i] = fmt.Sprintf("%s (%d)", t.Type, t.Count)
	}
	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return nil, err
	}
	bars.Color = blue
	p.Add(bars)
	p.NominalX(labels...)
	return p.Draw, nil
}

func drawdownAnalysis(r *report.Report) (func(draw.Canvas), error) {
	top := newTimePlot("Wallet Balance & Drawdown Analysis", "Balance (BTC)")
	top.X.Label.Text = ""
	bottom := newTimePlot("", "Drawdown (%)")
	bottom.Add(zeroLine())

	var bal, peak, dd plotter.XYs
	for _, row := range r.Series.Drawdown {
		x, err := unix(report.TimeLayout, row.Timestamp)
		if err != nil {
			return nil, err
		}
		bal = append(bal, plotter.XY{X: x, Y: row.Balance})
		peak = append(peak, plotter.XY{X: x, Y: row.Peak})
		dd = append(dd, plotter.XY{X: x, Y: row.Drawdown})
	}

	if len(bal) > 0 {
		bl, err := line(bal, blue, vg.Points(1.5))
		if err != nil {
			return nil, err
		}
		pl, err := line(peak, orange, vg.Points(1))
		if err != nil {
			return nil, err
		}
		pl.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		top.Add(bl, pl)
		top.Legend.Add("Balance", bl)
		top.Legend.Add("Running Peak", pl)

		dl, err := line(dd, red, vg.Points(1))
		if err != nil {
			return nil, err
		}
		dl.FillColor = color.RGBA{R: 0xD6, G: 0x30, B: 0x31, A: 0x40}
		bottom.Add(dl)
		bottom.Legend.Add("Drawdown", dl)
	}

	return func(dc draw.Canvas) {
		tiles := draw.Tiles{Rows: 2, Cols: 1, PadY: vg.Millimeter * 4}
		canvases := plot.Align([][]*plot.Plot{{top}, {bottom}}, tiles, dc)
		top.Draw(canvases[0][0])
		bottom.Draw(canvases[1][0])
	}, nil
}

func unix(layout, s string) (float64, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, err
	}
	return float64(t.Unix()), nil
}
