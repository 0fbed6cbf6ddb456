// Package charts renders the dashboard and reports charts as SVG.
package charts

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"finboard/internal/core"
)

// Chart names served under /charts/{name}.svg
const (
	Monthly    = "monthly"
	Categories = "categories"
	Trends     = "trends"
	Yearly     = "yearly"
)

var (
	ErrUnknownChart = errors.New("unknown chart")
	ErrNoData       = errors.New("no chart data")
)

var (
	incomeColor   = hex("#10b981")
	expenseColor  = hex("#ef4444")
	savingsColor  = hex("#3b82f6")
	mutedColor    = hex("#9ca3af")
	darkBg        = hex("#111827")
	darkFontColor = hex("#e5e7eb")
)

// Data is everything a chart may draw from.
type Data struct {
	Months     []core.MonthFigure
	Categories []core.CategoryAmount
	Years      []core.YearFigure
	Year       int // highlighted in the yearly chart
}

// Options controls size and palette.
type Options struct {
	Width  int
	Height int
	Dark   bool
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 640
	}
	if o.Height <= 0 {
		o.Height = 320
	}
	return o
}

func (o Options) background() chart.Style {
	s := chart.Style{
		Padding:   chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		FillColor: chart.ColorWhite,
	}
	if o.Dark {
		s.FillColor = darkBg
	}
	return s
}

func (o Options) axisStyle() chart.Style {
	s := chart.Style{FontSize: 9, FontColor: chart.ColorBlack}
	if o.Dark {
		s.FontColor = darkFontColor
	}
	return s
}

// Names lists every chart Render knows.
func Names() []string {
	return []string{Monthly, Categories, Trends, Yearly}
}

// Render writes the named chart as SVG.
func Render(w io.Writer, name string, d Data, opts Options) error {
	opts = opts.withDefaults()
	var err error
	switch name {
	case Monthly:
		err = renderMonthly(w, d.Months, opts)
	case Categories:
		err = renderCategories(w, d.Categories, opts)
	case Trends:
		err = renderTrends(w, d.Months, opts)
	case Yearly:
		err = renderYearly(w, d.Years, d.Year, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
	if err != nil {
		return fmt.Errorf("render %s chart: %w", name, err)
	}
	return nil
}

func renderMonthly(w io.Writer, months []core.MonthFigure, opts Options) error {
	if len(months) < 2 {
		return ErrNoData
	}
	xs, ticks := monthAxis(months)
	income := make([]float64, len(months))
	expenses := make([]float64, len(months))
	for i, m := range months {
		income[i] = m.Income.Float()
		expenses[i] = m.Expenses.Float()
	}

	graph := chart.Chart{
		Width:      opts.Width,
		Height:     opts.Height,
		Background: opts.background(),
		XAxis:      chart.XAxis{Ticks: ticks, Style: opts.axisStyle()},
		YAxis:      chart.YAxis{ValueFormatter: dollarFormatter, Style: opts.axisStyle()},
		Series: []chart.Series{
			areaSeries("Income", xs, income, incomeColor),
			areaSeries("Expenses", xs, expenses, expenseColor),
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph, opts.axisStyle())}
	return graph.Render(chart.SVG, w)
}

func renderTrends(w io.Writer, months []core.MonthFigure, opts Options) error {
	if len(months) < 2 {
		return ErrNoData
	}
	xs, ticks := monthAxis(months)
	income := make([]float64, len(months))
	expenses := make([]float64, len(months))
	savings := make([]float64, len(months))
	for i, m := range months {
		income[i] = m.Income.Float()
		expenses[i] = m.Expenses.Float()
		savings[i] = m.Savings.Float()
	}

	graph := chart.Chart{
		Width:      opts.Width,
		Height:     opts.Height,
		Background: opts.background(),
		XAxis:      chart.XAxis{Ticks: ticks, Style: opts.axisStyle()},
		YAxis:      chart.YAxis{ValueFormatter: dollarFormatter, Style: opts.axisStyle()},
		Series: []chart.Series{
			lineSeries("Income", xs, income, incomeColor),
			lineSeries("Expenses", xs, expenses, expenseColor),
			lineSeries("Savings", xs, savings, savingsColor),
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph, opts.axisStyle())}
	return graph.Render(chart.SVG, w)
}

func renderCategories(w io.Writer, cats []core.CategoryAmount, opts Options) error {
	values := make([]chart.Value, 0, len(cats))
	for _, s := range core.CategoryShares(cats) {
		if s.Amount.Cents <= 0 {
			continue
		}
		color := mutedColor
		if s.Color != "" {
			color = hex(s.Color)
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %s%%", s.Name, s.ShareLabel()),
			Value: s.Amount.Float(),
			Style: chart.Style{FillColor: color, StrokeColor: color, FontSize: 9, FontColor: chart.ColorWhite},
		})
	}
	if len(values) == 0 {
		return ErrNoData
	}

	pie := chart.PieChart{
		Width:      opts.Height,
		Height:     opts.Height,
		Background: opts.background(),
		Values:     values,
	}
	return pie.Render(chart.SVG, w)
}

func renderYearly(w io.Writer, years []core.YearFigure, highlight int, opts Options) error {
	if len(years) == 0 {
		return ErrNoData
	}
	bars := make([]chart.Value, 0, len(years)*2)
	for _, y := range years {
		inc, exp := incomeColor, expenseColor
		if highlight != 0 && y.Year != highlight {
			inc, exp = inc.WithAlpha(90), exp.WithAlpha(90)
		}
		bars = append(bars,
			chart.Value{
				Label: fmt.Sprintf("%d in", y.Year),
				Value: y.Income.Float(),
				Style: chart.Style{FillColor: inc, StrokeColor: inc},
			},
			chart.Value{
				Label: fmt.Sprintf("%d out", y.Year),
				Value: y.Expenses.Float(),
				Style: chart.Style{FillColor: exp, StrokeColor: exp},
			},
		)
	}

	graph := chart.BarChart{
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   36,
		BarSpacing: 20,
		Background: opts.background(),
		XAxis:      opts.axisStyle(),
		YAxis: chart.YAxis{
			ValueFormatter: dollarFormatter,
			Style:          opts.axisStyle(),
		},
		Bars: bars,
	}
	return graph.Render(chart.SVG, w)
}

func monthAxis(months []core.MonthFigure) ([]float64, []chart.Tick) {
	xs := make([]float64, len(months))
	ticks := make([]chart.Tick, len(months))
	for i, m := range months {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: m.Month}
	}
	return xs, ticks
}

func areaSeries(name string, xs, ys []float64, color drawing.Color) chart.ContinuousSeries {
	s := lineSeries(name, xs, ys, color)
	s.Style.FillColor = color.WithAlpha(40)
	return s
}

func lineSeries(name string, xs, ys []float64, color drawing.Color) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: color,
			StrokeWidth: 2,
		},
	}
}

func dollarFormatter(v interface{}) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	return core.Dollars(f).Whole()
}

func hex(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}
