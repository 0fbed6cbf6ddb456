package http

import (
	"bytes"
	"context"
	"html/template"
	"net/http"

	"golang.org/x/sync/errgroup"

	"finboard/internal/charts"
	"finboard/internal/core"
	"finboard/internal/log"
	"finboard/internal/mock"
	"finboard/internal/workspace"
)

type comparisonData struct {
	Years   []core.YearFigure
	Year    int
	Offered []int
	Growth  core.Growth
	Chart   template.HTML
}

type reportsData struct {
	Summary    core.ReportSummary
	Months     []core.MonthFigure
	LastThree  []core.MonthFigure
	Shares     []core.CategoryShare
	Comparison comparisonData
	Charts     map[string]template.HTML
}

func offeredYears(years []core.YearFigure) []int {
	out := make([]int, 0, len(years))
	for _, y := range years {
		out = append(out, y.Year)
	}
	return out
}

func reportChartData(year int) charts.Data {
	return charts.Data{
		Months:     mock.ReportMonths(),
		Categories: mock.ReportCategories(),
		Years:      mock.YearlyComparison(),
		Year:       year,
	}
}

// renderCharts renders the named charts concurrently. Each chart writes
// to its own buffer; the first failure cancels the rest.
func renderCharts(ctx context.Context, names []string, d charts.Data, opts charts.Options) (map[string]template.HTML, error) {
	out := make([]bytes.Buffer, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return charts.Render(&out[i], name, d, opts)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rendered := make(map[string]template.HTML, len(names))
	for i, name := range names {
		// go-chart output, not user input.
		rendered[name] = template.HTML(out[i].String())
	}
	return rendered, nil
}

func (s *Server) comparison(ctx context.Context, year int, dark bool) comparisonData {
	years := mock.YearlyComparison()
	d := comparisonData{
		Years:   years,
		Year:    year,
		Offered: offeredYears(years),
		Growth:  core.YearOverYear(years, year),
	}
	svg, err := renderCharts(ctx, []string{charts.Yearly}, reportChartData(year), charts.Options{Dark: dark})
	if err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Yearly chart failed",
			log.FieldComponent, log.ComponentCharts,
			log.FieldChart, charts.Yearly,
			"error", err)
		return d
	}
	d.Chart = svg[charts.Yearly]
	return d
}

func (s *Server) handleReportsPage(w http.ResponseWriter, r *http.Request) {
	ws := s.mount(w, r, workspace.Reports)
	_, theme := s.theme(w, r)

	years := mock.YearlyComparison()
	var year int
	ws.Mutate(func(st *workspace.State) {
		st.Year = ParseYear(r.URL.Query(), st.Year, offeredYears(years))
		year = st.Year
	})

	months := mock.ReportMonths()
	data := reportsData{
		Summary:    core.SummarizeReport(months),
		Months:     months,
		LastThree:  core.LastMonths(months, 3),
		Shares:     core.CategoryShares(mock.ReportCategories()),
		Comparison: s.comparison(r.Context(), year, theme == core.ThemeDark),
	}

	rendered, err := renderCharts(r.Context(),
		[]string{charts.Monthly, charts.Categories, charts.Trends},
		reportChartData(year), charts.Options{Dark: theme == core.ThemeDark})
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Report charts failed",
			log.FieldComponent, log.ComponentCharts,
			"error", err)
	}
	data.Charts = rendered

	s.renderPage(w, r, http.StatusOK, "reports", workspace.Reports, "Reports", data)
}

// handleYearComparison serves the year selector.
func (s *Server) handleYearComparison(w http.ResponseWriter, r *http.Request) {
	ws := s.workspace(w, r)
	_, theme := s.theme(w, r)

	offered := offeredYears(mock.YearlyComparison())
	var year int
	ws.Mutate(func(st *workspace.State) {
		fallback := st.Year
		if fallback == 0 {
			fallback = offered[len(offered)-1]
		}
		st.Year = ParseYear(r.URL.Query(), fallback, offered)
		year = st.Year
	})

	s.respond(w, r, NewHTMXResponse(), "comparison", s.comparison(r.Context(), year, theme == core.ThemeDark))
}
