package http

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"finboard/internal/charts"
	"finboard/internal/core"
	"finboard/internal/log"
	"finboard/internal/mock"
)

// handleChart serves /charts/{name}.svg. The dashboard datasets are the
// default; ?view=reports switches to the report series.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	name, ok := strings.CutSuffix(file, ".svg")
	if !ok {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	years := mock.YearlyComparison()
	data := charts.Data{
		Months:     mock.DashboardMonths(),
		Categories: mock.DashboardCategories(),
		Years:      years,
		Year:       ParseYear(q, years[len(years)-1].Year, offeredYears(years)),
	}
	if q.Get("view") == "reports" {
		data.Months = mock.ReportMonths()
		data.Categories = mock.ReportCategories()
	}

	opts := charts.Options{}
	if v, err := strconv.Atoi(q.Get("w")); err == nil && v > 0 && v <= 1600 {
		opts.Width = v
	}
	if v, err := strconv.Atoi(q.Get("h")); err == nil && v > 0 && v <= 1200 {
		opts.Height = v
	}
	_, theme := s.theme(w, r)
	opts.Dark = theme == core.ThemeDark

	var buf bytes.Buffer
	if err := charts.Render(&buf, name, data, opts); err != nil {
		if errors.Is(err, charts.ErrUnknownChart) {
			http.NotFound(w, r)
			return
		}
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Chart render failed",
			log.FieldComponent, log.ComponentCharts,
			log.FieldChart, name,
			"error", err)
		http.Error(w, "chart unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(buf.Bytes())
}
