// file: services/stats_service.go
package services

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"mentora-hub/models"
)

const statsChartHeight = "360px"

// RenderStats writes an HTML page charting reports by type and status and
// registrations per event.
func RenderStats(w io.Writer, snap Snapshot) error {
	page := components.NewPage()
	page.AddCharts(reportsChart(snap.ReportGroups), registrationsChart(snap.Events))
	return page.Render(w)
}

func reportsChart(groups []ReportGroup) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(statsOptions("Reports", "by type and status")...)

	labels := make([]string, 0, len(groups))
	pending := make([]opts.BarData, 0, len(groups))
	reviewed := make([]opts.BarData, 0, len(groups))
	for _, g := range groups {
		labels = append(labels, g.Label)
		pending = append(pending, opts.BarData{Name: g.Label, Value: g.NewCount})
		reviewed = append(reviewed, opts.BarData{Name: g.Label, Value: len(g.Reports) - g.NewCount})
	}
	bar.SetXAxis(labels).
		AddSeries(string(models.StatusNew), pending).
		AddSeries(string(models.StatusReviewed), reviewed)
	return bar
}

func registrationsChart(events []models.Event) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(statsOptions("Registrations", "per event")...)

	data := make([]opts.PieData, 0, len(events))
	for _, e := range events {
		if e.Count() == 0 {
			continue
		}
		data = append(data, opts.PieData{Name: e.Name, Value: e.Count()})
	}
	pie.AddSeries("registrations", data)
	return pie
}

func statsOptions(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Mentora Hub statistics",
			Theme:     types.ThemeWesteros,
			Width:     "100%",
			Height:    statsChartHeight,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}
