package report

import (
	"fmt"

	"github.com/Srbanana94/dashboard-monitores-energia/internal/model"
)

const (
	ColorYes = "#2E8B57"
	ColorNo  = "#DC143C"

	RowHighlightYes = "#90EE90"
	RowHighlightNo  = "#FFB6C1"
)

type BarSeries struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Values []int  `json:"values"`
}

type StatusBarChart struct {
	Title   string      `json:"title"`
	Labels  []string    `json:"labels"`
	Series  []BarSeries `json:"series"`
	HasData bool        `json:"has_data"`
}

type PieChart struct {
	Title   string   `json:"title"`
	Labels  []string `json:"labels"`
	Values  []int    `json:"values"`
	Colors  []string `json:"colors"`
	HasData bool     `json:"has_data"`
}

type ValueBarChart struct {
	Title   string    `json:"title"`
	Labels  []string  `json:"labels"`
	Values  []float64 `json:"values"`
	Colors  []string  `json:"colors"`
	HasData bool      `json:"has_data"`
}

type DetailRow struct {
	model.SiteRecord
	Highlight string `json:"highlight"`
}

type Metrics struct {
	Total              int     `json:"total"`
	WithMonitor        int     `json:"with_monitor"`
	WithoutMonitor     int     `json:"without_monitor"`
	PercentWithMonitor float64 `json:"percent_with_monitor"`
}

type RenderModel struct {
	Metrics         Metrics        `json:"metrics"`
	CityChart       StatusBarChart `json:"city_chart"`
	TechnicianChart StatusBarChart `json:"technician_chart"`
	StatusPie       PieChart       `json:"status_pie"`
	ProgressChart   ValueBarChart  `json:"progress_chart"`
	TypeChart       ValueBarChart  `json:"type_chart"`
	Rows            []DetailRow    `json:"rows"`
	Empty           bool           `json:"empty"`
	Notice          string         `json:"notice,omitempty"`
}

type FilterOptions struct {
	Cities      []string `json:"cities"`
	Technicians []string `json:"technicians"`
}

func BuildRenderModel(subset []model.SiteRecord, onlyUnmonitored bool) RenderModel {
	agg := Aggregate(subset)

	m := RenderModel{
		Metrics: Metrics{
			Total:              agg.Total,
			WithMonitor:        agg.WithMonitor,
			WithoutMonitor:     agg.WithoutMonitor,
			PercentWithMonitor: agg.PercentWithMonitor,
		},
		CityChart:       statusBarChart("Monitores por Cidade", agg.ByCity),
		TechnicianChart: statusBarChart("Monitores por Técnico", agg.ByTechnician),
		StatusPie:       statusPie(agg),
		ProgressChart:   progressChart(agg.Progress),
		TypeChart:       typeChart(agg.MonitorTypes),
		Rows:            detailRows(subset, onlyUnmonitored),
		Empty:           agg.Total == 0,
	}
	if m.Empty {
		m.Notice = "Nenhum dado encontrado para os filtros selecionados."
	}
	return m
}

func statusBarChart(title string, counts []StatusCount) StatusBarChart {
	chart := StatusBarChart{Title: title, HasData: len(counts) > 0}
	yes := BarSeries{Name: model.StatusYes, Color: ColorYes}
	no := BarSeries{Name: model.StatusNo, Color: ColorNo}
	for _, c := range counts {
		chart.Labels = append(chart.Labels, c.Category)
		yes.Values = append(yes.Values, c.Yes)
		no.Values = append(no.Values, c.No)
	}
	chart.Series = []BarSeries{yes, no}
	return chart
}

func statusPie(agg Aggregation) PieChart {
	return PieChart{
		Title:   "Distribuição Geral",
		Labels:  []string{model.StatusYes, model.StatusNo},
		Values:  []int{agg.WithMonitor, agg.WithoutMonitor},
		Colors:  []string{ColorYes, ColorNo},
		HasData: agg.WithMonitor+agg.WithoutMonitor > 0,
	}
}

func progressChart(progress []TechnicianProgress) ValueBarChart {
	chart := ValueBarChart{
		Title:   "Percentual de POPs com Monitor por Técnico",
		HasData: len(progress) > 0,
	}
	for _, p := range progress {
		chart.Labels = append(chart.Labels, p.Technician)
		chart.Values = append(chart.Values, p.PercentComplete)
		chart.Colors = append(chart.Colors, completionColor(p.PercentComplete))
	}
	return chart
}

func typeChart(types []TypeCount) ValueBarChart {
	chart := ValueBarChart{Title: "Distribuição dos Tipos de Monitores"}
	for _, t := range types {
		if t.MonitorType != "" {
			chart.HasData = true
			break
		}
	}
	if !chart.HasData {
		return chart
	}

	max := 0
	for _, t := range types {
		if t.Count > max {
			max = t.Count
		}
	}
	for _, t := range types {
		chart.Labels = append(chart.Labels, t.MonitorType)
		chart.Values = append(chart.Values, float64(t.Count))
		chart.Colors = append(chart.Colors, blueShade(t.Count, max))
	}
	return chart
}

func detailRows(subset []model.SiteRecord, onlyUnmonitored bool) []DetailRow {
	var rows []DetailRow
	for _, r := range subset {
		if onlyUnmonitored && r.HasMonitor != model.StatusNo {
			continue
		}
		highlight := RowHighlightNo
		if r.HasMonitor == model.StatusYes {
			highlight = RowHighlightYes
		}
		rows = append(rows, DetailRow{SiteRecord: r, Highlight: highlight})
	}
	return rows
}

func BuildFilterOptions(records []model.SiteRecord) FilterOptions {
	opts := FilterOptions{
		Cities:      []string{model.AllCities},
		Technicians: []string{model.AllTechnicians},
	}
	seenCity := make(map[string]bool)
	seenTech := make(map[string]bool)
	for _, r := range records {
		if !seenCity[r.City] {
			seenCity[r.City] = true
			opts.Cities = append(opts.Cities, r.City)
		}
		if !seenTech[r.Technician] {
			seenTech[r.Technician] = true
			opts.Technicians = append(opts.Technicians, r.Technician)
		}
	}
	return opts
}

// completionColor maps a percentage onto a red-yellow-green diverging scale.
func completionColor(pct float64) string {
	low := [3]float64{165, 0, 38}
	mid := [3]float64{255, 255, 191}
	high := [3]float64{0, 104, 55}

	if pct <= 50 {
		return lerpColor(low, mid, pct/50)
	}
	return lerpColor(mid, high, (pct-50)/50)
}

func blueShade(count, max int) string {
	light := [3]float64{222, 235, 247}
	dark := [3]float64{49, 130, 189}
	if max <= 0 {
		return rgbHex(light)
	}
	return lerpColor(light, dark, float64(count)/float64(max))
}

func lerpColor(from, to [3]float64, t float64) string {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	var out [3]float64
	for i := range out {
		out[i] = from[i] + (to[i]-from[i])*t
	}
	return rgbHex(out)
}

func rgbHex(c [3]float64) string {
	return fmt.Sprintf("#%02X%02X%02X", int(c[0]+0.5), int(c[1]+0.5), int(c[2]+0.5))
}
