package report

import (
	"math"
	"sort"

	"github.com/Srbanana94/dashboard-monitores-energia/internal/model"
)

type StatusCount struct {
	Category string `json:"category"`
	Yes      int    `json:"yes"`
	No       int    `json:"no"`
}

type TechnicianProgress struct {
	Technician      string  `json:"technician"`
	Total           int     `json:"total"`
	WithMonitor     int     `json:"with_monitor"`
	PercentComplete float64 `json:"percent_complete"`
}

type TypeCount struct {
	MonitorType string `json:"monitor_type"`
	Count       int    `json:"count"`
}

type Aggregation struct {
	Total              int                  `json:"total"`
	WithMonitor        int                  `json:"with_monitor"`
	WithoutMonitor     int                  `json:"without_monitor"`
	PercentWithMonitor float64              `json:"percent_with_monitor"`
	ByCity             []StatusCount        `json:"by_city"`
	ByTechnician       []StatusCount        `json:"by_technician"`
	Progress           []TechnicianProgress `json:"progress"`
	MonitorTypes       []TypeCount          `json:"monitor_types"`
}

func Aggregate(records []model.SiteRecord) Aggregation {
	agg := Aggregation{Total: len(records)}

	cityCounts := make(map[string]*StatusCount)
	techCounts := make(map[string]*StatusCount)
	techTotals := make(map[string]*TechnicianProgress)
	typeCounts := make(map[string]int)

	for _, r := range records {
		switch r.HasMonitor {
		case model.StatusYes:
			agg.WithMonitor++
		case model.StatusNo:
			agg.WithoutMonitor++
		}

		city := countFor(cityCounts, r.City)
		tech := countFor(techCounts, r.Technician)
		switch r.HasMonitor {
		case model.StatusYes:
			city.Yes++
			tech.Yes++
		case model.StatusNo:
			city.No++
			tech.No++
		}

		prog, ok := techTotals[r.Technician]
		if !ok {
			prog = &TechnicianProgress{Technician: r.Technician}
			techTotals[r.Technician] = prog
		}
		prog.Total++
		if r.HasMonitor == model.StatusYes {
			prog.WithMonitor++
			typeCounts[r.MonitorType]++
		}
	}

	if agg.Total > 0 {
		agg.PercentWithMonitor = round1(float64(agg.WithMonitor) / float64(agg.Total) * 100)
	}

	agg.ByCity = sortedCounts(cityCounts)
	agg.ByTechnician = sortedCounts(techCounts)

	for _, prog := range techTotals {
		prog.PercentComplete = round1(float64(prog.WithMonitor) / float64(prog.Total) * 100)
		agg.Progress = append(agg.Progress, *prog)
	}
	sort.Slice(agg.Progress, func(i, j int) bool {
		return agg.Progress[i].Technician < agg.Progress[j].Technician
	})

	for t, n := range typeCounts {
		agg.MonitorTypes = append(agg.MonitorTypes, TypeCount{MonitorType: t, Count: n})
	}
	sort.Slice(agg.MonitorTypes, func(i, j int) bool {
		if agg.MonitorTypes[i].Count != agg.MonitorTypes[j].Count {
			return agg.MonitorTypes[i].Count > agg.MonitorTypes[j].Count
		}
		return agg.MonitorTypes[i].MonitorType < agg.MonitorTypes[j].MonitorType
	})

	return agg
}

func countFor(counts map[string]*StatusCount, key string) *StatusCount {
	c, ok := counts[key]
	if !ok {
		c = &StatusCount{Category: key}
		counts[key] = c
	}
	return c
}

func sortedCounts(counts map[string]*StatusCount) []StatusCount {
	out := make([]StatusCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Category < out[j].Category
	})
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
