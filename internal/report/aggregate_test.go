package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Srbanana94/dashboard-monitores-energia/internal/model"
)

func TestAggregateFilteredScenario(t *testing.T) {
	subset := Filter(sampleRecords(), Selector{City: "A", Technician: model.AllTechnicians})
	require.Len(t, subset, 2)

	agg := Aggregate(subset)

	assert.Equal(t, 2, agg.Total)
	assert.Equal(t, 1, agg.WithMonitor)
	assert.Equal(t, 1, agg.WithoutMonitor)
	assert.Equal(t, 50.0, agg.PercentWithMonitor)

	require.Len(t, agg.Progress, 2)
	assert.Equal(t, "X", agg.Progress[0].Technician)
	assert.Equal(t, 100.0, agg.Progress[0].PercentComplete)
	assert.Equal(t, "Y", agg.Progress[1].Technician)
	assert.Equal(t, 0.0, agg.Progress[1].PercentComplete)
}

func TestAggregateEmptyInput(t *testing.T) {
	agg := Aggregate(nil)

	assert.Equal(t, 0, agg.Total)
	assert.Equal(t, 0.0, agg.PercentWithMonitor)
	assert.Empty(t, agg.ByCity)
	assert.Empty(t, agg.ByTechnician)
	assert.Empty(t, agg.Progress)
	assert.Empty(t, agg.MonitorTypes)
}

func TestAggregateInvalidStatusLiteral(t *testing.T) {
	records := []model.SiteRecord{
		{City: "A", Technician: "X", HasMonitor: "Sim"},
		{City: "A", Technician: "X", HasMonitor: "Talvez"},
		{City: "A", Technician: "X", HasMonitor: "Não"},
	}

	agg := Aggregate(records)

	assert.Equal(t, 3, agg.Total)
	assert.Equal(t, 1, agg.WithMonitor)
	assert.Equal(t, 1, agg.WithoutMonitor)
	assert.Less(t, agg.WithMonitor+agg.WithoutMonitor, agg.Total)
}

func TestAggregateContingencyCellsSumToStatusTotals(t *testing.T) {
	records := []model.SiteRecord{
		{City: "A", Technician: "X", HasMonitor: "Sim"},
		{City: "A", Technician: "Y", HasMonitor: "Não"},
		{City: "B", Technician: "X", HasMonitor: "Sim"},
		{City: "C", Technician: "Z", HasMonitor: "Talvez"},
	}

	agg := Aggregate(records)

	citySum := 0
	for _, c := range agg.ByCity {
		citySum += c.Yes + c.No
	}
	techSum := 0
	for _, c := range agg.ByTechnician {
		techSum += c.Yes + c.No
	}

	assert.Equal(t, agg.WithMonitor+agg.WithoutMonitor, citySum)
	assert.Equal(t, agg.WithMonitor+agg.WithoutMonitor, techSum)
}

func TestAggregateFillsMissingStatusWithZero(t *testing.T) {
	records := []model.SiteRecord{
		{City: "A", Technician: "X", HasMonitor: "Sim"},
		{City: "B", Technician: "Y", HasMonitor: "Não"},
	}

	agg := Aggregate(records)

	require.Len(t, agg.ByCity, 2)
	assert.Equal(t, StatusCount{Category: "A", Yes: 1, No: 0}, agg.ByCity[0])
	assert.Equal(t, StatusCount{Category: "B", Yes: 0, No: 1}, agg.ByCity[1])
}

func TestAggregatePercentRounding(t *testing.T) {
	records := []model.SiteRecord{
		{City: "A", Technician: "X", HasMonitor: "Sim"},
		{City: "A", Technician: "X", HasMonitor: "Não"},
		{City: "A", Technician: "X", HasMonitor: "Não"},
	}

	agg := Aggregate(records)
	assert.Equal(t, 33.3, agg.PercentWithMonitor)
}

func TestAggregateMonitorTypesOnlyFromMonitoredRecords(t *testing.T) {
	records := []model.SiteRecord{
		{City: "A", Technician: "X", HasMonitor: "Sim", MonitorType: "Shelly EM"},
		{City: "A", Technician: "X", HasMonitor: "Sim", MonitorType: "Shelly EM"},
		{City: "A", Technician: "X", HasMonitor: "Sim", MonitorType: ""},
		{City: "A", Technician: "X", HasMonitor: "Não", MonitorType: "Sonoff POW"},
	}

	agg := Aggregate(records)

	require.Len(t, agg.MonitorTypes, 2)
	assert.Equal(t, TypeCount{MonitorType: "Shelly EM", Count: 2}, agg.MonitorTypes[0])
	assert.Equal(t, TypeCount{MonitorType: "", Count: 1}, agg.MonitorTypes[1])
}

func TestAggregateMonitorTypesEmptyWithoutMonitoredRecords(t *testing.T) {
	records := []model.SiteRecord{
		{City: "A", Technician: "X", HasMonitor: "Não", MonitorType: "Shelly EM"},
	}

	agg := Aggregate(records)
	assert.Empty(t, agg.MonitorTypes)
}

func TestAggregateProgressBounds(t *testing.T) {
	agg := Aggregate(sampleRecords())

	for _, p := range agg.Progress {
		assert.Positive(t, p.Total)
		assert.GreaterOrEqual(t, p.PercentComplete, 0.0)
		assert.LessOrEqual(t, p.PercentComplete, 100.0)
	}
}
