package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Srbanana94/dashboard-monitores-energia/internal/model"
)

func sampleRecords() []model.SiteRecord {
	return []model.SiteRecord{
		{City: "A", Technician: "X", SiteName: "POP-1", HasMonitor: "Sim", MonitorType: "Shelly EM"},
		{City: "A", Technician: "Y", SiteName: "POP-2", HasMonitor: "Não"},
		{City: "B", Technician: "X", SiteName: "POP-3", HasMonitor: "Sim", MonitorType: "Sonoff POW"},
	}
}

func TestFilterNoOpSelectorIsIdentity(t *testing.T) {
	records := sampleRecords()
	got := Filter(records, AllSelector())
	assert.Equal(t, records, got)
}

func TestFilterByCity(t *testing.T) {
	got := Filter(sampleRecords(), Selector{City: "A", Technician: model.AllTechnicians})
	require.Len(t, got, 2)
	assert.Equal(t, "POP-1", got[0].SiteName)
	assert.Equal(t, "POP-2", got[1].SiteName)
}

func TestFilterByCityAndTechnician(t *testing.T) {
	got := Filter(sampleRecords(), Selector{City: "A", Technician: "X"})
	require.Len(t, got, 1)
	assert.Equal(t, "POP-1", got[0].SiteName)
}

func TestFilterIsCaseSensitive(t *testing.T) {
	got := Filter(sampleRecords(), Selector{City: "a", Technician: model.AllTechnicians})
	assert.Empty(t, got)
}

func TestFilterEmptyInput(t *testing.T) {
	got := Filter(nil, Selector{City: "A", Technician: "X"})
	assert.Empty(t, got)
}

func TestFilterPreservesOrderAndDuplicates(t *testing.T) {
	records := []model.SiteRecord{
		{City: "A", Technician: "X", SiteName: "POP-1", HasMonitor: "Sim"},
		{City: "A", Technician: "X", SiteName: "POP-1", HasMonitor: "Não"},
		{City: "B", Technician: "X", SiteName: "POP-2", HasMonitor: "Sim"},
		{City: "A", Technician: "X", SiteName: "POP-9", HasMonitor: "Sim"},
	}

	got := Filter(records, Selector{City: "A", Technician: model.AllTechnicians})
	require.Len(t, got, 3)
	assert.Equal(t, "POP-1", got[0].SiteName)
	assert.Equal(t, "POP-1", got[1].SiteName)
	assert.Equal(t, "POP-9", got[2].SiteName)
}
