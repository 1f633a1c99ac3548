package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexHeaderComplete(t *testing.T) {
	idx, missing := IndexHeader(Columns)

	assert.Empty(t, missing)
	assert.Len(t, idx, len(Columns))
}

func TestIndexHeaderReportsEachMissingColumn(t *testing.T) {
	header := []string{ColCity, ColSiteName, ColMonitorType}
	_, missing := IndexHeader(header)

	assert.Equal(t, []string{ColTechnician, ColHasMonitor, ColMonitorWiring, ColNotes, ColEvidenceLink}, missing)
}

func TestIndexHeaderTrimsWhitespace(t *testing.T) {
	header := make([]string, len(Columns))
	for i, c := range Columns {
		header[i] = " " + c + " "
	}

	_, missing := IndexHeader(header)
	assert.Empty(t, missing)
}

func TestFromRowRoundTrip(t *testing.T) {
	idx, missing := IndexHeader(Columns)
	require.Empty(t, missing)

	row := []string{"Curitiba", "Ana", "POP Centro", "Sim", "Shelly EM", "Trifásico", "ok", "https://example.com/foto.jpg"}
	rec, err := FromRow(idx, row)
	require.NoError(t, err)

	assert.Equal(t, "Curitiba", rec.City)
	assert.Equal(t, "Ana", rec.Technician)
	assert.Equal(t, "Sim", rec.HasMonitor)
	assert.Equal(t, row, rec.Row())
}

func TestFromRowRequiredFields(t *testing.T) {
	idx, _ := IndexHeader(Columns)

	_, err := FromRow(idx, []string{"", "Ana", "POP", "Sim", "", "", "", ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ColCity)

	_, err = FromRow(idx, []string{"Curitiba", "  ", "POP", "Sim", "", "", "", ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ColTechnician)
}

func TestFromRowShortRow(t *testing.T) {
	idx, _ := IndexHeader(Columns)

	rec, err := FromRow(idx, []string{"Curitiba", "Ana", "POP"})
	require.NoError(t, err)
	assert.Empty(t, rec.HasMonitor)
	assert.Empty(t, rec.EvidenceLink)
}

func TestColumnOrderIsStable(t *testing.T) {
	assert.Equal(t, []string{
		ColCity,
		ColTechnician,
		ColSiteName,
		ColHasMonitor,
		ColMonitorType,
		ColMonitorWiring,
		ColNotes,
		ColEvidenceLink,
	}, Columns)
}
