package model

import (
	"fmt"
	"strings"
)

const (
	ColCity          = "Cidade"
	ColTechnician    = "Responsável Técnico"
	ColSiteName      = "Local de Vistoria"
	ColHasMonitor    = "Monitor de Energia (Sim/Não)"
	ColMonitorType   = "Tipo de Monitor"
	ColMonitorWiring = "Ligação do Monitor"
	ColNotes         = "Observações"
	ColEvidenceLink  = "Link de Evidência"
)

const (
	StatusYes = "Sim"
	StatusNo  = "Não"

	AllCities      = "Todas"
	AllTechnicians = "Todos"
)

var Columns = []string{
	ColCity,
	ColTechnician,
	ColSiteName,
	ColHasMonitor,
	ColMonitorType,
	ColMonitorWiring,
	ColNotes,
	ColEvidenceLink,
}

type SiteRecord struct {
	City          string `json:"city"`
	Technician    string `json:"technician"`
	SiteName      string `json:"site_name"`
	HasMonitor    string `json:"has_monitor"`
	MonitorType   string `json:"monitor_type"`
	MonitorWiring string `json:"monitor_wiring"`
	Notes         string `json:"notes"`
	EvidenceLink  string `json:"evidence_link"`
}

func (r SiteRecord) Row() []string {
	return []string{
		r.City,
		r.Technician,
		r.SiteName,
		r.HasMonitor,
		r.MonitorType,
		r.MonitorWiring,
		r.Notes,
		r.EvidenceLink,
	}
}

func (r SiteRecord) Validate() error {
	if strings.TrimSpace(r.City) == "" {
		return fmt.Errorf("missing required field %q", ColCity)
	}
	if strings.TrimSpace(r.Technician) == "" {
		return fmt.Errorf("missing required field %q", ColTechnician)
	}
	return nil
}

type HeaderIndex map[string]int

func IndexHeader(header []string) (HeaderIndex, []string) {
	idx := make(HeaderIndex, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range Columns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}

	return idx, missing
}

func FromRow(idx HeaderIndex, row []string) (SiteRecord, error) {
	field := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	rec := SiteRecord{
		City:          field(ColCity),
		Technician:    field(ColTechnician),
		SiteName:      field(ColSiteName),
		HasMonitor:    field(ColHasMonitor),
		MonitorType:   field(ColMonitorType),
		MonitorWiring: field(ColMonitorWiring),
		Notes:         field(ColNotes),
		EvidenceLink:  field(ColEvidenceLink),
	}

	if err := rec.Validate(); err != nil {
		return SiteRecord{}, err
	}

	return rec, nil
}
