package report

import (
	"github.com/Srbanana94/dashboard-monitores-energia/internal/model"
)

type Selector struct {
	City       string
	Technician string
}

func AllSelector() Selector {
	return Selector{City: model.AllCities, Technician: model.AllTechnicians}
}

func (s Selector) matches(r model.SiteRecord) bool {
	if s.City != model.AllCities && r.City != s.City {
		return false
	}
	if s.Technician != model.AllTechnicians && r.Technician != s.Technician {
		return false
	}
	return true
}

func Filter(records []model.SiteRecord, sel Selector) []model.SiteRecord {
	out := make([]model.SiteRecord, 0, len(records))
	for _, r := range records {
		if sel.matches(r) {
			out = append(out, r)
		}
	}
	return out
}
