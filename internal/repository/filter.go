package repository

import (
	"strings"

	"patient-registry-service/internal/domain"
)

// filterPatients applies ListFilter constraints for the embedded backends,
// which filter in memory. Postgres compiles the same constraints to SQL.
func filterPatients(patients map[string]*domain.Patient, filter domain.ListFilter) []*domain.Patient {
	result := make([]*domain.Patient, 0, len(patients))
	for _, p := range patients {
		if filter.City != "" && !strings.EqualFold(p.City, filter.City) {
			continue
		}
		if filter.Gender != "" && string(p.Gender) != filter.Gender {
			continue
		}
		result = append(result, p)
	}
	return result
}
