package usecase

import (
	"context"
	"math"

	"patient-registry-service/internal/domain"

	"github.com/samber/lo"
)

type StatsUseCase struct {
	repo domain.PatientRepository
}

func NewStatsUseCase(repo domain.PatientRepository) *StatsUseCase {
	return &StatsUseCase{repo: repo}
}

// Report aggregates the registry the way the dashboard consumes it: totals,
// averages (one decimal) and distributions per gender, verdict and city.
func (uc *StatsUseCase) Report(ctx context.Context) (*domain.Stats, error) {
	patients, total, err := uc.repo.List(ctx, domain.ListFilter{})
	if err != nil {
		return nil, err
	}

	stats := &domain.Stats{
		TotalPatients: total,
		ByGender:      map[domain.Gender]int{},
		ByVerdict:     map[domain.Verdict]int{},
		ByCity:        map[string]int{},
	}

	if total == 0 {
		return stats, nil
	}

	stats.ByGender = lo.CountValuesBy(patients, func(p *domain.Patient) domain.Gender { return p.Gender })
	stats.ByVerdict = lo.CountValuesBy(patients, func(p *domain.Patient) domain.Verdict { return p.BMIVerdict() })
	stats.ByCity = lo.CountValuesBy(patients, func(p *domain.Patient) string { return p.City })
	stats.NormalCount = stats.ByVerdict[domain.VerdictNormal]

	ageSum := lo.SumBy(patients, func(p *domain.Patient) float64 { return float64(p.Age) })
	bmiSum := lo.SumBy(patients, func(p *domain.Patient) float64 { return p.BMI() })
	stats.AverageAge = round1(ageSum / float64(total))
	stats.AverageBMI = round1(bmiSum / float64(total))

	return stats, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
