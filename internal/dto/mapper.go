package dto

import (
	"time"

	"patient-registry-service/internal/domain"
)

const timeFormat = time.RFC3339

func ToPatientResponse(p *domain.Patient) PatientResponse {
	return PatientResponse{
		ID:        p.ID,
		CreatedAt: p.CreatedAt.Format(timeFormat),
		UpdatedAt: p.UpdatedAt.Format(timeFormat),
		Name:      p.Name,
		City:      p.City,
		Age:       p.Age,
		Gender:    string(p.Gender),
		Height:    p.Height,
		Weight:    p.Weight,
		BMI:       p.BMI(),
		Verdict:   string(p.BMIVerdict()),
	}
}

func ToPatient(req CreatePatientRequest) *domain.Patient {
	age := 0
	if req.Age != nil {
		age = *req.Age
	}
	return &domain.Patient{
		ID:     req.ID,
		Name:   req.Name,
		City:   req.City,
		Age:    age,
		Gender: domain.Gender(req.Gender),
		Height: req.Height,
		Weight: req.Weight,
	}
}

// Updates flattens the set fields of an update request into the partial
// update map consumed by the use case.
func (req UpdatePatientRequest) Updates() map[string]interface{} {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Age != nil {
		updates["age"] = *req.Age
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Height != nil {
		updates["height"] = *req.Height
	}
	if req.Weight != nil {
		updates["weight"] = *req.Weight
	}
	return updates
}
