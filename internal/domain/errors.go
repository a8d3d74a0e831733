package domain

import "errors"

var (
	ErrPatientNotFound   = errors.New("patient not found")
	ErrPatientIDConflict = errors.New("patient with this ID already exists")
	ErrInvalidPatient    = errors.New("invalid patient")
	ErrInvalidSortField  = errors.New("invalid sort field, select from name, age, height, weight or bmi")
	ErrInvalidSortOrder  = errors.New("invalid sort order, select between asc or desc")
)
