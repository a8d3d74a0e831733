package dto

type CreatePatientRequest struct {
	ID   string `json:"id" binding:"required,max=64"`
	Name string `json:"name" binding:"required,max=100"`
	City string `json:"city" binding:"required,max=100"`
	// Age is a pointer so a missing field is rejected while an explicit 0
	// stays valid.
	Age    *int    `json:"age" binding:"required"`
	Gender string  `json:"gender" binding:"required"`
	Height float64 `json:"height" binding:"required"`
	Weight float64 `json:"weight" binding:"required"`
}

type UpdatePatientRequest struct {
	Name   *string  `json:"name"`
	City   *string  `json:"city"`
	Age    *int     `json:"age"`
	Gender *string  `json:"gender"`
	Height *float64 `json:"height"`
	Weight *float64 `json:"weight"`
}

type PatientResponse struct {
	ID        string  `json:"id"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Age       int     `json:"age"`
	Gender    string  `json:"gender"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
	BMI       float64 `json:"bmi"`
	Verdict   string  `json:"verdict"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
