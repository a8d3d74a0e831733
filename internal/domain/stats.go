package domain

// Stats is an aggregate report over the whole registry.
type Stats struct {
	TotalPatients int             `json:"total_patients"`
	AverageAge    float64         `json:"average_age"`
	AverageBMI    float64         `json:"average_bmi"`
	NormalCount   int             `json:"normal_count"`
	ByGender      map[Gender]int  `json:"by_gender"`
	ByVerdict     map[Verdict]int `json:"by_verdict"`
	ByCity        map[string]int  `json:"by_city"`
}
