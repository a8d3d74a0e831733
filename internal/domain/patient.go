package domain

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	// GenderOther keeps the capitalized spelling the wire contract has
	// always used.
	GenderOther Gender = "Other"
)

type Verdict string

const (
	VerdictUnderweight Verdict = "Underweight"
	VerdictNormal      Verdict = "Normal"
	VerdictOverweight  Verdict = "Overweight"
	VerdictObese       Verdict = "Obese"
)

// Patient is a registry record. Height is in meters, weight in kilograms.
// BMI and the verdict are derived and recomputed on every read.
type Patient struct {
	ID        string    `json:"id" validate:"required,max=64"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name" validate:"required,max=100"`
	City      string    `json:"city" validate:"required,max=100"`
	Age       int       `json:"age" validate:"gte=0,lt=120"`
	Gender    Gender    `json:"gender" validate:"required,oneof=male female Other"`
	Height    float64   `json:"height" validate:"gt=0,lte=3"`
	Weight    float64   `json:"weight" validate:"gt=0"`
}

var validate = validator.New()

// Validate checks the field constraints of the record. The returned error
// wraps ErrInvalidPatient so callers can classify it.
func (p *Patient) Validate() error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidPatient, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidPatient, err)
	}
	return nil
}

// BMI returns weight / height^2 rounded to two decimals.
func (p *Patient) BMI() float64 {
	return math.Round(p.Weight/(p.Height*p.Height)*100) / 100
}

// BMIVerdict classifies the BMI using the standard cutoffs.
func (p *Patient) BMIVerdict() Verdict {
	bmi := p.BMI()
	switch {
	case bmi < 18.5:
		return VerdictUnderweight
	case bmi < 25:
		return VerdictNormal
	case bmi < 30:
		return VerdictOverweight
	default:
		return VerdictObese
	}
}

// Sortable patient fields accepted by list operations.
const (
	SortByName   = "name"
	SortByAge    = "age"
	SortByHeight = "height"
	SortByWeight = "weight"
	SortByBMI    = "bmi"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ValidSortFields lists the accepted sort_by values in a stable order,
// used both for validation and for error messages.
var ValidSortFields = []string{SortByName, SortByAge, SortByHeight, SortByWeight, SortByBMI}

// SortPatients orders patients in place by the given field, ties broken by
// id ascending regardless of direction — the same ordering the postgres
// backend produces with "ORDER BY <col> <dir>, id ASC". The in-memory
// backends share this so all backends sort identically. Callers validate
// sortBy and order first; an unknown field sorts by id.
func SortPatients(patients []*Patient, sortBy, order string) {
	desc := order == OrderDesc

	cmp := func(a, b *Patient) int { return 0 }
	switch sortBy {
	case SortByName:
		cmp = func(a, b *Patient) int { return strings.Compare(a.Name, b.Name) }
	case SortByAge:
		cmp = func(a, b *Patient) int { return a.Age - b.Age }
	case SortByHeight:
		cmp = func(a, b *Patient) int { return cmpFloat(a.Height, b.Height) }
	case SortByWeight:
		cmp = func(a, b *Patient) int { return cmpFloat(a.Weight, b.Weight) }
	case SortByBMI:
		cmp = func(a, b *Patient) int { return cmpFloat(a.BMI(), b.BMI()) }
	}

	sort.SliceStable(patients, func(i, j int) bool {
		c := cmp(patients[i], patients[j])
		if desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return patients[i].ID < patients[j].ID
	})
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
