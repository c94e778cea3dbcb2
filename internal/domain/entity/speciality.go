package entity

// Speciality is the closed set of medical specialities a doctor practises and
// a booking is categorised under.
type Speciality string

const (
	SpecialityDermatologist   Speciality = "Dermatologist"
	SpecialityPathologist     Speciality = "Pathologist"
	SpecialityNeurologist     Speciality = "Neurologist"
	SpecialityCardiologist    Speciality = "Cardiologist"
	SpecialityEndocrinologist Speciality = "Endocrinologist"
)

// SpecialityAll is the directory filter value meaning "no filter".
const SpecialityAll = "All"

var Specialities = []Speciality{
	SpecialityDermatologist,
	SpecialityPathologist,
	SpecialityNeurologist,
	SpecialityCardiologist,
	SpecialityEndocrinologist,
}

func (s Speciality) IsValid() bool {
	for _, known := range Specialities {
		if s == known {
			return true
		}
	}
	return false
}
