package entity

import "testing"

func TestAuthorize(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	doctor := &User{Role: RoleDoctor}
	patient := &User{Role: RolePatient}

	tests := []struct {
		name     string
		user     *User
		required []Role
		want     bool
	}{
		{"admin on admin route", admin, []Role{RoleAdmin}, true},
		{"patient on admin route", patient, []Role{RoleAdmin}, false},
		{"doctor on patient route", doctor, []Role{RolePatient}, false},
		{"doctor on doctor route", doctor, []Role{RoleDoctor}, true},
		{"any of several", doctor, []Role{RoleAdmin, RoleDoctor}, true},
		{"authenticated only", patient, nil, true},
		{"nil user", nil, nil, false},
		{"unknown role", &User{Role: "nurse"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorize(tt.user, tt.required...); got != tt.want {
				t.Errorf("Authorize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpecialityIsValid(t *testing.T) {
	for _, s := range Specialities {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []Speciality{"", "All", "cardiologist", "Surgeon"} {
		if s.IsValid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}
