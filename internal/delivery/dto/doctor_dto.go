package dto

// Request DTOs

type AddDoctorRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=30"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=4"`
	Speciality   string `json:"speciality" validate:"required,speciality"`
	Experience   *int   `json:"experience" validate:"omitempty,gte=0"`
	Description  string `json:"description" validate:"omitempty,max=500"`
	ProfileImage string `json:"profileImage"`
}

// AddAdminRequest has the same shape rules as registration.
type AddAdminRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

// UpdateDoctorRequest is a partial update: nil fields are left unchanged.
type UpdateDoctorRequest struct {
	Username     *string `json:"username" validate:"omitempty,min=3,max=30"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Speciality   *string `json:"speciality" validate:"omitempty,speciality"`
	Experience   *int    `json:"experience" validate:"omitempty,gte=0"`
	Description  *string `json:"description" validate:"omitempty,max=500"`
	ProfileImage *string `json:"profileImage"`
}

// UpdateDoctorProfileRequest is the doctor's own partial profile update.
type UpdateDoctorProfileRequest struct {
	Speciality   *string `json:"speciality" validate:"omitempty,speciality"`
	Experience   *int    `json:"experience" validate:"omitempty,gte=0"`
	Description  *string `json:"description" validate:"omitempty,max=500"`
	ProfileImage *string `json:"profileImage"`
}
