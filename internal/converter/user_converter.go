package converter

import (
	"go-hospital-booking/internal/delivery/dto"
	"go-hospital-booking/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	// Doctor-only fields
	if user.IsDoctor() {
		experience := user.Experience
		response.Speciality = string(user.Speciality)
		response.Experience = &experience
		response.Description = user.Description
		response.ProfileImage = user.ProfileImage
	}

	return response
}

// UsersToResponses converts a slice of User entities to slice of UserResponse DTOs
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}
