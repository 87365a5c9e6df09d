package dto

import (
	"github.com/google/uuid"

	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
)

type RegisterDTO struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=200"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserDTO struct {
	ID       uuid.UUID         `json:"id"`
	Username string            `json:"username"`
	Email    string            `json:"email"`
	Role     string            `json:"role"`
	Employee *ShortEmployeeDTO `json:"employee,omitempty"`
}

type LoginResponseDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

func UserToDTO(user *entities.User, employee *ShortEmployeeDTO) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Employee: employee,
	}
}
