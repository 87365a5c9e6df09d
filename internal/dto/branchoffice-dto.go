package dto

import (
	"github.com/google/uuid"

	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
)

type CreateBranchOfficeDTO struct {
	Name         string    `json:"name" validate:"required,max=200"`
	Address      string    `json:"address" validate:"required,max=500"`
	City         string    `json:"city" validate:"required,max=100"`
	Country      string    `json:"country" validate:"required,max=100"`
	PhoneNumber  string    `json:"phone_number" validate:"max=50"`
	Email        string    `json:"email" validate:"omitempty,email,max=200"`
	HeadOfficeID uuid.UUID `json:"head_office_id" validate:"required"`
}

type UpdateBranchOfficeDTO struct {
	Name         string    `json:"name" validate:"required,max=200"`
	Address      string    `json:"address" validate:"required,max=500"`
	City         string    `json:"city" validate:"required,max=100"`
	Country      string    `json:"country" validate:"required,max=100"`
	PhoneNumber  string    `json:"phone_number" validate:"max=50"`
	Email        string    `json:"email" validate:"omitempty,email,max=200"`
	HeadOfficeID uuid.UUID `json:"head_office_id" validate:"required"`
}

type BranchOfficeFilterDTO struct {
	SearchTerm   string     `query:"searchTerm"`
	HeadOfficeID *uuid.UUID `query:"headOfficeId"`
	City         string     `query:"city"`
	Page         int        `query:"page"`
	PageSize     int        `query:"pageSize"`
}

type BranchOfficeDetailDTO struct {
	entities.BranchOffice
	HeadOffice *ShortHeadOfficeDTO `json:"head_office,omitempty"`
}
