package dto

import (
	"github.com/google/uuid"

	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
)

type CreateDepartmentDTO struct {
	Name         string     `json:"name" validate:"required,max=200"`
	Description  string     `json:"description" validate:"max=1000"`
	HeadOfficeID uuid.UUID  `json:"head_office_id" validate:"required"`
	ManagerID    *uuid.UUID `json:"manager_id"`
}

type UpdateDepartmentDTO struct {
	Name         string     `json:"name" validate:"required,max=200"`
	Description  string     `json:"description" validate:"max=1000"`
	HeadOfficeID uuid.UUID  `json:"head_office_id" validate:"required"`
	ManagerID    *uuid.UUID `json:"manager_id"`
}

type DepartmentFilterDTO struct {
	SearchTerm   string     `query:"searchTerm"`
	HeadOfficeID *uuid.UUID `query:"headOfficeId"`
	Page         int        `query:"page"`
	PageSize     int        `query:"pageSize"`
}

type DepartmentDetailDTO struct {
	entities.Department
	HeadOffice *ShortHeadOfficeDTO `json:"head_office,omitempty"`
	Manager    *ShortEmployeeDTO   `json:"manager,omitempty"`
}
