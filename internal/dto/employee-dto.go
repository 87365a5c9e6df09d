package dto

import (
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
)

// CreateEmployeeDTO: если заполнены username и password,
// вместе с сотрудником создаётся привязанный User для входа.
type CreateEmployeeDTO struct {
	FirstName      string     `json:"first_name" validate:"required,max=100"`
	LastName       string     `json:"last_name" validate:"required,max=100"`
	Email          string     `json:"email" validate:"required,email,max=200"`
	PhoneNumber    string     `json:"phone_number" validate:"max=50"`
	Position       string     `json:"position" validate:"required,max=100"`
	BranchOfficeID *uuid.UUID `json:"branch_office_id"`
	DepartmentID   *uuid.UUID `json:"department_id"`
	HireDate       null.Time  `json:"hire_date"`
	Username       string     `json:"username" validate:"omitempty,max=100"`
	Password       string     `json:"password" validate:"omitempty,min=6"`
}

type UpdateEmployeeDTO struct {
	FirstName      string     `json:"first_name" validate:"required,max=100"`
	LastName       string     `json:"last_name" validate:"required,max=100"`
	Email          string     `json:"email" validate:"required,email,max=200"`
	PhoneNumber    string     `json:"phone_number" validate:"max=50"`
	Position       string     `json:"position" validate:"required,max=100"`
	BranchOfficeID *uuid.UUID `json:"branch_office_id"`
	DepartmentID   *uuid.UUID `json:"department_id"`
}

type EmployeeFilterDTO struct {
	SearchTerm     string     `query:"searchTerm"`
	BranchOfficeID *uuid.UUID `query:"branchOfficeId"`
	DepartmentID   *uuid.UUID `query:"departmentId"`
	Position       string     `query:"position"`
	Page           int        `query:"page"`
	PageSize       int        `query:"pageSize"`
}

type EmployeeDetailDTO struct {
	entities.Employee
	BranchOffice *ShortBranchOfficeDTO `json:"branch_office,omitempty"`
	Department   *ShortDepartmentDTO   `json:"department,omitempty"`
}
