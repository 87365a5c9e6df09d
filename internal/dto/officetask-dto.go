package dto

import (
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
)

type CreateOfficeTaskDTO struct {
	Title              string     `json:"title" validate:"required,max=200"`
	Description        string     `json:"description" validate:"max=2000"`
	Priority           int16      `json:"priority" validate:"min=0,max=3"`
	BranchOfficeID     *uuid.UUID `json:"branch_office_id"`
	DepartmentID       *uuid.UUID `json:"department_id"`
	AssignedEmployeeID *uuid.UUID `json:"assigned_employee_id"`
	DueDate            null.Time  `json:"due_date"`
}

type UpdateOfficeTaskDTO struct {
	Title              string     `json:"title" validate:"required,max=200"`
	Description        string     `json:"description" validate:"max=2000"`
	Status             int16      `json:"status" validate:"min=0,max=3"`
	Priority           int16      `json:"priority" validate:"min=0,max=3"`
	BranchOfficeID     *uuid.UUID `json:"branch_office_id"`
	DepartmentID       *uuid.UUID `json:"department_id"`
	AssignedEmployeeID *uuid.UUID `json:"assigned_employee_id"`
	DueDate            null.Time  `json:"due_date"`
}

type OfficeTaskFilterDTO struct {
	SearchTerm         string     `query:"searchTerm"`
	Status             *int16     `query:"status"`
	Priority           *int16     `query:"priority"`
	BranchOfficeID     *uuid.UUID `query:"branchOfficeId"`
	AssignedEmployeeID *uuid.UUID `query:"assignedEmployeeId"`
	Page               int        `query:"page"`
	PageSize           int        `query:"pageSize"`
}

type OfficeTaskDetailDTO struct {
	entities.OfficeTask
	BranchOffice     *ShortBranchOfficeDTO `json:"branch_office,omitempty"`
	AssignedEmployee *ShortEmployeeDTO     `json:"assigned_employee,omitempty"`
}
