package dto

import "github.com/AntonZhikin/OfficeDepartment/internal/entities"

type CreateHeadOfficeDTO struct {
	Name        string `json:"name" validate:"required,max=200"`
	Address     string `json:"address" validate:"required,max=500"`
	City        string `json:"city" validate:"required,max=100"`
	Country     string `json:"country" validate:"required,max=100"`
	PhoneNumber string `json:"phone_number" validate:"max=50"`
	Email       string `json:"email" validate:"omitempty,email,max=200"`
}

type UpdateHeadOfficeDTO struct {
	Name        string `json:"name" validate:"required,max=200"`
	Address     string `json:"address" validate:"required,max=500"`
	City        string `json:"city" validate:"required,max=100"`
	Country     string `json:"country" validate:"required,max=100"`
	PhoneNumber string `json:"phone_number" validate:"max=50"`
	Email       string `json:"email" validate:"omitempty,email,max=200"`
}

type HeadOfficeFilterDTO struct {
	SearchTerm string `query:"searchTerm"`
	City       string `query:"city"`
	Country    string `query:"country"`
	Page       int    `query:"page"`
	PageSize   int    `query:"pageSize"`
}

// HeadOfficeDetailDTO — ответ GET by id: сама запись без
// обратных ссылок на дочерние коллекции.
type HeadOfficeDetailDTO struct {
	entities.HeadOffice
	BranchOffices []ShortBranchOfficeDTO `json:"branch_offices"`
	Departments   []ShortDepartmentDTO   `json:"departments"`
}
