package dto

import "github.com/google/uuid"

type ShortHeadOfficeDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	City string    `json:"city"`
}

type ShortBranchOfficeDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	City string    `json:"city"`
}

type ShortDepartmentDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ShortEmployeeDTO struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Position  string    `json:"position"`
}
