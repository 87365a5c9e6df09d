package entities

import (
	"github.com/google/uuid"

	"github.com/AntonZhikin/OfficeDepartment/pkg/types"
)

type Department struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	HeadOfficeID uuid.UUID  `json:"head_office_id"`
	ManagerID    *uuid.UUID `json:"manager_id"`

	types.BaseEntity
}
