package entities

import (
	"github.com/google/uuid"

	"github.com/AntonZhikin/OfficeDepartment/pkg/types"
)

type HeadOffice struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`

	types.BaseEntity
}
