package entities

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonZhikin/OfficeDepartment/pkg/types"
)

type Employee struct {
	ID             uuid.UUID  `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	PhoneNumber    string     `json:"phone_number"`
	Position       string     `json:"position"`
	BranchOfficeID *uuid.UUID `json:"branch_office_id"`
	DepartmentID   *uuid.UUID `json:"department_id"`
	UserID         *uuid.UUID `json:"user_id"`
	HireDate       time.Time  `json:"hire_date"`

	types.BaseEntity
}
