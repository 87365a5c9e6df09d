package entities

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonZhikin/OfficeDepartment/pkg/types"
)

type TaskStatus int16

const (
	TaskStatusPending TaskStatus = iota
	TaskStatusInProgress
	TaskStatusCompleted
	TaskStatusCancelled
)

func (s TaskStatus) Valid() bool {
	return s >= TaskStatusPending && s <= TaskStatusCancelled
}

func (s TaskStatus) String() string {
	switch s {
	case TaskStatusPending:
		return "Pending"
	case TaskStatusInProgress:
		return "InProgress"
	case TaskStatusCompleted:
		return "Completed"
	case TaskStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

type TaskPriority int16

const (
	TaskPriorityLow TaskPriority = iota
	TaskPriorityMedium
	TaskPriorityHigh
	TaskPriorityCritical
)

func (p TaskPriority) Valid() bool {
	return p >= TaskPriorityLow && p <= TaskPriorityCritical
}

func (p TaskPriority) String() string {
	switch p {
	case TaskPriorityLow:
		return "Low"
	case TaskPriorityMedium:
		return "Medium"
	case TaskPriorityHigh:
		return "High"
	case TaskPriorityCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

type OfficeTask struct {
	ID                 uuid.UUID    `json:"id"`
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	Status             TaskStatus   `json:"status"`
	Priority           TaskPriority `json:"priority"`
	BranchOfficeID     *uuid.UUID   `json:"branch_office_id"`
	DepartmentID       *uuid.UUID   `json:"department_id"`
	AssignedEmployeeID *uuid.UUID   `json:"assigned_employee_id"`
	DueDate            *time.Time   `json:"due_date"`
	CompletedAt        *time.Time   `json:"completed_at"`

	types.BaseEntity
}
