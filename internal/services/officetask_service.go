package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AntonZhikin/OfficeDepartment/internal/dto"
	"github.com/AntonZhikin/OfficeDepartment/internal/entities"
	"github.com/AntonZhikin/OfficeDepartment/internal/repositories"
	apperrors "github.com/AntonZhikin/OfficeDepartment/pkg/errors"
	"github.com/AntonZhikin/OfficeDepartment/pkg/types"
)

type OfficeTaskServiceInterface interface {
	List(ctx context.Context, filterDTO dto.OfficeTaskFilterDTO) ([]entities.OfficeTask, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.OfficeTaskDetailDTO, error)
	Create(ctx context.Context, createDTO dto.CreateOfficeTaskDTO, mctx MutationContext) (*entities.OfficeTask, error)
	Update(ctx context.Context, id uuid.UUID, updateDTO dto.UpdateOfficeTaskDTO, mctx MutationContext) (*entities.OfficeTask, error)
	Delete(ctx context.Context, id uuid.UUID, mctx MutationContext) error
}

type OfficeTaskService struct {
	db           repositories.Querier
	taskRepo     repositories.OfficeTaskRepositoryInterface
	branchRepo   repositories.BranchOfficeRepositoryInterface
	employeeRepo repositories.EmployeeRepositoryInterface
	pipeline     *Pipeline[entities.OfficeTask, dto.CreateOfficeTaskDTO, dto.UpdateOfficeTaskDTO]
	logger       *zap.Logger
}

func NewOfficeTaskService(
	db repositories.Querier,
	taskRepo repositories.OfficeTaskRepositoryInterface,
	branchRepo repositories.BranchOfficeRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	tx repositories.TxManagerInterface,
	audit AuditRecorderInterface,
	logger *zap.Logger,
) OfficeTaskServiceInterface {
	checkRefs := func(ctx context.Context, q repositories.Querier, branchID, departmentID, employeeID *uuid.UUID) error {
		if branchID != nil {
			exists, err := branchRepo.Exists(ctx, q, *branchID)
			if err != nil {
				return err
			}
			if !exists {
				return apperrors.NewBadRequestError("указанный филиал не существует")
			}
		}
		if departmentID != nil {
			exists, err := departmentRepo.Exists(ctx, q, *departmentID)
			if err != nil {
				return err
			}
			if !exists {
				return apperrors.NewBadRequestError("указанный отдел не существует")
			}
		}
		if employeeID != nil {
			exists, err := employeeRepo.Exists(ctx, q, *employeeID)
			if err != nil {
				return err
			}
			if !exists {
				return apperrors.NewBadRequestError("указанный исполнитель не существует")
			}
		}
		return nil
	}

	desc := EntityDescriptor[entities.OfficeTask, dto.CreateOfficeTaskDTO, dto.UpdateOfficeTaskDTO]{
		EntityType: "OfficeTask",
		ID:         func(e *entities.OfficeTask) uuid.UUID { return e.ID },
		Find:       taskRepo.FindByID,
		Insert:     taskRepo.Insert,
		Update:     taskRepo.Update,
		Delete:     taskRepo.Delete,
		New: func(c *dto.CreateOfficeTaskDTO) *entities.OfficeTask {
			task := &entities.OfficeTask{
				ID:                 uuid.New(),
				Title:              c.Title,
				Description:        c.Description,
				Status:             entities.TaskStatusPending,
				Priority:           entities.TaskPriority(c.Priority),
				BranchOfficeID:     c.BranchOfficeID,
				DepartmentID:       c.DepartmentID,
				AssignedEmployeeID: c.AssignedEmployeeID,
			}
			if c.DueDate.Valid {
				due := c.DueDate.Time.UTC()
				task.DueDate = &due
			}
			task.CreatedAt = time.Now().UTC()
			return task
		},
		Apply: func(e *entities.OfficeTask, u *dto.UpdateOfficeTaskDTO) error {
			status := entities.TaskStatus(u.Status)
			priority := entities.TaskPriority(u.Priority)
			if !status.Valid() {
				return apperrors.NewBadRequestError("недопустимый статус задачи")
			}
			if !priority.Valid() {
				return apperrors.NewBadRequestError("недопустимый приоритет задачи")
			}

			// completed_at фиксируется один раз, при первом переходе
			// в Completed, и дальше не трогается.
			if status == entities.TaskStatusCompleted && e.CompletedAt == nil {
				now := time.Now().UTC()
				e.CompletedAt = &now
			}

			e.Title = u.Title
			e.Description = u.Description
			e.Status = status
			e.Priority = priority
			e.BranchOfficeID = u.BranchOfficeID
			e.DepartmentID = u.DepartmentID
			e.AssignedEmployeeID = u.AssignedEmployeeID
			if u.DueDate.Valid {
				due := u.DueDate.Time.UTC()
				e.DueDate = &due
			} else {
				e.DueDate = nil
			}
			now := time.Now().UTC()
			e.UpdatedAt = &now
			return nil
		},
		CheckCreateRefs: func(ctx context.Context, q repositories.Querier, c *dto.CreateOfficeTaskDTO) error {
			if !entities.TaskPriority(c.Priority).Valid() {
				return apperrors.NewBadRequestError("недопустимый приоритет задачи")
			}
			return checkRefs(ctx, q, c.BranchOfficeID, c.DepartmentID, c.AssignedEmployeeID)
		},
		CheckUpdateRefs: func(ctx context.Context, q repositories.Querier, _ *entities.OfficeTask, u *dto.UpdateOfficeTaskDTO) error {
			return checkRefs(ctx, q, u.BranchOfficeID, u.DepartmentID, u.AssignedEmployeeID)
		},
	}

	return &OfficeTaskService{
		db:           db,
		taskRepo:     taskRepo,
		branchRepo:   branchRepo,
		employeeRepo: employeeRepo,
		pipeline:     NewPipeline(desc, tx, audit),
		logger:       logger,
	}
}

func (s *OfficeTaskService) List(ctx context.Context, filterDTO dto.OfficeTaskFilterDTO) ([]entities.OfficeTask, error) {
	filter := types.NewFilter()
	filter.Search = filterDTO.SearchTerm
	filter.Page = filterDTO.Page
	filter.PageSize = filterDTO.PageSize
	if filterDTO.Status != nil {
		filter.Filter["status"] = strconv.Itoa(int(*filterDTO.Status))
	}
	if filterDTO.Priority != nil {
		filter.Filter["priority"] = strconv.Itoa(int(*filterDTO.Priority))
	}
	if filterDTO.BranchOfficeID != nil {
		filter.Filter["branchOfficeId"] = filterDTO.BranchOfficeID.String()
	}
	if filterDTO.AssignedEmployeeID != nil {
		filter.Filter["assignedEmployeeId"] = filterDTO.AssignedEmployeeID.String()
	}

	return s.taskRepo.List(ctx, s.db, filter)
}

func (s *OfficeTaskService) GetByID(ctx context.Context, id uuid.UUID) (*dto.OfficeTaskDetailDTO, error) {
	task, err := s.taskRepo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.OfficeTaskDetailDTO{OfficeTask: *task}

	if task.BranchOfficeID != nil {
		branch, err := s.branchRepo.FindByID(ctx, s.db, *task.BranchOfficeID)
		if err == nil {
			detail.BranchOffice = &dto.ShortBranchOfficeDTO{ID: branch.ID, Name: branch.Name, City: branch.City}
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	if task.AssignedEmployeeID != nil {
		employee, err := s.employeeRepo.FindByID(ctx, s.db, *task.AssignedEmployeeID)
		if err == nil {
			detail.AssignedEmployee = &dto.ShortEmployeeDTO{
				ID:        employee.ID,
				FirstName: employee.FirstName,
				LastName:  employee.LastName,
				Position:  employee.Position,
			}
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	return detail, nil
}

func (s *OfficeTaskService) Create(ctx context.Context, createDTO dto.CreateOfficeTaskDTO, mctx MutationContext) (*entities.OfficeTask, error) {
	task, err := s.pipeline.Create(ctx, &createDTO, mctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Задача создана", zap.String("id", task.ID.String()))
	return task, nil
}

func (s *OfficeTaskService) Update(ctx context.Context, id uuid.UUID, updateDTO dto.UpdateOfficeTaskDTO, mctx MutationContext) (*entities.OfficeTask, error) {
	task, err := s.pipeline.Update(ctx, id, &updateDTO, mctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Задача обновлена", zap.String("id", task.ID.String()))
	return task, nil
}

func (s *OfficeTaskService) Delete(ctx context.Context, id uuid.UUID, mctx MutationContext) error {
	if err := s.pipeline.Delete(ctx, id, mctx); err != nil {
		return err
	}
	s.logger.Info("Задача удалена", zap.String("id", id.String()))
	return nil
}
